package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/fairwaylab/swingcoach/internal/models"
)

const sessionColumns = `
	session_id, user_id, coach_id, video_id, status,
	requested_at, completed_at, created_at, updated_at
`

type CreateSessionInput struct {
	UserID  string
	CoachID string
	VideoID string
}

type SessionRepository struct {
	db DBTX
}

func NewSessionRepository(db DBTX) *SessionRepository {
	return &SessionRepository{db: db}
}

func scanSession(row interface{ Scan(dest ...any) error }) (*models.CoachingSession, error) {
	var s models.CoachingSession
	err := row.Scan(
		&s.SessionID, &s.UserID, &s.CoachID, &s.VideoID, &s.Status,
		&s.RequestedAt, &s.CompletedAt, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *SessionRepository) Create(ctx context.Context, input CreateSessionInput) (*models.CoachingSession, error) {
	query := `
		INSERT INTO coaching_sessions (session_id, user_id, coach_id, video_id, status)
		VALUES ($1, $2, $3, $4, 'pending')
		RETURNING ` + sessionColumns
	return scanSession(r.db.QueryRow(ctx, query, uuid.NewString(), input.UserID, input.CoachID, input.VideoID))
}

func (r *SessionRepository) GetByID(ctx context.Context, sessionID string) (*models.CoachingSession, error) {
	query := `SELECT ` + sessionColumns + ` FROM coaching_sessions WHERE session_id = $1`
	return scanSession(r.db.QueryRow(ctx, query, sessionID))
}

func (r *SessionRepository) collect(ctx context.Context, query string, args ...any) ([]models.CoachingSession, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sessions := make([]models.CoachingSession, 0)
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, *s)
	}
	return sessions, rows.Err()
}

func (r *SessionRepository) ListByUser(ctx context.Context, userID string, skip, limit int) ([]models.CoachingSession, error) {
	query := `SELECT ` + sessionColumns + ` FROM coaching_sessions WHERE user_id = $1 ORDER BY requested_at DESC OFFSET $2 LIMIT $3`
	return r.collect(ctx, query, userID, skip, ClampLimit(limit))
}

func (r *SessionRepository) ListByCoach(ctx context.Context, coachID string, skip, limit int) ([]models.CoachingSession, error) {
	query := `SELECT ` + sessionColumns + ` FROM coaching_sessions WHERE coach_id = $1 ORDER BY requested_at DESC OFFSET $2 LIMIT $3`
	return r.collect(ctx, query, coachID, skip, ClampLimit(limit))
}

// UpdateStatusIfCurrent applies the transition only when the row is still in
// the expected state, so the guard holds under concurrent updates.
func (r *SessionRepository) UpdateStatusIfCurrent(ctx context.Context, sessionID, currentStatus, nextStatus string) (*models.CoachingSession, error) {
	query := `
		UPDATE coaching_sessions
		SET status = $3,
			completed_at = CASE WHEN $3 = 'completed' THEN NOW() ELSE completed_at END,
			updated_at = NOW()
		WHERE session_id = $1 AND status = $2
		RETURNING ` + sessionColumns
	return scanSession(r.db.QueryRow(ctx, query, sessionID, currentStatus, nextStatus))
}
