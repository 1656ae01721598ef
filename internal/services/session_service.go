package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/fairwaylab/swingcoach/internal/models"
	"github.com/fairwaylab/swingcoach/internal/repository"
)

// sessionTransitions is the allowed lifecycle: pending -> in_progress ->
// completed, with cancellation possible until completion.
var sessionTransitions = map[string][]string{
	models.SessionStatusPending:    {models.SessionStatusInProgress, models.SessionStatusCancelled},
	models.SessionStatusInProgress: {models.SessionStatusCompleted, models.SessionStatusCancelled},
}

// SessionService runs the coaching-session lifecycle with guarded status
// transitions.
type SessionService struct {
	sessions *repository.SessionRepository
	videos   *repository.VideoRepository
}

func NewSessionService(sessions *repository.SessionRepository, videos *repository.VideoRepository) *SessionService {
	return &SessionService{sessions: sessions, videos: videos}
}

// Request opens a session for a video the requesting user owns.
func (s *SessionService) Request(ctx context.Context, input repository.CreateSessionInput) (*models.CoachingSession, error) {
	video, err := s.videos.GetByID(ctx, input.VideoID)
	if err != nil {
		return nil, err
	}
	if video.UserID != input.UserID {
		return nil, ErrForbidden
	}
	return s.sessions.Create(ctx, input)
}

func (s *SessionService) GetByID(ctx context.Context, sessionID string) (*models.CoachingSession, error) {
	return s.sessions.GetByID(ctx, sessionID)
}

func (s *SessionService) ListByUser(ctx context.Context, userID string, skip, limit int) ([]models.CoachingSession, error) {
	return s.sessions.ListByUser(ctx, userID, skip, limit)
}

func (s *SessionService) ListByCoach(ctx context.Context, coachID string, skip, limit int) ([]models.CoachingSession, error) {
	return s.sessions.ListByCoach(ctx, coachID, skip, limit)
}

// Transition moves the session to nextStatus if the lifecycle allows it. The
// repository applies the move as a conditional update, so a concurrent
// transition makes the second caller fail instead of silently overwriting.
func (s *SessionService) Transition(ctx context.Context, sessionID, nextStatus string) (*models.CoachingSession, error) {
	session, err := s.sessions.GetByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if !transitionAllowed(sessionTransitions, session.Status, nextStatus) {
		return nil, fmt.Errorf("%w: session %s -> %s", ErrInvalidStateTransition, session.Status, nextStatus)
	}

	updated, err := s.sessions.UpdateStatusIfCurrent(ctx, sessionID, session.Status, nextStatus)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: session %s changed concurrently", ErrInvalidStateTransition, sessionID)
	}
	return updated, err
}

func transitionAllowed(transitions map[string][]string, current, next string) bool {
	for _, allowed := range transitions[current] {
		if allowed == next {
			return true
		}
	}
	return false
}
