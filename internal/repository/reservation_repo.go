package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/fairwaylab/swingcoach/internal/models"
)

const reservationColumns = `
	session_id, user_id, coach_id, session_date, session_time,
	location_type, location_id, status, price, payment_status,
	created_at, updated_at
`

type CreateReservationInput struct {
	UserID       string
	CoachID      string
	SessionDate  time.Time
	SessionTime  time.Time
	LocationType string
	LocationID   string
	Price        float64
}

type UpdateReservationInput struct {
	SessionDate  *time.Time
	SessionTime  *time.Time
	LocationType *string
	LocationID   *string
	Price        *float64
}

type ReservationRepository struct {
	db DBTX
}

func NewReservationRepository(db DBTX) *ReservationRepository {
	return &ReservationRepository{db: db}
}

func scanReservation(row interface{ Scan(dest ...any) error }) (*models.CoachingReservation, error) {
	var res models.CoachingReservation
	err := row.Scan(
		&res.SessionID, &res.UserID, &res.CoachID, &res.SessionDate, &res.SessionTime,
		&res.LocationType, &res.LocationID, &res.Status, &res.Price, &res.PaymentStatus,
		&res.CreatedAt, &res.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

func (r *ReservationRepository) Create(ctx context.Context, input CreateReservationInput) (*models.CoachingReservation, error) {
	query := `
		INSERT INTO coaching_reservations (
			session_id, user_id, coach_id, session_date, session_time,
			location_type, location_id, price, status, payment_status
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, 'booked', 'pending')
		RETURNING ` + reservationColumns
	return scanReservation(r.db.QueryRow(ctx, query,
		uuid.NewString(),
		input.UserID,
		input.CoachID,
		input.SessionDate,
		input.SessionTime,
		input.LocationType,
		input.LocationID,
		input.Price,
	))
}

func (r *ReservationRepository) GetByID(ctx context.Context, sessionID string) (*models.CoachingReservation, error) {
	query := `SELECT ` + reservationColumns + ` FROM coaching_reservations WHERE session_id = $1`
	return scanReservation(r.db.QueryRow(ctx, query, sessionID))
}

func (r *ReservationRepository) collect(ctx context.Context, query string, args ...any) ([]models.CoachingReservation, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	reservations := make([]models.CoachingReservation, 0)
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, err
		}
		reservations = append(reservations, *res)
	}
	return reservations, rows.Err()
}

func (r *ReservationRepository) ListByUser(ctx context.Context, userID string, skip, limit int) ([]models.CoachingReservation, error) {
	query := `SELECT ` + reservationColumns + ` FROM coaching_reservations WHERE user_id = $1 ORDER BY session_date DESC OFFSET $2 LIMIT $3`
	return r.collect(ctx, query, userID, skip, ClampLimit(limit))
}

func (r *ReservationRepository) ListByCoach(ctx context.Context, coachID string, skip, limit int) ([]models.CoachingReservation, error) {
	query := `SELECT ` + reservationColumns + ` FROM coaching_reservations WHERE coach_id = $1 ORDER BY session_date DESC OFFSET $2 LIMIT $3`
	return r.collect(ctx, query, coachID, skip, ClampLimit(limit))
}

func (r *ReservationRepository) UpdatePartial(ctx context.Context, sessionID string, input UpdateReservationInput) (*models.CoachingReservation, error) {
	query := `
		UPDATE coaching_reservations
		SET session_date = COALESCE($1, session_date),
			session_time = COALESCE($2, session_time),
			location_type = COALESCE($3, location_type),
			location_id = COALESCE($4, location_id),
			price = COALESCE($5, price),
			updated_at = NOW()
		WHERE session_id = $6
		RETURNING ` + reservationColumns
	return scanReservation(r.db.QueryRow(ctx, query,
		input.SessionDate,
		input.SessionTime,
		input.LocationType,
		input.LocationID,
		input.Price,
		sessionID,
	))
}

func (r *ReservationRepository) UpdateStatusIfCurrent(ctx context.Context, sessionID, currentStatus, nextStatus string) (*models.CoachingReservation, error) {
	query := `
		UPDATE coaching_reservations
		SET status = $3, updated_at = NOW()
		WHERE session_id = $1 AND status = $2
		RETURNING ` + reservationColumns
	return scanReservation(r.db.QueryRow(ctx, query, sessionID, currentStatus, nextStatus))
}

func (r *ReservationRepository) UpdatePaymentIfCurrent(ctx context.Context, sessionID, currentStatus, nextStatus string) (*models.CoachingReservation, error) {
	query := `
		UPDATE coaching_reservations
		SET payment_status = $3, updated_at = NOW()
		WHERE session_id = $1 AND payment_status = $2
		RETURNING ` + reservationColumns
	return scanReservation(r.db.QueryRow(ctx, query, sessionID, currentStatus, nextStatus))
}
