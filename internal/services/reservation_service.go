package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/jackc/pgx/v5"

	"github.com/fairwaylab/swingcoach/internal/models"
	"github.com/fairwaylab/swingcoach/internal/repository"
)

var reservationTransitions = map[string][]string{
	models.ReservationStatusBooked: {models.ReservationStatusCompleted, models.ReservationStatusCancelled},
}

var paymentTransitions = map[string][]string{
	models.PaymentStatusPending: {models.PaymentStatusPaid},
}

// ReservationService books live coaching appointments and guards their
// status and payment lifecycles.
type ReservationService struct {
	reservations *repository.ReservationRepository
	locations    *repository.LocationRepository
}

func NewReservationService(reservations *repository.ReservationRepository, locations *repository.LocationRepository) *ReservationService {
	return &ReservationService{reservations: reservations, locations: locations}
}

func validLocationType(locationType string) bool {
	return locationType == models.LocationTypeSimulationGolf || locationType == models.LocationTypeRealGolfCourse
}

func (s *ReservationService) Book(ctx context.Context, input repository.CreateReservationInput) (*models.CoachingReservation, error) {
	if !validLocationType(input.LocationType) {
		return nil, fmt.Errorf("%w: unknown location type %q", ErrInvalidInput, input.LocationType)
	}
	if input.Price < 0 {
		return nil, fmt.Errorf("%w: price must not be negative", ErrInvalidInput)
	}
	if input.LocationID == "" {
		return nil, fmt.Errorf("%w: location_id is required", ErrInvalidInput)
	}
	// location_id is an advisory reference; a missing row is logged, not
	// rejected.
	if _, err := s.locations.GetByID(ctx, input.LocationID); errors.Is(err, pgx.ErrNoRows) {
		log.Printf("reservation: location %s not found, booking anyway", input.LocationID)
	}
	return s.reservations.Create(ctx, input)
}

func (s *ReservationService) GetByID(ctx context.Context, sessionID string) (*models.CoachingReservation, error) {
	return s.reservations.GetByID(ctx, sessionID)
}

func (s *ReservationService) ListByUser(ctx context.Context, userID string, skip, limit int) ([]models.CoachingReservation, error) {
	return s.reservations.ListByUser(ctx, userID, skip, limit)
}

func (s *ReservationService) ListByCoach(ctx context.Context, coachID string, skip, limit int) ([]models.CoachingReservation, error) {
	return s.reservations.ListByCoach(ctx, coachID, skip, limit)
}

// Reschedule applies partial edits. Booked reservations only; completed and
// cancelled ones are frozen.
func (s *ReservationService) Reschedule(ctx context.Context, sessionID string, input repository.UpdateReservationInput) (*models.CoachingReservation, error) {
	if input.LocationType != nil && !validLocationType(*input.LocationType) {
		return nil, fmt.Errorf("%w: unknown location type %q", ErrInvalidInput, *input.LocationType)
	}
	if input.Price != nil && *input.Price < 0 {
		return nil, fmt.Errorf("%w: price must not be negative", ErrInvalidInput)
	}
	reservation, err := s.reservations.GetByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if reservation.Status != models.ReservationStatusBooked {
		return nil, fmt.Errorf("%w: cannot edit a %s reservation", ErrInvalidStateTransition, reservation.Status)
	}
	return s.reservations.UpdatePartial(ctx, sessionID, input)
}

func (s *ReservationService) Transition(ctx context.Context, sessionID, nextStatus string) (*models.CoachingReservation, error) {
	reservation, err := s.reservations.GetByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if !transitionAllowed(reservationTransitions, reservation.Status, nextStatus) {
		return nil, fmt.Errorf("%w: reservation %s -> %s", ErrInvalidStateTransition, reservation.Status, nextStatus)
	}

	updated, err := s.reservations.UpdateStatusIfCurrent(ctx, sessionID, reservation.Status, nextStatus)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: reservation %s changed concurrently", ErrInvalidStateTransition, sessionID)
	}
	return updated, err
}

// MarkPaid moves payment from pending to paid exactly once.
func (s *ReservationService) MarkPaid(ctx context.Context, sessionID string) (*models.CoachingReservation, error) {
	reservation, err := s.reservations.GetByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if !transitionAllowed(paymentTransitions, reservation.PaymentStatus, models.PaymentStatusPaid) {
		return nil, fmt.Errorf("%w: payment %s -> %s", ErrInvalidStateTransition, reservation.PaymentStatus, models.PaymentStatusPaid)
	}

	updated, err := s.reservations.UpdatePaymentIfCurrent(ctx, sessionID, reservation.PaymentStatus, models.PaymentStatusPaid)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: reservation %s changed concurrently", ErrInvalidStateTransition, sessionID)
	}
	return updated, err
}
