package services

import (
	"context"
	"errors"
	"testing"

	"github.com/fairwaylab/swingcoach/internal/models"
	"github.com/fairwaylab/swingcoach/internal/repository"
)

// Rejection paths run before any repository access, so nil repos are fine
// here.

func TestBookRejectsUnknownLocationType(t *testing.T) {
	svc := NewReservationService(nil, nil)

	_, err := svc.Book(context.Background(), repository.CreateReservationInput{
		LocationType: "rooftop",
		LocationID:   "loc-1",
		Price:        100,
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput for unknown location type, got %v", err)
	}
}

func TestBookRejectsNegativePrice(t *testing.T) {
	svc := NewReservationService(nil, nil)

	_, err := svc.Book(context.Background(), repository.CreateReservationInput{
		LocationType: models.LocationTypeSimulationGolf,
		LocationID:   "loc-1",
		Price:        -1,
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput for negative price, got %v", err)
	}
}

func TestRescheduleRejectsUnknownLocationType(t *testing.T) {
	svc := NewReservationService(nil, nil)

	bad := "rooftop"
	_, err := svc.Reschedule(context.Background(), "s1", repository.UpdateReservationInput{
		LocationType: &bad,
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput for unknown location type, got %v", err)
	}
}

func TestRescheduleRejectsNegativePrice(t *testing.T) {
	svc := NewReservationService(nil, nil)

	price := -50.0
	_, err := svc.Reschedule(context.Background(), "s1", repository.UpdateReservationInput{
		Price: &price,
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput for negative price, got %v", err)
	}
}

func TestValidLocationType(t *testing.T) {
	if !validLocationType(models.LocationTypeSimulationGolf) || !validLocationType(models.LocationTypeRealGolfCourse) {
		t.Error("known location types must pass")
	}
	if validLocationType("") || validLocationType("rooftop") {
		t.Error("out-of-vocabulary location types must fail")
	}
}
