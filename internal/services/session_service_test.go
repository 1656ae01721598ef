package services

import (
	"testing"

	"github.com/fairwaylab/swingcoach/internal/models"
)

func TestSessionTransitions(t *testing.T) {
	cases := []struct {
		current string
		next    string
		allowed bool
	}{
		{models.SessionStatusPending, models.SessionStatusInProgress, true},
		{models.SessionStatusPending, models.SessionStatusCancelled, true},
		{models.SessionStatusPending, models.SessionStatusCompleted, false},
		{models.SessionStatusInProgress, models.SessionStatusCompleted, true},
		{models.SessionStatusInProgress, models.SessionStatusPending, false},
		{models.SessionStatusCompleted, models.SessionStatusInProgress, false},
		{models.SessionStatusCancelled, models.SessionStatusInProgress, false},
	}
	for _, tc := range cases {
		if got := transitionAllowed(sessionTransitions, tc.current, tc.next); got != tc.allowed {
			t.Errorf("session %s -> %s: got %v, want %v", tc.current, tc.next, got, tc.allowed)
		}
	}
}

func TestReservationTransitions(t *testing.T) {
	cases := []struct {
		current string
		next    string
		allowed bool
	}{
		{models.ReservationStatusBooked, models.ReservationStatusCompleted, true},
		{models.ReservationStatusBooked, models.ReservationStatusCancelled, true},
		{models.ReservationStatusCompleted, models.ReservationStatusBooked, false},
		{models.ReservationStatusCancelled, models.ReservationStatusCompleted, false},
	}
	for _, tc := range cases {
		if got := transitionAllowed(reservationTransitions, tc.current, tc.next); got != tc.allowed {
			t.Errorf("reservation %s -> %s: got %v, want %v", tc.current, tc.next, got, tc.allowed)
		}
	}
}

func TestPaymentTransitions(t *testing.T) {
	if !transitionAllowed(paymentTransitions, models.PaymentStatusPending, models.PaymentStatusPaid) {
		t.Error("pending -> paid should be allowed")
	}
	if transitionAllowed(paymentTransitions, models.PaymentStatusPaid, models.PaymentStatusPending) {
		t.Error("paid -> pending should be rejected")
	}
}
