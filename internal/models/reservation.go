package models

import "time"

const (
	LocationTypeSimulationGolf = "simulation_golf"
	LocationTypeRealGolfCourse = "real_golf_course"

	ReservationStatusBooked    = "booked"
	ReservationStatusCompleted = "completed"
	ReservationStatusCancelled = "cancelled"

	PaymentStatusPending = "pending"
	PaymentStatusPaid    = "paid"
)

type CoachingReservation struct {
	SessionID     string    `json:"session_id"`
	UserID        string    `json:"user_id"`
	CoachID       string    `json:"coach_id"`
	SessionDate   time.Time `json:"session_date"`
	SessionTime   time.Time `json:"session_time"`
	LocationType  string    `json:"location_type"`
	LocationID    string    `json:"location_id"`
	Status        string    `json:"status"`
	Price         float64   `json:"price"`
	PaymentStatus string    `json:"payment_status"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
