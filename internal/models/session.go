package models

import "time"

// CoachingSession is a request to have one uploaded video reviewed by a coach.
// Distinct from CoachingReservation, which books a live appointment.
type CoachingSession struct {
	SessionID   string     `json:"session_id"`
	UserID      string     `json:"user_id"`
	CoachID     string     `json:"coach_id"`
	VideoID     string     `json:"video_id"`
	Status      string     `json:"status"`
	RequestedAt time.Time  `json:"requested_at"`
	CompletedAt *time.Time `json:"completed_at"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

const (
	SessionStatusPending    = "pending"
	SessionStatusInProgress = "in_progress"
	SessionStatusCompleted  = "completed"
	SessionStatusCancelled  = "cancelled"
)
