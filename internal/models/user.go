package models

import "time"

const (
	UserTypeUser  = "user"
	UserTypeCoach = "coach"
	UserTypeGuest = "guest"
)

type User struct {
	UserID            string     `json:"user_id"`
	UserType          string     `json:"usertype"`
	Username          string     `json:"username"`
	Email             string     `json:"email"`
	PasswordHash      string     `json:"-"`
	Gender            *string    `json:"gender"`
	LineUserID        *string    `json:"line_user_id"`
	ProfilePictureURL *string    `json:"profile_picture_url"`
	Bio               *string    `json:"bio"`
	Birthday          *time.Time `json:"birthday"`
	GolfScoreAve      *int       `json:"golf_score_ave"`
	GolfExp           *int       `json:"golf_exp"`
	ZipCode           *string    `json:"zip_code"`
	State             *string    `json:"state"`
	Address1          *string    `json:"address1"`
	Address2          *string    `json:"address2"`
	SportExp          *string    `json:"sport_exp"`
	Industry          *string    `json:"industry"`
	JobTitle          *string    `json:"job_title"`
	Position          *string    `json:"position"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}
