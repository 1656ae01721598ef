package models

import "time"

type Coach struct {
	CoachID           string     `json:"coach_id"`
	UserType          string     `json:"usertype"`
	CoachName         string     `json:"coachname"`
	Email             string     `json:"email"`
	PasswordHash      string     `json:"-"`
	LineUserID        *string    `json:"line_user_id"`
	ProfilePictureURL *string    `json:"profile_picture_url"`
	Bio               *string    `json:"bio"`
	Birthday          *time.Time `json:"birthday"`
	Sex               *string    `json:"sex"`
	SNSHandleInstagram *string   `json:"sns_handle_instagram"`
	SNSHandleX         *string   `json:"sns_handle_x"`
	SNSHandleYoutube   *string   `json:"sns_handle_youtube"`
	SNSHandleFacebook  *string   `json:"sns_handle_facebook"`
	SNSHandleTiktok    *string   `json:"sns_handle_tiktok"`
	HourlyRate        *int       `json:"hourly_rate"`
	LocationID        *string    `json:"location_id"`
	GolfExp           *int       `json:"golf_exp"`
	Certification     *string    `json:"certification"`
	Setting1          *string    `json:"setting_1"`
	Setting2          *string    `json:"setting_2"`
	Setting3          *string    `json:"setting_3"`
	LessonRank        *string    `json:"lesson_rank"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}
