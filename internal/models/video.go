package models

import "time"

type Video struct {
	VideoID      string    `json:"video_id"`
	UserID       string    `json:"user_id"`
	VideoURL     string    `json:"video_url"`
	ThumbnailURL *string   `json:"thumbnail_url"`
	ClubType     *string   `json:"club_type"`
	SwingForm    *string   `json:"swing_form"`
	SwingNote    *string   `json:"swing_note"`
	IsPinned     bool      `json:"is_pinned"`
	IsReviewed   bool      `json:"is_reviewed"`
	UploadDate   time.Time `json:"upload_date"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// VideoWithSections bundles a video with its first section group and that
// group's sections, the shape the review screen consumes.
type VideoWithSections struct {
	Video
	SectionGroup *SectionGroup  `json:"section_group"`
	Sections     []SwingSection `json:"sections"`
}
