package models

import "time"

// SwingPhaseTags is the closed 12-phase vocabulary a section may be tagged with.
var SwingPhaseTags = []string{
	"address",
	"takeaway",
	"halfway_back",
	"backswing",
	"top",
	"transition",
	"downswing",
	"impact",
	"follow_through",
	"finish_1",
	"finish_2",
	"other",
}

func IsSwingPhaseTag(tag string) bool {
	for _, t := range SwingPhaseTags {
		if t == tag {
			return true
		}
	}
	return false
}

// MarkupObject is a client-drawn annotation overlaid on a section image.
type MarkupObject struct {
	Type        string    `json:"type" validate:"required"`
	Coordinates []float64 `json:"coordinates" validate:"required,min=2"`
	Color       string    `json:"color" validate:"required"`
	Size        *float64  `json:"size,omitempty"`
}

// SectionGroup collects the time-coded swing phases analyzed for one video.
// SessionID is an advisory reference; the row it names may not exist.
type SectionGroup struct {
	SectionGroupID          string     `json:"section_group_id"`
	VideoID                 string     `json:"video_id"`
	SessionID               *string    `json:"session_id"`
	OverallFeedback         *string    `json:"overall_feedback"`
	OverallFeedbackSummary  *string    `json:"overall_feedback_summary"`
	NextTrainingMenu        *string    `json:"next_training_menu"`
	NextTrainingMenuSummary *string    `json:"next_training_menu_summary"`
	FeedbackCreatedAt       *time.Time `json:"feedback_created_at"`
	CreatedAt               time.Time  `json:"created_at"`
}

type SwingSection struct {
	SectionID           string         `json:"section_id"`
	SectionGroupID      string         `json:"section_group_id"`
	StartSec            float64        `json:"start_sec"`
	EndSec              float64        `json:"end_sec"`
	ImageURL            *string        `json:"image_url"`
	Tags                []string       `json:"tags"`
	Markup              []MarkupObject `json:"markup_json"`
	CoachComment        *string        `json:"coach_comment"`
	CoachCommentSummary *string        `json:"coach_comment_summary"`
	CreatedAt           time.Time      `json:"created_at"`
}
