package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fairwaylab/swingcoach/internal/models"
	"github.com/fairwaylab/swingcoach/internal/repository"
)

// FeedbackSectionSummary is one section row inside a feedback summary.
type FeedbackSectionSummary struct {
	SectionID      string   `json:"section_id"`
	TimeRange      string   `json:"time_range"`
	Tags           []string `json:"tags"`
	HasComment     bool     `json:"has_comment"`
	CommentSummary *string  `json:"comment_summary"`
	FullComment    *string  `json:"full_comment"`
}

// FeedbackSummary aggregates a video's coaching feedback for the review
// screens.
type FeedbackSummary struct {
	VideoID                 string                   `json:"video_id"`
	TotalSections           int                      `json:"total_sections"`
	SectionsWithComments    int                      `json:"sections_with_comments"`
	OverallFeedback         *string                  `json:"overall_feedback"`
	OverallFeedbackSummary  *string                  `json:"overall_feedback_summary"`
	NextTrainingMenu        *string                  `json:"next_training_menu"`
	NextTrainingMenuSummary *string                  `json:"next_training_menu_summary"`
	FeedbackCreatedAt       *time.Time               `json:"feedback_created_at"`
	FeedbackSections        []FeedbackSectionSummary `json:"feedback_sections"`
}

type UploadVideoInput struct {
	UserID      string
	Content     []byte
	Filename    string
	ContentType string
	ClubType    *string
	SwingForm   *string
	SwingNote   *string
}

// videoStore is the slice of the video repository the service calls outside
// of transactions; tests substitute a stub. Pin goes through the pool
// directly because it rebuilds the repository over a transaction.
type videoStore interface {
	Create(ctx context.Context, input repository.CreateVideoInput) (*models.Video, error)
	GetByID(ctx context.Context, videoID string) (*models.Video, error)
	Search(ctx context.Context, filter repository.VideoSearchFilter) ([]models.Video, error)
	Delete(ctx context.Context, videoID string) (bool, error)
	Unpin(ctx context.Context, videoID, userID string) (*models.Video, error)
	MarkReviewed(ctx context.Context, videoID string) (*models.Video, error)
}

type sectionGroupStore interface {
	FirstByVideo(ctx context.Context, videoID string) (*models.SectionGroup, error)
}

type sectionStore interface {
	ListByGroup(ctx context.Context, sectionGroupID string) ([]models.SwingSection, error)
}

// VideoService owns the video lifecycle: upload to storage plus metadata row,
// the single-pin invariant, the one-way review flag, and delete with blob
// cleanup.
type VideoService struct {
	pool     *pgxpool.Pool
	videos   videoStore
	groups   sectionGroupStore
	sections sectionStore
	storage  Storage
}

func NewVideoService(pool *pgxpool.Pool, videos videoStore, groups sectionGroupStore, sections sectionStore, storage Storage) *VideoService {
	return &VideoService{pool: pool, videos: videos, groups: groups, sections: sections, storage: storage}
}

func (s *VideoService) Upload(ctx context.Context, input UploadVideoInput) (*models.Video, error) {
	videoURL, err := s.storage.UploadFile(ctx, input.Content, input.Filename, input.ContentType)
	if err != nil {
		return nil, fmt.Errorf("upload video: %w", err)
	}

	video, err := s.videos.Create(ctx, repository.CreateVideoInput{
		UserID:    input.UserID,
		VideoURL:  videoURL,
		ClubType:  input.ClubType,
		SwingForm: input.SwingForm,
		SwingNote: input.SwingNote,
	})
	if err != nil {
		// Orphaned blobs are worse than an extra delete call.
		s.storage.DeleteFile(ctx, videoURL)
		return nil, err
	}
	return video, nil
}

// Pin makes videoID the user's only pinned video. Clearing the old pin and
// setting the new one happen in one transaction so the partial unique index
// never sees two pins.
func (s *VideoService) Pin(ctx context.Context, videoID, userID string) (*models.Video, error) {
	video, err := s.videos.GetByID(ctx, videoID)
	if err != nil {
		return nil, err
	}
	if video.UserID != userID {
		return nil, ErrForbidden
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	txVideos := repository.NewVideoRepository(tx)
	if err := txVideos.ClearPins(ctx, userID); err != nil {
		return nil, err
	}
	pinned, err := txVideos.SetPinned(ctx, videoID, userID)
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return pinned, nil
}

func (s *VideoService) Unpin(ctx context.Context, videoID, userID string) (*models.Video, error) {
	video, err := s.videos.Unpin(ctx, videoID, userID)
	if errors.Is(err, pgx.ErrNoRows) {
		// Distinguish "not yours" from "not found" for the handler.
		if _, getErr := s.videos.GetByID(ctx, videoID); getErr == nil {
			return nil, ErrForbidden
		}
		return nil, err
	}
	return video, err
}

// MarkReviewed flips the flag once and reports whether this call did the
// flip. Repeat calls keep the flag set.
func (s *VideoService) MarkReviewed(ctx context.Context, videoID string) (*models.Video, bool, error) {
	video, err := s.videos.MarkReviewed(ctx, videoID)
	if err == nil {
		return video, true, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, false, err
	}
	video, err = s.videos.GetByID(ctx, videoID)
	if err != nil {
		return nil, false, err
	}
	return video, false, nil
}

// Delete removes the row (section groups, sections and sessions cascade in
// the schema) and then best-effort cleans the video blob, thumbnail and
// markup sidecar. Blob failures are logged, not returned; the row is already
// gone.
func (s *VideoService) Delete(ctx context.Context, videoID, userID string) error {
	video, err := s.videos.GetByID(ctx, videoID)
	if err != nil {
		return err
	}
	if video.UserID != userID {
		return ErrForbidden
	}

	deleted, err := s.videos.Delete(ctx, videoID)
	if err != nil {
		return err
	}
	if !deleted {
		return pgx.ErrNoRows
	}

	if !s.storage.DeleteFile(ctx, video.VideoURL) {
		log.Printf("video %s: blob cleanup skipped for %s", videoID, video.VideoURL)
	}
	if video.ThumbnailURL != nil {
		s.storage.DeleteFile(ctx, *video.ThumbnailURL)
	}
	s.storage.DeleteFile(ctx, markupSidecarPath(videoID))
	return nil
}

func (s *VideoService) Search(ctx context.Context, filter repository.VideoSearchFilter) ([]models.Video, error) {
	return s.videos.Search(ctx, filter)
}

// GetWithSections returns the video plus its oldest section group and that
// group's sections. A video without feedback has a nil group and empty
// sections.
func (s *VideoService) GetWithSections(ctx context.Context, videoID string) (*models.VideoWithSections, error) {
	video, err := s.videos.GetByID(ctx, videoID)
	if err != nil {
		return nil, err
	}

	result := &models.VideoWithSections{Video: *video, Sections: []models.SwingSection{}}

	group, err := s.groups.FirstByVideo(ctx, videoID)
	if errors.Is(err, pgx.ErrNoRows) {
		return result, nil
	}
	if err != nil {
		return nil, err
	}
	result.SectionGroup = group

	sections, err := s.sections.ListByGroup(ctx, group.SectionGroupID)
	if err != nil {
		return nil, err
	}
	result.Sections = sections
	return result, nil
}

// FeedbackSummary flattens a video's feedback into counts plus per-section
// rows ordered by start time.
func (s *VideoService) FeedbackSummary(ctx context.Context, videoID string) (*FeedbackSummary, error) {
	withSections, err := s.GetWithSections(ctx, videoID)
	if err != nil {
		return nil, err
	}

	summary := &FeedbackSummary{
		VideoID:          videoID,
		FeedbackSections: []FeedbackSectionSummary{},
	}
	if group := withSections.SectionGroup; group != nil {
		summary.OverallFeedback = group.OverallFeedback
		summary.OverallFeedbackSummary = group.OverallFeedbackSummary
		summary.NextTrainingMenu = group.NextTrainingMenu
		summary.NextTrainingMenuSummary = group.NextTrainingMenuSummary
		summary.FeedbackCreatedAt = group.FeedbackCreatedAt
	}

	for _, section := range withSections.Sections {
		hasComment := section.CoachComment != nil && *section.CoachComment != ""
		if hasComment {
			summary.SectionsWithComments++
		}
		tags := section.Tags
		if tags == nil {
			tags = []string{}
		}
		summary.FeedbackSections = append(summary.FeedbackSections, FeedbackSectionSummary{
			SectionID:      section.SectionID,
			TimeRange:      fmt.Sprintf("%.1fs - %.1fs", section.StartSec, section.EndSec),
			Tags:           tags,
			HasComment:     hasComment,
			CommentSummary: section.CoachCommentSummary,
			FullComment:    section.CoachComment,
		})
	}
	summary.TotalSections = len(summary.FeedbackSections)
	return summary, nil
}

// markupSidecarPath is the JSON blob holding a video's markup drawings.
func markupSidecarPath(videoID string) string {
	return "markups/" + videoID + ".json"
}
