package services

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"

	"github.com/fairwaylab/swingcoach/internal/models"
	"github.com/fairwaylab/swingcoach/internal/repository"
)

type stubVideoStore struct {
	video       *models.Video
	reviewedErr error
	deleted     []string
	unpinErr    error
	createErr   error
	created     *repository.CreateVideoInput
}

func (s *stubVideoStore) Create(_ context.Context, input repository.CreateVideoInput) (*models.Video, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	s.created = &input
	return &models.Video{VideoID: "v1", UserID: input.UserID, VideoURL: input.VideoURL}, nil
}

func (s *stubVideoStore) GetByID(_ context.Context, _ string) (*models.Video, error) {
	if s.video == nil {
		return nil, pgx.ErrNoRows
	}
	return s.video, nil
}

func (s *stubVideoStore) Search(_ context.Context, _ repository.VideoSearchFilter) ([]models.Video, error) {
	return nil, nil
}

func (s *stubVideoStore) Delete(_ context.Context, videoID string) (bool, error) {
	s.deleted = append(s.deleted, videoID)
	return true, nil
}

func (s *stubVideoStore) Unpin(_ context.Context, _, _ string) (*models.Video, error) {
	if s.unpinErr != nil {
		return nil, s.unpinErr
	}
	return s.video, nil
}

func (s *stubVideoStore) MarkReviewed(_ context.Context, _ string) (*models.Video, error) {
	if s.reviewedErr != nil {
		return nil, s.reviewedErr
	}
	return s.video, nil
}

type stubGroupStore struct {
	group *models.SectionGroup
}

func (s *stubGroupStore) FirstByVideo(_ context.Context, _ string) (*models.SectionGroup, error) {
	if s.group == nil {
		return nil, pgx.ErrNoRows
	}
	return s.group, nil
}

type stubSectionStore struct {
	sections []models.SwingSection
}

func (s *stubSectionStore) ListByGroup(_ context.Context, _ string) ([]models.SwingSection, error) {
	return s.sections, nil
}

func strPtr(v string) *string { return &v }

func TestFeedbackSummaryCounts(t *testing.T) {
	feedback := "nice tempo overall"
	videos := &stubVideoStore{video: &models.Video{VideoID: "v1", UserID: "u1"}}
	groups := &stubGroupStore{group: &models.SectionGroup{
		SectionGroupID:  "g1",
		VideoID:         "v1",
		OverallFeedback: &feedback,
	}}
	sections := &stubSectionStore{sections: []models.SwingSection{
		{SectionID: "s1", StartSec: 0, EndSec: 1.5, Tags: []string{"address"},
			CoachComment: strPtr("grip is too tight"), CoachCommentSummary: strPtr("grip too tight")},
		{SectionID: "s2", StartSec: 1.5, EndSec: 3.0, Tags: []string{"impact"}},
	}}
	svc := NewVideoService(nil, videos, groups, sections, nil)

	summary, err := svc.FeedbackSummary(context.Background(), "v1")
	if err != nil {
		t.Fatalf("FeedbackSummary: %v", err)
	}
	if summary.TotalSections != 2 {
		t.Errorf("expected 2 total sections, got %d", summary.TotalSections)
	}
	if summary.SectionsWithComments != 1 {
		t.Errorf("expected 1 commented section, got %d", summary.SectionsWithComments)
	}
	if summary.OverallFeedback == nil || *summary.OverallFeedback != feedback {
		t.Error("overall feedback missing from summary")
	}

	first := summary.FeedbackSections[0]
	if first.TimeRange != "0.0s - 1.5s" {
		t.Errorf("unexpected time range %q", first.TimeRange)
	}
	if !first.HasComment || first.FullComment == nil {
		t.Error("first section should carry its comment")
	}
	if second := summary.FeedbackSections[1]; second.HasComment {
		t.Error("second section has no comment")
	}
}

func TestFeedbackSummaryWithoutGroup(t *testing.T) {
	videos := &stubVideoStore{video: &models.Video{VideoID: "v1", UserID: "u1"}}
	svc := NewVideoService(nil, videos, &stubGroupStore{}, &stubSectionStore{}, nil)

	summary, err := svc.FeedbackSummary(context.Background(), "v1")
	if err != nil {
		t.Fatalf("FeedbackSummary: %v", err)
	}
	if summary.TotalSections != 0 || len(summary.FeedbackSections) != 0 {
		t.Errorf("video without feedback should summarize empty, got %+v", summary)
	}
}

func TestGetWithSectionsNoGroup(t *testing.T) {
	videos := &stubVideoStore{video: &models.Video{VideoID: "v1", UserID: "u1"}}
	svc := NewVideoService(nil, videos, &stubGroupStore{}, &stubSectionStore{}, nil)

	result, err := svc.GetWithSections(context.Background(), "v1")
	if err != nil {
		t.Fatalf("GetWithSections: %v", err)
	}
	if result.SectionGroup != nil {
		t.Error("expected nil group for unannotated video")
	}
	if result.Sections == nil || len(result.Sections) != 0 {
		t.Error("sections should be an empty slice, not nil")
	}
}

func TestDeleteRejectsOtherOwner(t *testing.T) {
	videos := &stubVideoStore{video: &models.Video{VideoID: "v1", UserID: "owner"}}
	svc := NewVideoService(nil, videos, &stubGroupStore{}, &stubSectionStore{}, nil)

	if err := svc.Delete(context.Background(), "v1", "intruder"); !errors.Is(err, ErrForbidden) {
		t.Errorf("expected ErrForbidden, got %v", err)
	}
	if len(videos.deleted) != 0 {
		t.Error("row must not be deleted for a non-owner")
	}
}

func TestDeleteCleansBlobs(t *testing.T) {
	storage := newTestStorage(t)
	ctx := context.Background()

	videoURL, err := storage.UploadFileExact(ctx, []byte("clip"), "clips/v1.mp4", "video/mp4")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := storage.SaveJSON(ctx, "markups/v1.json", map[string]any{"s": []any{}}); err != nil {
		t.Fatal(err)
	}

	videos := &stubVideoStore{video: &models.Video{VideoID: "v1", UserID: "u1", VideoURL: videoURL}}
	svc := NewVideoService(nil, videos, &stubGroupStore{}, &stubSectionStore{}, storage)

	if err := svc.Delete(ctx, "v1", "u1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if len(videos.deleted) != 1 {
		t.Fatal("row was not deleted")
	}
	if _, _, err := storage.Download(ctx, videoURL); err == nil {
		t.Error("video blob should be removed")
	}
	if _, ok := storage.GetJSON(ctx, "markups/v1.json"); ok {
		t.Error("markup sidecar should be removed")
	}
}

func TestMarkReviewedIsOneWay(t *testing.T) {
	reviewed := &models.Video{VideoID: "v1", UserID: "u1", IsReviewed: true}
	videos := &stubVideoStore{video: reviewed}
	svc := NewVideoService(nil, videos, &stubGroupStore{}, &stubSectionStore{}, nil)

	video, changed, err := svc.MarkReviewed(context.Background(), "v1")
	if err != nil {
		t.Fatalf("MarkReviewed: %v", err)
	}
	if !changed {
		t.Error("first flip should report changed")
	}
	if !video.IsReviewed {
		t.Error("video should be reviewed")
	}

	// Conditional update finds no row once the flag is set.
	videos.reviewedErr = pgx.ErrNoRows
	video, changed, err = svc.MarkReviewed(context.Background(), "v1")
	if err != nil {
		t.Fatalf("second MarkReviewed: %v", err)
	}
	if changed {
		t.Error("repeat call must report already reviewed")
	}
	if !video.IsReviewed {
		t.Error("flag must remain set")
	}
}

func TestUnpinDistinguishesForbidden(t *testing.T) {
	videos := &stubVideoStore{
		video:    &models.Video{VideoID: "v1", UserID: "owner"},
		unpinErr: pgx.ErrNoRows,
	}
	svc := NewVideoService(nil, videos, &stubGroupStore{}, &stubSectionStore{}, nil)

	if _, err := svc.Unpin(context.Background(), "v1", "intruder"); !errors.Is(err, ErrForbidden) {
		t.Errorf("expected ErrForbidden for existing video owned by someone else, got %v", err)
	}
}

func TestUploadCleansBlobOnRowFailure(t *testing.T) {
	storage := newTestStorage(t)
	videos := &stubVideoStore{createErr: errors.New("insert failed")}
	svc := NewVideoService(nil, videos, &stubGroupStore{}, &stubSectionStore{}, storage)

	_, err := svc.Upload(context.Background(), UploadVideoInput{
		UserID:   "u1",
		Content:  []byte("clip"),
		Filename: "swing.mp4",
	})
	if err == nil {
		t.Fatal("expected error from failed insert")
	}

	files, err := storage.ListFiles(context.Background(), "")
	if err != nil {
		t.Fatal(err)
	}
	if len(files) != 0 {
		t.Errorf("orphaned blob left behind: %v", files)
	}
}
