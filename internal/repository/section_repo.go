package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/fairwaylab/swingcoach/internal/models"
)

const sectionGroupColumns = `
	section_group_id, video_id, session_id,
	overall_feedback, overall_feedback_summary,
	next_training_menu, next_training_menu_summary,
	feedback_created_at, created_at
`

const swingSectionColumns = `
	section_id, section_group_id, start_sec, end_sec, image_url,
	tags, markup_json, coach_comment, coach_comment_summary, created_at
`

type CreateSectionGroupInput struct {
	VideoID   string
	SessionID *string
}

type CreateSwingSectionInput struct {
	SectionGroupID string
	StartSec       float64
	EndSec         float64
	ImageURL       *string
	Tags           []string
	Markup         []models.MarkupObject
}

type UpdateSwingSectionInput struct {
	StartSec *float64
	EndSec   *float64
	ImageURL *string
	Tags     []string
	Markup   []models.MarkupObject
}

type SectionGroupRepository struct {
	db DBTX
}

func NewSectionGroupRepository(db DBTX) *SectionGroupRepository {
	return &SectionGroupRepository{db: db}
}

func scanSectionGroup(row interface{ Scan(dest ...any) error }) (*models.SectionGroup, error) {
	var g models.SectionGroup
	err := row.Scan(
		&g.SectionGroupID, &g.VideoID, &g.SessionID,
		&g.OverallFeedback, &g.OverallFeedbackSummary,
		&g.NextTrainingMenu, &g.NextTrainingMenuSummary,
		&g.FeedbackCreatedAt, &g.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &g, nil
}

func (r *SectionGroupRepository) Create(ctx context.Context, input CreateSectionGroupInput) (*models.SectionGroup, error) {
	query := `
		INSERT INTO section_groups (section_group_id, video_id, session_id)
		VALUES ($1, $2, $3)
		RETURNING ` + sectionGroupColumns
	return scanSectionGroup(r.db.QueryRow(ctx, query, uuid.NewString(), input.VideoID, input.SessionID))
}

func (r *SectionGroupRepository) GetByID(ctx context.Context, sectionGroupID string) (*models.SectionGroup, error) {
	query := `SELECT ` + sectionGroupColumns + ` FROM section_groups WHERE section_group_id = $1`
	return scanSectionGroup(r.db.QueryRow(ctx, query, sectionGroupID))
}

// FirstByVideo returns the oldest group for a video, the one the review
// screens treat as canonical.
func (r *SectionGroupRepository) FirstByVideo(ctx context.Context, videoID string) (*models.SectionGroup, error) {
	query := `SELECT ` + sectionGroupColumns + ` FROM section_groups WHERE video_id = $1 ORDER BY created_at ASC LIMIT 1`
	return scanSectionGroup(r.db.QueryRow(ctx, query, videoID))
}

func (r *SectionGroupRepository) SetOverallFeedback(ctx context.Context, sectionGroupID, feedback, summary string) (*models.SectionGroup, error) {
	query := `
		UPDATE section_groups
		SET overall_feedback = $2, overall_feedback_summary = $3, feedback_created_at = NOW()
		WHERE section_group_id = $1
		RETURNING ` + sectionGroupColumns
	return scanSectionGroup(r.db.QueryRow(ctx, query, sectionGroupID, feedback, summary))
}

func (r *SectionGroupRepository) SetNextTrainingMenu(ctx context.Context, sectionGroupID, menu, summary string) (*models.SectionGroup, error) {
	query := `
		UPDATE section_groups
		SET next_training_menu = $2, next_training_menu_summary = $3, feedback_created_at = NOW()
		WHERE section_group_id = $1
		RETURNING ` + sectionGroupColumns
	return scanSectionGroup(r.db.QueryRow(ctx, query, sectionGroupID, menu, summary))
}

type SwingSectionRepository struct {
	db DBTX
}

func NewSwingSectionRepository(db DBTX) *SwingSectionRepository {
	return &SwingSectionRepository{db: db}
}

func scanSwingSection(row interface{ Scan(dest ...any) error }) (*models.SwingSection, error) {
	var s models.SwingSection
	err := row.Scan(
		&s.SectionID, &s.SectionGroupID, &s.StartSec, &s.EndSec, &s.ImageURL,
		&s.Tags, &s.Markup, &s.CoachComment, &s.CoachCommentSummary, &s.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *SwingSectionRepository) Create(ctx context.Context, input CreateSwingSectionInput) (*models.SwingSection, error) {
	query := `
		INSERT INTO swing_sections (section_id, section_group_id, start_sec, end_sec, image_url, tags, markup_json)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + swingSectionColumns
	return scanSwingSection(r.db.QueryRow(ctx, query,
		uuid.NewString(),
		input.SectionGroupID,
		input.StartSec,
		input.EndSec,
		input.ImageURL,
		input.Tags,
		input.Markup,
	))
}

func (r *SwingSectionRepository) GetByID(ctx context.Context, sectionID string) (*models.SwingSection, error) {
	query := `SELECT ` + swingSectionColumns + ` FROM swing_sections WHERE section_id = $1`
	return scanSwingSection(r.db.QueryRow(ctx, query, sectionID))
}

// ListByGroup orders by start time ascending, the natural order for phases.
func (r *SwingSectionRepository) ListByGroup(ctx context.Context, sectionGroupID string) ([]models.SwingSection, error) {
	query := `SELECT ` + swingSectionColumns + ` FROM swing_sections WHERE section_group_id = $1 ORDER BY start_sec ASC`
	rows, err := r.db.Query(ctx, query, sectionGroupID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sections := make([]models.SwingSection, 0)
	for rows.Next() {
		s, err := scanSwingSection(rows)
		if err != nil {
			return nil, err
		}
		sections = append(sections, *s)
	}
	return sections, rows.Err()
}

func (r *SwingSectionRepository) UpdatePartial(ctx context.Context, sectionID string, input UpdateSwingSectionInput) (*models.SwingSection, error) {
	query := `
		UPDATE swing_sections
		SET start_sec = COALESCE($1, start_sec),
			end_sec = COALESCE($2, end_sec),
			image_url = COALESCE($3, image_url),
			tags = COALESCE($4, tags),
			markup_json = COALESCE($5, markup_json)
		WHERE section_id = $6
		RETURNING ` + swingSectionColumns
	var tags any
	if input.Tags != nil {
		tags = input.Tags
	}
	var markup any
	if input.Markup != nil {
		markup = input.Markup
	}
	return scanSwingSection(r.db.QueryRow(ctx, query,
		input.StartSec,
		input.EndSec,
		input.ImageURL,
		tags,
		markup,
		sectionID,
	))
}

func (r *SwingSectionRepository) SetCoachComment(ctx context.Context, sectionID, comment, summary string) (*models.SwingSection, error) {
	query := `
		UPDATE swing_sections
		SET coach_comment = $2, coach_comment_summary = $3
		WHERE section_id = $1
		RETURNING ` + swingSectionColumns
	return scanSwingSection(r.db.QueryRow(ctx, query, sectionID, comment, summary))
}

func (r *SwingSectionRepository) Delete(ctx context.Context, sectionID string) (bool, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM swing_sections WHERE section_id = $1`, sectionID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
