package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/fairwaylab/swingcoach/internal/models"
)

const videoColumns = `
	video_id, user_id, video_url, thumbnail_url, club_type, swing_form, swing_note,
	is_pinned, is_reviewed, upload_date, created_at, updated_at
`

type CreateVideoInput struct {
	UserID       string
	VideoURL     string
	ThumbnailURL *string
	ClubType     *string
	SwingForm    *string
	SwingNote    *string
}

type UpdateVideoInput struct {
	ThumbnailURL *string
	ClubType     *string
	SwingForm    *string
	SwingNote    *string
}

// VideoSearchFilter narrows a user's videos; nil fields are not applied.
type VideoSearchFilter struct {
	UserID      string
	ClubType    *string
	SwingForm   *string
	HasFeedback *bool
}

type VideoRepository struct {
	db DBTX
}

func NewVideoRepository(db DBTX) *VideoRepository {
	return &VideoRepository{db: db}
}

func scanVideo(row interface{ Scan(dest ...any) error }) (*models.Video, error) {
	var v models.Video
	err := row.Scan(
		&v.VideoID, &v.UserID, &v.VideoURL, &v.ThumbnailURL, &v.ClubType, &v.SwingForm, &v.SwingNote,
		&v.IsPinned, &v.IsReviewed, &v.UploadDate, &v.CreatedAt, &v.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *VideoRepository) collect(ctx context.Context, query string, args ...any) ([]models.Video, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	videos := make([]models.Video, 0)
	for rows.Next() {
		v, err := scanVideo(rows)
		if err != nil {
			return nil, err
		}
		videos = append(videos, *v)
	}
	return videos, rows.Err()
}

func (r *VideoRepository) Create(ctx context.Context, input CreateVideoInput) (*models.Video, error) {
	query := `
		INSERT INTO videos (video_id, user_id, video_url, thumbnail_url, club_type, swing_form, swing_note)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + videoColumns
	return scanVideo(r.db.QueryRow(ctx, query,
		uuid.NewString(),
		input.UserID,
		input.VideoURL,
		input.ThumbnailURL,
		input.ClubType,
		input.SwingForm,
		input.SwingNote,
	))
}

func (r *VideoRepository) GetByID(ctx context.Context, videoID string) (*models.Video, error) {
	query := `SELECT ` + videoColumns + ` FROM videos WHERE video_id = $1`
	return scanVideo(r.db.QueryRow(ctx, query, videoID))
}

func (r *VideoRepository) ListByUser(ctx context.Context, userID string, skip, limit int) ([]models.Video, error) {
	query := `SELECT ` + videoColumns + ` FROM videos WHERE user_id = $1 ORDER BY upload_date DESC OFFSET $2 LIMIT $3`
	return r.collect(ctx, query, userID, skip, ClampLimit(limit))
}

func (r *VideoRepository) ListAll(ctx context.Context, skip, limit int) ([]models.Video, error) {
	query := `SELECT ` + videoColumns + ` FROM videos ORDER BY upload_date DESC OFFSET $1 LIMIT $2`
	return r.collect(ctx, query, skip, ClampLimit(limit))
}

func (r *VideoRepository) Search(ctx context.Context, filter VideoSearchFilter) ([]models.Video, error) {
	args := []any{filter.UserID}
	whereParts := []string{"user_id = $1"}

	if filter.ClubType != nil {
		args = append(args, *filter.ClubType)
		whereParts = append(whereParts, fmt.Sprintf("club_type = $%d", len(args)))
	}
	if filter.SwingForm != nil {
		args = append(args, *filter.SwingForm)
		whereParts = append(whereParts, fmt.Sprintf("swing_form = $%d", len(args)))
	}
	if filter.HasFeedback != nil {
		clause := "EXISTS (SELECT 1 FROM section_groups sg WHERE sg.video_id = videos.video_id)"
		if !*filter.HasFeedback {
			clause = "NOT " + clause
		}
		whereParts = append(whereParts, clause)
	}

	query := fmt.Sprintf(`SELECT %s FROM videos WHERE %s ORDER BY upload_date DESC`,
		videoColumns, strings.Join(whereParts, " AND "))
	return r.collect(ctx, query, args...)
}

func (r *VideoRepository) UpdatePartial(ctx context.Context, videoID string, input UpdateVideoInput) (*models.Video, error) {
	query := `
		UPDATE videos
		SET thumbnail_url = COALESCE($1, thumbnail_url),
			club_type = COALESCE($2, club_type),
			swing_form = COALESCE($3, swing_form),
			swing_note = COALESCE($4, swing_note),
			updated_at = NOW()
		WHERE video_id = $5
		RETURNING ` + videoColumns
	return scanVideo(r.db.QueryRow(ctx, query,
		input.ThumbnailURL,
		input.ClubType,
		input.SwingForm,
		input.SwingNote,
		videoID,
	))
}

func (r *VideoRepository) Delete(ctx context.Context, videoID string) (bool, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM videos WHERE video_id = $1`, videoID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// ClearPins drops the pin flag on every video the user owns. Paired with
// SetPinned inside one transaction by the video service.
func (r *VideoRepository) ClearPins(ctx context.Context, userID string) error {
	_, err := r.db.Exec(ctx, `UPDATE videos SET is_pinned = FALSE, updated_at = NOW() WHERE user_id = $1 AND is_pinned`, userID)
	return err
}

func (r *VideoRepository) SetPinned(ctx context.Context, videoID, userID string) (*models.Video, error) {
	query := `
		UPDATE videos
		SET is_pinned = TRUE, updated_at = NOW()
		WHERE video_id = $1 AND user_id = $2
		RETURNING ` + videoColumns
	return scanVideo(r.db.QueryRow(ctx, query, videoID, userID))
}

func (r *VideoRepository) Unpin(ctx context.Context, videoID, userID string) (*models.Video, error) {
	query := `
		UPDATE videos
		SET is_pinned = FALSE, updated_at = NOW()
		WHERE video_id = $1 AND user_id = $2
		RETURNING ` + videoColumns
	return scanVideo(r.db.QueryRow(ctx, query, videoID, userID))
}

// MarkReviewed flips the review flag exactly once; a second call finds no row.
func (r *VideoRepository) MarkReviewed(ctx context.Context, videoID string) (*models.Video, error) {
	query := `
		UPDATE videos
		SET is_reviewed = TRUE, updated_at = NOW()
		WHERE video_id = $1 AND NOT is_reviewed
		RETURNING ` + videoColumns
	return scanVideo(r.db.QueryRow(ctx, query, videoID))
}
