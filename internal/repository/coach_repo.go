package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/fairwaylab/swingcoach/internal/models"
)

const coachColumns = `
	coach_id, usertype, coachname, email, password_hash, line_user_id,
	profile_picture_url, bio, birthday, sex,
	sns_handle_instagram, sns_handle_x, sns_handle_youtube, sns_handle_facebook, sns_handle_tiktok,
	hourly_rate, location_id, golf_exp, certification,
	setting_1, setting_2, setting_3, lesson_rank,
	created_at, updated_at
`

type CreateCoachInput struct {
	CoachName          string
	Email              string
	PasswordHash       string
	Birthday           *time.Time
	Sex                *string
	SNSHandleInstagram *string
	SNSHandleX         *string
	SNSHandleYoutube   *string
	SNSHandleFacebook  *string
	SNSHandleTiktok    *string
	LineUserID         *string
	ProfilePictureURL  *string
	Bio                *string
	HourlyRate         *int
	LocationID         *string
	GolfExp            *int
	Certification      *string
	LessonRank         *string
}

type UpdateCoachInput struct {
	CoachName          *string
	ProfilePictureURL  *string
	Bio                *string
	Sex                *string
	SNSHandleInstagram *string
	SNSHandleX         *string
	SNSHandleYoutube   *string
	SNSHandleFacebook  *string
	SNSHandleTiktok    *string
	HourlyRate         *int
	LocationID         *string
	GolfExp            *int
	Certification      *string
	Setting1           *string
	Setting2           *string
	Setting3           *string
	LessonRank         *string
}

type CoachRepository struct {
	db DBTX
}

func NewCoachRepository(db DBTX) *CoachRepository {
	return &CoachRepository{db: db}
}

func scanCoach(row interface{ Scan(dest ...any) error }) (*models.Coach, error) {
	var c models.Coach
	err := row.Scan(
		&c.CoachID, &c.UserType, &c.CoachName, &c.Email, &c.PasswordHash, &c.LineUserID,
		&c.ProfilePictureURL, &c.Bio, &c.Birthday, &c.Sex,
		&c.SNSHandleInstagram, &c.SNSHandleX, &c.SNSHandleYoutube, &c.SNSHandleFacebook, &c.SNSHandleTiktok,
		&c.HourlyRate, &c.LocationID, &c.GolfExp, &c.Certification,
		&c.Setting1, &c.Setting2, &c.Setting3, &c.LessonRank,
		&c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CoachRepository) Create(ctx context.Context, input CreateCoachInput) (*models.Coach, error) {
	query := `
		INSERT INTO coaches (
			coach_id, coachname, email, password_hash, birthday, sex,
			sns_handle_instagram, sns_handle_x, sns_handle_youtube, sns_handle_facebook, sns_handle_tiktok,
			line_user_id, profile_picture_url, bio, hourly_rate, location_id, golf_exp, certification, lesson_rank
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
		RETURNING ` + coachColumns
	return scanCoach(r.db.QueryRow(ctx, query,
		uuid.NewString(),
		input.CoachName,
		input.Email,
		input.PasswordHash,
		input.Birthday,
		input.Sex,
		input.SNSHandleInstagram,
		input.SNSHandleX,
		input.SNSHandleYoutube,
		input.SNSHandleFacebook,
		input.SNSHandleTiktok,
		input.LineUserID,
		input.ProfilePictureURL,
		input.Bio,
		input.HourlyRate,
		input.LocationID,
		input.GolfExp,
		input.Certification,
		input.LessonRank,
	))
}

func (r *CoachRepository) GetByID(ctx context.Context, coachID string) (*models.Coach, error) {
	query := `SELECT ` + coachColumns + ` FROM coaches WHERE coach_id = $1`
	return scanCoach(r.db.QueryRow(ctx, query, coachID))
}

func (r *CoachRepository) GetByEmail(ctx context.Context, email string) (*models.Coach, error) {
	query := `SELECT ` + coachColumns + ` FROM coaches WHERE email = $1`
	return scanCoach(r.db.QueryRow(ctx, query, email))
}

func (r *CoachRepository) List(ctx context.Context, skip, limit int) ([]models.Coach, error) {
	query := `SELECT ` + coachColumns + ` FROM coaches ORDER BY created_at DESC OFFSET $1 LIMIT $2`
	rows, err := r.db.Query(ctx, query, skip, ClampLimit(limit))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	coaches := make([]models.Coach, 0)
	for rows.Next() {
		c, err := scanCoach(rows)
		if err != nil {
			return nil, err
		}
		coaches = append(coaches, *c)
	}
	return coaches, rows.Err()
}

func (r *CoachRepository) UpdatePartial(ctx context.Context, coachID string, input UpdateCoachInput) (*models.Coach, error) {
	query := `
		UPDATE coaches
		SET coachname = COALESCE($1, coachname),
			profile_picture_url = COALESCE($2, profile_picture_url),
			bio = COALESCE($3, bio),
			sex = COALESCE($4, sex),
			sns_handle_instagram = COALESCE($5, sns_handle_instagram),
			sns_handle_x = COALESCE($6, sns_handle_x),
			sns_handle_youtube = COALESCE($7, sns_handle_youtube),
			sns_handle_facebook = COALESCE($8, sns_handle_facebook),
			sns_handle_tiktok = COALESCE($9, sns_handle_tiktok),
			hourly_rate = COALESCE($10, hourly_rate),
			location_id = COALESCE($11, location_id),
			golf_exp = COALESCE($12, golf_exp),
			certification = COALESCE($13, certification),
			setting_1 = COALESCE($14, setting_1),
			setting_2 = COALESCE($15, setting_2),
			setting_3 = COALESCE($16, setting_3),
			lesson_rank = COALESCE($17, lesson_rank),
			updated_at = NOW()
		WHERE coach_id = $18
		RETURNING ` + coachColumns
	return scanCoach(r.db.QueryRow(ctx, query,
		input.CoachName,
		input.ProfilePictureURL,
		input.Bio,
		input.Sex,
		input.SNSHandleInstagram,
		input.SNSHandleX,
		input.SNSHandleYoutube,
		input.SNSHandleFacebook,
		input.SNSHandleTiktok,
		input.HourlyRate,
		input.LocationID,
		input.GolfExp,
		input.Certification,
		input.Setting1,
		input.Setting2,
		input.Setting3,
		input.LessonRank,
		coachID,
	))
}
