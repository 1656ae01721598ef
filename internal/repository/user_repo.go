package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/fairwaylab/swingcoach/internal/models"
)

const userColumns = `
	user_id, usertype, username, email, password_hash, gender, line_user_id,
	profile_picture_url, bio, birthday, golf_score_ave, golf_exp,
	zip_code, state, address1, address2, sport_exp, industry, job_title, position,
	created_at, updated_at
`

type CreateUserInput struct {
	UserType     string
	Username     string
	Email        string
	PasswordHash string
	Gender       *string
	Birthday     *time.Time
	LineUserID   *string
}

// UpdateUserInput is the explicit patch structure for a user profile; only
// non-nil fields are applied.
type UpdateUserInput struct {
	Username          *string
	Gender            *string
	ProfilePictureURL *string
	Bio               *string
	Birthday          *time.Time
	GolfScoreAve      *int
	GolfExp           *int
	ZipCode           *string
	State             *string
	Address1          *string
	Address2          *string
	SportExp          *string
	Industry          *string
	JobTitle          *string
	Position          *string
}

type UserRepository struct {
	db DBTX
}

func NewUserRepository(db DBTX) *UserRepository {
	return &UserRepository{db: db}
}

func scanUser(row interface{ Scan(dest ...any) error }) (*models.User, error) {
	var u models.User
	err := row.Scan(
		&u.UserID, &u.UserType, &u.Username, &u.Email, &u.PasswordHash, &u.Gender, &u.LineUserID,
		&u.ProfilePictureURL, &u.Bio, &u.Birthday, &u.GolfScoreAve, &u.GolfExp,
		&u.ZipCode, &u.State, &u.Address1, &u.Address2, &u.SportExp, &u.Industry, &u.JobTitle, &u.Position,
		&u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) Create(ctx context.Context, input CreateUserInput) (*models.User, error) {
	query := `
		INSERT INTO users (user_id, usertype, username, email, password_hash, gender, birthday, line_user_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + userColumns
	return scanUser(r.db.QueryRow(ctx, query,
		uuid.NewString(),
		input.UserType,
		input.Username,
		input.Email,
		input.PasswordHash,
		input.Gender,
		input.Birthday,
		input.LineUserID,
	))
}

func (r *UserRepository) GetByID(ctx context.Context, userID string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE user_id = $1`
	return scanUser(r.db.QueryRow(ctx, query, userID))
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	return scanUser(r.db.QueryRow(ctx, query, email))
}

func (r *UserRepository) GetByLineUserID(ctx context.Context, lineUserID string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE line_user_id = $1`
	return scanUser(r.db.QueryRow(ctx, query, lineUserID))
}

func (r *UserRepository) List(ctx context.Context, skip, limit int) ([]models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users ORDER BY created_at DESC OFFSET $1 LIMIT $2`
	rows, err := r.db.Query(ctx, query, skip, ClampLimit(limit))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := make([]models.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *u)
	}
	return users, rows.Err()
}

func (r *UserRepository) UpdatePartial(ctx context.Context, userID string, input UpdateUserInput) (*models.User, error) {
	query := `
		UPDATE users
		SET username = COALESCE($1, username),
			gender = COALESCE($2, gender),
			profile_picture_url = COALESCE($3, profile_picture_url),
			bio = COALESCE($4, bio),
			birthday = COALESCE($5, birthday),
			golf_score_ave = COALESCE($6, golf_score_ave),
			golf_exp = COALESCE($7, golf_exp),
			zip_code = COALESCE($8, zip_code),
			state = COALESCE($9, state),
			address1 = COALESCE($10, address1),
			address2 = COALESCE($11, address2),
			sport_exp = COALESCE($12, sport_exp),
			industry = COALESCE($13, industry),
			job_title = COALESCE($14, job_title),
			position = COALESCE($15, position),
			updated_at = NOW()
		WHERE user_id = $16
		RETURNING ` + userColumns
	return scanUser(r.db.QueryRow(ctx, query,
		input.Username,
		input.Gender,
		input.ProfilePictureURL,
		input.Bio,
		input.Birthday,
		input.GolfScoreAve,
		input.GolfExp,
		input.ZipCode,
		input.State,
		input.Address1,
		input.Address2,
		input.SportExp,
		input.Industry,
		input.JobTitle,
		input.Position,
		userID,
	))
}

// EnsureLineGuest provisions the guest row for a LINE identity with a single
// conditional insert, so concurrent webhook deliveries for the same identity
// cannot create duplicate rows. The no-op DO UPDATE makes the statement
// return the surviving row either way.
func (r *UserRepository) EnsureLineGuest(ctx context.Context, lineUserID, username, email, passwordHash string) (*models.User, error) {
	query := `
		INSERT INTO users (user_id, usertype, username, email, password_hash, bio, line_user_id)
		VALUES ($1, 'guest', $2, $3, $4, 'Created via LINE webhook', $5)
		ON CONFLICT (line_user_id) WHERE line_user_id IS NOT NULL
		DO UPDATE SET line_user_id = EXCLUDED.line_user_id
		RETURNING ` + userColumns
	return scanUser(r.db.QueryRow(ctx, query, uuid.NewString(), username, email, passwordHash, lineUserID))
}

// EmailExistsExcluding reports whether another user row already owns the
// email. Used when a LINE guest is upgraded to a full registration.
func (r *UserRepository) EmailExistsExcluding(ctx context.Context, email, excludeUserID string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM users WHERE email = $1 AND user_id <> $2)`
	var exists bool
	if err := r.db.QueryRow(ctx, query, email, excludeUserID).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

// UpgradeGuest turns a webhook-provisioned guest row into a registered user.
func (r *UserRepository) UpgradeGuest(ctx context.Context, userID string, input CreateUserInput) (*models.User, error) {
	query := `
		UPDATE users
		SET usertype = 'user',
			username = $1,
			email = $2,
			password_hash = $3,
			gender = COALESCE($4, gender),
			birthday = COALESCE($5, birthday),
			updated_at = NOW()
		WHERE user_id = $6
		RETURNING ` + userColumns
	return scanUser(r.db.QueryRow(ctx, query,
		input.Username,
		input.Email,
		input.PasswordHash,
		input.Gender,
		input.Birthday,
		userID,
	))
}
