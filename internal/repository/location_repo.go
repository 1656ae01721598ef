package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/fairwaylab/swingcoach/internal/models"
)

const locationColumns = `
	location_id, location_name, state, address1, address2, zipcode,
	phone_number, website_url, opening_hours, capacity, description,
	image_url_main, image_url_sub1, image_url_sub2, image_url_sub3, image_url_sub4,
	created_at, updated_at
`

type CreateLocationInput struct {
	LocationName string
	State        string
	Address1     string
	Address2     *string
	Zipcode      *string
	PhoneNumber  *string
	WebsiteURL   *string
	OpeningHours *string
	Capacity     *int
	Description  *string
	ImageURLMain *string
	ImageURLSub1 *string
	ImageURLSub2 *string
	ImageURLSub3 *string
	ImageURLSub4 *string
}

type UpdateLocationInput struct {
	LocationName *string
	State        *string
	Address1     *string
	Address2     *string
	Zipcode      *string
	PhoneNumber  *string
	WebsiteURL   *string
	OpeningHours *string
	Capacity     *int
	Description  *string
	ImageURLMain *string
	ImageURLSub1 *string
	ImageURLSub2 *string
	ImageURLSub3 *string
	ImageURLSub4 *string
}

type LocationRepository struct {
	db DBTX
}

func NewLocationRepository(db DBTX) *LocationRepository {
	return &LocationRepository{db: db}
}

func scanLocation(row interface{ Scan(dest ...any) error }) (*models.Location, error) {
	var l models.Location
	err := row.Scan(
		&l.LocationID, &l.LocationName, &l.State, &l.Address1, &l.Address2, &l.Zipcode,
		&l.PhoneNumber, &l.WebsiteURL, &l.OpeningHours, &l.Capacity, &l.Description,
		&l.ImageURLMain, &l.ImageURLSub1, &l.ImageURLSub2, &l.ImageURLSub3, &l.ImageURLSub4,
		&l.CreatedAt, &l.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *LocationRepository) Create(ctx context.Context, input CreateLocationInput) (*models.Location, error) {
	query := `
		INSERT INTO locations (
			location_id, location_name, state, address1, address2, zipcode,
			phone_number, website_url, opening_hours, capacity, description,
			image_url_main, image_url_sub1, image_url_sub2, image_url_sub3, image_url_sub4
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		RETURNING ` + locationColumns
	return scanLocation(r.db.QueryRow(ctx, query,
		uuid.NewString(),
		input.LocationName,
		input.State,
		input.Address1,
		input.Address2,
		input.Zipcode,
		input.PhoneNumber,
		input.WebsiteURL,
		input.OpeningHours,
		input.Capacity,
		input.Description,
		input.ImageURLMain,
		input.ImageURLSub1,
		input.ImageURLSub2,
		input.ImageURLSub3,
		input.ImageURLSub4,
	))
}

func (r *LocationRepository) GetByID(ctx context.Context, locationID string) (*models.Location, error) {
	query := `SELECT ` + locationColumns + ` FROM locations WHERE location_id = $1`
	return scanLocation(r.db.QueryRow(ctx, query, locationID))
}

func (r *LocationRepository) List(ctx context.Context, skip, limit int) ([]models.Location, error) {
	query := `SELECT ` + locationColumns + ` FROM locations ORDER BY created_at DESC OFFSET $1 LIMIT $2`
	rows, err := r.db.Query(ctx, query, skip, ClampLimit(limit))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	locations := make([]models.Location, 0)
	for rows.Next() {
		l, err := scanLocation(rows)
		if err != nil {
			return nil, err
		}
		locations = append(locations, *l)
	}
	return locations, rows.Err()
}

func (r *LocationRepository) UpdatePartial(ctx context.Context, locationID string, input UpdateLocationInput) (*models.Location, error) {
	query := `
		UPDATE locations
		SET location_name = COALESCE($1, location_name),
			state = COALESCE($2, state),
			address1 = COALESCE($3, address1),
			address2 = COALESCE($4, address2),
			zipcode = COALESCE($5, zipcode),
			phone_number = COALESCE($6, phone_number),
			website_url = COALESCE($7, website_url),
			opening_hours = COALESCE($8, opening_hours),
			capacity = COALESCE($9, capacity),
			description = COALESCE($10, description),
			image_url_main = COALESCE($11, image_url_main),
			image_url_sub1 = COALESCE($12, image_url_sub1),
			image_url_sub2 = COALESCE($13, image_url_sub2),
			image_url_sub3 = COALESCE($14, image_url_sub3),
			image_url_sub4 = COALESCE($15, image_url_sub4),
			updated_at = NOW()
		WHERE location_id = $16
		RETURNING ` + locationColumns
	return scanLocation(r.db.QueryRow(ctx, query,
		input.LocationName,
		input.State,
		input.Address1,
		input.Address2,
		input.Zipcode,
		input.PhoneNumber,
		input.WebsiteURL,
		input.OpeningHours,
		input.Capacity,
		input.Description,
		input.ImageURLMain,
		input.ImageURLSub1,
		input.ImageURLSub2,
		input.ImageURLSub3,
		input.ImageURLSub4,
		locationID,
	))
}
