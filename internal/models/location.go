package models

import "time"

type Location struct {
	LocationID   string    `json:"location_id"`
	LocationName string    `json:"location_name"`
	State        string    `json:"state"`
	Address1     string    `json:"address1"`
	Address2     *string   `json:"address2"`
	Zipcode      *string   `json:"zipcode"`
	PhoneNumber  *string   `json:"phone_number"`
	WebsiteURL   *string   `json:"website_url"`
	OpeningHours *string   `json:"opening_hours"`
	Capacity     *int      `json:"capacity"`
	Description  *string   `json:"description"`
	ImageURLMain *string   `json:"image_url_main"`
	ImageURLSub1 *string   `json:"image_url_sub1"`
	ImageURLSub2 *string   `json:"image_url_sub2"`
	ImageURLSub3 *string   `json:"image_url_sub3"`
	ImageURLSub4 *string   `json:"image_url_sub4"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
