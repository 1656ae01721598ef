package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/fairwaylab/swingcoach/internal/repository"
)

type LocationHandler struct {
	locations *repository.LocationRepository
}

func NewLocationHandler(locations *repository.LocationRepository) *LocationHandler {
	return &LocationHandler{locations: locations}
}

type createLocationRequest struct {
	LocationName string  `json:"location_name" validate:"required,min=1,max=200"`
	State        string  `json:"state" validate:"required"`
	Address1     string  `json:"address1" validate:"required"`
	Address2     *string `json:"address2"`
	Zipcode      *string `json:"zipcode"`
	PhoneNumber  *string `json:"phone_number"`
	WebsiteURL   *string `json:"website_url"`
	OpeningHours *string `json:"opening_hours"`
	Capacity     *int    `json:"capacity"`
	Description  *string `json:"description"`
}

func (h *LocationHandler) Create(c *fiber.Ctx) error {
	var req createLocationRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	location, err := h.locations.Create(c.Context(), repository.CreateLocationInput{
		LocationName: req.LocationName,
		State:        req.State,
		Address1:     req.Address1,
		Address2:     req.Address2,
		Zipcode:      req.Zipcode,
		PhoneNumber:  req.PhoneNumber,
		WebsiteURL:   req.WebsiteURL,
		OpeningHours: req.OpeningHours,
		Capacity:     req.Capacity,
		Description:  req.Description,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(location)
}

func (h *LocationHandler) List(c *fiber.Ctx) error {
	skip, limit := parsePagination(c)
	locations, err := h.locations.List(c.Context(), skip, limit)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(locations)
}

func (h *LocationHandler) Get(c *fiber.Ctx) error {
	location, err := h.locations.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(location)
}

type updateLocationRequest struct {
	LocationName *string `json:"location_name"`
	State        *string `json:"state"`
	Address1     *string `json:"address1"`
	Address2     *string `json:"address2"`
	Zipcode      *string `json:"zipcode"`
	PhoneNumber  *string `json:"phone_number"`
	WebsiteURL   *string `json:"website_url"`
	OpeningHours *string `json:"opening_hours"`
	Capacity     *int    `json:"capacity"`
	Description  *string `json:"description"`
}

func (h *LocationHandler) Update(c *fiber.Ctx) error {
	var req updateLocationRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	location, err := h.locations.UpdatePartial(c.Context(), c.Params("id"), repository.UpdateLocationInput{
		LocationName: req.LocationName,
		State:        req.State,
		Address1:     req.Address1,
		Address2:     req.Address2,
		Zipcode:      req.Zipcode,
		PhoneNumber:  req.PhoneNumber,
		WebsiteURL:   req.WebsiteURL,
		OpeningHours: req.OpeningHours,
		Capacity:     req.Capacity,
		Description:  req.Description,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(location)
}
