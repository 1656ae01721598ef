package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/fairwaylab/swingcoach/internal/models"
	"github.com/fairwaylab/swingcoach/internal/repository"
	"github.com/fairwaylab/swingcoach/internal/services"
)

type ReservationHandler struct {
	reservations *services.ReservationService
}

func NewReservationHandler(reservations *services.ReservationService) *ReservationHandler {
	return &ReservationHandler{reservations: reservations}
}

type createReservationRequest struct {
	CoachID      string  `json:"coach_id" validate:"required,uuid4"`
	SessionDate  string  `json:"session_date" validate:"required"`
	SessionTime  string  `json:"session_time" validate:"required"`
	LocationType string  `json:"location_type" validate:"required,oneof=simulation_golf real_golf_course"`
	LocationID   string  `json:"location_id" validate:"required"`
	Price        float64 `json:"price" validate:"gte=0"`
}

func (h *ReservationHandler) Create(c *fiber.Ctx) error {
	var req createReservationRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	sessionDate, err := time.Parse("2006-01-02", req.SessionDate)
	if err != nil {
		return badRequest(c, "session_date must be YYYY-MM-DD")
	}
	sessionTime, err := time.Parse("15:04", req.SessionTime)
	if err != nil {
		return badRequest(c, "session_time must be HH:MM")
	}

	reservation, err := h.reservations.Book(c.Context(), repository.CreateReservationInput{
		UserID:       currentUserID(c),
		CoachID:      req.CoachID,
		SessionDate:  sessionDate,
		SessionTime:  sessionTime,
		LocationType: req.LocationType,
		LocationID:   req.LocationID,
		Price:        req.Price,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(reservation)
}

func (h *ReservationHandler) Get(c *fiber.Ctx) error {
	reservation, err := h.reservations.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(reservation)
}

func (h *ReservationHandler) List(c *fiber.Ctx) error {
	skip, limit := parsePagination(c)
	if currentRole(c) == models.UserTypeCoach {
		reservations, err := h.reservations.ListByCoach(c.Context(), currentUserID(c), skip, limit)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(reservations)
	}

	reservations, err := h.reservations.ListByUser(c.Context(), currentUserID(c), skip, limit)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(reservations)
}

type updateReservationRequest struct {
	SessionDate  *string  `json:"session_date"`
	SessionTime  *string  `json:"session_time"`
	LocationType *string  `json:"location_type"`
	LocationID   *string  `json:"location_id"`
	Price        *float64 `json:"price"`
}

func (h *ReservationHandler) Update(c *fiber.Ctx) error {
	var req updateReservationRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	input := repository.UpdateReservationInput{
		LocationType: req.LocationType,
		LocationID:   req.LocationID,
		Price:        req.Price,
	}
	if req.SessionDate != nil {
		parsed, err := time.Parse("2006-01-02", *req.SessionDate)
		if err != nil {
			return badRequest(c, "session_date must be YYYY-MM-DD")
		}
		input.SessionDate = &parsed
	}
	if req.SessionTime != nil {
		parsed, err := time.Parse("15:04", *req.SessionTime)
		if err != nil {
			return badRequest(c, "session_time must be HH:MM")
		}
		input.SessionTime = &parsed
	}

	reservation, err := h.reservations.Reschedule(c.Context(), c.Params("id"), input)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(reservation)
}

type reservationStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=completed cancelled"`
}

func (h *ReservationHandler) UpdateStatus(c *fiber.Ctx) error {
	var req reservationStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	reservation, err := h.reservations.Transition(c.Context(), c.Params("id"), req.Status)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(reservation)
}

func (h *ReservationHandler) MarkPaid(c *fiber.Ctx) error {
	reservation, err := h.reservations.MarkPaid(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(reservation)
}
