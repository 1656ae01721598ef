package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/fairwaylab/swingcoach/internal/models"
	"github.com/fairwaylab/swingcoach/internal/repository"
	"github.com/fairwaylab/swingcoach/internal/services"
)

type SessionHandler struct {
	sessions *services.SessionService
}

func NewSessionHandler(sessions *services.SessionService) *SessionHandler {
	return &SessionHandler{sessions: sessions}
}

type createSessionRequest struct {
	CoachID string `json:"coach_id" validate:"required,uuid4"`
	VideoID string `json:"video_id" validate:"required,uuid4"`
}

func (h *SessionHandler) Create(c *fiber.Ctx) error {
	var req createSessionRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	session, err := h.sessions.Request(c.Context(), repository.CreateSessionInput{
		UserID:  currentUserID(c),
		CoachID: req.CoachID,
		VideoID: req.VideoID,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(session)
}

func (h *SessionHandler) Get(c *fiber.Ctx) error {
	session, err := h.sessions.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(session)
}

// List returns the caller's sessions, user-side or coach-side by role.
func (h *SessionHandler) List(c *fiber.Ctx) error {
	skip, limit := parsePagination(c)
	if currentRole(c) == models.UserTypeCoach {
		sessions, err := h.sessions.ListByCoach(c.Context(), currentUserID(c), skip, limit)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(sessions)
	}

	sessions, err := h.sessions.ListByUser(c.Context(), currentUserID(c), skip, limit)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(sessions)
}

type sessionStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=in_progress completed cancelled"`
}

func (h *SessionHandler) UpdateStatus(c *fiber.Ctx) error {
	var req sessionStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	session, err := h.sessions.Transition(c.Context(), c.Params("id"), req.Status)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(session)
}
