package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/fairwaylab/swingcoach/internal/models"
	"github.com/fairwaylab/swingcoach/internal/repository"
)

type CoachHandler struct {
	coaches *repository.CoachRepository
}

func NewCoachHandler(coaches *repository.CoachRepository) *CoachHandler {
	return &CoachHandler{coaches: coaches}
}

func (h *CoachHandler) List(c *fiber.Ctx) error {
	skip, limit := parsePagination(c)
	coaches, err := h.coaches.List(c.Context(), skip, limit)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(coaches)
}

func (h *CoachHandler) Get(c *fiber.Ctx) error {
	coach, err := h.coaches.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(coach)
}

type updateCoachRequest struct {
	CoachName          *string `json:"coachname"`
	Bio                *string `json:"bio"`
	Sex                *string `json:"sex"`
	SNSHandleInstagram *string `json:"sns_handle_instagram"`
	SNSHandleX         *string `json:"sns_handle_x"`
	SNSHandleYoutube   *string `json:"sns_handle_youtube"`
	SNSHandleFacebook  *string `json:"sns_handle_facebook"`
	SNSHandleTiktok    *string `json:"sns_handle_tiktok"`
	HourlyRate         *int    `json:"hourly_rate"`
	LocationID         *string `json:"location_id"`
	GolfExp            *int    `json:"golf_exp"`
	Certification      *string `json:"certification"`
	Setting1           *string `json:"setting_1"`
	Setting2           *string `json:"setting_2"`
	Setting3           *string `json:"setting_3"`
	LessonRank         *string `json:"lesson_rank"`
}

func (h *CoachHandler) Update(c *fiber.Ctx) error {
	coachID := c.Params("id")
	if currentRole(c) != models.UserTypeCoach || coachID != currentUserID(c) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Cannot edit another coach's profile"})
	}

	var req updateCoachRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	coach, err := h.coaches.UpdatePartial(c.Context(), coachID, repository.UpdateCoachInput{
		CoachName:          req.CoachName,
		Bio:                req.Bio,
		Sex:                req.Sex,
		SNSHandleInstagram: req.SNSHandleInstagram,
		SNSHandleX:         req.SNSHandleX,
		SNSHandleYoutube:   req.SNSHandleYoutube,
		SNSHandleFacebook:  req.SNSHandleFacebook,
		SNSHandleTiktok:    req.SNSHandleTiktok,
		HourlyRate:         req.HourlyRate,
		LocationID:         req.LocationID,
		GolfExp:            req.GolfExp,
		Certification:      req.Certification,
		Setting1:           req.Setting1,
		Setting2:           req.Setting2,
		Setting3:           req.Setting3,
		LessonRank:         req.LessonRank,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(coach)
}
