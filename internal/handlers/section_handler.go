package handlers

import (
	"io"

	"github.com/gofiber/fiber/v2"

	"github.com/fairwaylab/swingcoach/internal/models"
	"github.com/fairwaylab/swingcoach/internal/repository"
	"github.com/fairwaylab/swingcoach/internal/services"
)

type SectionHandler struct {
	sections      *services.SectionService
	sectionRepo   *repository.SwingSectionRepository
	transcription *services.TranscriptionService
}

func NewSectionHandler(sections *services.SectionService, sectionRepo *repository.SwingSectionRepository, transcription *services.TranscriptionService) *SectionHandler {
	return &SectionHandler{sections: sections, sectionRepo: sectionRepo, transcription: transcription}
}

type createGroupRequest struct {
	VideoID   string  `json:"video_id" validate:"required,uuid4"`
	SessionID *string `json:"session_id"`
}

func (h *SectionHandler) CreateGroup(c *fiber.Ctx) error {
	if currentRole(c) != models.UserTypeCoach {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Coach role required"})
	}

	var req createGroupRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	group, err := h.sections.CreateGroup(c.Context(), req.VideoID, req.SessionID)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(group)
}

type createSectionRequest struct {
	SectionGroupID string                `json:"section_group_id" validate:"required,uuid4"`
	StartSec       float64               `json:"start_sec" validate:"gte=0"`
	EndSec         float64               `json:"end_sec" validate:"gtefield=StartSec"`
	ImageURL       *string               `json:"image_url"`
	Tags           []string              `json:"tags"`
	Markup         []models.MarkupObject `json:"markup_json" validate:"omitempty,dive"`
}

func (h *SectionHandler) Create(c *fiber.Ctx) error {
	if currentRole(c) != models.UserTypeCoach {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Coach role required"})
	}

	var req createSectionRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	section, err := h.sections.AddSection(c.Context(), repository.CreateSwingSectionInput{
		SectionGroupID: req.SectionGroupID,
		StartSec:       req.StartSec,
		EndSec:         req.EndSec,
		ImageURL:       req.ImageURL,
		Tags:           req.Tags,
		Markup:         req.Markup,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(section)
}

func (h *SectionHandler) ListByGroup(c *fiber.Ctx) error {
	sections, err := h.sectionRepo.ListByGroup(c.Context(), c.Params("group_id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(sections)
}

func (h *SectionHandler) Get(c *fiber.Ctx) error {
	section, err := h.sectionRepo.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(section)
}

type updateSectionRequest struct {
	StartSec *float64              `json:"start_sec"`
	EndSec   *float64              `json:"end_sec"`
	ImageURL *string               `json:"image_url"`
	Tags     []string              `json:"tags"`
	Markup   []models.MarkupObject `json:"markup_json" validate:"omitempty,dive"`
}

func (h *SectionHandler) Update(c *fiber.Ctx) error {
	if currentRole(c) != models.UserTypeCoach {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Coach role required"})
	}

	var req updateSectionRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	section, err := h.sections.UpdateSection(c.Context(), c.Params("id"), repository.UpdateSwingSectionInput{
		StartSec: req.StartSec,
		EndSec:   req.EndSec,
		ImageURL: req.ImageURL,
		Tags:     req.Tags,
		Markup:   req.Markup,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(section)
}

func (h *SectionHandler) Delete(c *fiber.Ctx) error {
	if currentRole(c) != models.UserTypeCoach {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Coach role required"})
	}
	deleted, err := h.sections.DeleteSection(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	if !deleted {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Not found"})
	}
	return c.JSON(fiber.Map{"message": "Section deleted"})
}

type coachCommentRequest struct {
	Comment string `json:"comment" validate:"required,min=1"`
}

func (h *SectionHandler) AttachComment(c *fiber.Ctx) error {
	if currentRole(c) != models.UserTypeCoach {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Coach role required"})
	}

	var req coachCommentRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	section, err := h.sections.AttachCoachComment(c.Context(), c.Params("id"), req.Comment)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(section)
}

// AttachVoiceComment transcribes an uploaded voice memo and stores the text
// as the section's coach comment.
func (h *SectionHandler) AttachVoiceComment(c *fiber.Ctx) error {
	if currentRole(c) != models.UserTypeCoach {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Coach role required"})
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return badRequest(c, "file is required")
	}
	file, err := fileHeader.Open()
	if err != nil {
		return badRequest(c, "Cannot read uploaded file")
	}
	defer file.Close()
	audio, err := io.ReadAll(file)
	if err != nil {
		return badRequest(c, "Cannot read uploaded file")
	}

	transcript, err := h.transcription.Transcribe(c.Context(), audio, fileHeader.Filename, c.FormValue("language", "ja"))
	if err != nil {
		return respondError(c, err)
	}

	section, err := h.sections.AttachCoachComment(c.Context(), c.Params("id"), transcript.Text)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"section":             section,
		"transcript":          transcript.Text,
		"transcript_degraded": transcript.Degraded,
	})
}

type overallFeedbackRequest struct {
	Feedback string `json:"feedback" validate:"required,min=1"`
}

func (h *SectionHandler) SetOverallFeedback(c *fiber.Ctx) error {
	if currentRole(c) != models.UserTypeCoach {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Coach role required"})
	}

	var req overallFeedbackRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	group, err := h.sections.SetOverallFeedback(c.Context(), c.Params("group_id"), req.Feedback)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(group)
}

type trainingMenuRequest struct {
	Menu string `json:"menu" validate:"required,min=1"`
}

func (h *SectionHandler) SetNextTrainingMenu(c *fiber.Ctx) error {
	if currentRole(c) != models.UserTypeCoach {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Coach role required"})
	}

	var req trainingMenuRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	group, err := h.sections.SetNextTrainingMenu(c.Context(), c.Params("group_id"), req.Menu)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(group)
}
