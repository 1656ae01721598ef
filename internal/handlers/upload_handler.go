package handlers

import (
	"encoding/base64"
	"fmt"
	"io"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/fairwaylab/swingcoach/internal/models"
	"github.com/fairwaylab/swingcoach/internal/repository"
	"github.com/fairwaylab/swingcoach/internal/services"
)

// UploadHandler covers the coach-side image uploads: section frame captures,
// markup renders, and the per-video markup sidecar document.
type UploadHandler struct {
	storage     services.Storage
	images      *services.ImageService
	sectionRepo *repository.SwingSectionRepository
}

func NewUploadHandler(storage services.Storage, images *services.ImageService, sectionRepo *repository.SwingSectionRepository) *UploadHandler {
	return &UploadHandler{storage: storage, images: images, sectionRepo: sectionRepo}
}

// SectionImage stores a frame capture for a section and points the section
// at it.
func (h *UploadHandler) SectionImage(c *fiber.Ctx) error {
	if currentRole(c) != models.UserTypeCoach {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Coach role required"})
	}
	sectionID := c.Params("id")

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return badRequest(c, "file is required")
	}
	file, err := fileHeader.Open()
	if err != nil {
		return badRequest(c, "Cannot read uploaded file")
	}
	defer file.Close()
	content, err := io.ReadAll(file)
	if err != nil {
		return badRequest(c, "Cannot read uploaded file")
	}

	normalized, contentType, err := h.images.Normalize(content)
	if err != nil {
		return respondError(c, err)
	}
	url, err := h.storage.UploadFileExact(c.Context(),
		normalized, fmt.Sprintf("sections/%s.jpg", sectionID), contentType)
	if err != nil {
		return respondError(c, err)
	}

	section, err := h.sectionRepo.UpdatePartial(c.Context(), sectionID, repository.UpdateSwingSectionInput{ImageURL: &url})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(section)
}

type markupImageRequest struct {
	ImageBase64 string `json:"image_base64" validate:"required"`
}

// MarkupImage accepts a base64-encoded render of the coach's drawing and
// stores it next to the section image.
func (h *UploadHandler) MarkupImage(c *fiber.Ctx) error {
	if currentRole(c) != models.UserTypeCoach {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Coach role required"})
	}
	sectionID := c.Params("id")

	var req markupImageRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	encoded := req.ImageBase64
	// Tolerate data-URI prefixes from canvas exports.
	if idx := strings.Index(encoded, ","); idx >= 0 && strings.HasPrefix(encoded, "data:") {
		encoded = encoded[idx+1:]
	}
	content, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return badRequest(c, "image_base64 is not valid base64")
	}

	normalized, contentType, err := h.images.Normalize(content)
	if err != nil {
		return respondError(c, err)
	}
	url, err := h.storage.UploadFileExact(c.Context(),
		normalized, fmt.Sprintf("sections/%s_markup.jpg", sectionID), contentType)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"image_url": url})
}

type saveMarkupRequest struct {
	Sections map[string][]models.MarkupObject `json:"sections" validate:"required"`
}

// SaveMarkup writes the whole video's markup document as a JSON sidecar blob
// keyed by section id.
func (h *UploadHandler) SaveMarkup(c *fiber.Ctx) error {
	if currentRole(c) != models.UserTypeCoach {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Coach role required"})
	}
	videoID := c.Params("id")

	var req saveMarkupRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}
	for _, objects := range req.Sections {
		for _, obj := range objects {
			if err := validate.Struct(obj); err != nil {
				return badRequest(c, err.Error())
			}
		}
	}

	url, err := h.storage.SaveJSON(c.Context(), "markups/"+videoID+".json", req.Sections)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"markup_url": url})
}

// GetMarkup returns the sidecar document, or an empty object when none was
// saved yet.
func (h *UploadHandler) GetMarkup(c *fiber.Ctx) error {
	doc, ok := h.storage.GetJSON(c.Context(), "markups/"+c.Params("id")+".json")
	if !ok {
		return c.JSON(fiber.Map{})
	}
	return c.JSON(doc)
}
