package handlers

import (
	"io"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/fairwaylab/swingcoach/internal/models"
	"github.com/fairwaylab/swingcoach/internal/repository"
	"github.com/fairwaylab/swingcoach/internal/services"
)

type VideoHandler struct {
	videos    *services.VideoService
	videoRepo *repository.VideoRepository
}

func NewVideoHandler(videos *services.VideoService, videoRepo *repository.VideoRepository) *VideoHandler {
	return &VideoHandler{videos: videos, videoRepo: videoRepo}
}

// Upload takes a multipart video plus optional metadata form fields.
func (h *VideoHandler) Upload(c *fiber.Ctx) error {
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

	contentType := fileHeader.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "video/mp4"
	}

	video, err := h.videos.Upload(c.Context(), services.UploadVideoInput{
		UserID:      currentUserID(c),
		Content:     content,
		Filename:    fileHeader.Filename,
		ContentType: contentType,
		ClubType:    formValue(c, "club_type"),
		SwingForm:   coalesceValues(formValue(c, "swing_form"), formValue(c, "swing_type")),
		SwingNote:   coalesceValues(formValue(c, "swing_note"), formValue(c, "description")),
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(video)
}

func (h *VideoHandler) ListMine(c *fiber.Ctx) error {
	skip, limit := parsePagination(c)
	videos, err := h.videoRepo.ListByUser(c.Context(), currentUserID(c), skip, limit)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(videos)
}

func (h *VideoHandler) ListByUser(c *fiber.Ctx) error {
	skip, limit := parsePagination(c)
	videos, err := h.videoRepo.ListByUser(c.Context(), c.Params("id"), skip, limit)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(videos)
}

// ListAll is the coach-side feed of every uploaded video.
func (h *VideoHandler) ListAll(c *fiber.Ctx) error {
	if currentRole(c) != models.UserTypeCoach {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Coach role required"})
	}
	skip, limit := parsePagination(c)
	videos, err := h.videoRepo.ListAll(c.Context(), skip, limit)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(videos)
}

func (h *VideoHandler) Get(c *fiber.Ctx) error {
	video, err := h.videoRepo.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(video)
}

func (h *VideoHandler) GetWithSections(c *fiber.Ctx) error {
	result, err := h.videos.GetWithSections(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(result)
}

type updateVideoRequest struct {
	ThumbnailURL *string `json:"thumbnail_url"`
	ClubType     *string `json:"club_type"`
	SwingForm    *string `json:"swing_form"`
	SwingNote    *string `json:"swing_note"`
	// Legacy client field names, folded into swing_form / swing_note.
	SwingType   *string `json:"swing_type"`
	Description *string `json:"description"`
}

func (h *VideoHandler) Update(c *fiber.Ctx) error {
	var req updateVideoRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	video, err := h.videoRepo.UpdatePartial(c.Context(), c.Params("id"), repository.UpdateVideoInput{
		ThumbnailURL: req.ThumbnailURL,
		ClubType:     req.ClubType,
		SwingForm:    coalesceValues(req.SwingForm, req.SwingType),
		SwingNote:    coalesceValues(req.SwingNote, req.Description),
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(video)
}

func (h *VideoHandler) Delete(c *fiber.Ctx) error {
	if err := h.videos.Delete(c.Context(), c.Params("id"), currentUserID(c)); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Video deleted"})
}

func (h *VideoHandler) Pin(c *fiber.Ctx) error {
	video, err := h.videos.Pin(c.Context(), c.Params("id"), currentUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(video)
}

func (h *VideoHandler) Unpin(c *fiber.Ctx) error {
	video, err := h.videos.Unpin(c.Context(), c.Params("id"), currentUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(video)
}

// MarkReviewed is coach-only and one-way; repeating it reports the flag was
// already set.
func (h *VideoHandler) MarkReviewed(c *fiber.Ctx) error {
	if currentRole(c) != models.UserTypeCoach {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Coach role required"})
	}
	video, changed, err := h.videos.MarkReviewed(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"video": video, "already_reviewed": !changed})
}

// Search filters the caller's videos by club, form, and feedback presence.
func (h *VideoHandler) Search(c *fiber.Ctx) error {
	filter := repository.VideoSearchFilter{UserID: currentUserID(c)}
	if v := c.Query("club_type"); v != "" {
		filter.ClubType = &v
	}
	if v := coalesceValues(queryValue(c, "swing_form"), queryValue(c, "swing_type")); v != nil {
		filter.SwingForm = v
	}
	if v := c.Query("has_feedback"); v != "" {
		hasFeedback, err := strconv.ParseBool(v)
		if err != nil {
			return badRequest(c, "has_feedback must be true or false")
		}
		filter.HasFeedback = &hasFeedback
	}

	videos, err := h.videos.Search(c.Context(), filter)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(videos)
}

func (h *VideoHandler) FeedbackSummary(c *fiber.Ctx) error {
	summary, err := h.videos.FeedbackSummary(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(summary)
}

func formValue(c *fiber.Ctx, key string) *string {
	if v := c.FormValue(key); v != "" {
		return &v
	}
	return nil
}

func queryValue(c *fiber.Ctx, key string) *string {
	if v := c.Query(key); v != "" {
		return &v
	}
	return nil
}

// coalesceValues returns the first non-nil value, folding legacy aliases into
// canonical fields.
func coalesceValues(values ...*string) *string {
	for _, v := range values {
		if v != nil {
			return v
		}
	}
	return nil
}
