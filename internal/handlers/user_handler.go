package handlers

import (
	"io"

	"github.com/gofiber/fiber/v2"

	"github.com/fairwaylab/swingcoach/internal/repository"
	"github.com/fairwaylab/swingcoach/internal/services"
)

type UserHandler struct {
	users   *repository.UserRepository
	images  *services.ImageService
	storage services.Storage
}

func NewUserHandler(users *repository.UserRepository, images *services.ImageService, storage services.Storage) *UserHandler {
	return &UserHandler{users: users, images: images, storage: storage}
}

func (h *UserHandler) List(c *fiber.Ctx) error {
	skip, limit := parsePagination(c)
	users, err := h.users.List(c.Context(), skip, limit)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(users)
}

func (h *UserHandler) Get(c *fiber.Ctx) error {
	user, err := h.users.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(user)
}

type updateUserRequest struct {
	Username     *string `json:"username"`
	Gender       *string `json:"gender"`
	Bio          *string `json:"bio"`
	Birthday     *string `json:"birthday"`
	GolfScoreAve *int    `json:"golf_score_ave"`
	GolfExp      *int    `json:"golf_exp"`
	ZipCode      *string `json:"zip_code"`
	State        *string `json:"state"`
	Address1     *string `json:"address1"`
	Address2     *string `json:"address2"`
	SportExp     *string `json:"sport_exp"`
	Industry     *string `json:"industry"`
	JobTitle     *string `json:"job_title"`
	Position     *string `json:"position"`
}

// Update patches the caller's own profile; only present fields change.
func (h *UserHandler) Update(c *fiber.Ctx) error {
	userID := c.Params("id")
	if userID != currentUserID(c) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Cannot edit another user's profile"})
	}

	var req updateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	birthday, err := parseDate(req.Birthday)
	if err != nil {
		return badRequest(c, "birthday must be YYYY-MM-DD")
	}

	user, err := h.users.UpdatePartial(c.Context(), userID, repository.UpdateUserInput{
		Username:     req.Username,
		Gender:       req.Gender,
		Bio:          req.Bio,
		Birthday:     birthday,
		GolfScoreAve: req.GolfScoreAve,
		GolfExp:      req.GolfExp,
		ZipCode:      req.ZipCode,
		State:        req.State,
		Address1:     req.Address1,
		Address2:     req.Address2,
		SportExp:     req.SportExp,
		Industry:     req.Industry,
		JobTitle:     req.JobTitle,
		Position:     req.Position,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(user)
}

// UploadProfilePicture normalizes the image and stores it, then points the
// profile at the new URL.
func (h *UserHandler) UploadProfilePicture(c *fiber.Ctx) error {
	userID := c.Params("id")
	if userID != currentUserID(c) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Cannot edit another user's profile"})
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
	content, err := io.ReadAll(file)
	if err != nil {
		return badRequest(c, "Cannot read uploaded file")
	}

	normalized, contentType, err := h.images.Normalize(content)
	if err != nil {
		return respondError(c, err)
	}
	url, err := h.storage.UploadFile(c.Context(), normalized, fileHeader.Filename+".jpg", contentType)
	if err != nil {
		return respondError(c, err)
	}

	user, err := h.users.UpdatePartial(c.Context(), userID, repository.UpdateUserInput{ProfilePictureURL: &url})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(user)
}
