package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/fairwaylab/swingcoach/internal/models"
	"github.com/fairwaylab/swingcoach/internal/repository"
	"github.com/fairwaylab/swingcoach/internal/services"
)

type AuthHandler struct {
	auth    *services.AuthService
	users   *repository.UserRepository
	coaches *repository.CoachRepository
}

func NewAuthHandler(auth *services.AuthService, users *repository.UserRepository, coaches *repository.CoachRepository) *AuthHandler {
	return &AuthHandler{auth: auth, users: users, coaches: coaches}
}

type registerUserRequest struct {
	Username   string  `json:"username" validate:"required,min=1,max=100"`
	Email      string  `json:"email" validate:"required,email"`
	Password   string  `json:"password" validate:"required,min=8"`
	Gender     *string `json:"gender"`
	Birthday   *string `json:"birthday"`
	LineUserID *string `json:"line_user_id"`
}

func (h *AuthHandler) RegisterUser(c *fiber.Ctx) error {
	var req registerUserRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	birthday, err := parseDate(req.Birthday)
	if err != nil {
		return badRequest(c, "birthday must be YYYY-MM-DD")
	}

	user, err := h.auth.RegisterUser(c.Context(), repository.CreateUserInput{
		Username:   req.Username,
		Email:      req.Email,
		Gender:     req.Gender,
		Birthday:   birthday,
		LineUserID: req.LineUserID,
	}, req.Password)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(user)
}

type registerCoachRequest struct {
	CoachName string  `json:"coachname" validate:"required,min=1,max=100"`
	Email     string  `json:"email" validate:"required,email"`
	Password  string  `json:"password" validate:"required,min=8"`
	Birthday  *string `json:"birthday"`
	Sex       *string `json:"sex"`
	Bio       *string `json:"bio"`
}

func (h *AuthHandler) RegisterCoach(c *fiber.Ctx) error {
	var req registerCoachRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	birthday, err := parseDate(req.Birthday)
	if err != nil {
		return badRequest(c, "birthday must be YYYY-MM-DD")
	}

	coach, err := h.auth.RegisterCoach(c.Context(), repository.CreateCoachInput{
		CoachName: req.CoachName,
		Email:     req.Email,
		Birthday:  birthday,
		Sex:       req.Sex,
		Bio:       req.Bio,
	}, req.Password)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(coach)
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	result, err := h.auth.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid email or password"})
	}

	response := fiber.Map{
		"access_token": result.Token,
		"token_type":   "bearer",
		"role":         result.Role,
	}
	if result.User != nil {
		response["user"] = result.User
	}
	if result.Coach != nil {
		response["coach"] = result.Coach
	}
	return c.JSON(response)
}

// Me resolves the bearer token to the caller's own record.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	id := currentUserID(c)
	if currentRole(c) == models.UserTypeCoach {
		coach, err := h.coaches.GetByID(c.Context(), id)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(coach)
	}

	user, err := h.users.GetByID(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(user)
}

func parseDate(value *string) (*time.Time, error) {
	if value == nil || *value == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", *value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
