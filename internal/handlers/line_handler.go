package handlers

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/fairwaylab/swingcoach/internal/services"
)

type LineHandler struct {
	line    *services.LineService
	webhook *services.WebhookService
	auth    *services.AuthService
}

func NewLineHandler(line *services.LineService, webhook *services.WebhookService, auth *services.AuthService) *LineHandler {
	return &LineHandler{line: line, webhook: webhook, auth: auth}
}

// Webhook receives LINE message deliveries. A bad signature is rejected;
// everything after passes is acknowledged with 200 even when individual
// events fail, because LINE retries the whole batch otherwise.
func (h *LineHandler) Webhook(c *fiber.Ctx) error {
	body := c.Body()
	if !h.line.VerifySignature(body, c.Get("X-Line-Signature")) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid signature"})
	}

	handled, err := h.webhook.HandleDelivery(c.Context(), body)
	if err != nil {
		// Malformed body; still not worth a retry storm.
		log.Printf("line webhook: %v", err)
		return c.JSON(fiber.Map{"success": true, "handled": 0})
	}
	return c.JSON(fiber.Map{"success": true, "handled": handled})
}

type lineLoginRequest struct {
	LineUserID string `json:"line_user_id"`
	IDToken    string `json:"id_token"`
}

// Login is the development login shortcut: a raw line_user_id resolves (or
// provisions) the guest account and gets a token. Proper id_token
// verification is not implemented.
func (h *LineHandler) Login(c *fiber.Ctx) error {
	var req lineLoginRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if req.IDToken != "" {
		return c.Status(fiber.StatusNotImplemented).JSON(fiber.Map{"error": "id_token login is not implemented"})
	}
	if req.LineUserID == "" {
		return badRequest(c, "line_user_id is required")
	}

	if _, err := h.webhook.EnsureGuest(c.Context(), req.LineUserID); err != nil {
		return respondError(c, err)
	}
	result, err := h.auth.LoginWithLine(c.Context(), req.LineUserID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"access_token": result.Token,
		"token_type":   "bearer",
		"role":         result.Role,
		"user":         result.User,
	})
}
