package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/fairwaylab/swingcoach/internal/services"
)

const signedURLTTL = 15 * time.Minute

// MediaHandler resolves stored blobs for playback: short-lived signed URLs
// for direct access and a streaming proxy for clients that cannot follow
// them.
type MediaHandler struct {
	storage services.Storage
}

func NewMediaHandler(storage services.Storage) *MediaHandler {
	return &MediaHandler{storage: storage}
}

// MediaURL exchanges a stored file URL or path for a signed retrieval URL.
func (h *MediaHandler) MediaURL(c *fiber.Ctx) error {
	target := c.Query("url")
	if target == "" {
		return badRequest(c, "url query parameter is required")
	}

	signed, err := h.storage.SignedURL(c.Context(), target, signedURLTTL)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"media_url": signed, "expires_in": int(signedURLTTL.Seconds())})
}

// ProxyFile streams the blob through the API. No-cache headers keep stale
// section images from sticking in browser caches after re-upload.
func (h *MediaHandler) ProxyFile(c *fiber.Ctx) error {
	target := c.Query("url")
	if target == "" {
		return badRequest(c, "url query parameter is required")
	}

	content, contentType, err := h.storage.Download(c.Context(), target)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "File not found"})
	}

	c.Set(fiber.HeaderContentType, contentType)
	c.Set(fiber.HeaderCacheControl, "no-store, no-cache, must-revalidate")
	c.Set(fiber.HeaderPragma, "no-cache")
	return c.Send(content)
}
