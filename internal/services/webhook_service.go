package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"mime"
	"strings"

	"github.com/google/uuid"

	"github.com/fairwaylab/swingcoach/internal/models"
	"github.com/fairwaylab/swingcoach/internal/repository"
	"github.com/fairwaylab/swingcoach/pkg/utils"
)

// LineEvent is the subset of a LINE webhook event this service acts on.
type LineEvent struct {
	Type       string `json:"type"`
	ReplyToken string `json:"replyToken"`
	Source     struct {
		UserID string `json:"userId"`
	} `json:"source"`
	Message struct {
		ID   string `json:"id"`
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"message"`
}

type lineWebhookPayload struct {
	Events []LineEvent `json:"events"`
}

// WebhookService processes LINE webhook deliveries: it provisions a guest
// user for unknown LINE identities, stores incoming media, and records video
// messages as swing videos. Every event is handled independently; a failure
// is logged and the delivery is still acknowledged, since LINE retries whole
// batches.
type guestStore interface {
	EnsureLineGuest(ctx context.Context, lineUserID, username, email, passwordHash string) (*models.User, error)
}

type videoRecorder interface {
	Create(ctx context.Context, input repository.CreateVideoInput) (*models.Video, error)
}

type WebhookService struct {
	users   guestStore
	videos  videoRecorder
	storage Storage
	line    *LineService
}

func NewWebhookService(users guestStore, videos videoRecorder, storage Storage, line *LineService) *WebhookService {
	return &WebhookService{users: users, videos: videos, storage: storage, line: line}
}

// HandleDelivery parses the webhook body and processes each event. The
// returned count is how many events were handled successfully.
func (s *WebhookService) HandleDelivery(ctx context.Context, body []byte) (int, error) {
	var payload lineWebhookPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return 0, fmt.Errorf("%w: decode webhook body: %v", ErrInvalidInput, err)
	}

	handled := 0
	for _, event := range payload.Events {
		if err := s.handleEvent(ctx, event); err != nil {
			log.Printf("line webhook: event %s from %s: %v", event.Message.Type, event.Source.UserID, err)
			continue
		}
		handled++
	}
	return handled, nil
}

func (s *WebhookService) handleEvent(ctx context.Context, event LineEvent) error {
	if event.Type != "message" {
		// follow, unfollow, postback and friends still get an
		// acknowledgement when LINE gives us a reply token.
		if event.ReplyToken != "" {
			s.line.Reply(ctx, event.ReplyToken, "Event received.")
		}
		return nil
	}
	if event.Source.UserID == "" {
		return fmt.Errorf("event has no source user")
	}

	user, err := s.EnsureGuest(ctx, event.Source.UserID)
	if err != nil {
		return fmt.Errorf("ensure guest: %w", err)
	}

	switch event.Message.Type {
	case "video":
		return s.handleVideoMessage(ctx, user, event)
	case "image", "audio":
		return s.handleMediaMessage(ctx, event)
	case "text":
		s.replyToText(ctx, event)
		return nil
	default:
		log.Printf("line webhook: unsupported message type %q", event.Message.Type)
		s.line.Reply(ctx, event.ReplyToken, "Unsupported message type.")
		return nil
	}
}

func (s *WebhookService) replyToText(ctx context.Context, event LineEvent) {
	if strings.EqualFold(strings.TrimSpace(event.Message.Text), "help") {
		s.line.Reply(ctx, event.ReplyToken,
			"Send a swing video and a coach will review it.",
			"You can check feedback in the app.")
		return
	}
	s.line.Reply(ctx, event.ReplyToken, "Received: "+event.Message.Text)
}

// handleVideoMessage stores the clip and records it as a swing video owned by
// the guest, so it shows up once the guest registers.
func (s *WebhookService) handleVideoMessage(ctx context.Context, user *models.User, event LineEvent) error {
	content, contentType, err := s.line.GetMessageContent(ctx, event.Message.ID)
	if err != nil {
		return err
	}

	url, err := s.storage.UploadFile(ctx, content, "line_"+event.Message.ID+extensionFor(contentType, ".mp4"), contentType)
	if err != nil {
		return err
	}

	if _, err := s.videos.Create(ctx, repository.CreateVideoInput{UserID: user.UserID, VideoURL: url}); err != nil {
		s.storage.DeleteFile(ctx, url)
		return err
	}

	s.line.Reply(ctx, event.ReplyToken,
		"Your swing video has been received. A coach will add feedback soon.")
	return nil
}

func (s *WebhookService) handleMediaMessage(ctx context.Context, event LineEvent) error {
	content, contentType, err := s.line.GetMessageContent(ctx, event.Message.ID)
	if err != nil {
		return err
	}

	fallbackExt := ".jpg"
	if event.Message.Type == "audio" {
		fallbackExt = ".m4a"
	}
	url, err := s.storage.UploadFile(ctx, content, "line_"+event.Message.ID+extensionFor(contentType, fallbackExt), contentType)
	if err != nil {
		return err
	}

	if event.Message.Type == "image" {
		s.line.Reply(ctx, event.ReplyToken, "Image received and stored.", url)
	} else {
		s.line.Reply(ctx, event.ReplyToken, "Audio received. For swing feedback, please send a video.")
	}
	return nil
}

// EnsureGuest resolves the LINE identity to a user row, creating the guest
// row on first contact. Creation is a single conditional insert, so
// concurrent deliveries for the same identity converge on one row.
func (s *WebhookService) EnsureGuest(ctx context.Context, lineUserID string) (*models.User, error) {
	short := lineUserID
	if len(short) > 8 {
		short = short[:8]
	}
	// Guests cannot log in with this hash; they set credentials on upgrade.
	hash, err := utils.HashPassword(uuid.NewString())
	if err != nil {
		return nil, err
	}
	return s.users.EnsureLineGuest(ctx,
		lineUserID,
		"line_guest_"+short,
		lineUserID+"@line.local",
		hash,
	)
}

func extensionFor(contentType, fallback string) string {
	exts, err := mime.ExtensionsByType(contentType)
	if err == nil && len(exts) > 0 {
		for _, ext := range exts {
			if strings.HasPrefix(ext, ".") {
				return ext
			}
		}
	}
	return fallback
}
