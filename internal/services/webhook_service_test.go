package services

import (
	"bytes"
	"context"
	"errors"
	"log"
	"os"
	"strings"
	"testing"

	"github.com/fairwaylab/swingcoach/internal/models"
	"github.com/fairwaylab/swingcoach/internal/repository"
)

// captureLog redirects the process logger for one test. Dummy-mode LINE
// replies go to the log, so this is how reply content is observed.
func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	log.SetOutput(&buf)
	t.Cleanup(func() { log.SetOutput(os.Stderr) })
	return &buf
}

type stubGuestStore struct {
	calls    int
	lineID   string
	username string
	email    string
}

func (s *stubGuestStore) EnsureLineGuest(_ context.Context, lineUserID, username, email, passwordHash string) (*models.User, error) {
	s.calls++
	s.lineID = lineUserID
	s.username = username
	s.email = email
	if passwordHash == "" {
		return nil, errors.New("empty password hash")
	}
	return &models.User{UserID: "guest-1", UserType: models.UserTypeGuest, LineUserID: &lineUserID}, nil
}

type stubVideoRecorder struct {
	created *repository.CreateVideoInput
}

func (s *stubVideoRecorder) Create(_ context.Context, input repository.CreateVideoInput) (*models.Video, error) {
	s.created = &input
	return &models.Video{VideoID: "v1", UserID: input.UserID, VideoURL: input.VideoURL}, nil
}

func TestHandleDeliveryRejectsMalformedBody(t *testing.T) {
	svc := NewWebhookService(nil, nil, nil, NewLineService("", ""))

	_, err := svc.HandleDelivery(context.Background(), []byte("{not json"))
	if !errors.Is(err, ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}

func TestHandleDeliveryCountsNonMessageEvents(t *testing.T) {
	svc := NewWebhookService(nil, nil, nil, NewLineService("", ""))

	body := []byte(`{"events":[{"type":"follow","source":{"userId":"U1"}},{"type":"unfollow","source":{"userId":"U1"}}]}`)
	handled, err := svc.HandleDelivery(context.Background(), body)
	if err != nil {
		t.Fatalf("HandleDelivery: %v", err)
	}
	if handled != 2 {
		t.Errorf("non-message events should be counted as handled no-ops, got %d", handled)
	}
}

func TestHandleDeliveryEmptyBatch(t *testing.T) {
	svc := NewWebhookService(nil, nil, nil, NewLineService("", ""))

	handled, err := svc.HandleDelivery(context.Background(), []byte(`{"events":[]}`))
	if err != nil || handled != 0 {
		t.Errorf("empty batch should handle zero events, got %d (%v)", handled, err)
	}
}

func TestTextMessageProvisionsGuest(t *testing.T) {
	guests := &stubGuestStore{}
	svc := NewWebhookService(guests, nil, nil, NewLineService("", ""))

	body := []byte(`{"events":[{"type":"message","replyToken":"r1","source":{"userId":"U1234567890"},"message":{"id":"m1","type":"text","text":"hello"}}]}`)
	handled, err := svc.HandleDelivery(context.Background(), body)
	if err != nil {
		t.Fatalf("HandleDelivery: %v", err)
	}
	if handled != 1 {
		t.Fatalf("expected 1 handled event, got %d", handled)
	}
	if guests.calls != 1 {
		t.Fatalf("expected one guest ensure, got %d", guests.calls)
	}
	if guests.lineID != "U1234567890" {
		t.Errorf("wrong line id %q", guests.lineID)
	}
	if !strings.HasPrefix(guests.username, "line_guest_") {
		t.Errorf("unexpected guest username %q", guests.username)
	}
	if !strings.HasSuffix(guests.email, "@line.local") {
		t.Errorf("unexpected guest email %q", guests.email)
	}
}

func TestVideoMessageStoredAsSwingVideo(t *testing.T) {
	guests := &stubGuestStore{}
	videos := &stubVideoRecorder{}
	storage := newTestStorage(t)
	// Dummy mode: content fetch returns a fixed body without calling LINE.
	svc := NewWebhookService(guests, videos, storage, NewLineService("", ""))

	body := []byte(`{"events":[{"type":"message","replyToken":"r1","source":{"userId":"U1"},"message":{"id":"m9","type":"video"}}]}`)
	handled, err := svc.HandleDelivery(context.Background(), body)
	if err != nil {
		t.Fatalf("HandleDelivery: %v", err)
	}
	if handled != 1 {
		t.Fatalf("expected 1 handled event, got %d", handled)
	}
	if videos.created == nil {
		t.Fatal("video row was not created")
	}
	if videos.created.UserID != "guest-1" {
		t.Errorf("video should belong to the guest, got %q", videos.created.UserID)
	}
	if videos.created.VideoURL == "" {
		t.Error("video row should reference the stored blob")
	}
	if _, _, err := storage.Download(context.Background(), videos.created.VideoURL); err != nil {
		t.Errorf("stored blob not readable: %v", err)
	}
}

func TestUnsupportedEventsStillGetReplies(t *testing.T) {
	logged := captureLog(t)
	guests := &stubGuestStore{}
	svc := NewWebhookService(guests, nil, nil, NewLineService("", ""))

	body := []byte(`{"events":[
		{"type":"message","replyToken":"r1","source":{"userId":"U1"},"message":{"id":"m1","type":"sticker"}},
		{"type":"postback","replyToken":"r2","source":{"userId":"U1"}}]}`)
	handled, err := svc.HandleDelivery(context.Background(), body)
	if err != nil {
		t.Fatalf("HandleDelivery: %v", err)
	}
	if handled != 2 {
		t.Fatalf("expected 2 handled events, got %d", handled)
	}
	if got := strings.Count(logged.String(), "line reply (dummy)"); got != 2 {
		t.Errorf("expected one reply per event, got %d replies in:\n%s", got, logged.String())
	}
}

func TestImageReplyIncludesStoredURL(t *testing.T) {
	logged := captureLog(t)
	guests := &stubGuestStore{}
	storage := newTestStorage(t)
	svc := NewWebhookService(guests, nil, storage, NewLineService("", ""))

	body := []byte(`{"events":[{"type":"message","replyToken":"r1","source":{"userId":"U1"},"message":{"id":"m2","type":"image"}}]}`)
	if _, err := svc.HandleDelivery(context.Background(), body); err != nil {
		t.Fatalf("HandleDelivery: %v", err)
	}
	if !strings.Contains(logged.String(), "Image received and stored.") {
		t.Errorf("missing image acknowledgement in:\n%s", logged.String())
	}
	if !strings.Contains(logged.String(), "/uploads/") {
		t.Errorf("image reply should carry the stored URL, got:\n%s", logged.String())
	}
}

func TestTextMessagesEchoOrHelp(t *testing.T) {
	logged := captureLog(t)
	guests := &stubGuestStore{}
	svc := NewWebhookService(guests, nil, nil, NewLineService("", ""))

	body := []byte(`{"events":[{"type":"message","replyToken":"r1","source":{"userId":"U1"},"message":{"id":"m3","type":"text","text":"nice shot"}}]}`)
	if _, err := svc.HandleDelivery(context.Background(), body); err != nil {
		t.Fatalf("HandleDelivery: %v", err)
	}
	if !strings.Contains(logged.String(), "Received: nice shot") {
		t.Errorf("plain text should be echoed, got:\n%s", logged.String())
	}

	logged.Reset()
	body = []byte(`{"events":[{"type":"message","replyToken":"r2","source":{"userId":"U1"},"message":{"id":"m4","type":"text","text":" HELP "}}]}`)
	if _, err := svc.HandleDelivery(context.Background(), body); err != nil {
		t.Fatalf("HandleDelivery: %v", err)
	}
	if !strings.Contains(logged.String(), "coach will review it") {
		t.Errorf("help keyword should return usage text, got:\n%s", logged.String())
	}
}

func TestExtensionFor(t *testing.T) {
	if got := extensionFor("application/x-unknown-thing", ".mp4"); got != ".mp4" {
		t.Errorf("unknown content type should fall back, got %q", got)
	}
	if got := extensionFor("", ".jpg"); got != ".jpg" {
		t.Errorf("empty content type should fall back, got %q", got)
	}
}
