package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/fairwaylab/swingcoach/internal/models"
)

func newTestStorage(t *testing.T) *LocalStorage {
	t.Helper()
	storage, err := NewLocalStorage(t.TempDir())
	if err != nil {
		t.Fatalf("NewLocalStorage: %v", err)
	}
	return storage
}

func TestLocalUploadDownloadDelete(t *testing.T) {
	storage := newTestStorage(t)
	ctx := context.Background()

	url, err := storage.UploadFileExact(ctx, []byte("swing bytes"), "clips/test.mp4", "video/mp4")
	if err != nil {
		t.Fatalf("UploadFileExact: %v", err)
	}
	if url != "/uploads/clips/test.mp4" {
		t.Errorf("unexpected url %q", url)
	}

	content, contentType, err := storage.Download(ctx, url)
	if err != nil {
		t.Fatalf("Download: %v", err)
	}
	if string(content) != "swing bytes" {
		t.Errorf("content round trip failed: %q", content)
	}
	if contentType == "" {
		t.Error("content type should never be empty")
	}

	if !storage.DeleteFile(ctx, url) {
		t.Error("DeleteFile should succeed for an existing blob")
	}
	if storage.DeleteFile(ctx, url) {
		t.Error("DeleteFile should report false for a missing blob")
	}
}

func TestLocalUploadFileGeneratesUniqueName(t *testing.T) {
	storage := newTestStorage(t)

	url, err := storage.UploadFile(context.Background(), []byte("x"), "original.mov", "video/quicktime")
	if err != nil {
		t.Fatalf("UploadFile: %v", err)
	}
	if !strings.HasPrefix(url, "/uploads/") || !strings.HasSuffix(url, ".mov") {
		t.Errorf("generated name should keep extension under /uploads, got %q", url)
	}
	if strings.Contains(url, "original") {
		t.Errorf("generated name should not reuse the original filename, got %q", url)
	}
}

func TestLocalJSONRoundTripWithMarkup(t *testing.T) {
	storage := newTestStorage(t)
	ctx := context.Background()

	size := 4.0
	doc := map[string][]models.MarkupObject{
		"section-1": {
			{Type: "line", Coordinates: []float64{0.1, 0.2, 0.8, 0.9}, Color: "#ff0000", Size: &size},
			{Type: "circle", Coordinates: []float64{0.5, 0.5}, Color: "#00ff00"},
		},
	}
	if _, err := storage.SaveJSON(ctx, "markups/video-1.json", doc); err != nil {
		t.Fatalf("SaveJSON: %v", err)
	}

	loaded, ok := storage.GetJSON(ctx, "markups/video-1.json")
	if !ok {
		t.Fatal("GetJSON should find the saved document")
	}
	objects, ok := loaded["section-1"].([]any)
	if !ok || len(objects) != 2 {
		t.Fatalf("expected 2 markup objects, got %v", loaded["section-1"])
	}
	first, ok := objects[0].(map[string]any)
	if !ok || first["type"] != "line" || first["color"] != "#ff0000" {
		t.Errorf("nested markup fields lost: %v", objects[0])
	}
}

func TestLocalGetJSONMissing(t *testing.T) {
	storage := newTestStorage(t)
	if _, ok := storage.GetJSON(context.Background(), "markups/nope.json"); ok {
		t.Error("GetJSON should report false for a missing document")
	}
}

func TestLocalListFiles(t *testing.T) {
	storage := newTestStorage(t)
	ctx := context.Background()

	for _, name := range []string{"sections/a.jpg", "sections/b.jpg", "clips/c.mp4"} {
		if _, err := storage.UploadFileExact(ctx, []byte("x"), name, ""); err != nil {
			t.Fatalf("UploadFileExact(%s): %v", name, err)
		}
	}

	files, err := storage.ListFiles(ctx, "sections")
	if err != nil {
		t.Fatalf("ListFiles: %v", err)
	}
	if len(files) != 2 {
		t.Errorf("expected 2 files under sections, got %v", files)
	}

	empty, err := storage.ListFiles(ctx, "missing-prefix")
	if err != nil || len(empty) != 0 {
		t.Errorf("missing prefix should list nothing, got %v (%v)", empty, err)
	}
}

func TestLocalSignedURLIsPlainURL(t *testing.T) {
	storage := newTestStorage(t)

	signed, err := storage.SignedURL(context.Background(), "/uploads/clips/test.mp4?x=1", time.Hour)
	if err != nil {
		t.Fatalf("SignedURL: %v", err)
	}
	if signed != "/uploads/clips/test.mp4" {
		t.Errorf("local signing should strip query and return the plain URL, got %q", signed)
	}
}

func TestLocalExtractNameTakesFullURLs(t *testing.T) {
	storage := newTestStorage(t)
	ctx := context.Background()

	if _, err := storage.UploadFileExact(ctx, []byte("swing bytes"), "clips/full.mp4", "video/mp4"); err != nil {
		t.Fatalf("UploadFileExact: %v", err)
	}

	signed, err := storage.SignedURL(ctx, "http://localhost:3000/uploads/clips/full.mp4?x=1", time.Hour)
	if err != nil {
		t.Fatalf("SignedURL: %v", err)
	}
	if signed != "/uploads/clips/full.mp4" {
		t.Errorf("fully qualified URL should reduce to the plain path, got %q", signed)
	}

	if !storage.DeleteFile(ctx, "http://localhost:3000/uploads/clips/full.mp4") {
		t.Error("DeleteFile should accept a fully qualified URL")
	}
}

func TestUniqueBlobNameFormat(t *testing.T) {
	now := time.Date(2025, 3, 1, 15, 0, 0, 0, time.UTC)

	name := uniqueBlobName("swing.MOV", now)
	if !strings.HasSuffix(name, ".MOV") {
		t.Errorf("extension should be preserved, got %q", name)
	}
	// 2025-03-01 15:00 UTC is 2025-03-02 00:00 JST.
	if !strings.HasPrefix(name, "20250302000000_") {
		t.Errorf("name should start with a JST timestamp, got %q", name)
	}
}
