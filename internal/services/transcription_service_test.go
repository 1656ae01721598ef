package services

import (
	"context"
	"testing"
)

func TestTranscribeWithoutKeyReturnsPlaceholder(t *testing.T) {
	svc := NewTranscriptionService("")

	result, err := svc.Transcribe(context.Background(), []byte("audio"), "memo.m4a", "ja")
	if err != nil {
		t.Fatalf("placeholder path must not error: %v", err)
	}
	if !result.Degraded {
		t.Fatal("expected degraded result without API key")
	}
	if result.Text != placeholderTranscript {
		t.Errorf("expected fixed placeholder, got %q", result.Text)
	}
	if result.Language != "ja" {
		t.Errorf("language should be echoed, got %q", result.Language)
	}
}

func TestTranscribeWithTimestampsWithoutKey(t *testing.T) {
	svc := NewTranscriptionService("")

	result, err := svc.TranscribeWithTimestamps(context.Background(), []byte("audio"), "memo.m4a", "en")
	if err != nil {
		t.Fatalf("placeholder path must not error: %v", err)
	}
	if !result.Degraded || result.Text != placeholderTranscript {
		t.Errorf("expected degraded placeholder result, got %+v", result)
	}
	if len(result.Segments) != 0 {
		t.Errorf("placeholder result should have no segments")
	}
}
