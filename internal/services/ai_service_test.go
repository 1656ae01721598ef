package services

import (
	"context"
	"strings"
	"testing"
)

func TestSummarizeWithoutKeyDegradesToTruncation(t *testing.T) {
	svc := NewAIService("")
	long := strings.Repeat("a", 500)

	result := svc.SummarizeCoachComment(context.Background(), long)
	if !result.Degraded {
		t.Fatal("expected degraded result without API key")
	}
	if result.Reason == "" {
		t.Error("degraded result should carry a reason")
	}
	if result.Text != long[:coachCommentMaxLen]+"..." {
		t.Errorf("unexpected truncation: got %d chars", len(result.Text))
	}
}

func TestSummarizeShortTextKeptVerbatim(t *testing.T) {
	svc := NewAIService("")

	result := svc.SummarizeOverallFeedback(context.Background(), "keep your head down")
	if !result.Degraded {
		t.Fatal("expected degraded result without API key")
	}
	if result.Text != "keep your head down" {
		t.Errorf("short text should pass through, got %q", result.Text)
	}
}

func TestTruncateCountsRunes(t *testing.T) {
	text := strings.Repeat("スイング", 100)

	got := truncate(text, 10)
	if runes := []rune(got); len(runes) != 13 { // 10 runes + "..."
		t.Errorf("expected 13 runes, got %d", len(runes))
	}
	if !strings.HasSuffix(got, "...") {
		t.Errorf("expected ellipsis suffix, got %q", got)
	}
}
