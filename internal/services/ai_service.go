package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	openAIChatURL         = "https://api.openai.com/v1/chat/completions"
	coachCommentMaxLen    = 200
	overallFeedbackMaxLen = 300
	trainingMenuMaxLen    = 300
)

// SummaryResult carries the outcome of a summarization call. Degraded means
// the fallback (plain truncation) was used; callers log it instead of losing
// the distinction.
type SummaryResult struct {
	Text     string
	Degraded bool
	Reason   string
}

// AIService shortens coach-written text through the OpenAI chat API. Without
// an API key every call degrades to truncation, so feedback flows stay
// exercisable offline.
type AIService struct {
	apiKey     string
	httpClient *http.Client
}

func NewAIService(apiKey string) *AIService {
	return &AIService{
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (s *AIService) SummarizeCoachComment(ctx context.Context, comment string) SummaryResult {
	return s.summarize(ctx, comment, coachCommentMaxLen,
		"You are an experienced golf instructor. Summarize coaching comments concisely.",
		"Summarize the following golf coaching comment in at most %d characters, keeping the key points and improvements:\n\n%s")
}

func (s *AIService) SummarizeOverallFeedback(ctx context.Context, feedback string) SummaryResult {
	return s.summarize(ctx, feedback, overallFeedbackMaxLen,
		"You are an experienced golf instructor. Summarize overall swing feedback concisely.",
		"Summarize the following overall feedback on a golf swing in at most %d characters, including the overall assessment and main improvements:\n\n%s")
}

func (s *AIService) SummarizeTrainingMenu(ctx context.Context, menu string) SummaryResult {
	return s.summarize(ctx, menu, trainingMenuMaxLen,
		"You are an experienced golf instructor. Summarize practice menus concisely.",
		"Summarize the following golf practice menu in at most %d characters, including the concrete drills and their purpose:\n\n%s")
}

func (s *AIService) summarize(ctx context.Context, text string, maxLen int, system, promptFormat string) SummaryResult {
	if s.apiKey == "" {
		return SummaryResult{Text: truncate(text, maxLen), Degraded: true, Reason: "OPENAI_API_KEY not configured"}
	}

	summary, err := s.chatCompletion(ctx, system, fmt.Sprintf(promptFormat, maxLen, text))
	if err != nil {
		return SummaryResult{Text: truncate(text, maxLen), Degraded: true, Reason: err.Error()}
	}
	if summary == "" {
		return SummaryResult{Text: truncate(text, maxLen), Degraded: true, Reason: "empty completion"}
	}
	return SummaryResult{Text: summary}
}

func (s *AIService) chatCompletion(ctx context.Context, system, prompt string) (string, error) {
	payload := map[string]any{
		"model": "gpt-3.5-turbo",
		"messages": []map[string]string{
			{"role": "system", "content": system},
			{"role": "user", "content": prompt},
		},
		"max_tokens":  200,
		"temperature": 0.7,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal completion payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, openAIChatURL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build completion request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("completion call: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return "", fmt.Errorf("completion call: status %d: %s", resp.StatusCode, strings.TrimSpace(string(msg)))
	}

	var response struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return "", fmt.Errorf("decode completion response: %w", err)
	}
	if len(response.Choices) == 0 {
		return "", fmt.Errorf("completion response has no choices")
	}
	return strings.TrimSpace(response.Choices[0].Message.Content), nil
}

func truncate(text string, maxLen int) string {
	runes := []rune(text)
	if len(runes) <= maxLen {
		return text
	}
	return string(runes[:maxLen]) + "..."
}
