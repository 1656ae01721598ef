package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"
)

const (
	whisperURL = "https://api.openai.com/v1/audio/transcriptions"

	placeholderTranscript = "Transcription is not configured. Set OPENAI_API_KEY to enable " +
		"speech-to-text for voice feedback."
)

// TranscriptSegment is one timestamped chunk of a transcription.
type TranscriptSegment struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
}

// TranscriptionResult carries the transcript plus a degraded flag when the
// placeholder was returned instead of a real Whisper response.
type TranscriptionResult struct {
	Text     string
	Language string
	Duration float64
	Segments []TranscriptSegment
	Degraded bool
	Reason   string
}

// TranscriptionService turns voice-memo audio into text via Whisper. With no
// API key it returns a fixed placeholder transcript as a success, never an
// error, so voice flows keep working in development.
type TranscriptionService struct {
	apiKey     string
	httpClient *http.Client
}

func NewTranscriptionService(apiKey string) *TranscriptionService {
	return &TranscriptionService{
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 60 * time.Second},
	}
}

func (s *TranscriptionService) Transcribe(ctx context.Context, audio []byte, filename, language string) (TranscriptionResult, error) {
	if s.apiKey == "" {
		return TranscriptionResult{Text: placeholderTranscript, Language: language, Degraded: true, Reason: "OPENAI_API_KEY not configured"}, nil
	}

	body, err := s.callWhisper(ctx, audio, filename, language, "json")
	if err != nil {
		return TranscriptionResult{Text: placeholderTranscript, Language: language, Degraded: true, Reason: err.Error()}, nil
	}

	var response struct {
		Text string `json:"text"`
	}
	if err := json.Unmarshal(body, &response); err != nil {
		return TranscriptionResult{Text: placeholderTranscript, Language: language, Degraded: true, Reason: fmt.Sprintf("decode whisper response: %v", err)}, nil
	}
	return TranscriptionResult{Text: strings.TrimSpace(response.Text), Language: language}, nil
}

// TranscribeWithTimestamps uses verbose output to also return per-segment
// timing, for aligning voice feedback with swing sections.
func (s *TranscriptionService) TranscribeWithTimestamps(ctx context.Context, audio []byte, filename, language string) (TranscriptionResult, error) {
	if s.apiKey == "" {
		return TranscriptionResult{Text: placeholderTranscript, Language: language, Degraded: true, Reason: "OPENAI_API_KEY not configured"}, nil
	}

	body, err := s.callWhisper(ctx, audio, filename, language, "verbose_json")
	if err != nil {
		return TranscriptionResult{Text: placeholderTranscript, Language: language, Degraded: true, Reason: err.Error()}, nil
	}

	var response struct {
		Text     string  `json:"text"`
		Language string  `json:"language"`
		Duration float64 `json:"duration"`
		Segments []struct {
			Start float64 `json:"start"`
			End   float64 `json:"end"`
			Text  string  `json:"text"`
		} `json:"segments"`
	}
	if err := json.Unmarshal(body, &response); err != nil {
		return TranscriptionResult{Text: placeholderTranscript, Language: language, Degraded: true, Reason: fmt.Sprintf("decode whisper response: %v", err)}, nil
	}

	result := TranscriptionResult{
		Text:     strings.TrimSpace(response.Text),
		Language: response.Language,
		Duration: response.Duration,
	}
	for _, seg := range response.Segments {
		result.Segments = append(result.Segments, TranscriptSegment{
			Start: seg.Start,
			End:   seg.End,
			Text:  strings.TrimSpace(seg.Text),
		})
	}
	return result, nil
}

func (s *TranscriptionService) callWhisper(ctx context.Context, audio []byte, filename, language, format string) ([]byte, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return nil, fmt.Errorf("build whisper form: %w", err)
	}
	if _, err := part.Write(audio); err != nil {
		return nil, fmt.Errorf("build whisper form: %w", err)
	}
	_ = writer.WriteField("model", "whisper-1")
	_ = writer.WriteField("response_format", format)
	if language != "" {
		_ = writer.WriteField("language", language)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("build whisper form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, whisperURL, &buf)
	if err != nil {
		return nil, fmt.Errorf("build whisper request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("whisper call: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return nil, fmt.Errorf("whisper call: status %d: %s", resp.StatusCode, strings.TrimSpace(string(msg)))
	}
	return io.ReadAll(resp.Body)
}
