package services

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"
)

const (
	lineReplyURL          = "https://api.line.me/v2/bot/message/reply"
	lineContentURLFormat  = "https://api-data.line.me/v2/bot/message/%s/content"
	lineReplyTextMaxRunes = 1000
)

// LineService wraps the LINE Messaging API. When channel credentials are not
// configured it runs in dummy mode: signature checks pass, content fetches
// return a fixed body, and replies are logged instead of sent.
type LineService struct {
	channelSecret string
	accessToken   string
	httpClient    *http.Client
}

func NewLineService(channelSecret, accessToken string) *LineService {
	return &LineService{
		channelSecret: channelSecret,
		accessToken:   accessToken,
		httpClient:    &http.Client{Timeout: 30 * time.Second},
	}
}

func (s *LineService) DummyMode() bool {
	return s.channelSecret == "" || s.accessToken == ""
}

// VerifySignature checks the X-Line-Signature header against the raw webhook
// body. An unset channel secret skips verification.
func (s *LineService) VerifySignature(body []byte, signature string) bool {
	if s.channelSecret == "" {
		return true
	}
	mac := hmac.New(sha256.New, []byte(s.channelSecret))
	mac.Write(body)
	expected := base64.StdEncoding.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}

// GetMessageContent downloads the binary payload of an image, video or audio
// message.
func (s *LineService) GetMessageContent(ctx context.Context, messageID string) ([]byte, string, error) {
	if s.DummyMode() {
		return []byte("dummy content"), "application/octet-stream", nil
	}

	url := fmt.Sprintf(lineContentURLFormat, messageID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, "", fmt.Errorf("build content request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.accessToken)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("fetch message content: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("fetch message content: status %d", resp.StatusCode)
	}
	content, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", fmt.Errorf("read message content: %w", err)
	}
	return content, resp.Header.Get("Content-Type"), nil
}

// Reply sends text messages for a reply token. Each text is trimmed to the
// LINE limit of 1000 characters. Failures are logged, not returned: a missed
// reply must never fail the webhook acknowledgement.
func (s *LineService) Reply(ctx context.Context, replyToken string, texts ...string) {
	if s.DummyMode() {
		log.Printf("line reply (dummy): token=%s texts=%q", replyToken, texts)
		return
	}

	messages := make([]map[string]string, 0, len(texts))
	for _, text := range texts {
		messages = append(messages, map[string]string{
			"type": "text",
			"text": trimReplyText(text),
		})
	}
	payload, err := json.Marshal(map[string]any{
		"replyToken": replyToken,
		"messages":   messages,
	})
	if err != nil {
		log.Printf("line reply: marshal payload: %v", err)
		return
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, lineReplyURL, bytes.NewReader(payload))
	if err != nil {
		log.Printf("line reply: build request: %v", err)
		return
	}
	req.Header.Set("Authorization", "Bearer "+s.accessToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		log.Printf("line reply: send: %v", err)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		log.Printf("line reply: status %d: %s", resp.StatusCode, strings.TrimSpace(string(msg)))
	}
}

func trimReplyText(text string) string {
	runes := []rune(text)
	if len(runes) <= lineReplyTextMaxRunes {
		return text
	}
	return string(runes[:lineReplyTextMaxRunes])
}
