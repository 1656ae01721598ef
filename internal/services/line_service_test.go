package services

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"strings"
	"testing"
)

func signBody(secret string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

func TestVerifySignature(t *testing.T) {
	svc := NewLineService("channel-secret", "token")
	body := []byte(`{"events":[]}`)

	if !svc.VerifySignature(body, signBody("channel-secret", body)) {
		t.Error("valid signature rejected")
	}
	if svc.VerifySignature(body, signBody("wrong-secret", body)) {
		t.Error("signature from wrong secret accepted")
	}
	if svc.VerifySignature(body, "not-base64") {
		t.Error("garbage signature accepted")
	}
}

func TestVerifySignatureSkippedWithoutSecret(t *testing.T) {
	svc := NewLineService("", "")
	if !svc.VerifySignature([]byte("anything"), "whatever") {
		t.Error("verification should pass when no channel secret is configured")
	}
}

func TestTrimReplyText(t *testing.T) {
	long := strings.Repeat("ナイスショット", 300)

	trimmed := trimReplyText(long)
	if runes := []rune(trimmed); len(runes) != lineReplyTextMaxRunes {
		t.Errorf("expected %d runes, got %d", lineReplyTextMaxRunes, len(runes))
	}

	if trimReplyText("short") != "short" {
		t.Error("short text should pass through unchanged")
	}
}

func TestDummyMode(t *testing.T) {
	if !NewLineService("", "token").DummyMode() {
		t.Error("missing secret should force dummy mode")
	}
	if NewLineService("secret", "token").DummyMode() {
		t.Error("full credentials should disable dummy mode")
	}
}
