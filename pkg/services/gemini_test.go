package services

import (
	"context"
	"errors"
	"testing"

	"ecochat/pkg/cache"
	"ecochat/pkg/config"
)

func TestExtractText(t *testing.T) {
	body := []byte(`{"candidates":[{"content":{"parts":[{"text":"use a reusable bottle"}]}}]}`)
	if got := extractText(body); got != "use a reusable bottle" {
		t.Fatalf("unexpected text %q", got)
	}
}

func TestExtractTextSkipsBlankParts(t *testing.T) {
	body := []byte(`{"candidates":[{"content":{"parts":[{"text":"  "},{"text":"compost"}]}}]}`)
	if got := extractText(body); got != "compost" {
		t.Fatalf("unexpected text %q", got)
	}
}

func TestExtractTextWellFormedButEmpty(t *testing.T) {
	cases := [][]byte{
		[]byte(`{}`),
		[]byte(`{"candidates":[]}`),
		[]byte(`{"candidates":[{"content":{"parts":[]}}]}`),
		[]byte(`{"candidates":[{"content":{"parts":[{"text":""}]}}]}`),
		[]byte(`not json`),
	}
	for _, body := range cases {
		if got := extractText(body); got != "" {
			t.Fatalf("body %s: expected empty, got %q", body, got)
		}
	}
}

func TestCompleteWhenDisabled(t *testing.T) {
	cfg := &config.Config{GeminiAPIKey: "k", GeminiModel: "m", GeminiEnabled: false, GeminiTimeoutSeconds: 1}
	s := NewGeminiService(cfg, cache.NewReplies(10))

	if _, err := s.Complete(context.Background(), "hi"); !errors.Is(err, ErrGeminiDisabled) {
		t.Fatalf("expected ErrGeminiDisabled, got %v", err)
	}
}

func TestCompleteWithoutAPIKey(t *testing.T) {
	cfg := &config.Config{GeminiModel: "m", GeminiEnabled: true, GeminiTimeoutSeconds: 1}
	s := NewGeminiService(cfg, cache.NewReplies(10))

	if _, err := s.Complete(context.Background(), "hi"); err == nil {
		t.Fatalf("expected an error without an api key")
	}
}

func TestCompleteServesCachedReply(t *testing.T) {
	replies := cache.NewReplies(10)
	cfg := &config.Config{GeminiAPIKey: "k", GeminiModel: "m", GeminiEnabled: true, GeminiTimeoutSeconds: 1, ReplyCacheTTLSeconds: 60}
	s := NewGeminiService(cfg, replies)

	// seed the cache; Complete must return it without calling out
	replies.Set(cache.Key("m", "hi"), "cached answer", 0)
	got, err := s.Complete(context.Background(), "hi")
	if err != nil {
		t.Fatalf("expected cached reply, got error %v", err)
	}
	if got != "cached answer" {
		t.Fatalf("unexpected reply %q", got)
	}
}

func TestIsRetriable(t *testing.T) {
	if isRetriable(nil) {
		t.Fatalf("nil error must not be retriable")
	}
	if !isRetriable(errors.New("status 503: overloaded")) {
		t.Fatalf("expected 503 to be retriable")
	}
	if !isRetriable(errors.New("status 429: RESOURCE_EXHAUSTED")) {
		t.Fatalf("expected 429 to be retriable")
	}
	if isRetriable(errors.New("status 400: bad request")) {
		t.Fatalf("expected 400 not to be retriable")
	}
}
