package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"ecochat/pkg/cache"
	"ecochat/pkg/config"
)

// Completer is the external text-completion collaborator: a prompt in,
// plain text out. An empty reply with a nil error means the upstream
// answered well-formed but carried no usable text.
type Completer interface {
	Complete(ctx context.Context, userText string) (string, error)
}

// systemInstruction keeps the assistant on the sustainability topic.
const systemInstruction = "You are a sustainability assistant that helps users reduce their carbon footprint " +
	"and live more eco-friendly lives. Provide practical, actionable advice about " +
	"sustainable living, renewable energy, reducing waste, conserving resources, " +
	"and environmental protection. Keep responses informative but concise."

var ErrGeminiDisabled = errors.New("gemini is disabled via config")

// GeminiService calls the Gemini generateContent REST endpoint.
type GeminiService struct {
	apiKey   string
	model    string
	enabled  bool
	timeout  time.Duration
	replies  *cache.Replies
	cacheTTL time.Duration
}

func NewGeminiService(cfg *config.Config, replies *cache.Replies) *GeminiService {
	return &GeminiService{
		apiKey:   cfg.GeminiAPIKey,
		model:    cfg.GeminiModel,
		enabled:  cfg.GeminiEnabled,
		timeout:  cfg.GeminiTimeout(),
		replies:  replies,
		cacheTTL: time.Duration(cfg.ReplyCacheTTLSeconds) * time.Second,
	}
}

func (s *GeminiService) Complete(ctx context.Context, userText string) (string, error) {
	if !s.enabled {
		log.Printf("[gemini] disabled via config (IS_GEMINI_ENABLED != 1)")
		return "", ErrGeminiDisabled
	}
	if strings.TrimSpace(s.apiKey) == "" {
		log.Printf("[gemini] GEMINI_API_KEY is not set")
		return "", fmt.Errorf("GEMINI_API_KEY is not set")
	}

	key := cache.Key(s.model, userText)
	if text, ok := s.replies.Get(key); ok {
		return text, nil
	}

	// upper-bound timeout on the outbound call
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	text, err := s.callGenerateContent(ctx, userText)
	if err != nil && isRetriable(err) {
		sleepWithContext(ctx, 2*time.Second)
		text, err = s.callGenerateContent(ctx, userText)
	}
	if err != nil {
		log.Printf("[gemini] model %s failed: %v", s.model, err)
		return "", err
	}

	text = strings.TrimSpace(text)
	if text != "" {
		s.replies.Set(key, text, s.cacheTTL)
	}
	return text, nil
}

func (s *GeminiService) callGenerateContent(ctx context.Context, userText string) (string, error) {
	reqBody := map[string]any{
		"systemInstruction": map[string]any{
			"parts": []any{map[string]any{"text": systemInstruction}},
		},
		"contents": []any{
			map[string]any{
				"role":  "user",
				"parts": []any{map[string]any{"text": userText}},
			},
		},
		"generationConfig": map[string]any{
			"temperature":     0.7,
			"maxOutputTokens": 800,
		},
	}
	bodyBytes, _ := json.Marshal(reqBody)

	url := fmt.Sprintf("https://generativelanguage.googleapis.com/v1beta/models/%s:generateContent?key=%s", s.model, s.apiKey)
	log.Printf("[gemini] using model %s", s.model)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(bodyBytes))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("http error: %w", err)
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read error: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(respBytes)))
	}

	return extractText(respBytes), nil
}

// extractText pulls the first candidate part's text out of a
// generateContent response. A well-formed body with no text yields "".
func extractText(body []byte) string {
	var parsed map[string]any
	if err := json.Unmarshal(body, &parsed); err != nil {
		return ""
	}
	cands, ok := parsed["candidates"].([]any)
	if !ok || len(cands) == 0 {
		return ""
	}
	first, ok := cands[0].(map[string]any)
	if !ok {
		return ""
	}
	content, ok := first["content"].(map[string]any)
	if !ok {
		return ""
	}
	parts, ok := content["parts"].([]any)
	if !ok {
		return ""
	}
	for _, p := range parts {
		if pm, ok := p.(map[string]any); ok {
			if txt, ok := pm["text"].(string); ok && strings.TrimSpace(txt) != "" {
				return txt
			}
		}
	}
	return ""
}

func isRetriable(err error) bool {
	if err == nil {
		return false
	}
	e := strings.ToLower(err.Error())
	if strings.Contains(e, "status 503") || strings.Contains(e, "unavailable") {
		return true
	}
	if strings.Contains(e, "status 429") || strings.Contains(e, "resource_exhausted") || strings.Contains(e, "quota") {
		return true
	}
	return false
}

func sleepWithContext(ctx context.Context, d time.Duration) {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
	case <-ctx.Done():
	}
}
