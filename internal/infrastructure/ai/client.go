package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/lms-api/internal/config"
	"github.com/lms-api/internal/domain"
)

// Client proxies requests to the externally hosted AI generation services.
// Every call carries an explicit timeout budget; any transport failure or
// non-2xx response surfaces as a domain.ErrUpstream so handlers map it to 502.
type Client struct {
	httpClient *http.Client
	lessonURL  string
	quizURL    string
	tutorURL   string
	ttsURL     string
}

// ChatMessage is one turn of tutor-chat history.
type ChatMessage map[string]string

// GeneratedQuestion mirrors the quiz generator's response items.
type GeneratedQuestion struct {
	Question    string   `json:"question"`
	Options     []string `json:"options"`
	Answer      *string  `json:"answer"`
	Explanation *string  `json:"explanation"`
}

func NewClient(cfg *config.Config) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: cfg.AITimeout},
		lessonURL:  cfg.LessonGeneratorURL,
		quizURL:    cfg.QuizGeneratorURL,
		tutorURL:   cfg.AITutorURL,
		ttsURL:     cfg.TTSServiceURL,
	}
}

// GenerateLesson asks the lesson generator to produce lesson content.
func (c *Client) GenerateLesson(ctx context.Context, prompt, language string) (map[string]interface{}, error) {
	if c.lessonURL == "" {
		return nil, fmt.Errorf("lesson generator not configured: %w", domain.ErrUnavailable)
	}
	return c.post(ctx, "lesson generator", c.lessonURL, map[string]interface{}{
		"prompt":   prompt,
		"language": language,
	})
}

// GenerateQuiz asks the quiz generator for count questions about the lesson content.
func (c *Client) GenerateQuiz(ctx context.Context, lessonContent string, count int) ([]GeneratedQuestion, error) {
	if c.quizURL == "" {
		return nil, fmt.Errorf("quiz generator not configured: %w", domain.ErrUnavailable)
	}
	raw, err := c.post(ctx, "quiz generator", c.quizURL, map[string]interface{}{
		"lesson": lessonContent,
		"count":  count,
	})
	if err != nil {
		return nil, err
	}
	// Re-marshal the loosely-typed "questions" array into typed questions;
	// malformed items from the generator are rejected here, not stored.
	buf, err := json.Marshal(raw["questions"])
	if err != nil {
		return nil, fmt.Errorf("quiz generator error: %v: %w", err, domain.ErrUpstream)
	}
	var questions []GeneratedQuestion
	if err := json.Unmarshal(buf, &questions); err != nil {
		return nil, fmt.Errorf("quiz generator error: %v: %w", err, domain.ErrUpstream)
	}
	return questions, nil
}

// Chat relays a message (plus optional history) to the AI tutor.
func (c *Client) Chat(ctx context.Context, message, language string, history []ChatMessage) (map[string]interface{}, error) {
	if c.tutorURL == "" {
		return nil, fmt.Errorf("AI tutor not configured: %w", domain.ErrUnavailable)
	}
	payload := map[string]interface{}{
		"message":  message,
		"language": language,
	}
	if history != nil {
		payload["history"] = history
	}
	return c.post(ctx, "AI tutor", c.tutorURL, payload)
}

// TutorConfigured reports whether the tutor endpoint is set; callers that
// treat AI feedback as best-effort check this before calling Chat.
func (c *Client) TutorConfigured() bool { return c.tutorURL != "" }

// Synthesize asks the TTS worker to render text; the worker returns a URL or
// base64 audio.
func (c *Client) Synthesize(ctx context.Context, text string, voice *string, language string) (map[string]interface{}, error) {
	if c.ttsURL == "" {
		return nil, fmt.Errorf("TTS service not configured: %w", domain.ErrUnavailable)
	}
	return c.post(ctx, "TTS service", c.ttsURL, map[string]interface{}{
		"text":     text,
		"voice":    voice,
		"language": language,
	})
}

func (c *Client) post(ctx context.Context, name, url string, payload interface{}) (map[string]interface{}, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s error: %v: %w", name, err, domain.ErrUpstream)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("%s error: status %d: %w", name, resp.StatusCode, domain.ErrUpstream)
	}

	var out map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("%s error: %v: %w", name, err, domain.ErrUpstream)
	}
	return out, nil
}

// WithTimeout overrides the per-call timeout (used by tests).
func (c *Client) WithTimeout(d time.Duration) *Client {
	c.httpClient.Timeout = d
	return c
}
