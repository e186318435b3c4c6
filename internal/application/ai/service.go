package ai

import (
	"context"
	"fmt"
	"time"

	"github.com/lms-api/internal/domain"
	aiclient "github.com/lms-api/internal/infrastructure/ai"
	"github.com/lms-api/internal/pkg/id"
)

const presignTTL = 24 * time.Hour

type GenerateLessonRequest struct {
	Prompt   string `json:"prompt" validate:"required"`
	Language string `json:"language"`
}

type ChatRequest struct {
	Message  string                 `json:"message" validate:"required"`
	Language string                 `json:"language"`
	History  []aiclient.ChatMessage `json:"history"`
}

type SynthesizeRequest struct {
	Text     string  `json:"text" validate:"required"`
	Voice    *string `json:"voice"`
	Language string  `json:"language"`
}

type SynthesizeResult struct {
	AudioURL string `json:"audio_url"`
	Key      string `json:"key"`
}

// Upstreams is the slice of the AI client the proxy endpoints use.
type Upstreams interface {
	GenerateLesson(ctx context.Context, prompt, language string) (map[string]interface{}, error)
	Chat(ctx context.Context, message, language string, history []aiclient.ChatMessage) (map[string]interface{}, error)
	Synthesize(ctx context.Context, text string, voice *string, language string) (map[string]interface{}, error)
}

// AudioStore persists synthesized audio and hands out time-limited links.
type AudioStore interface {
	UploadBase64(ctx context.Context, key, b64Data string) error
	PresignedURL(ctx context.Context, key string, ttl time.Duration) (string, error)
}

type Service interface {
	GenerateLesson(ctx context.Context, req GenerateLessonRequest) (map[string]interface{}, error)
	Chat(ctx context.Context, req ChatRequest) (map[string]interface{}, error)
	// Synthesize proxies text to the TTS upstream, stores the returned
	// audio and replies with a presigned URL instead of raw bytes.
	Synthesize(ctx context.Context, req SynthesizeRequest) (*SynthesizeResult, error)
}

type ServiceDeps struct {
	Upstreams  Upstreams
	AudioStore AudioStore
}

type service struct {
	upstreams  Upstreams
	audioStore AudioStore
}

func NewService(deps ServiceDeps) Service {
	return &service{
		upstreams:  deps.Upstreams,
		audioStore: deps.AudioStore,
	}
}

func (s *service) GenerateLesson(ctx context.Context, req GenerateLessonRequest) (map[string]interface{}, error) {
	return s.upstreams.GenerateLesson(ctx, req.Prompt, lang(req.Language))
}

func (s *service) Chat(ctx context.Context, req ChatRequest) (map[string]interface{}, error) {
	return s.upstreams.Chat(ctx, req.Message, lang(req.Language), req.History)
}

func (s *service) Synthesize(ctx context.Context, req SynthesizeRequest) (*SynthesizeResult, error) {
	resp, err := s.upstreams.Synthesize(ctx, req.Text, req.Voice, lang(req.Language))
	if err != nil {
		return nil, err
	}
	b64, ok := resp["audio"].(string)
	if !ok || b64 == "" {
		return nil, fmt.Errorf("tts response missing audio: %w", domain.ErrUpstream)
	}

	key := "tts/" + id.New() + ".mp3"
	if err := s.audioStore.UploadBase64(ctx, key, b64); err != nil {
		return nil, err
	}
	url, err := s.audioStore.PresignedURL(ctx, key, presignTTL)
	if err != nil {
		return nil, err
	}
	return &SynthesizeResult{AudioURL: url, Key: key}, nil
}

func lang(l string) string {
	if l == "" {
		return "en"
	}
	return l
}
