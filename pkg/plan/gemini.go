package plan

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dompet/dompet/internal/config"
	"github.com/google/generative-ai-go/genai"
	log "github.com/sirupsen/logrus"
	"google.golang.org/api/option"
)

var errNoAPIKey = errors.New("gemini API key is not configured")

// GeminiModel generates plan text with Google's Gemini API.
type GeminiModel struct {
	client  *genai.Client
	model   *genai.GenerativeModel
	timeout time.Duration
}

// NewGeminiModel builds the client once for the whole process. Any error here
// means plan generation stays disabled until restart.
func NewGeminiModel(ctx context.Context, cfg config.Gemini) (*GeminiModel, error) {
	if strings.TrimSpace(cfg.ApiKey) == "" {
		return nil, errNoAPIKey
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.ApiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	model := client.GenerativeModel(cfg.Model)
	model.SetTemperature(cfg.Temperature)
	model.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(systemInstruction)}}

	if cfg.Verify {
		info, err := model.Info(ctx)
		if err != nil {
			_ = client.Close()
			return nil, fmt.Errorf("failed to verify Gemini model %s: %w", cfg.Model, err)
		}
		log.Infof("Gemini model %s available (input token limit %d)", info.Name, info.InputTokenLimit)
	}

	return &GeminiModel{client: client, model: model, timeout: cfg.Timeout}, nil
}

func (m *GeminiModel) Generate(ctx context.Context, prompt string) (string, error) {
	if m.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, m.timeout)
		defer cancel()
	}

	resp, err := m.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("error generating content with Gemini: %w", err)
	}
	return responseText(resp)
}

func (m *GeminiModel) Close() error {
	return m.client.Close()
}

// responseText concatenates the text parts of the first candidate.
func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return "", errors.New("no candidates in Gemini response")
	}
	content := resp.Candidates[0].Content
	if content == nil {
		return "", fmt.Errorf("empty Gemini candidate (finish reason %v)", resp.Candidates[0].FinishReason)
	}

	var b strings.Builder
	for _, part := range content.Parts {
		if text, ok := part.(genai.Text); ok {
			b.WriteString(string(text))
		}
	}
	if b.Len() == 0 {
		return "", errors.New("no text in Gemini response")
	}
	return b.String(), nil
}
