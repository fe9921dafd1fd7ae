package plan

import (
	"testing"

	"github.com/dompet/dompet/internal/config"
	"github.com/google/generative-ai-go/genai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGeminiModel_WithoutKey(t *testing.T) {
	// given
	cfg := config.Defaults().Gemini
	cfg.ApiKey = "   "

	// when
	model, err := NewGeminiModel(ctx, cfg)

	// then
	assert.Nil(t, model)
	assert.ErrorIs(t, err, errNoAPIKey)
}

func TestResponseText(t *testing.T) {
	t.Run("should join text parts of the first candidate", func(t *testing.T) {
		resp := &genai.GenerateContentResponse{
			Candidates: []*genai.Candidate{
				{Content: &genai.Content{Parts: []genai.Part{genai.Text("```json\n"), genai.Text("{}\n```")}}},
				{Content: &genai.Content{Parts: []genai.Part{genai.Text("ignored")}}},
			},
		}

		text, err := responseText(resp)

		require.NoError(t, err)
		assert.Equal(t, "```json\n{}\n```", text)
	})

	t.Run("should fail without candidates", func(t *testing.T) {
		_, err := responseText(&genai.GenerateContentResponse{})
		assert.Error(t, err)
		_, err = responseText(nil)
		assert.Error(t, err)
	})

	t.Run("should fail without content", func(t *testing.T) {
		_, err := responseText(&genai.GenerateContentResponse{Candidates: []*genai.Candidate{{}}})
		assert.Error(t, err)
	})

	t.Run("should fail without text parts", func(t *testing.T) {
		resp := &genai.GenerateContentResponse{
			Candidates: []*genai.Candidate{{Content: &genai.Content{Parts: []genai.Part{genai.Blob{MIMEType: "image/png"}}}}},
		}
		_, err := responseText(resp)
		assert.Error(t, err)
	})
}
