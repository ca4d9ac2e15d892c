package quote

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/audifox1-ops/tw-forging-p15/api/internal/quote/types"
)

type stubEngine struct{ name string }

func (s *stubEngine) Name() string     { return s.name }
func (s *stubEngine) GetModel() string { return "stub-model" }
func (s *stubEngine) AnalyzeDrawing(context.Context, types.DrawingInput) (types.DrawingResult, error) {
	return types.DrawingResult{}, nil
}
func (s *stubEngine) AnalyzeSheet(context.Context, types.SheetInput) (types.SheetResult, error) {
	return types.SheetResult{}, nil
}
func (s *stubEngine) EstimateIngot(context.Context, types.IngotInput) (types.IngotResult, error) {
	return types.IngotResult{}, nil
}

func TestEnginesGet(t *testing.T) {
	gem := &stubEngine{name: "gemini"}
	oai := &stubEngine{name: "gpt"}
	engs := &Engines{Gemini: gem, OpenAI: oai}

	for _, name := range []string{"", "gemini", " Gemini "} {
		e, err := engs.Get(name)
		require.NoError(t, err, "llm_name=%q", name)
		assert.Same(t, gem, e)
	}
	for _, name := range []string{"gpt", "openai", "GPT"} {
		e, err := engs.Get(name)
		require.NoError(t, err, "llm_name=%q", name)
		assert.Same(t, oai, e)
	}

	_, err := engs.Get("claude")
	assert.Error(t, err)
}

func TestEnginesGetUnconfigured(t *testing.T) {
	engs := &Engines{Gemini: &stubEngine{name: "gemini"}}
	_, err := engs.Get("gpt")
	assert.Error(t, err)

	_, err = (&Engines{}).Get("")
	assert.Error(t, err)
}
