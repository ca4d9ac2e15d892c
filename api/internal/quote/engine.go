package quote

import (
	"context"
	"errors"
	"strings"

	"github.com/audifox1-ops/tw-forging-p15/api/internal/quote/types"
)

// Engine is one LLM provider. Every operation is a single outbound call;
// the engine owns prompt assembly, retry and JSON cleanup.
type Engine interface {
	Name() string
	GetModel() string
	AnalyzeDrawing(ctx context.Context, in types.DrawingInput) (types.DrawingResult, error)
	AnalyzeSheet(ctx context.Context, in types.SheetInput) (types.SheetResult, error)
	EstimateIngot(ctx context.Context, in types.IngotInput) (types.IngotResult, error)
}

type Engines struct {
	Gemini Engine
	OpenAI Engine
}

// Get resolves the per-request llm_name. Gemini is the default.
func (e *Engines) Get(llmName string) (Engine, error) {
	switch strings.ToLower(strings.TrimSpace(llmName)) {
	case "", "gemini":
		if e.Gemini == nil {
			return nil, errors.New("gemini engine is not configured")
		}
		return e.Gemini, nil
	case "gpt", "openai":
		if e.OpenAI == nil {
			return nil, errors.New("openai engine is not configured")
		}
		return e.OpenAI, nil
	default:
		return nil, errors.New("unknown llm_name; use 'gemini' or 'gpt'")
	}
}
