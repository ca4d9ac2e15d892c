package gpt

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/audifox1-ops/tw-forging-p15/api/internal/quote/types"
)

func (e *Engine) EstimateIngot(ctx context.Context, in types.IngotInput) (types.IngotResult, error) {
	userObj := map[string]any{
		"task":  "Back-calculate the ingot weight and answer strictly with JSON per ingot.schema.json.",
		"input": in,
	}
	userJSON, _ := json.Marshal(userObj)

	obj, err := e.complete(ctx, "ingot", "INPUT_JSON:\n"+string(userJSON))
	if err != nil {
		return types.IngotResult{}, err
	}
	var out types.IngotResult
	if err := json.Unmarshal([]byte(obj), &out); err != nil {
		return types.IngotResult{}, fmt.Errorf("openai ingot: bad JSON: %w", err)
	}
	return out, nil
}
