package gpt

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/audifox1-ops/tw-forging-p15/api/internal/quote/types"
)

func (e *Engine) AnalyzeSheet(ctx context.Context, in types.SheetInput) (types.SheetResult, error) {
	userObj := map[string]any{
		"task":          "Read the parts list below and answer strictly with JSON per sheet.schema.json.",
		"material_hint": in.MaterialHint,
		"sheet_text":    in.SheetText,
	}
	userJSON, _ := json.Marshal(userObj)

	obj, err := e.complete(ctx, "sheet", "INPUT_JSON:\n"+string(userJSON))
	if err != nil {
		return types.SheetResult{}, err
	}
	var out types.SheetResult
	if err := json.Unmarshal([]byte(obj), &out); err != nil {
		return types.SheetResult{}, fmt.Errorf("openai sheet: bad JSON: %w", err)
	}
	return out, nil
}
