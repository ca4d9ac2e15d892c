package gpt

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/audifox1-ops/tw-forging-p15/api/internal/quote/types"
	"github.com/audifox1-ops/tw-forging-p15/api/internal/util"
)

// AnalyzeDrawing relays the drawing as an image_url data-URL. The
// chat-completions image input takes photo types only, so PDFs must go to
// the gemini engine.
func (e *Engine) AnalyzeDrawing(ctx context.Context, in types.DrawingInput) (types.DrawingResult, error) {
	fileBytes, mimeFromDataURL, err := util.DecodeBase64MaybeDataURL(in.FileB64)
	if err != nil {
		return types.DrawingResult{}, fmt.Errorf("openai drawing: bad base64: %w", err)
	}
	finalMIME := util.PickMIME(in.Mime, mimeFromDataURL, fileBytes)
	if !isImageMIME(finalMIME) {
		return types.DrawingResult{}, fmt.Errorf("openai drawing: unsupported mime %q (use gemini for PDF)", finalMIME)
	}

	var hints strings.Builder
	if s := strings.TrimSpace(in.MaterialHint); s != "" {
		fmt.Fprintf(&hints, " material_hint=%q.", s)
	}
	if s := strings.TrimSpace(in.UnitHint); s != "" {
		fmt.Fprintf(&hints, " unit_hint=%q.", s)
	}

	userContent := []contentPart{
		{Type: "text", Text: "Answer strictly with JSON per drawing.schema.json. No comments." + hints.String()},
		{Type: "image_url", ImageURL: &imageURL{
			URL: util.MakeDataURL(finalMIME, base64.StdEncoding.EncodeToString(fileBytes)),
		}},
	}

	obj, err := e.complete(ctx, "drawing", userContent)
	if err != nil {
		return types.DrawingResult{}, err
	}
	var out types.DrawingResult
	if err := json.Unmarshal([]byte(obj), &out); err != nil {
		return types.DrawingResult{}, fmt.Errorf("openai drawing: bad JSON: %w", err)
	}
	return out, nil
}
