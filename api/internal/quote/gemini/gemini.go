package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/audifox1-ops/tw-forging-p15/api/internal/quote/prompt"
	"github.com/audifox1-ops/tw-forging-p15/api/internal/quote/types"
	"github.com/audifox1-ops/tw-forging-p15/api/internal/util"
)

type Engine struct {
	APIKey string
	Model  string
}

func New(apiKey, model string) *Engine {
	return &Engine{
		APIKey: strings.TrimSpace(apiKey),
		Model:  strings.TrimSpace(model),
	}
}

func (e *Engine) Name() string     { return "gemini" }
func (e *Engine) GetModel() string { return e.Model }

// newModel builds a client+model pair configured for strict JSON output.
func (e *Engine) newModel(ctx context.Context, op string) (*genai.Client, *genai.GenerativeModel, error) {
	if e.APIKey == "" {
		return nil, nil, errors.New("GEMINI_API_KEY is empty")
	}
	cl, err := genai.NewClient(ctx, option.WithAPIKey(e.APIKey))
	if err != nil {
		return nil, nil, err
	}
	m := cl.GenerativeModel(e.Model)
	if m == nil {
		cl.Close()
		return nil, nil, fmt.Errorf("gemini: model is nil")
	}
	m.GenerationConfig = genai.GenerationConfig{
		Temperature:      ptrFloat32(0),
		ResponseMIMEType: "application/json",
	}
	m.SystemInstruction = &genai.Content{
		Parts: []genai.Part{
			genai.Text(prompt.System(op, e.Name())),
			genai.Text("\n" + op + ".schema.json:\n" + prompt.Schema(op)),
		},
	}
	return cl, m, nil
}

// generate runs the call with retries on transient failures and cleans the
// answer down to one JSON object.
func (e *Engine) generate(ctx context.Context, op string, m *genai.GenerativeModel, parts []genai.Part) (string, error) {
	var lastErr error
	for attempt := 1; attempt <= 3; attempt++ {
		resp, err := m.GenerateContent(ctx, parts...)
		if err != nil {
			lastErr = err
			time.Sleep(time.Duration(attempt) * 300 * time.Millisecond)
			continue
		}
		txt := firstText(resp)
		if strings.TrimSpace(txt) == "" {
			return "", fmt.Errorf("gemini %s: empty response", op)
		}
		obj, err := util.ExtractJSONObject(txt)
		if err != nil {
			return "", fmt.Errorf("gemini %s: %w", op, err)
		}
		return obj, nil
	}
	return "", lastErr
}

// --------------------------- DRAWING ---------------------------

// AnalyzeDrawing sends the drawing bytes with the DRAWING prompt and returns
// JSON per drawing.schema.json.
func (e *Engine) AnalyzeDrawing(ctx context.Context, in types.DrawingInput) (types.DrawingResult, error) {
	cl, m, err := e.newModel(ctx, "drawing")
	if err != nil {
		return types.DrawingResult{}, err
	}
	defer cl.Close()

	fileBytes, mimeFromDataURL, err := util.DecodeBase64MaybeDataURL(in.FileB64)
	if err != nil {
		return types.DrawingResult{}, fmt.Errorf("gemini drawing: bad base64: %w", err)
	}
	finalMIME := util.PickMIME(in.Mime, mimeFromDataURL, fileBytes)

	var hints strings.Builder
	if s := strings.TrimSpace(in.MaterialHint); s != "" {
		fmt.Fprintf(&hints, " material_hint=%q.", s)
	}
	if s := strings.TrimSpace(in.UnitHint); s != "" {
		fmt.Fprintf(&hints, " unit_hint=%q.", s)
	}

	parts := []genai.Part{
		genai.Text("Answer strictly with JSON per drawing.schema.json. No comments." + hints.String()),
		&genai.Blob{MIMEType: finalMIME, Data: fileBytes},
	}

	obj, err := e.generate(ctx, "drawing", m, parts)
	if err != nil {
		return types.DrawingResult{}, err
	}
	var out types.DrawingResult
	if err := json.Unmarshal([]byte(obj), &out); err != nil {
		return types.DrawingResult{}, fmt.Errorf("gemini drawing: bad JSON: %w", err)
	}
	return out, nil
}

// --------------------------- SHEET ---------------------------

func (e *Engine) AnalyzeSheet(ctx context.Context, in types.SheetInput) (types.SheetResult, error) {
	cl, m, err := e.newModel(ctx, "sheet")
	if err != nil {
		return types.SheetResult{}, err
	}
	defer cl.Close()

	userObj := map[string]any{
		"task":          "Read the parts list below and answer strictly with JSON per sheet.schema.json.",
		"material_hint": in.MaterialHint,
		"sheet_text":    in.SheetText,
	}
	userJSON, _ := json.Marshal(userObj)

	parts := []genai.Part{genai.Text("INPUT_JSON:\n" + string(userJSON))}

	obj, err := e.generate(ctx, "sheet", m, parts)
	if err != nil {
		return types.SheetResult{}, err
	}
	var out types.SheetResult
	if err := json.Unmarshal([]byte(obj), &out); err != nil {
		return types.SheetResult{}, fmt.Errorf("gemini sheet: bad JSON: %w", err)
	}
	return out, nil
}

// --------------------------- INGOT ---------------------------

func (e *Engine) EstimateIngot(ctx context.Context, in types.IngotInput) (types.IngotResult, error) {
	cl, m, err := e.newModel(ctx, "ingot")
	if err != nil {
		return types.IngotResult{}, err
	}
	defer cl.Close()

	userObj := map[string]any{
		"task":  "Back-calculate the ingot weight and answer strictly with JSON per ingot.schema.json.",
		"input": in,
	}
	userJSON, _ := json.Marshal(userObj)

	parts := []genai.Part{genai.Text("INPUT_JSON:\n" + string(userJSON))}

	obj, err := e.generate(ctx, "ingot", m, parts)
	if err != nil {
		return types.IngotResult{}, err
	}
	var out types.IngotResult
	if err := json.Unmarshal([]byte(obj), &out); err != nil {
		return types.IngotResult{}, fmt.Errorf("gemini ingot: bad JSON: %w", err)
	}
	return out, nil
}

// --------------------------- helpers ---------------------------

func firstText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 {
		return ""
	}
	for _, c := range resp.Candidates {
		if c.Content == nil {
			continue
		}
		for _, p := range c.Content.Parts {
			if t, ok := p.(genai.Text); ok {
				return string(t)
			}
		}
	}
	return ""
}

func ptrFloat32(v float32) *float32 { return &v }
