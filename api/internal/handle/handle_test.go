package handle

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/audifox1-ops/tw-forging-p15/api/internal/quote"
	"github.com/audifox1-ops/tw-forging-p15/api/internal/quote/types"
)

// fakeEngine echoes canned answers and records what it was asked.
type fakeEngine struct {
	name string

	lastDrawing types.DrawingInput
	lastSheet   types.SheetInput
	lastIngot   types.IngotInput

	drawing types.DrawingResult
	sheet   types.SheetResult
	ingot   types.IngotResult
	err     error
}

func (f *fakeEngine) Name() string     { return f.name }
func (f *fakeEngine) GetModel() string { return "fake-model" }
func (f *fakeEngine) AnalyzeDrawing(_ context.Context, in types.DrawingInput) (types.DrawingResult, error) {
	f.lastDrawing = in
	return f.drawing, f.err
}
func (f *fakeEngine) AnalyzeSheet(_ context.Context, in types.SheetInput) (types.SheetResult, error) {
	f.lastSheet = in
	return f.sheet, f.err
}
func (f *fakeEngine) EstimateIngot(_ context.Context, in types.IngotInput) (types.IngotResult, error) {
	f.lastIngot = in
	return f.ingot, f.err
}

var pngBytes = []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A, 0, 0, 0, 0}

func newTestHandle(fake *fakeEngine, maxUpload int64) *Handle {
	return New(&quote.Engines{Gemini: fake}, nil, maxUpload)
}

func postJSON(t *testing.T, h http.HandlerFunc, body any) *httptest.ResponseRecorder {
	t.Helper()
	b, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(string(b)))
	rec := httptest.NewRecorder()
	h(rec, req)
	return rec
}

func TestDrawingMethodGate(t *testing.T) {
	h := newTestHandle(&fakeEngine{name: "gemini"}, 0)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	h.Drawing(rec, req)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestDrawingBadBase64(t *testing.T) {
	h := newTestHandle(&fakeEngine{name: "gemini"}, 0)
	rec := postJSON(t, h.Drawing, map[string]string{"file_b64": "@@not-base64@@"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = postJSON(t, h.Drawing, map[string]string{"file_b64": ""})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDrawingTooLarge(t *testing.T) {
	h := newTestHandle(&fakeEngine{name: "gemini"}, 4)
	rec := postJSON(t, h.Drawing, map[string]string{
		"file_b64": base64.StdEncoding.EncodeToString(pngBytes),
	})
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}

func TestDrawingUnsupportedType(t *testing.T) {
	h := newTestHandle(&fakeEngine{name: "gemini"}, 0)
	rec := postJSON(t, h.Drawing, map[string]string{
		"file_b64": base64.StdEncoding.EncodeToString([]byte("just,a,csv\n1,2,3\n")),
	})
	assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)
}

func TestDrawingUnknownEngine(t *testing.T) {
	h := newTestHandle(&fakeEngine{name: "gemini"}, 0)
	rec := postJSON(t, h.Drawing, map[string]string{
		"llm_name": "claude",
		"file_b64": base64.StdEncoding.EncodeToString(pngBytes),
	})
	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestDrawingRelaysModelAnswer(t *testing.T) {
	fake := &fakeEngine{
		name: "gemini",
		drawing: types.DrawingResult{
			Shape:           "ring",
			ShapeConfidence: 0.93,
			Unit:            "mm",
			FinalDims:       types.PartDims{OuterDiameterMM: 420, InnerDiameterMM: 180, ThicknessMM: 85},
			Material:        "SCM440",
			PartWeightKg:    64.2,
		},
	}
	h := newTestHandle(fake, 0)

	rec := postJSON(t, h.Drawing, map[string]string{
		"file_b64":      "data:image/png;base64," + base64.StdEncoding.EncodeToString(pngBytes),
		"material_hint": "SCM440",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var out types.DrawingResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.Equal(t, "ring", out.Shape)
	assert.Equal(t, 420.0, out.FinalDims.OuterDiameterMM)

	// Handler fills in sniffed MIME and hash before the engine call.
	assert.Equal(t, "image/png", fake.lastDrawing.Mime)
	assert.Len(t, fake.lastDrawing.FileHash, 64)
	assert.Equal(t, "SCM440", fake.lastDrawing.MaterialHint)
}

func TestDrawingEngineFailure(t *testing.T) {
	fake := &fakeEngine{name: "gemini", err: errors.New("upstream 500")}
	h := newTestHandle(fake, 0)
	rec := postJSON(t, h.Drawing, map[string]string{
		"file_b64": base64.StdEncoding.EncodeToString(pngBytes),
	})
	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Contains(t, rec.Body.String(), "upstream 500")
}
