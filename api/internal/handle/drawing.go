package handle

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"

	"github.com/audifox1-ops/tw-forging-p15/api/internal/quote/types"
	"github.com/audifox1-ops/tw-forging-p15/api/internal/store"
	"github.com/audifox1-ops/tw-forging-p15/api/internal/util"
)

type DrawingRequest struct {
	LLMName string `json:"llm_name"`
	types.DrawingInput
}

// Drawing relays one part drawing to the selected model and returns its JSON
// answer. The handler itself only gates, decodes and forwards.
func (h *Handle) Drawing(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "POST only")
		return
	}
	rid := requestID()

	var req DrawingRequest
	// base64 inflates ~4/3, so the body cap is twice the decoded cap.
	if err := json.NewDecoder(io.LimitReader(r.Body, h.maxUploadBytes*2+64<<10)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad json: "+err.Error())
		return
	}

	fileBytes, mimeHint, err := util.DecodeBase64MaybeDataURL(req.FileB64)
	if err != nil || len(fileBytes) == 0 {
		writeError(w, http.StatusBadRequest, "bad file_b64")
		return
	}
	if int64(len(fileBytes)) > h.maxUploadBytes {
		writeError(w, http.StatusRequestEntityTooLarge,
			fmt.Sprintf("file too large: %d bytes (limit %d)", len(fileBytes), h.maxUploadBytes))
		return
	}
	mime := util.PickMIME(req.Mime, mimeHint, fileBytes)
	if !util.IsDrawingMIME(mime) {
		writeError(w, http.StatusUnsupportedMediaType, "unsupported file type "+mime+"; send JPEG, PNG, WebP or PDF")
		return
	}
	req.Mime = mime
	req.FileHash = util.SHA256Hex(fileBytes)

	ctx, cancel := context.WithTimeout(r.Context(), deadlineFrom(r))
	defer cancel()

	engine, err := h.engs.Get(req.LLMName)
	if err != nil {
		writeError(w, http.StatusBadGateway, "drawing error: "+err.Error())
		return
	}

	if cached, ok := h.cachedDrawing(ctx, req.FileHash, engine.Name(), engine.GetModel()); ok {
		log.Printf("[%s] drawing: cache hit engine=%s model=%s", rid, engine.Name(), engine.GetModel())
		writeJSON(w, http.StatusOK, cached)
		return
	}

	log.Printf("[%s] drawing: engine=%s model=%s mime=%s bytes=%d", rid, engine.Name(), engine.GetModel(), mime, len(fileBytes))
	out, err := engine.AnalyzeDrawing(ctx, req.DrawingInput)
	if err != nil {
		log.Printf("[%s] drawing: %v", rid, err)
		writeError(w, http.StatusBadGateway, "drawing error: "+err.Error())
		return
	}

	h.storeAnswer(ctx, rid, req.FileHash, "drawing", engine.Name(), engine.GetModel(), out)
	writeJSON(w, http.StatusOK, out)
}

func (h *Handle) cachedDrawing(ctx context.Context, hash, engine, model string) (types.DrawingResult, bool) {
	var out types.DrawingResult
	row, err := h.cachedAnswer(ctx, hash, "drawing", engine, model)
	if err != nil {
		return out, false
	}
	if err := json.Unmarshal(row.Answer, &out); err != nil {
		return out, false
	}
	return out, true
}

func (h *Handle) cachedAnswer(ctx context.Context, hash, op, engine, model string) (*store.AnswerRow, error) {
	if h.repo == nil || hash == "" {
		return nil, store.ErrNotFound
	}
	return h.repo.FindByHash(ctx, hash, op, engine, model, cacheMaxAge)
}

// storeAnswer is best-effort; a cache failure never fails the request.
func (h *Handle) storeAnswer(ctx context.Context, rid, hash, op, engine, model string, answer any) {
	if h.repo == nil || hash == "" {
		return
	}
	if err := h.repo.Upsert(ctx, hash, op, engine, model, answer); err != nil {
		log.Printf("[%s] %s: cache upsert: %v", rid, op, err)
	}
}
