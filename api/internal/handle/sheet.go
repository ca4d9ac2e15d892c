package handle

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/audifox1-ops/tw-forging-p15/api/internal/quote/types"
	"github.com/audifox1-ops/tw-forging-p15/api/internal/util"
)

type SheetRequest struct {
	LLMName string `json:"llm_name"`
	types.SheetInput
}

// Sheet relays a parts-list spreadsheet. Binary workbooks are rejected; the
// rows travel to the model as plain text, either directly in sheet_text or
// as a base64 CSV upload decoded here.
func (h *Handle) Sheet(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "POST only")
		return
	}
	rid := requestID()

	var req SheetRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, h.maxUploadBytes*2+64<<10)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad json: "+err.Error())
		return
	}

	switch {
	case strings.TrimSpace(req.SheetText) != "":
		if int64(len(req.SheetText)) > h.maxUploadBytes {
			writeError(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("sheet_text too large: %d bytes (limit %d)", len(req.SheetText), h.maxUploadBytes))
			return
		}
		req.FileHash = util.SHA256Hex([]byte(req.SheetText))

	case strings.TrimSpace(req.FileB64) != "":
		raw, mimeHint, err := util.DecodeBase64MaybeDataURL(req.FileB64)
		if err != nil || len(raw) == 0 {
			writeError(w, http.StatusBadRequest, "bad file_b64")
			return
		}
		if int64(len(raw)) > h.maxUploadBytes {
			writeError(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("file too large: %d bytes (limit %d)", len(raw), h.maxUploadBytes))
			return
		}
		mime := util.PickMIME("", mimeHint, raw)
		if !util.IsSheetMIME(mime) || !utf8.Valid(raw) {
			writeError(w, http.StatusUnsupportedMediaType, "unsupported sheet type "+mime+"; export the workbook to CSV")
			return
		}
		req.SheetText = string(raw)
		req.FileB64 = ""
		req.FileHash = util.SHA256Hex(raw)

	default:
		writeError(w, http.StatusBadRequest, "sheet_text or file_b64 is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), deadlineFrom(r))
	defer cancel()

	engine, err := h.engs.Get(req.LLMName)
	if err != nil {
		writeError(w, http.StatusBadGateway, "sheet error: "+err.Error())
		return
	}

	if row, err := h.cachedAnswer(ctx, req.FileHash, "sheet", engine.Name(), engine.GetModel()); err == nil {
		var out types.SheetResult
		if json.Unmarshal(row.Answer, &out) == nil {
			log.Printf("[%s] sheet: cache hit engine=%s model=%s", rid, engine.Name(), engine.GetModel())
			writeJSON(w, http.StatusOK, out)
			return
		}
	}

	log.Printf("[%s] sheet: engine=%s model=%s chars=%d", rid, engine.Name(), engine.GetModel(), len(req.SheetText))
	out, err := engine.AnalyzeSheet(ctx, req.SheetInput)
	if err != nil {
		log.Printf("[%s] sheet: %v", rid, err)
		writeError(w, http.StatusBadGateway, "sheet error: "+err.Error())
		return
	}

	h.storeAnswer(ctx, rid, req.FileHash, "sheet", engine.Name(), engine.GetModel(), out)
	writeJSON(w, http.StatusOK, out)
}
