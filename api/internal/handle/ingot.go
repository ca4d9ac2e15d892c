package handle

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/audifox1-ops/tw-forging-p15/api/internal/quote/types"
	"github.com/audifox1-ops/tw-forging-p15/api/internal/util"
)

type IngotRequest struct {
	LLMName string `json:"llm_name"`
	types.IngotInput
}

// Ingot relays the finished-part envelope to the model for ingot weight
// back-calculation. Recovery-rate plausibility and defaulting are prompt
// policy; the handler checks presence only.
func (h *Handle) Ingot(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "POST only")
		return
	}
	rid := requestID()

	var req IngotRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, 1<<20)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad json: "+err.Error())
		return
	}

	if strings.TrimSpace(req.Shape) == "" {
		writeError(w, http.StatusBadRequest, "shape is required")
		return
	}
	d := req.Dims
	if d.OuterDiameterMM <= 0 && d.LengthMM <= 0 && d.WidthMM <= 0 && d.HeightMM <= 0 && d.ThicknessMM <= 0 {
		writeError(w, http.StatusBadRequest, "dims: at least one positive dimension is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), deadlineFrom(r))
	defer cancel()

	engine, err := h.engs.Get(req.LLMName)
	if err != nil {
		writeError(w, http.StatusBadGateway, "ingot error: "+err.Error())
		return
	}

	// Identical inputs hash to the same cache key.
	inJSON, _ := json.Marshal(req.IngotInput)
	hash := util.SHA256Hex(inJSON)

	if row, err := h.cachedAnswer(ctx, hash, "ingot", engine.Name(), engine.GetModel()); err == nil {
		var out types.IngotResult
		if json.Unmarshal(row.Answer, &out) == nil {
			log.Printf("[%s] ingot: cache hit engine=%s model=%s", rid, engine.Name(), engine.GetModel())
			writeJSON(w, http.StatusOK, out)
			return
		}
	}

	log.Printf("[%s] ingot: engine=%s model=%s shape=%s", rid, engine.Name(), engine.GetModel(), req.Shape)
	out, err := engine.EstimateIngot(ctx, req.IngotInput)
	if err != nil {
		log.Printf("[%s] ingot: %v", rid, err)
		writeError(w, http.StatusBadGateway, "ingot error: "+err.Error())
		return
	}

	h.storeAnswer(ctx, rid, hash, "ingot", engine.Name(), engine.GetModel(), out)
	writeJSON(w, http.StatusOK, out)
}
