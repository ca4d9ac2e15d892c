package handle

import (
	"encoding/json"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/audifox1-ops/tw-forging-p15/api/internal/quote/prompt"
	"github.com/audifox1-ops/tw-forging-p15/api/internal/quote/types"
)

// UpdatePrompt persists an instruction-prompt override to disk with an
// atomic rename. The engines pick the override up on their next call.
func (h *Handle) UpdatePrompt(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "POST only")
		return
	}
	defer r.Body.Close()

	var req types.UpdatePromptRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, 4<<20)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad json: "+err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	provider := strings.ToLower(strings.TrimSpace(req.Provider))
	name := strings.ToLower(strings.TrimSpace(req.Name))
	dstPath := prompt.OverridePath(name, provider)

	baseDir := filepath.Dir(dstPath)
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		writeError(w, http.StatusInternalServerError, "make dir: "+err.Error())
		return
	}

	// Temp file in the same directory, then rename.
	tmp, err := os.CreateTemp(baseDir, name+".*.tmp")
	if err != nil {
		writeError(w, http.StatusInternalServerError, "create temp: "+err.Error())
		return
	}
	tmpPath := tmp.Name()
	if _, err := tmp.WriteString(req.Text); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		writeError(w, http.StatusInternalServerError, "write temp: "+err.Error())
		return
	}
	_ = tmp.Chmod(0o644)
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		writeError(w, http.StatusInternalServerError, "close temp: "+err.Error())
		return
	}
	if err := os.Rename(tmpPath, dstPath); err != nil {
		_ = os.Remove(tmpPath)
		writeError(w, http.StatusInternalServerError, "rename: "+err.Error())
		return
	}

	writeJSON(w, http.StatusOK, types.UpdatePromptResponse{
		OK:       true,
		Provider: provider,
		Name:     name,
		Path:     dstPath,
		Bytes:    len(req.Text),
	})
}
