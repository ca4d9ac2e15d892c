package handle

import (
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/audifox1-ops/tw-forging-p15/api/internal/quote/prompt"
)

func TestUpdatePromptValidation(t *testing.T) {
	h := newTestHandle(&fakeEngine{name: "gemini"}, 0)

	rec := postJSON(t, h.UpdatePrompt, map[string]string{
		"provider": "claude", "name": "drawing", "text": "x",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = postJSON(t, h.UpdatePrompt, map[string]string{
		"provider": "gemini", "name": "../../etc/passwd", "text": "x",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = postJSON(t, h.UpdatePrompt, map[string]string{
		"provider": "gemini", "name": "drawing", "text": "   ",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdatePromptWritesOverride(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("PROMPT_DIR", dir)

	h := newTestHandle(&fakeEngine{name: "gemini"}, 0)
	rec := postJSON(t, h.UpdatePrompt, map[string]string{
		"provider": "gemini",
		"name":     "ingot",
		"text":     "updated ingot policy",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	b, err := os.ReadFile(filepath.Join(dir, "gemini", "prompt", "ingot.system.txt"))
	require.NoError(t, err)
	assert.Equal(t, "updated ingot policy", string(b))

	// Engines read the override through the prompt loader.
	assert.Equal(t, "updated ingot policy", prompt.System("ingot", "gemini"))
}
