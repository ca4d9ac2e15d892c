package handle

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/audifox1-ops/tw-forging-p15/api/internal/quote/types"
)

func TestIngotRequiresShapeAndDims(t *testing.T) {
	h := newTestHandle(&fakeEngine{name: "gemini"}, 0)

	rec := postJSON(t, h.Ingot, map[string]any{
		"dims": map[string]float64{"outer_diameter_mm": 300},
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = postJSON(t, h.Ingot, map[string]any{"shape": "disc"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestIngotRelaysModelAnswer(t *testing.T) {
	fake := &fakeEngine{
		name: "gemini",
		ingot: types.IngotResult{
			RoughDims:             types.PartDims{OuterDiameterMM: 330, ThicknessMM: 70},
			AllowanceMM:           5,
			PartWeightKg:          35.4,
			RoughWeightKg:         46.9,
			RecoveryRate:          0.85,
			RecoveryRateDefaulted: true,
			IngotWeightKg:         55.2,
			Notes:                 []string{"recovery_rate missing; defaulted to 0.85"},
		},
	}
	h := newTestHandle(fake, 0)

	rec := postJSON(t, h.Ingot, map[string]any{
		"shape":    "disc",
		"material": "S45C",
		"dims":     map[string]float64{"outer_diameter_mm": 320, "thickness_mm": 60},
		"quantity": 2,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var out types.IngotResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.True(t, out.RecoveryRateDefaulted)
	assert.Equal(t, 55.2, out.IngotWeightKg)
	assert.Equal(t, "disc", fake.lastIngot.Shape)
	assert.Equal(t, 2, fake.lastIngot.Quantity)
}
