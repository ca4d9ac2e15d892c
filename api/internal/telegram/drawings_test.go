package telegram

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/audifox1-ops/tw-forging-p15/api/internal/quote/types"
)

func TestFormatDrawingResultRing(t *testing.T) {
	got := formatDrawingResult(types.DrawingResult{
		Shape:           "ring",
		ShapeConfidence: 0.91,
		Material:        "SCM440",
		FinalDims: types.PartDims{
			OuterDiameterMM: 420,
			InnerDiameterMM: 180,
			ThicknessMM:     85,
		},
		PartWeightKg: 64.2,
		Notes:        []string{"bore read from section view"},
	})

	assert.Contains(t, got, "ring (91%)")
	assert.Contains(t, got, "SCM440")
	assert.Contains(t, got, "Ø420 / Ø180 bore × 85 t mm")
	assert.Contains(t, got, "64.2 kg")
	assert.Contains(t, got, "bore read from section view")
}

func TestFormatDrawingResultBlock(t *testing.T) {
	got := formatDrawingResult(types.DrawingResult{
		Shape:           "block",
		ShapeConfidence: 0.8,
		Material:        "unknown",
		FinalDims:       types.PartDims{LengthMM: 500, WidthMM: 300, HeightMM: 200},
	})
	assert.Contains(t, got, "500 × 300 × 200 mm")
	assert.NotContains(t, got, "unknown")
	assert.NotContains(t, got, "part weight")
}

func TestFormatDrawingResultRescan(t *testing.T) {
	got := formatDrawingResult(types.DrawingResult{NeedsRescan: true, RescanReason: "image too blurred"})
	assert.Contains(t, got, "rescan")
	assert.Contains(t, got, "image too blurred")

	got = formatDrawingResult(types.DrawingResult{NeedsRescan: true})
	assert.Contains(t, got, "not readable")
}
