package types

type DrawingInput struct {
	FileB64 string `json:"file_b64"`
	Mime    string `json:"mime,omitempty"`

	MaterialHint string `json:"material_hint,omitempty"` // e.g. "SCM440", "S45C"
	UnitHint     string `json:"unit_hint,omitempty"`     // drawings default to mm

	// Cache/audit metadata, not sent to the model.
	FileHash string `json:"-"`
}

// DrawingResult is whatever the model answered, decoded per
// drawing.schema.json. Numbers are not re-validated locally.
type DrawingResult struct {
	Shape           string  `json:"shape"` // round_bar | disc | ring | block | shaft | flange | other
	ShapeConfidence float64 `json:"shape_confidence"`
	Unit            string  `json:"unit"`

	DimensionClusters []DimensionCluster `json:"dimension_clusters"`
	FinalDims         PartDims           `json:"final_dims"`

	Material     string  `json:"material"`
	DensityGcm3  float64 `json:"density_g_cm3"`
	PartWeightKg float64 `json:"part_weight_kg"`

	NeedsRescan  bool     `json:"needs_rescan"`
	RescanReason string   `json:"rescan_reason,omitempty"`
	Notes        []string `json:"notes,omitempty"`
}

// DimensionCluster groups the callout numbers the model read off the drawing
// by what they measure. Governing is the value the model picked for the
// finished-part envelope.
type DimensionCluster struct {
	Kind      string    `json:"kind"` // diameter | bore | length | width | height | thickness
	Values    []float64 `json:"values"`
	Governing float64   `json:"governing"`
}

// PartDims is the finished-part envelope in millimetres. Zero means the
// dimension does not apply to the shape.
type PartDims struct {
	OuterDiameterMM float64 `json:"outer_diameter_mm,omitempty"`
	InnerDiameterMM float64 `json:"inner_diameter_mm,omitempty"`
	LengthMM        float64 `json:"length_mm,omitempty"`
	WidthMM         float64 `json:"width_mm,omitempty"`
	HeightMM        float64 `json:"height_mm,omitempty"`
	ThicknessMM     float64 `json:"thickness_mm,omitempty"`
}
