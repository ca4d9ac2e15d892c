package types

type IngotInput struct {
	Shape    string   `json:"shape"`
	Dims     PartDims `json:"dims"`
	Material string   `json:"material"`

	// Optional overrides; zero means "let the prompt policy decide".
	DensityGcm3  float64 `json:"density_g_cm3,omitempty"`
	RecoveryRate float64 `json:"recovery_rate,omitempty"`
	AllowanceMM  float64 `json:"allowance_mm,omitempty"`
	Quantity     int     `json:"quantity,omitempty"`
}

// IngotResult relays the model's back-calculation. Recovery-rate plausibility
// and defaulting happen inside the prompt, not here.
type IngotResult struct {
	RoughDims   PartDims `json:"rough_dims"`
	AllowanceMM float64  `json:"allowance_mm"`

	PartWeightKg  float64 `json:"part_weight_kg"`
	RoughWeightKg float64 `json:"rough_weight_kg"`

	RecoveryRate          float64 `json:"recovery_rate"`
	RecoveryRateDefaulted bool    `json:"recovery_rate_defaulted"`

	IngotWeightKg      float64 `json:"ingot_weight_kg"`
	TotalIngotWeightKg float64 `json:"total_ingot_weight_kg,omitempty"`

	Notes []string `json:"notes,omitempty"`
}
