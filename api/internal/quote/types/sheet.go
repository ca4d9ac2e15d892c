package types

type SheetInput struct {
	// Spreadsheet rows as plain text (CSV/TSV). Set either this or FileB64.
	SheetText string `json:"sheet_text,omitempty"`
	FileB64   string `json:"file_b64,omitempty"`

	MaterialHint string `json:"material_hint,omitempty"`

	FileHash string `json:"-"`
}

type SheetResult struct {
	Parts       []SheetPart  `json:"parts"`
	SkippedRows []SkippedRow `json:"skipped_rows,omitempty"`
}

// SheetPart is one usable row of the parts list, as read by the model.
type SheetPart struct {
	RowNumber    int      `json:"row_number"`
	Name         string   `json:"name"`
	DrawingNo    string   `json:"drawing_no,omitempty"`
	Shape        string   `json:"shape"`
	Material     string   `json:"material"`
	Dims         PartDims `json:"dims"`
	Quantity     int      `json:"quantity"`
	PartWeightKg float64  `json:"part_weight_kg"`
}

type SkippedRow struct {
	RowNumber int    `json:"row_number"`
	Reason    string `json:"reason"`
}
