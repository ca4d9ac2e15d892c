// Package prompt holds the fixed instruction prompts and response schemas
// for the forging quote operations. The prompts carry the whole estimation
// policy; the Go side only relays them.
package prompt

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// System returns the instruction prompt for op, preferring an on-disk
// override (written by the prompt update endpoint) over the embedded text.
// Layout: <PROMPT_DIR or api/internal/quote>/<provider>/prompt/<op>.system.txt
func System(op, provider string) string {
	if s, err := loadOverride(op, provider); err == nil {
		return s
	}
	switch op {
	case "drawing":
		return DrawingSystem
	case "sheet":
		return SheetSystem
	case "ingot":
		return IngotSystem
	}
	return ""
}

func Schema(op string) string {
	switch op {
	case "drawing":
		return DrawingSchema
	case "sheet":
		return SheetSchema
	case "ingot":
		return IngotSchema
	}
	return ""
}

// OverridePath is where the update endpoint persists a prompt override.
func OverridePath(op, provider string) string {
	baseRoot := os.Getenv("PROMPT_DIR")
	if baseRoot == "" {
		baseRoot = filepath.Join("api", "internal", "quote")
	}
	return filepath.Join(baseRoot, strings.ToLower(provider), "prompt", op+".system.txt")
}

func loadOverride(op, provider string) (string, error) {
	if strings.TrimSpace(provider) == "" {
		return "", fmt.Errorf("provider is empty")
	}
	p := OverridePath(op, provider)
	b, err := os.ReadFile(p)
	if err != nil {
		return "", err
	}
	if len(b) == 0 {
		return "", fmt.Errorf("prompt override %s is empty", p)
	}
	return strings.TrimSpace(string(b)), nil
}

const DrawingSystem = `You are the DRAWING module of a forging quote assistant.
You receive one part drawing (photo, scan or PDF page) of a forged part.
Return ONLY a JSON object per drawing.schema.json. Any text outside the JSON is an error.

Rules:
1) UNITS. Dimensions on forging drawings are millimetres unless the drawing states otherwise.
   If a unit_hint is given, it wins. Report the unit you used in "unit".
2) DIMENSION CLUSTERS. Collect every dimension callout you can read and group the numbers by
   what they measure: diameter, bore (inner diameter), length, width, height, thickness.
   Put each group into dimension_clusters[] with all raw values and the single governing value
   (the one that bounds the finished part, normally the largest of the group).
   Ignore thread callouts (M24 etc.), surface-finish marks, radii under 5 and tolerance bands.
3) SHAPE. Classify the forged envelope as one of:
   round_bar | disc | ring | block | shaft | flange | other.
   A ring needs a bore >= 30% of the outer diameter. A disc is a round part whose thickness is
   under half its diameter. Give shape_confidence in [0,1].
4) FINAL DIMS. Fill final_dims with the governing values that apply to the shape, in mm.
   Leave non-applicable dimensions out.
5) MATERIAL & WEIGHT. Read the material from the title block if present, else use the
   material_hint, else "unknown". Densities (g/cm3): carbon/alloy steel 7.85,
   stainless 7.93, aluminium alloy 2.70, titanium alloy 4.43, copper alloy 8.90.
   Estimate part_weight_kg from final_dims and the density, as the ideal solid of the shape
   (ring and bore volumes subtracted).
6) RESCAN. If the image is too blurred, cropped or low-resolution to read the governing
   dimensions, set needs_rescan=true with a short rescan_reason and leave the numeric fields 0.
7) Do not invent dimensions that are not on the drawing. No text outside the JSON.`

const SheetSystem = `You are the SHEET module of a forging quote assistant.
You receive a parts-list spreadsheet as plain text rows (CSV or TSV, first row may be a header).
Return ONLY a JSON object per sheet.schema.json. Any text outside the JSON is an error.

Rules:
1) One parts[] entry per usable data row, keeping the 1-based source row_number.
2) Header detection: skip header/unit rows and empty separators; report every skipped row in
   skipped_rows[] with a short reason.
3) Column meaning must be inferred from the header names and the values themselves. Typical
   columns: part name, drawing no, material, OD/ID/length/width/height/thickness, quantity.
4) Dimensions are millimetres unless a unit row says otherwise; convert when it does.
5) Classify each part's shape with the same vocabulary as the drawing module:
   round_bar | disc | ring | block | shaft | flange | other.
6) Material falls back to material_hint, then "unknown".
   Densities (g/cm3): carbon/alloy steel 7.85, stainless 7.93, aluminium alloy 2.70,
   titanium alloy 4.43, copper alloy 8.90. Estimate part_weight_kg per part.
7) Quantity defaults to 1 when the cell is empty or unreadable.
8) Do not invent rows or values. No text outside the JSON.`

const IngotSystem = `You are the INGOT module of a forging quote assistant.
You receive the finished-part envelope of one forged part and must back-calculate the raw
ingot weight. Return ONLY a JSON object per ingot.schema.json. Any text outside the JSON is an error.

Policy:
1) ALLOWANCE (Korean: yeoyuchi). Add the machining allowance to every finished dimension to get
   the rough forged size: allowance_mm per side when given, otherwise default 5 mm per side
   (so +10 mm on diameters/widths, +10 mm on lengths, -10 mm on bores).
2) DENSITY. Use density_g_cm3 when given, else by material: carbon/alloy steel 7.85,
   stainless 7.93, aluminium alloy 2.70, titanium alloy 4.43, copper alloy 8.90, unknown 7.85.
3) WEIGHTS. part_weight_kg from the finished dims, rough_weight_kg from the rough dims,
   both as ideal solids of the shape (subtract bore volume for rings).
4) RECOVERY RATE. Use recovery_rate when it is given and plausible, i.e. within [0.50, 0.95].
   When missing, zero or implausible, use 0.85 and set recovery_rate_defaulted=true with a note.
5) INGOT WEIGHT. ingot_weight_kg = rough_weight_kg / recovery_rate, rounded up to one decimal.
   With quantity > 1 also fill total_ingot_weight_kg = ingot_weight_kg * quantity.
6) Echo the applied allowance in allowance_mm and the rough envelope in rough_dims.
7) Show every assumption you made in notes[]. No text outside the JSON.`

const DrawingSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "title": "drawing.schema.json",
  "type": "object",
  "required": ["shape", "shape_confidence", "unit", "dimension_clusters", "final_dims", "material", "needs_rescan"],
  "properties": {
    "shape": {"type": "string", "enum": ["round_bar", "disc", "ring", "block", "shaft", "flange", "other"]},
    "shape_confidence": {"type": "number", "minimum": 0, "maximum": 1},
    "unit": {"type": "string"},
    "dimension_clusters": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["kind", "values", "governing"],
        "properties": {
          "kind": {"type": "string", "enum": ["diameter", "bore", "length", "width", "height", "thickness"]},
          "values": {"type": "array", "items": {"type": "number"}},
          "governing": {"type": "number"}
        }
      }
    },
    "final_dims": {"$ref": "#/definitions/part_dims"},
    "material": {"type": "string"},
    "density_g_cm3": {"type": "number"},
    "part_weight_kg": {"type": "number"},
    "needs_rescan": {"type": "boolean"},
    "rescan_reason": {"type": "string"},
    "notes": {"type": "array", "items": {"type": "string"}}
  },
  "definitions": {
    "part_dims": {
      "type": "object",
      "properties": {
        "outer_diameter_mm": {"type": "number"},
        "inner_diameter_mm": {"type": "number"},
        "length_mm": {"type": "number"},
        "width_mm": {"type": "number"},
        "height_mm": {"type": "number"},
        "thickness_mm": {"type": "number"}
      }
    }
  }
}`

const SheetSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "title": "sheet.schema.json",
  "type": "object",
  "required": ["parts"],
  "properties": {
    "parts": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["row_number", "name", "shape", "material", "dims", "quantity"],
        "properties": {
          "row_number": {"type": "integer", "minimum": 1},
          "name": {"type": "string"},
          "drawing_no": {"type": "string"},
          "shape": {"type": "string", "enum": ["round_bar", "disc", "ring", "block", "shaft", "flange", "other"]},
          "material": {"type": "string"},
          "dims": {"$ref": "drawing.schema.json#/definitions/part_dims"},
          "quantity": {"type": "integer", "minimum": 1},
          "part_weight_kg": {"type": "number"}
        }
      }
    },
    "skipped_rows": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["row_number", "reason"],
        "properties": {
          "row_number": {"type": "integer", "minimum": 1},
          "reason": {"type": "string"}
        }
      }
    }
  }
}`

const IngotSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "title": "ingot.schema.json",
  "type": "object",
  "required": ["rough_dims", "allowance_mm", "part_weight_kg", "rough_weight_kg", "recovery_rate", "recovery_rate_defaulted", "ingot_weight_kg"],
  "properties": {
    "rough_dims": {"$ref": "drawing.schema.json#/definitions/part_dims"},
    "allowance_mm": {"type": "number", "minimum": 0},
    "part_weight_kg": {"type": "number", "minimum": 0},
    "rough_weight_kg": {"type": "number", "minimum": 0},
    "recovery_rate": {"type": "number", "minimum": 0.5, "maximum": 0.95},
    "recovery_rate_defaulted": {"type": "boolean"},
    "ingot_weight_kg": {"type": "number", "minimum": 0},
    "total_ingot_weight_kg": {"type": "number", "minimum": 0},
    "notes": {"type": "array", "items": {"type": "string"}}
  }
}`
