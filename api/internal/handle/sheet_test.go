package handle

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/audifox1-ops/tw-forging-p15/api/internal/quote/types"
)

func TestSheetRequiresInput(t *testing.T) {
	h := newTestHandle(&fakeEngine{name: "gemini"}, 0)
	rec := postJSON(t, h.Sheet, map[string]string{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSheetTextPassthrough(t *testing.T) {
	fake := &fakeEngine{
		name: "gemini",
		sheet: types.SheetResult{
			Parts: []types.SheetPart{{RowNumber: 2, Name: "gear blank", Shape: "disc", Material: "S45C", Quantity: 4}},
		},
	}
	h := newTestHandle(fake, 0)

	rec := postJSON(t, h.Sheet, map[string]string{
		"sheet_text": "name,material,od,thk,qty\ngear blank,S45C,320,60,4\n",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var out types.SheetResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	require.Len(t, out.Parts, 1)
	assert.Equal(t, "gear blank", out.Parts[0].Name)
	assert.Contains(t, fake.lastSheet.SheetText, "gear blank")
}

func TestSheetCSVUploadDecodedToText(t *testing.T) {
	fake := &fakeEngine{name: "gemini"}
	h := newTestHandle(fake, 0)

	csv := "name,material,od,len,qty\nshaft,SCM440,150,1200,2\n"
	rec := postJSON(t, h.Sheet, map[string]string{
		"file_b64": base64.StdEncoding.EncodeToString([]byte(csv)),
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, csv, fake.lastSheet.SheetText)
}

func TestSheetRejectsBinaryWorkbook(t *testing.T) {
	h := newTestHandle(&fakeEngine{name: "gemini"}, 0)
	// xlsx is a zip container; PK magic must bounce with 415.
	zipMagic := append([]byte("PK\x03\x04"), make([]byte, 64)...)
	rec := postJSON(t, h.Sheet, map[string]string{
		"file_b64": base64.StdEncoding.EncodeToString(zipMagic),
	})
	assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)
	assert.Contains(t, rec.Body.String(), "CSV")
}
