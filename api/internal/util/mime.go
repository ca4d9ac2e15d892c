package util

import (
	"encoding/base64"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// DecodeBase64MaybeDataURL decodes base64. For a data:URI it also returns the
// MIME from the prefix.
func DecodeBase64MaybeDataURL(s string) ([]byte, string, error) {
	s = strings.TrimSpace(s)
	var hintMIME string
	if strings.HasPrefix(s, "data:") {
		// data:<mime>;base64,<payload>
		if idx := strings.IndexByte(s, ','); idx > 0 {
			meta := s[len("data:"):idx] // "<mime>;base64"
			if semi := strings.IndexByte(meta, ';'); semi >= 0 {
				hintMIME = meta[:semi]
			} else {
				hintMIME = meta
			}
			s = s[idx+1:]
		}
	}
	// Standard base64 first, then URL-safe for client variations.
	if b, err := base64.StdEncoding.DecodeString(s); err == nil {
		return b, hintMIME, nil
	} else if b2, err2 := base64.URLEncoding.DecodeString(s); err2 == nil {
		return b2, hintMIME, nil
	} else {
		return nil, "", err
	}
}

// PickMIME takes the explicit MIME, then the data:URI hint, otherwise detects
// from the bytes.
func PickMIME(explicit, hint string, data []byte) string {
	if exp := strings.TrimSpace(explicit); exp != "" {
		return exp
	}
	if h := strings.TrimSpace(hint); h != "" {
		return h
	}
	if len(data) > 0 {
		return mimetype.Detect(data).String()
	}
	return "application/octet-stream"
}

// IsDrawingMIME reports whether the upload type is accepted by the drawing
// endpoint. PDFs carry multi-sheet drawings, the rest are photo/scan types
// the vision models take as inline blobs.
func IsDrawingMIME(m string) bool {
	m = strings.ToLower(strings.TrimSpace(m))
	if i := strings.IndexByte(m, ';'); i >= 0 {
		m = strings.TrimSpace(m[:i])
	}
	switch m {
	case "image/jpeg", "image/jpg", "image/png", "image/webp", "application/pdf":
		return true
	}
	return false
}

// IsSheetMIME reports whether the upload type is accepted by the sheet
// endpoint. Only text-shaped spreadsheets pass; binary workbook formats must
// be exported to CSV by the caller.
func IsSheetMIME(m string) bool {
	m = strings.ToLower(strings.TrimSpace(m))
	if i := strings.IndexByte(m, ';'); i >= 0 {
		m = strings.TrimSpace(m[:i])
	}
	switch m {
	case "text/csv", "text/tab-separated-values", "text/plain":
		return true
	}
	return false
}

func MakeDataURL(mime, b64 string) string {
	return "data:" + mime + ";base64," + b64
}
