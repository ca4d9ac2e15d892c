package util

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngHeader = []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A, 0, 0, 0, 0}

func TestDecodeBase64MaybeDataURL(t *testing.T) {
	raw := []byte{0xFF, 0xD8, 0xFF, 0xE0}

	b, hint, err := DecodeBase64MaybeDataURL(base64.StdEncoding.EncodeToString(raw))
	require.NoError(t, err)
	assert.Equal(t, raw, b)
	assert.Empty(t, hint)

	b, hint, err = DecodeBase64MaybeDataURL("data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(raw))
	require.NoError(t, err)
	assert.Equal(t, raw, b)
	assert.Equal(t, "image/jpeg", hint)

	b, _, err = DecodeBase64MaybeDataURL(base64.URLEncoding.EncodeToString(raw))
	require.NoError(t, err)
	assert.Equal(t, raw, b)

	_, _, err = DecodeBase64MaybeDataURL("not base64 at all!!!")
	assert.Error(t, err)
}

func TestPickMIME(t *testing.T) {
	assert.Equal(t, "application/pdf", PickMIME("application/pdf", "image/png", pngHeader))
	assert.Equal(t, "image/jpeg", PickMIME("", "image/jpeg", pngHeader))
	assert.Equal(t, "image/png", PickMIME("", "", pngHeader))
	assert.Equal(t, "application/octet-stream", PickMIME("", "", nil))
}

func TestIsDrawingMIME(t *testing.T) {
	for _, m := range []string{"image/jpeg", "IMAGE/PNG", "image/webp", "application/pdf", "image/png; charset=binary"} {
		assert.True(t, IsDrawingMIME(m), m)
	}
	for _, m := range []string{"image/gif", "text/csv", "application/zip", ""} {
		assert.False(t, IsDrawingMIME(m), m)
	}
}

func TestIsSheetMIME(t *testing.T) {
	for _, m := range []string{"text/csv", "text/plain; charset=utf-8", "text/tab-separated-values"} {
		assert.True(t, IsSheetMIME(m), m)
	}
	for _, m := range []string{"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", "application/pdf", ""} {
		assert.False(t, IsSheetMIME(m), m)
	}
}
