package util

import (
	"errors"
	"strings"
)

func StripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "\uFEFF")
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

var ErrNoJSONObject = errors.New("no JSON object in model answer")

// ExtractJSONObject pulls the outermost {...} span out of a free-text model
// answer. Models occasionally wrap the object in prose even when asked for
// JSON only.
func ExtractJSONObject(s string) (string, error) {
	s = StripCodeFences(s)
	start := strings.IndexByte(s, '{')
	end := strings.LastIndexByte(s, '}')
	if start < 0 || end < start {
		return "", ErrNoJSONObject
	}
	return s[start : end+1], nil
}
