package types

import (
	"fmt"
	"regexp"
	"strings"
)

var rePromptName = regexp.MustCompile(`^[a-z0-9][a-z0-9._-]{0,63}$`)

// UpdatePromptRequest replaces the on-disk override for one instruction
// prompt. Name is extensionless ("drawing", "sheet", "ingot").
type UpdatePromptRequest struct {
	Provider string `json:"provider"` // "gemini" | "gpt"
	Name     string `json:"name"`
	Text     string `json:"text"`
}

func (r *UpdatePromptRequest) Validate() error {
	p := strings.ToLower(strings.TrimSpace(r.Provider))
	switch p {
	case "gemini", "gpt", "openai":
	default:
		return fmt.Errorf("unknown provider %q", r.Provider)
	}
	name := strings.ToLower(strings.TrimSpace(r.Name))
	if !rePromptName.MatchString(name) {
		return fmt.Errorf("bad prompt name %q", r.Name)
	}
	if strings.TrimSpace(r.Text) == "" {
		return fmt.Errorf("text is empty")
	}
	return nil
}

type UpdatePromptResponse struct {
	OK       bool   `json:"ok"`
	Provider string `json:"provider"`
	Name     string `json:"name"`
	Path     string `json:"path"`
	Bytes    int    `json:"bytes"`
}
