package gpt

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/audifox1-ops/tw-forging-p15/api/internal/quote/prompt"
	"github.com/audifox1-ops/tw-forging-p15/api/internal/util"
)

const defaultBaseURL = "https://api.openai.com/v1"

type Engine struct {
	APIKey  string
	Model   string
	BaseURL string

	rc *resty.Client
}

func New(key, model string) *Engine {
	return &Engine{
		APIKey:  strings.TrimSpace(key),
		Model:   strings.TrimSpace(model),
		BaseURL: defaultBaseURL,
		rc:      resty.New().SetTimeout(120 * time.Second),
	}
}

func (e *Engine) Name() string     { return "gpt" }
func (e *Engine) GetModel() string { return e.Model }

// ----- chat-completions wire types (request side only; the response is
// decoded field-by-field below) -----

type chatMessage struct {
	Role    string `json:"role"`
	Content any    `json:"content"` // string or []contentPart
}

type contentPart struct {
	Type     string    `json:"type"` // "text" | "image_url"
	Text     string    `json:"text,omitempty"`
	ImageURL *imageURL `json:"image_url,omitempty"`
}

type imageURL struct {
	URL string `json:"url"`
}

type chatRequest struct {
	Model          string        `json:"model"`
	Messages       []chatMessage `json:"messages"`
	Temperature    float64       `json:"temperature"`
	ResponseFormat struct {
		Type string `json:"type"`
	} `json:"response_format"`
}

// complete performs one chat-completions round trip for op and returns the
// cleaned JSON object text.
func (e *Engine) complete(ctx context.Context, op string, userContent any) (string, error) {
	if e.APIKey == "" {
		return "", errors.New("OPENAI_API_KEY is empty")
	}

	sys := prompt.System(op, e.Name()) + "\n\n" + op + ".schema.json:\n" + prompt.Schema(op)
	body := chatRequest{
		Model: e.Model,
		Messages: []chatMessage{
			{Role: "system", Content: sys},
			{Role: "user", Content: userContent},
		},
	}
	body.ResponseFormat.Type = "json_object"

	var lastErr error
	for attempt := 1; attempt <= 3; attempt++ {
		resp, err := e.rc.R().
			SetContext(ctx).
			SetHeader("Authorization", "Bearer "+e.APIKey).
			SetHeader("Content-Type", "application/json").
			SetBody(body).
			Post(strings.TrimRight(e.BaseURL, "/") + "/chat/completions")
		if err != nil {
			lastErr = err
			time.Sleep(time.Duration(attempt) * 300 * time.Millisecond)
			continue
		}
		if resp.StatusCode() >= 500 {
			lastErr = fmt.Errorf("openai %s: status %d: %s", op, resp.StatusCode(), truncateBytes(resp.Body(), 300))
			time.Sleep(time.Duration(attempt) * 300 * time.Millisecond)
			continue
		}
		if resp.StatusCode() != 200 {
			return "", fmt.Errorf("openai %s: status %d: %s", op, resp.StatusCode(), truncateBytes(resp.Body(), 300))
		}

		txt := extractChatText(resp.Body())
		if strings.TrimSpace(txt) == "" {
			return "", fmt.Errorf("openai %s: empty response", op)
		}
		obj, err := util.ExtractJSONObject(txt)
		if err != nil {
			return "", fmt.Errorf("openai %s: %w", op, err)
		}
		return obj, nil
	}
	return "", lastErr
}

func extractChatText(raw []byte) string {
	var env struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(raw, &env); err != nil {
		return ""
	}
	for _, c := range env.Choices {
		if s := strings.TrimSpace(c.Message.Content); s != "" {
			return s
		}
	}
	return ""
}

func truncateBytes(b []byte, n int) string {
	if len(b) > n {
		return string(b[:n]) + "..."
	}
	return string(b)
}

func isImageMIME(m string) bool {
	m = strings.ToLower(strings.TrimSpace(m))
	switch m {
	case "image/jpeg", "image/jpg", "image/png", "image/webp":
		return true
	}
	return false
}
