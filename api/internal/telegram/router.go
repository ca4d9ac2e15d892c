package telegram

import (
	"strings"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/audifox1-ops/tw-forging-p15/api/internal/quote"
)

// Router drives the chat front-end: send a drawing photo or PDF, get the
// quote summary back. Per-chat engine choice lives in memory only.
type Router struct {
	Bot  *tgbotapi.BotAPI
	Engs *quote.Engines

	// chat id -> llm_name override
	engineByChat sync.Map
}

func (r *Router) HandleUpdate(upd tgbotapi.Update) {
	if upd.Message == nil {
		return
	}
	cid := upd.Message.Chat.ID

	if upd.Message.IsCommand() {
		r.handleCommand(upd)
		return
	}

	if len(upd.Message.Photo) > 0 {
		r.acceptPhoto(*upd.Message)
		return
	}
	if upd.Message.Document != nil {
		r.acceptDocument(*upd.Message)
		return
	}
	if strings.TrimSpace(upd.Message.Text) != "" {
		r.send(cid, "Send a part drawing as a photo or a PDF/image document and I will estimate the forging quote inputs.")
	}
}

func (r *Router) handleCommand(upd tgbotapi.Update) {
	cid := upd.Message.Chat.ID
	switch upd.Message.Command() {
	case "start":
		r.send(cid, "Send a part drawing (photo or PDF) and I will read the shape, dimensions and estimated weight off it.\nCommands: /health, /engine")
	case "health":
		eng, err := r.Engs.Get(r.engineName(cid))
		if err != nil {
			r.send(cid, "⚠️ engine unavailable: "+err.Error())
			return
		}
		r.send(cid, "✅ OK: "+eng.Name()+" ("+eng.GetModel()+")")
	case "engine":
		args := strings.Fields(strings.TrimSpace(strings.TrimPrefix(upd.Message.Text, "/engine")))
		if len(args) == 0 {
			r.send(cid, "Current engine: "+r.engineName(cid)+"\nUsage:\n/engine gemini\n/engine gpt")
			return
		}
		name := strings.ToLower(args[0])
		if _, err := r.Engs.Get(name); err != nil {
			r.send(cid, "Unknown engine. Available: gemini | gpt")
			return
		}
		r.engineByChat.Store(cid, name)
		r.send(cid, "OK, switching to: "+name)
	default:
		r.send(cid, "Unknown command")
	}
}

func (r *Router) engineName(cid int64) string {
	if v, ok := r.engineByChat.Load(cid); ok {
		return v.(string)
	}
	return "gemini"
}

func (r *Router) send(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	_, _ = r.Bot.Send(msg)
}

func (r *Router) sendError(chatID int64, err error) {
	r.send(chatID, "⚠️ "+err.Error())
}
