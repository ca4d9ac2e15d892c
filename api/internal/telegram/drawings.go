package telegram

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/audifox1-ops/tw-forging-p15/api/internal/quote/types"
	"github.com/audifox1-ops/tw-forging-p15/api/internal/util"
)

var httpc = &http.Client{Timeout: 60 * time.Second}

func (r *Router) acceptPhoto(msg tgbotapi.Message) {
	cid := msg.Chat.ID
	ph := msg.Photo[len(msg.Photo)-1]
	r.send(cid, "Got the drawing, reading it…")
	r.analyzeFile(cid, ph.FileID)
}

func (r *Router) acceptDocument(msg tgbotapi.Message) {
	cid := msg.Chat.ID
	doc := msg.Document
	if !util.IsDrawingMIME(doc.MimeType) {
		r.send(cid, "I can only read JPEG, PNG, WebP or PDF drawings.")
		return
	}
	r.send(cid, "Got the drawing, reading it…")
	r.analyzeFile(cid, doc.FileID)
}

func (r *Router) analyzeFile(cid int64, fileID string) {
	tf, err := r.Bot.GetFile(tgbotapi.FileConfig{FileID: fileID})
	if err != nil {
		r.sendError(cid, fmt.Errorf("get file: %w", err))
		return
	}
	url := fmt.Sprintf("https://api.telegram.org/file/bot%s/%s", r.Bot.Token, tf.FilePath)
	raw, err := download(url)
	if err != nil {
		r.sendError(cid, fmt.Errorf("download: %w", err))
		return
	}

	eng, err := r.Engs.Get(r.engineName(cid))
	if err != nil {
		r.sendError(cid, err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 180*time.Second)
	defer cancel()

	out, err := eng.AnalyzeDrawing(ctx, types.DrawingInput{
		FileB64: base64.StdEncoding.EncodeToString(raw),
	})
	if err != nil {
		r.sendError(cid, err)
		return
	}
	r.send(cid, formatDrawingResult(out))
}

func download(url string) ([]byte, error) {
	resp, err := httpc.Get(url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != 200 {
		b, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("status %d: %s", resp.StatusCode, string(b))
	}
	return io.ReadAll(resp.Body)
}

func formatDrawingResult(d types.DrawingResult) string {
	if d.NeedsRescan {
		reason := strings.TrimSpace(d.RescanReason)
		if reason == "" {
			reason = "the drawing is not readable"
		}
		return "🔁 Please rescan: " + reason
	}

	var b strings.Builder
	fmt.Fprintf(&b, "📐 Shape: %s (%.0f%%)\n", d.Shape, d.ShapeConfidence*100)
	if d.Material != "" && d.Material != "unknown" {
		fmt.Fprintf(&b, "🔩 Material: %s\n", d.Material)
	}
	writeDims(&b, d.FinalDims)
	if d.PartWeightKg > 0 {
		fmt.Fprintf(&b, "⚖️ Estimated part weight: %.1f kg\n", d.PartWeightKg)
	}
	for _, n := range d.Notes {
		fmt.Fprintf(&b, "• %s\n", n)
	}
	return strings.TrimRight(b.String(), "\n")
}

func writeDims(b *strings.Builder, d types.PartDims) {
	if d.OuterDiameterMM > 0 {
		fmt.Fprintf(b, "Ø%.0f", d.OuterDiameterMM)
		if d.InnerDiameterMM > 0 {
			fmt.Fprintf(b, " / Ø%.0f bore", d.InnerDiameterMM)
		}
		if d.LengthMM > 0 {
			fmt.Fprintf(b, " × %.0f L", d.LengthMM)
		} else if d.ThicknessMM > 0 {
			fmt.Fprintf(b, " × %.0f t", d.ThicknessMM)
		}
		b.WriteString(" mm\n")
		return
	}
	if d.LengthMM > 0 || d.WidthMM > 0 || d.HeightMM > 0 {
		fmt.Fprintf(b, "%.0f × %.0f × %.0f mm\n", d.LengthMM, d.WidthMM, d.HeightMM)
	}
}
