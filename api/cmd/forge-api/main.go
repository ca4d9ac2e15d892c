package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // pgx driver

	"github.com/audifox1-ops/tw-forging-p15/api/internal/config"
	"github.com/audifox1-ops/tw-forging-p15/api/internal/handle"
	"github.com/audifox1-ops/tw-forging-p15/api/internal/quote"
	"github.com/audifox1-ops/tw-forging-p15/api/internal/quote/gemini"
	"github.com/audifox1-ops/tw-forging-p15/api/internal/quote/gpt"
	"github.com/audifox1-ops/tw-forging-p15/api/internal/store"
)

func main() {
	cfg := config.Load()

	var db *sql.DB
	var repo *store.QuoteRepo
	if cfg.DatabaseURL != "" {
		var err error
		db, err = sql.Open("pgx", cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("sql.Open: %v", err)
		}
		db.SetMaxOpenConns(10)
		db.SetMaxIdleConns(10)
		db.SetConnMaxLifetime(1 * time.Hour)

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := db.PingContext(ctx); err != nil {
			cancel()
			log.Fatalf("db.Ping: %v", err)
		}
		cancel()
		log.Printf("answer cache enabled")

		repo = store.NewQuoteRepo(db)
		go purgeLoop(repo)
	}

	engines := &quote.Engines{
		Gemini: gemini.New(cfg.GeminiAPIKey, cfg.GeminiModel),
	}
	if cfg.OpenAIAPIKey != "" {
		engines.OpenAI = gpt.New(cfg.OpenAIAPIKey, cfg.OpenAIModel)
	}

	h := handle.New(engines, repo, cfg.MaxUploadBytes)

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		if db != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()
			if err := db.PingContext(ctx); err != nil {
				w.WriteHeader(http.StatusServiceUnavailable)
				_, _ = w.Write([]byte("db: not ok\n" + err.Error()))
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	mux.HandleFunc("/v1/forge/drawing", h.Drawing)
	mux.HandleFunc("/v1/forge/sheet", h.Sheet)
	mux.HandleFunc("/v1/forge/ingot", h.Ingot)
	mux.HandleFunc("/v1/forge/prompt", h.UpdatePrompt)

	addr := ":" + cfg.Port
	log.Printf("forge-api listening on %s", addr)
	log.Fatal(http.ListenAndServe(addr, handle.CORS(cfg.AllowedOrigin, mux)))
}

// purgeLoop trims cache rows no client will ask for again.
func purgeLoop(repo *store.QuoteRepo) {
	t := time.NewTicker(24 * time.Hour)
	defer t.Stop()
	for range t.C {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		n, err := repo.PurgeOlderThan(ctx, 90*24*time.Hour)
		cancel()
		if err != nil {
			log.Printf("cache purge: %v", err)
			continue
		}
		if n > 0 {
			log.Printf("cache purge: dropped %d rows", n)
		}
	}
}
