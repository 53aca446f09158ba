package main

import (
	"context"
	"log"
	"net/http"

	"snap-solver/api/internal/blob"
	"snap-solver/api/internal/config"
	"snap-solver/api/internal/handle"
	"snap-solver/api/internal/scan"
	"snap-solver/api/internal/solver/gemini"
)

const snapshotName = "scan-history"

func main() {
	cfg := config.Load()
	ctx := context.Background()

	var snap blob.Store
	if cfg.DatabaseURL != "" {
		pg, err := blob.OpenPostgres(ctx, cfg.DatabaseURL, snapshotName)
		if err != nil {
			log.Fatalf("postgres: %v", err)
		}
		defer pg.Close()
		snap = pg
	} else {
		snap = blob.NewFileStore(cfg.HistoryPath)
	}

	history := scan.NewStore(snap)
	history.Load(ctx)
	orch := scan.NewOrchestrator(history)

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	h := handle.New(orch, history, gemini.New(cfg.GeminiAPIKey, cfg.GeminiModel))
	h.Register(mux)

	addr := ":" + cfg.Port
	log.Printf("scan-api listening on %s", addr)
	log.Fatal(http.ListenAndServe(addr, mux))
}
