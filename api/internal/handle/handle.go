// Package handle exposes the capture-to-solution pipeline over HTTP.
package handle

import (
	"encoding/json"
	"net/http"

	"snap-solver/api/internal/scan"
	"snap-solver/api/internal/solver"
)

type Handle struct {
	orch    *scan.Orchestrator
	history *scan.Store
	engine  solver.Engine
}

func New(orch *scan.Orchestrator, history *scan.Store, engine solver.Engine) *Handle {
	return &Handle{
		orch:    orch,
		history: history,
		engine:  engine,
	}
}

// Register wires the scan routes onto mux.
func (h *Handle) Register(mux *http.ServeMux) {
	mux.HandleFunc("/v1/scans", h.Scans)
	mux.HandleFunc("/v1/scans/", h.ScanByID)
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
