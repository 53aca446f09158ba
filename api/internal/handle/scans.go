package handle

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"snap-solver/api/internal/scan"
)

type scanRequest struct {
	ImageB64 string `json:"image_b64"`
}

// scanView is the record as returned over the API: everything except the
// image payload.
type scanView struct {
	ID           string      `json:"id"`
	CreatedAt    time.Time   `json:"createdAt"`
	Title        string      `json:"title"`
	Status       scan.Status `json:"status"`
	SolutionText string      `json:"solutionText,omitempty"`
	ErrorMessage string      `json:"errorMessage,omitempty"`
}

func toView(rec scan.Record) scanView {
	return scanView{
		ID:           rec.ID,
		CreatedAt:    rec.CreatedAt,
		Title:        rec.Title,
		Status:       rec.Status,
		SolutionText: rec.SolutionText,
		ErrorMessage: rec.ErrorMessage,
	}
}

// Scans handles GET (list, newest first) and POST (start a scan; responds
// with the pending record while the solve keeps running).
func (h *Handle) Scans(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		records := h.history.List()
		views := make([]scanView, 0, len(records))
		for _, rec := range records {
			views = append(views, toView(rec))
		}
		writeJSON(w, http.StatusOK, views)

	case http.MethodPost:
		var req scanRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json: "+err.Error(), http.StatusBadRequest)
			return
		}
		img, err := base64.StdEncoding.DecodeString(strings.TrimSpace(req.ImageB64))
		if err != nil || len(img) == 0 {
			http.Error(w, "bad image_b64", http.StatusBadRequest)
			return
		}
		rec, err := h.orch.Capture(r.Context(), h.engine, img)
		if err != nil {
			http.Error(w, "scan error: "+err.Error(), http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusAccepted, toView(rec))

	default:
		http.Error(w, "GET or POST only", http.StatusMethodNotAllowed)
	}
}

// ScanByID handles GET and DELETE for a single record. DELETE is
// idempotent: removing an unknown id still returns 204.
func (h *Handle) ScanByID(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/v1/scans/")
	if id == "" || strings.Contains(id, "/") {
		http.Error(w, "bad scan id", http.StatusBadRequest)
		return
	}

	switch r.Method {
	case http.MethodGet:
		rec, ok := h.history.Get(id)
		if !ok {
			http.Error(w, "scan not found", http.StatusNotFound)
			return
		}
		writeJSON(w, http.StatusOK, toView(rec))

	case http.MethodDelete:
		if err := h.history.Delete(r.Context(), id); err != nil {
			http.Error(w, "delete error: "+err.Error(), http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusNoContent)

	default:
		http.Error(w, "GET or DELETE only", http.StatusMethodNotAllowed)
	}
}
