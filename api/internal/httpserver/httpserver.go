// Package httpserver runs the bot binary's liveness endpoint. Handlers go
// on the default mux because ListenForWebhook registers the webhook route
// there as well.
package httpserver

import (
	"log"
	"net/http"
	"time"
)

// StartHTTP blocks serving /healthz with the given body. Unknown paths
// get a 404 so platform probes pointed at the wrong route fail loudly.
func StartHTTP(addr, healthzBody string) error {
	http.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte(healthzBody))
	})
	http.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte("snap-solver bot"))
	})

	srv := &http.Server{
		Addr:              addr,
		ReadHeaderTimeout: 10 * time.Second,
	}
	log.Printf("http: listening on %s", addr)
	return srv.ListenAndServe()
}
