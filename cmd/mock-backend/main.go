// Command mock-backend runs a deterministic answering backend for local
// development and integration testing of the gateway. It answers any
// /v1 request with a canned payload that echoes the tenant id the
// gateway injected, making it easy to verify header propagation.
//
// Configuration:
//
//	MOCK_PORT - Listen port (default: 9090)
package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
)

func main() {
	port := os.Getenv("MOCK_PORT")
	if port == "" {
		port = "9090"
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/v1/", handleAnswer)
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok\n"))
	})

	srv := &http.Server{Addr: ":" + port, Handler: mux}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		slog.Info("mock backend starting", "port", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("mock backend failed", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	slog.Info("mock backend shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	srv.Shutdown(shutdownCtx)
}

// answerResponse is the canned backend payload. CompanyID reflects the
// X-Company-ID header injected by the gateway; an empty value means the
// request reached the backend unauthenticated, which should never happen
// behind torii.
type answerResponse struct {
	Answer    string `json:"answer"`
	CompanyID string `json:"company_id"`
	Path      string `json:"path"`
	RequestID string `json:"request_id,omitempty"`
}

func handleAnswer(w http.ResponseWriter, r *http.Request) {
	resp := answerResponse{
		Answer:    "42",
		CompanyID: r.Header.Get("X-Company-ID"),
		Path:      r.URL.Path,
		RequestID: r.Header.Get("X-Request-ID"),
	}

	slog.Info("answering",
		"path", r.URL.Path,
		"company_id", resp.CompanyID,
		"request_id", resp.RequestID,
	)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}
