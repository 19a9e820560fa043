// Package server implements the relay daemon: a thin pass-through that
// holds the upstream API credentials so browser and CLI clients never see
// them. It accepts a prompt, forwards it to the upstream chat completion
// endpoint, and relays the upstream payload verbatim.
package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/chainguard-dev/clog"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Config carries the daemon's settings, populated from the environment.
type Config struct {
	// Addr is the listen address.
	Addr string `env:"ADDR, default=:8080"`

	// UpstreamURL is the chat completion endpoint requests are relayed to.
	UpstreamURL string `env:"UPSTREAM_URL, default=https://api.openai.com/v1/chat/completions"`

	// APIKey authenticates relayed requests to the upstream.
	APIKey string `env:"OPENAI_API_KEY"`

	// Model is the model requested from the upstream.
	Model string `env:"MODEL, default=gpt-4o-mini"`

	// Timeout bounds each relayed request.
	Timeout time.Duration `env:"UPSTREAM_TIMEOUT, default=90s"`
}

// evaluateTemperature is the fixed sampling temperature for relayed
// evaluation requests.
const evaluateTemperature = 0.2

// Server relays evaluation prompts to the upstream completion endpoint.
type Server struct {
	config     Config
	httpClient *http.Client
	router     *mux.Router

	requests *prometheus.CounterVec
}

// New creates a relay server with its routes and metrics registered.
func New(config Config) *Server {
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())

	s := &Server{
		config:     config,
		httpClient: &http.Client{Timeout: config.Timeout},
		requests: promauto.With(registry).NewCounterVec(prometheus.CounterOpts{
			Name: "relay_requests_total",
			Help: "Relayed evaluation requests by outcome.",
		}, []string{"status"}),
	}

	router := mux.NewRouter()
	router.HandleFunc("/api/evaluate", s.handleEvaluate).Methods(http.MethodPost)
	router.HandleFunc("/healthz", s.handleHealthz).Methods(http.MethodGet)
	router.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{})).Methods(http.MethodGet)
	router.MethodNotAllowedHandler = http.HandlerFunc(s.handleMethodNotAllowed)
	s.router = router

	return s
}

// Router returns the daemon's HTTP handler.
func (s *Server) Router() http.Handler { return s.router }

// evaluateRequest is the inbound contract: a single prompt field.
type evaluateRequest struct {
	Prompt string `json:"prompt"`
}

// upstreamRequest is the chat completion request shape sent upstream.
type upstreamRequest struct {
	Model       string            `json:"model"`
	Messages    []upstreamMessage `json:"messages"`
	Temperature float64           `json:"temperature"`
}

type upstreamMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

func (s *Server) handleEvaluate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := clog.FromContext(ctx)

	if s.config.APIKey == "" {
		s.writeError(w, http.StatusInternalServerError, "API key not configured", nil)
		return
	}

	var req evaluateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Prompt == "" {
		s.writeError(w, http.StatusBadRequest, "Prompt is required", nil)
		return
	}

	body, err := json.Marshal(upstreamRequest{
		Model:       s.config.Model,
		Messages:    []upstreamMessage{{Role: "user", Content: req.Prompt}},
		Temperature: evaluateTemperature,
	})
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, "Internal server error", nil)
		return
	}

	upstream, err := http.NewRequestWithContext(ctx, http.MethodPost, s.config.UpstreamURL, bytes.NewReader(body))
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, "Internal server error", nil)
		return
	}
	upstream.Header.Set("Content-Type", "application/json")
	upstream.Header.Set("Authorization", "Bearer "+s.config.APIKey)

	resp, err := s.httpClient.Do(upstream)
	if err != nil {
		log.With("error", err).Error("upstream request failed")
		s.writeError(w, http.StatusInternalServerError, "Internal server error", err)
		return
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		log.With("error", err).Error("failed to read upstream response")
		s.writeError(w, http.StatusInternalServerError, "Internal server error", err)
		return
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.With("status", resp.StatusCode).Warn("upstream returned an error")
		s.requests.WithLabelValues("upstream_error").Inc()
		s.writeJSON(w, resp.StatusCode, map[string]any{
			"error":   "Upstream API error",
			"details": rawOrString(payload),
		})
		return
	}

	// Relay the upstream payload verbatim.
	s.requests.WithLabelValues("success").Inc()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(payload)
}

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}

func (s *Server) handleMethodNotAllowed(w http.ResponseWriter, _ *http.Request) {
	s.writeError(w, http.StatusMethodNotAllowed, "Method not allowed", nil)
}

func (s *Server) writeError(w http.ResponseWriter, status int, message string, err error) {
	s.requests.WithLabelValues(fmt.Sprintf("error_%d", status)).Inc()

	body := map[string]any{"error": message}
	if err != nil {
		body["details"] = err.Error()
	}
	s.writeJSON(w, status, body)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// rawOrString preserves upstream JSON error bodies as structured details,
// falling back to a plain string for anything else.
func rawOrString(payload []byte) any {
	if json.Valid(payload) {
		return json.RawMessage(payload)
	}
	return string(payload)
}
