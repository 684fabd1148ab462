package rest

import (
	"context"
	"encoding/json"
	"net/http"
	"sort"
	"time"
)

const probeTimeout = 3 * time.Second

type storagePinger interface {
	Ping(ctx context.Context) error
}

// Gauge reports a live count for /health, such as open editing sessions.
type Gauge func() int

// HealthHandler serves the liveness, readiness and health probes.
type HealthHandler struct {
	storage storagePinger
	version string
	gauges  map[string]Gauge
}

// NewHealthHandler creates a HealthHandler. gauges are reported by /health
// under their names.
func NewHealthHandler(storage storagePinger, version string, gauges map[string]Gauge) *HealthHandler {
	return &HealthHandler{storage: storage, version: version, gauges: gauges}
}

// Register mounts the probes on mux.
func (h *HealthHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /live", h.Live)
	mux.HandleFunc("GET /ready", h.Ready)
	mux.HandleFunc("GET /health", h.Health)
}

// HealthResponse is the JSON body of every probe.
type HealthResponse struct {
	Status     string                `json:"status"`
	Version    string                `json:"version,omitempty"`
	Components map[string]CompStatus `json:"components,omitempty"`
	Gauges     map[string]int        `json:"gauges,omitempty"`
	Timestamp  time.Time             `json:"timestamp"`
}

// CompStatus is the status of one dependency.
type CompStatus struct {
	Status  string `json:"status"`
	Latency string `json:"latency,omitempty"`
}

// Live always answers 200 while the process serves requests.
func (h *HealthHandler) Live(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok", Timestamp: time.Now()})
}

// Ready answers 503 while the document storage is unreachable.
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	storage := h.checkStorage(r.Context())
	writeJSON(w, statusCode(storage.Status), HealthResponse{Status: storage.Status, Timestamp: time.Now()})
}

// Health reports storage with its ping latency, the build version and the
// configured gauges.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	storage := h.checkStorage(r.Context())

	var gauges map[string]int
	if len(h.gauges) > 0 {
		names := make([]string, 0, len(h.gauges))
		for name := range h.gauges {
			names = append(names, name)
		}
		sort.Strings(names)
		gauges = make(map[string]int, len(names))
		for _, name := range names {
			gauges[name] = h.gauges[name]()
		}
	}

	writeJSON(w, statusCode(storage.Status), HealthResponse{
		Status:     storage.Status,
		Version:    h.version,
		Components: map[string]CompStatus{"storage": storage},
		Gauges:     gauges,
		Timestamp:  time.Now(),
	})
}

func (h *HealthHandler) checkStorage(ctx context.Context) CompStatus {
	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	start := time.Now()
	if err := h.storage.Ping(ctx); err != nil {
		return CompStatus{Status: "down"}
	}
	return CompStatus{Status: "ok", Latency: time.Since(start).String()}
}

func statusCode(status string) int {
	if status == "ok" {
		return http.StatusOK
	}
	return http.StatusServiceUnavailable
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}
