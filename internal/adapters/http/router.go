package httpadapter

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/docuintel/docuintel/internal/core/ports"
	"github.com/docuintel/docuintel/internal/observability/metrics"
)

const serviceName = "api"

type Router struct {
	uploader ports.FileUploader
	files    ports.FileService
	folders  ports.FolderService
	logger   *slog.Logger
	metrics  *metrics.HTTPServerMetrics

	presignExpiry  time.Duration
	rateLimitRPS   int
	rateLimitBurst int
}

type RouterOption func(*Router)

func WithPresignExpiry(expiry time.Duration) RouterOption {
	return func(rt *Router) { rt.presignExpiry = expiry }
}

func WithRateLimit(rps, burst int) RouterOption {
	return func(rt *Router) {
		rt.rateLimitRPS = rps
		rt.rateLimitBurst = burst
	}
}

func NewRouter(
	uploader ports.FileUploader,
	files ports.FileService,
	folders ports.FolderService,
	logger *slog.Logger,
	serverMetrics *metrics.HTTPServerMetrics,
	options ...RouterOption,
) *Router {
	rt := &Router{
		uploader:      uploader,
		files:         files,
		folders:       folders,
		logger:        logger,
		metrics:       serverMetrics,
		presignExpiry: 15 * time.Minute,
	}
	for _, option := range options {
		option(rt)
	}
	return rt
}

func (rt *Router) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", rt.healthz)
	mux.HandleFunc("/v1/files", rt.handleFiles)
	mux.HandleFunc("/v1/files/unassigned", rt.listUnassigned)
	mux.HandleFunc("/v1/files/", rt.handleFileByID)
	mux.HandleFunc("/v1/folders", rt.handleFolders)
	mux.HandleFunc("/v1/folders/", rt.handleFolderByID)
	mux.Handle("/metrics", rt.metrics.Handler())

	var handler http.Handler = mux
	handler = rt.metrics.Middleware(serviceName, handler)
	handler = accessLogMiddleware(rt.logger, handler)
	if rt.rateLimitRPS > 0 {
		handler = rateLimitMiddleware(rt.rateLimitRPS, rt.rateLimitBurst, handler)
	}
	return requestIDMiddleware(handler)
}

func (rt *Router) healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// pathSuffix splits "/v1/files/{id}" or "/v1/files/{id}/{action}" after the
// prefix, returning the id and the remaining action segment, if any.
func pathSuffix(path, prefix string) (id, action string) {
	rest := strings.TrimPrefix(path, prefix)
	rest = strings.Trim(rest, "/")
	if idx := strings.IndexByte(rest, '/'); idx >= 0 {
		return rest[:idx], rest[idx+1:]
	}
	return rest, ""
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, mapErrorToHTTPStatus(err), map[string]string{"error": err.Error()})
}

func methodNotAllowed(w http.ResponseWriter) {
	writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
}
