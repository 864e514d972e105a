// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	service "github.com/okian/gestura/internal/app"
	"github.com/okian/gestura/internal/domain/dedupe"
	"github.com/okian/gestura/internal/domain/fanout"
	"github.com/okian/gestura/internal/domain/model"
	"github.com/okian/gestura/internal/domain/profile"
	"github.com/okian/gestura/internal/domain/recognizer"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	FrameDependencies
	ProfileDependencies
	StreamDependencies
	StatsProvider
}

// FrameDependencies is the device bridge: frames in, resets on disconnect.
type FrameDependencies interface {
	// IngestFrame queues a frame. Returns service.ErrBackpressure when full.
	IngestFrame(ctx context.Context, frame model.TouchFrame) error
	Reset(ctx context.Context, cause string)
}

// ProfileDependencies reads and replaces the active profile.
type ProfileDependencies interface {
	ActiveProfile() *profile.Profile
	LoadProfile(ctx context.Context, p *profile.Profile) error
}

// StreamDependencies registers gesture observers.
type StreamDependencies interface {
	Subscribe(o fanout.Observer) *recognizer.Subscription
}

// StatsProvider defines the interface for getting service statistics.
type StatsProvider interface {
	GetStats() service.Stats
}

// Server wires HTTP routes for the gesture API.
type Server struct {
	healthHandler  *HealthHandler
	statsHandler   *StatsHandler
	framesHandler  *FramesHandler
	profileHandler *ProfileHandler
	streamHandler  *StreamHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, opts ...StreamOption) *Server {
	return &Server{
		healthHandler:  NewHealthHandler(),
		statsHandler:   NewStatsHandler(deps),
		framesHandler:  NewFramesHandler(deps, dedupe.NewInMemoryDeduper()),
		profileHandler: NewProfileHandler(deps),
		streamHandler:  NewStreamHandler(deps, opts...),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/frames", MetricsMiddleware(s.framesHandler.HandlePostFrame, "frames"))
	mux.HandleFunc("/reset", MetricsMiddleware(s.framesHandler.HandleReset, "reset"))
	mux.HandleFunc("/profile", MetricsMiddleware(s.profileHandler.HandleProfile, "profile"))
	// The stream hijacks the connection, so it is not wrapped.
	mux.HandleFunc("/gestures/stream", s.streamHandler.HandleStream)
}

type ackResponse struct {
	Status string `json:"status"`
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}
