// Package debugserver exposes frame statistics and the latest player pose over HTTP.
package debugserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/sasha-s/go-deadlock"
	"github.com/sirupsen/logrus"

	"raycaster/internal/logger"
	"raycaster/internal/sim"
)

// StatsSource supplies the /debug/stats payload.
type StatsSource interface {
	GetDetailedStats() map[string]interface{}
}

// Server serves debug endpoints. The frame driver publishes snapshots; HTTP
// handlers only read the last published copy.
type Server struct {
	mu        deadlock.RWMutex
	pose      sim.Snapshot
	published bool

	stats StatsSource
	log   *logrus.Entry
	srv   *http.Server
}

// New creates a server reading statistics from stats.
func New(stats StatsSource) *Server {
	return &Server{
		stats: stats,
		log:   logger.For("debugserver"),
	}
}

// Publish records the pose of the latest completed frame.
func (s *Server) Publish(snap sim.Snapshot) {
	s.mu.Lock()
	s.pose = snap
	s.published = true
	s.mu.Unlock()
}

// Handler returns the router with all debug routes.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(s.requestLogger)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/debug", func(r chi.Router) {
		r.Get("/stats", s.getStats)
		r.Get("/pose", s.getPose)
	})

	return r
}

func (s *Server) getStats(w http.ResponseWriter, r *http.Request) {
	if s.stats == nil {
		respondError(w, http.StatusServiceUnavailable, "no stats source")
		return
	}
	respondJSON(w, http.StatusOK, s.stats.GetDetailedStats())
}

func (s *Server) getPose(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	pose, ok := s.pose, s.published
	s.mu.RUnlock()

	if !ok {
		respondError(w, http.StatusServiceUnavailable, "no frame rendered yet")
		return
	}
	respondJSON(w, http.StatusOK, pose)
}

// Start listens on addr and serves in the background. It returns the bound address.
func (s *Server) Start(addr string) (string, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return "", fmt.Errorf("debug server listen on %s: %w", addr, err)
	}
	s.srv = &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		if err := s.srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.log.WithError(err).Error("debug server stopped")
		}
	}()
	s.log.WithField("addr", ln.Addr().String()).Info("debug server listening")
	return ln.Addr().String(), nil
}

// Shutdown stops a started server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.srv == nil {
		return nil
	}
	return s.srv.Shutdown(ctx)
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.log.WithFields(logrus.Fields{
			"method":   r.Method,
			"path":     r.URL.Path,
			"status":   ww.Status(),
			"duration": time.Since(start),
		}).Debug("request")
	})
}

// respondJSON writes a JSON response
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.For("debugserver").WithError(err).Warn("failed to encode response")
	}
}

// respondError writes an error JSON response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
