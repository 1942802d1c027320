// Package server exposes the aggregator over HTTP: one search endpoint plus
// usage introspection. All responses are JSON.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/hakim/osintdash/internal/models"
	"github.com/hakim/osintdash/internal/ratelimit"
	"go.uber.org/zap"
)

// searchAPIKey is the self-quota on the search endpoint itself, checked
// before any collaborator gating happens.
const searchAPIKey = "osint-search"

// Searcher runs one aggregation pass. Satisfied by *aggregate.Aggregator.
type Searcher interface {
	Search(ctx context.Context, query string, queryType models.QueryType) (*models.SearchResult, error)
}

// HistoryStore persists completed-search metadata. Satisfied by *storage.Store.
type HistoryStore interface {
	SaveSearch(meta *models.SearchMeta) error
}

// Server wires the aggregator, limiter and history store behind the HTTP API
type Server struct {
	searcher Searcher
	limiter  *ratelimit.Limiter
	history  HistoryStore
	logger   *zap.Logger
}

// New creates a server. limiter and history may be nil; the search endpoint
// then runs unmetered and history is not recorded.
func New(searcher Searcher, limiter *ratelimit.Limiter, history HistoryStore, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{
		searcher: searcher,
		limiter:  limiter,
		history:  history,
		logger:   logger,
	}
}

// ListenAndServe blocks serving the API on addr until ctx is cancelled,
// then drains in-flight requests.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- httpServer.ListenAndServe()
	}()

	s.logger.Info("HTTP API listening", zap.String("addr", addr))

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	}
}
