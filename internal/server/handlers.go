package server

import (
	"encoding/json"
	"net/http"

	"github.com/hakim/osintdash/internal/models"
	"go.uber.org/zap"
)

// SearchRequest is the body of POST /api/v1/search
type SearchRequest struct {
	Query string           `json:"query"`
	Type  models.QueryType `json:"type"`
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	var req SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.Query == "" || req.Type == "" {
		writeError(w, http.StatusBadRequest, "query and type are required")
		return
	}
	if !req.Type.Valid() {
		writeError(w, http.StatusBadRequest, "type must be one of username, email, phone")
		return
	}

	// The search endpoint meters itself before any collaborator quotas
	// come into play.
	if s.limiter != nil {
		decision := s.limiter.CanCall(searchAPIKey)
		if !decision.Allowed {
			writeJSON(w, http.StatusTooManyRequests, map[string]any{
				"error": decision.Reason,
				"usage": decision.Usage,
			})
			return
		}
		if err := s.limiter.RecordUsage(searchAPIKey); err != nil {
			s.logger.Warn("recording search usage failed", zap.Error(err))
		}
	}

	result, err := s.searcher.Search(r.Context(), req.Query, req.Type)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if s.history != nil {
		if err := s.history.SaveSearch(result.Meta(models.StatusComplete)); err != nil {
			s.logger.Warn("saving search history failed",
				zap.String("id", result.ID), zap.Error(err))
		}
	}

	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleUsage(w http.ResponseWriter, r *http.Request) {
	if s.limiter == nil {
		writeJSON(w, http.StatusOK, map[string]any{"apis": []any{}})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"apis": s.limiter.UsageSnapshotAll()})
}

// UsageResetRequest is the body of POST /api/v1/usage/reset. An empty or
// absent api field resets every counter.
type UsageResetRequest struct {
	API string `json:"api"`
}

func (s *Server) handleUsageReset(w http.ResponseWriter, r *http.Request) {
	var req UsageResetRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
	}

	if s.limiter == nil {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
		return
	}

	if req.API != "" && !s.limiter.Configured(req.API) {
		writeError(w, http.StatusBadRequest, "unknown API: "+req.API)
		return
	}
	if err := s.limiter.Reset(req.API); err != nil {
		s.logger.Error("usage reset failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "reset failed")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
