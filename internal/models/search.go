package models

import (
	"time"

	"github.com/google/uuid"
)

// SearchMeta contains metadata about a search, persisted to the history store
type SearchMeta struct {
	ID             string       `json:"id"`
	Query          string       `json:"query"`
	Type           QueryType    `json:"type"`
	StartedAt      time.Time    `json:"started_at"`
	CompletedAt    *time.Time   `json:"completed_at,omitempty"`
	Status         SearchStatus `json:"status"`
	PlatformsFound int          `json:"platforms_found"`
	RiskScore      int          `json:"risk_score"`
	APIsUsed       []string     `json:"apis_used,omitempty"`
}

// SearchResult is the complete response returned for one search.
// It is constructed fresh per search and never persisted whole; only the
// SearchMeta slice of it lands in the history store.
type SearchResult struct {
	ID               string    `json:"id"`
	Query            string    `json:"query"`
	Type             QueryType `json:"type"`
	Timestamp        time.Time `json:"timestamp"`
	Findings         Findings  `json:"findings"`
	APIsUsed         []string  `json:"apisUsed"`
	OverallRiskScore int       `json:"overallRiskScore"`
}

// NewSearchResult creates a search result with initialized metadata
func NewSearchResult(query string, queryType QueryType) *SearchResult {
	return &SearchResult{
		ID:        uuid.New().String(),
		Query:     query,
		Type:      queryType,
		Timestamp: time.Now(),
		APIsUsed:  []string{},
	}
}

// Meta derives the persistable history record from a completed result
func (r *SearchResult) Meta(status SearchStatus) *SearchMeta {
	meta := &SearchMeta{
		ID:        r.ID,
		Query:     r.Query,
		Type:      r.Type,
		StartedAt: r.Timestamp,
		Status:    status,
		RiskScore: r.OverallRiskScore,
		APIsUsed:  r.APIsUsed,
	}
	if r.Findings.PlatformsFound != nil {
		meta.PlatformsFound = *r.Findings.PlatformsFound
	}
	if status == StatusComplete || status == StatusFailed {
		now := time.Now()
		meta.CompletedAt = &now
	}
	return meta
}
