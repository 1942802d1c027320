// Package aggregate implements the fan-out search: one query dispatched to
// every applicable adapter concurrently, individual failures absorbed into
// per-adapter results, everything merged into a single findings object.
package aggregate

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/hakim/osintdash/internal/collect"
	"github.com/hakim/osintdash/internal/models"
	"github.com/hakim/osintdash/internal/platforms"
	"github.com/hakim/osintdash/internal/ratelimit"
	"github.com/hakim/osintdash/internal/scoring"
	"go.uber.org/zap"
)

// ErrMissingQuery is returned when the request lacks a query or type.
// This is the only failure that surfaces as a top-level error; everything
// downstream degrades into partial findings instead.
var ErrMissingQuery = errors.New("query and type are required")

// Config controls the aggregator's outbound request budgets
type Config struct {
	// ProfileTimeout bounds each platform profile check.
	ProfileTimeout time.Duration
	// QuickTimeout bounds paste-site, footprint, spam and DNS probes.
	QuickTimeout time.Duration
	// SiteTimeout bounds the multi-request collaborators (site fetch,
	// record breakdown, CT search).
	SiteTimeout time.Duration
	// GeoIPInterval is the minimum spacing between geolocation requests.
	GeoIPInterval time.Duration
	// GeoIPMaxIPs caps how many unique IPs are geolocated per search.
	GeoIPMaxIPs int
	// BreachAPIKey is the breach-lookup credential; empty means the breach
	// collaborator reports its credential-required condition.
	BreachAPIKey string
	// WhoisAPIKey overrides the WHOIS free-tier key.
	WhoisAPIKey string
}

func (c Config) withDefaults() Config {
	if c.ProfileTimeout <= 0 {
		c.ProfileTimeout = 8 * time.Second
	}
	if c.QuickTimeout <= 0 {
		c.QuickTimeout = 5 * time.Second
	}
	if c.SiteTimeout <= 0 {
		c.SiteTimeout = 10 * time.Second
	}
	if c.GeoIPInterval <= 0 {
		c.GeoIPInterval = 1500 * time.Millisecond
	}
	if c.GeoIPMaxIPs <= 0 {
		c.GeoIPMaxIPs = 10
	}
	return c
}

// Aggregator executes searches. The collaborator clients and adapter
// catalogs are exported so tests can point them at stubs; production code
// uses the defaults installed by New.
type Aggregator struct {
	cfg     Config
	logger  *zap.Logger
	limiter *ratelimit.Limiter

	Checker *collect.ProfileChecker
	Breach  *collect.BreachClient
	DNS     *collect.DNSClient
	Whois   *collect.WhoisClient
	Certs   *collect.CertClient
	Wayback *collect.WaybackClient
	GeoIP   *collect.GeoIPClient
	Site    *collect.SiteClient

	UsernameAdapters []platforms.Adapter
	PasteAdapters    []platforms.Adapter
	SpamAdapters     []platforms.Adapter
	SubdomainWords   []string
}

// New creates an aggregator with the default collaborator clients and the
// full adapter catalog. limiter may be nil, in which case every call is
// allowed and only metered in APIsUsed.
func New(cfg Config, limiter *ratelimit.Limiter, logger *zap.Logger) *Aggregator {
	if logger == nil {
		logger = zap.NewNop()
	}
	cfg = cfg.withDefaults()
	hc := collect.DefaultHTTPClient()

	return &Aggregator{
		cfg:     cfg,
		logger:  logger,
		limiter: limiter,

		Checker: collect.NewProfileChecker(hc),
		Breach:  collect.NewBreachClient(hc, cfg.BreachAPIKey),
		DNS:     collect.NewDNSClient(hc),
		Whois:   collect.NewWhoisClient(hc, cfg.WhoisAPIKey),
		Certs:   collect.NewCertClient(hc),
		Wayback: collect.NewWaybackClient(hc),
		GeoIP:   collect.NewGeoIPClient(hc, cfg.GeoIPInterval),
		Site:    collect.NewSiteClient(hc),

		UsernameAdapters: platforms.ForUsername(),
		PasteAdapters:    platforms.PasteSites(),
		SpamAdapters:     platforms.SpamReportSites(),
		SubdomainWords:   platforms.SubdomainWordlist(),
	}
}

// Search runs a full aggregation pass for one query. Only request
// validation can fail; adapter and collaborator failures are absorbed into
// the findings, so a returned result is always complete (if partially
// empty).
func (a *Aggregator) Search(ctx context.Context, query string, queryType models.QueryType) (*models.SearchResult, error) {
	query = strings.TrimSpace(query)
	if query == "" || queryType == "" {
		return nil, ErrMissingQuery
	}
	if !queryType.Valid() {
		return nil, fmt.Errorf("unsupported query type %q", queryType)
	}

	a.logger.Info("starting search",
		zap.String("type", string(queryType)),
		zap.String("query", query))

	result := models.NewSearchResult(query, queryType)

	switch {
	case queryType == models.QueryEmail || strings.Contains(query, "@"):
		a.searchEmail(ctx, result)
	case queryType == models.QueryUsername:
		a.searchUsername(ctx, result)
	case queryType == models.QueryPhone:
		a.searchPhone(ctx, result)
	}

	result.OverallRiskScore = overallRisk(&result.Findings)

	a.logger.Info("search complete",
		zap.String("id", result.ID),
		zap.Int("risk_score", result.OverallRiskScore),
		zap.Strings("apis_used", result.APIsUsed))

	return result, nil
}

// gate checks the daily quota for one collaborator and meters the call when
// allowed. Denials come back as a reason string the caller records on the
// relevant category, keeping "not checked" distinguishable from "checked
// and absent".
func (a *Aggregator) gate(apiKey string, result *models.SearchResult) (bool, string) {
	if a.limiter == nil {
		result.APIsUsed = append(result.APIsUsed, apiKey)
		return true, ""
	}

	decision := a.limiter.CanCall(apiKey)
	if !decision.Allowed {
		a.logger.Warn("collaborator call blocked",
			zap.String("api", apiKey),
			zap.String("reason", decision.Reason))
		return false, decision.Reason
	}

	if err := a.limiter.RecordUsage(apiKey); err != nil {
		a.logger.Warn("recording usage failed", zap.String("api", apiKey), zap.Error(err))
	}
	result.APIsUsed = append(result.APIsUsed, apiKey)
	return true, ""
}

// overallRisk computes the exposure score from the merged findings.
// Dork suggestions are generated but never executed, so the exposed-files
// signal stays false here; it is reserved for results of dorks a user ran.
func overallRisk(f *models.Findings) int {
	breachCount := 0
	if f.Breaches != nil && f.Breaches.Found {
		breachCount = f.Breaches.Count
	}

	darkWebLevel := ""
	if f.DarkWeb != nil {
		darkWebLevel = f.DarkWeb.RiskLevel
	}

	pasteHits := 0
	for _, p := range f.PasteSites {
		if p.Found {
			pasteHits++
		}
	}

	return scoring.OverallRisk(breachCount, darkWebLevel, false, pasteHits)
}
