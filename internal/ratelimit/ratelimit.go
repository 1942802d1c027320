// Package ratelimit gates calls to named external capabilities against a
// per-API daily quota. Counts reset implicitly at the local calendar-day
// boundary: a stale record is ignored and lazily discarded, never swept on a
// schedule.
package ratelimit

import (
	"fmt"
	"sync"
	"time"
)

// APIConfig describes one named external capability and its daily quota.
// Key is the stable identifier used for gating and storage; Name is the
// human-readable display name used in reasons and tables.
type APIConfig struct {
	Key         string `mapstructure:"key" json:"key" yaml:"key"`
	Name        string `mapstructure:"name" json:"name" yaml:"name"`
	Enabled     bool   `mapstructure:"enabled" json:"enabled" yaml:"enabled"`
	DailyLimit  int    `mapstructure:"daily_limit" json:"dailyLimit" yaml:"daily_limit"`
	Description string `mapstructure:"description" json:"description" yaml:"description"`
}

// UsageRecord is one API's call count for a single calendar day
type UsageRecord struct {
	Count int    `json:"count"`
	Date  string `json:"date"`
}

// UsageStore is the minimal persistence contract required by the limiter.
// Using an interface keeps the package testable without a real database.
type UsageStore interface {
	GetUsage(apiKey string) (UsageRecord, bool, error)
	PutUsage(apiKey string, rec UsageRecord) error
	DeleteUsage(apiKey string) error
	AllUsage() (map[string]UsageRecord, error)
	ClearUsage() error
}

// Usage pairs the current count with the configured limit
type Usage struct {
	Current int `json:"current"`
	Limit   int `json:"limit"`
}

// Decision is the outcome of a CanCall check. A denied call is a normal
// return value, not an error, so callers can branch without exception
// handling.
type Decision struct {
	Allowed bool   `json:"allowed"`
	Reason  string `json:"reason,omitempty"`
	Usage   *Usage `json:"usage,omitempty"`
}

// Snapshot is a point-in-time usage reading for one API
type Snapshot struct {
	Current    int     `json:"current"`
	Limit      int     `json:"limit"`
	Percentage float64 `json:"percentage"`
}

// APIUsage combines an API's configuration with its current snapshot
type APIUsage struct {
	APIKey string    `json:"apiName"`
	Config APIConfig `json:"config"`
	Usage  Snapshot  `json:"usage"`
}

// Limiter meters daily usage per API on top of a UsageStore.
//
// All read-modify-write cycles are serialized under a mutex, so the limiter
// is safe for concurrent callers within one process. It provides no
// cross-process coordination: two processes sharing a store can still race.
type Limiter struct {
	mu      sync.Mutex
	configs map[string]APIConfig
	order   []string
	store   UsageStore
	now     func() time.Time
}

// New creates a limiter over the given API table. The slice order is
// preserved for SnapshotAll.
func New(apis []APIConfig, store UsageStore) *Limiter {
	l := &Limiter{
		configs: make(map[string]APIConfig, len(apis)),
		order:   make([]string, 0, len(apis)),
		store:   store,
		now:     time.Now,
	}
	for _, api := range apis {
		if _, dup := l.configs[api.Key]; dup {
			continue
		}
		l.configs[api.Key] = api
		l.order = append(l.order, api.Key)
	}
	return l
}

// today formats the local calendar date used as the quota window key.
// No timezone normalization is applied; the window follows process-local time.
func (l *Limiter) today() string {
	return l.now().Format("2006-01-02")
}

// todayCount returns the live count for apiKey, treating a missing record,
// a stale record, or a store read failure as zero.
func (l *Limiter) todayCount(apiKey string) int {
	rec, ok, err := l.store.GetUsage(apiKey)
	if err != nil || !ok || rec.Date != l.today() {
		return 0
	}
	return rec.Count
}

// CanCall reports whether apiKey may be called right now. It fails closed
// for unknown and disabled APIs.
func (l *Limiter) CanCall(apiKey string) Decision {
	l.mu.Lock()
	defer l.mu.Unlock()

	cfg, ok := l.configs[apiKey]
	if !ok {
		return Decision{Allowed: false, Reason: fmt.Sprintf("Unknown API: %s", apiKey)}
	}
	if !cfg.Enabled {
		return Decision{Allowed: false, Reason: fmt.Sprintf("%s is currently disabled", cfg.Name)}
	}

	count := l.todayCount(apiKey)
	if count >= cfg.DailyLimit {
		return Decision{
			Allowed: false,
			Reason:  fmt.Sprintf("Daily limit reached for %s (%d/%d)", cfg.Name, count, cfg.DailyLimit),
			Usage:   &Usage{Current: count, Limit: cfg.DailyLimit},
		}
	}

	return Decision{Allowed: true, Usage: &Usage{Current: count, Limit: cfg.DailyLimit}}
}

// RecordUsage increments today's count for apiKey, creating the record on
// the first call of the day. Records dated before today are discarded in the
// same pass (lazy expiry).
func (l *Limiter) RecordUsage(apiKey string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	today := l.today()

	// Lazy expiry: drop every stale record while we hold the lock.
	if all, err := l.store.AllUsage(); err == nil {
		for key, rec := range all {
			if rec.Date != today {
				if err := l.store.DeleteUsage(key); err != nil {
					return fmt.Errorf("expiring stale usage for %s: %w", key, err)
				}
			}
		}
	}

	rec, ok, err := l.store.GetUsage(apiKey)
	if err != nil {
		return fmt.Errorf("loading usage for %s: %w", apiKey, err)
	}

	if ok && rec.Date == today {
		rec.Count++
	} else {
		rec = UsageRecord{Count: 1, Date: today}
	}

	if err := l.store.PutUsage(apiKey, rec); err != nil {
		return fmt.Errorf("saving usage for %s: %w", apiKey, err)
	}
	return nil
}

// UsageSnapshot returns the current usage reading for apiKey. Unknown APIs
// and zero limits yield all-zero snapshots rather than errors.
func (l *Limiter) UsageSnapshot(apiKey string) Snapshot {
	l.mu.Lock()
	defer l.mu.Unlock()

	cfg, ok := l.configs[apiKey]
	if !ok {
		return Snapshot{}
	}

	count := l.todayCount(apiKey)
	snap := Snapshot{Current: count, Limit: cfg.DailyLimit}
	if cfg.DailyLimit > 0 {
		snap.Percentage = float64(count) / float64(cfg.DailyLimit) * 100
	}
	return snap
}

// UsageSnapshotAll returns a snapshot for every configured API, in
// configuration order.
func (l *Limiter) UsageSnapshotAll() []APIUsage {
	out := make([]APIUsage, 0, len(l.order))
	for _, key := range l.order {
		out = append(out, APIUsage{
			APIKey: key,
			Config: l.configs[key],
			Usage:  l.UsageSnapshot(key),
		})
	}
	return out
}

// Reset clears one API's usage record, or all usage data when apiKey is empty
func (l *Limiter) Reset(apiKey string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if apiKey == "" {
		return l.store.ClearUsage()
	}
	return l.store.DeleteUsage(apiKey)
}

// Configured reports whether apiKey is present in the limiter's table
func (l *Limiter) Configured(apiKey string) bool {
	_, ok := l.configs[apiKey]
	return ok
}
