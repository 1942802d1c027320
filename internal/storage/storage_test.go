package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/hakim/osintdash/internal/models"
	"github.com/hakim/osintdash/internal/ratelimit"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestUsageRoundTrip(t *testing.T) {
	store := newTestStore(t)

	if _, found, err := store.GetUsage("breach-check"); err != nil || found {
		t.Fatalf("GetUsage on empty store = found=%t err=%v, want miss", found, err)
	}

	rec := ratelimit.UsageRecord{Count: 7, Date: "2026-08-31"}
	if err := store.PutUsage("breach-check", rec); err != nil {
		t.Fatalf("PutUsage failed: %v", err)
	}

	got, found, err := store.GetUsage("breach-check")
	if err != nil || !found {
		t.Fatalf("GetUsage = found=%t err=%v, want hit", found, err)
	}
	if got != rec {
		t.Errorf("record = %+v, want %+v", got, rec)
	}

	all, err := store.AllUsage()
	if err != nil || len(all) != 1 {
		t.Fatalf("AllUsage = %v (err=%v), want 1 record", all, err)
	}

	if err := store.DeleteUsage("breach-check"); err != nil {
		t.Fatalf("DeleteUsage failed: %v", err)
	}
	if _, found, _ := store.GetUsage("breach-check"); found {
		t.Error("record survived deletion")
	}
}

func TestClearUsage(t *testing.T) {
	store := newTestStore(t)

	_ = store.PutUsage("a", ratelimit.UsageRecord{Count: 1, Date: "2026-08-31"})
	_ = store.PutUsage("b", ratelimit.UsageRecord{Count: 2, Date: "2026-08-31"})

	if err := store.ClearUsage(); err != nil {
		t.Fatalf("ClearUsage failed: %v", err)
	}

	all, err := store.AllUsage()
	if err != nil {
		t.Fatalf("AllUsage after clear failed: %v", err)
	}
	if len(all) != 0 {
		t.Errorf("records after clear = %d, want 0", len(all))
	}

	// Bucket must still be writable after recreation.
	if err := store.PutUsage("c", ratelimit.UsageRecord{Count: 3, Date: "2026-08-31"}); err != nil {
		t.Errorf("PutUsage after clear failed: %v", err)
	}
}

func TestSearchHistory(t *testing.T) {
	store := newTestStore(t)

	older := &models.SearchMeta{
		ID:        "id-older",
		Query:     "octocat",
		Type:      models.QueryUsername,
		StartedAt: time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC),
		Status:    models.StatusComplete,
		RiskScore: 15,
	}
	newer := &models.SearchMeta{
		ID:        "id-newer",
		Query:     "octocat",
		Type:      models.QueryUsername,
		StartedAt: time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC),
		Status:    models.StatusRunning,
	}
	other := &models.SearchMeta{
		ID:        "id-other",
		Query:     "someone-else",
		Type:      models.QueryUsername,
		StartedAt: time.Date(2026, 8, 31, 11, 0, 0, 0, time.UTC),
		Status:    models.StatusComplete,
	}

	for _, meta := range []*models.SearchMeta{older, newer, other} {
		if err := store.SaveSearch(meta); err != nil {
			t.Fatalf("SaveSearch(%s) failed: %v", meta.ID, err)
		}
	}

	got, err := store.GetSearch("id-older")
	if err != nil {
		t.Fatalf("GetSearch failed: %v", err)
	}
	if got == nil || got.RiskScore != 15 {
		t.Errorf("GetSearch = %+v, want the older record", got)
	}

	if missing, err := store.GetSearch("nope"); err != nil || missing != nil {
		t.Errorf("GetSearch(nope) = %+v err=%v, want nil/nil", missing, err)
	}

	list, err := store.ListSearches("octocat")
	if err != nil {
		t.Fatalf("ListSearches failed: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("len(list) = %d, want 2 (index scoped to query)", len(list))
	}
	if list[0].ID != "id-newer" || list[1].ID != "id-older" {
		t.Errorf("order = %s, %s; want newest first", list[0].ID, list[1].ID)
	}
}

func TestSaveSearch_IndexIdempotent(t *testing.T) {
	store := newTestStore(t)

	meta := &models.SearchMeta{
		ID:        "id-1",
		Query:     "octocat",
		StartedAt: time.Now(),
		Status:    models.StatusRunning,
	}
	if err := store.SaveSearch(meta); err != nil {
		t.Fatalf("SaveSearch failed: %v", err)
	}

	meta.Status = models.StatusComplete
	if err := store.SaveSearch(meta); err != nil {
		t.Fatalf("second SaveSearch failed: %v", err)
	}

	list, err := store.ListSearches("octocat")
	if err != nil {
		t.Fatalf("ListSearches failed: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("len(list) = %d, want 1 (no duplicate index entries)", len(list))
	}
	if list[0].Status != models.StatusComplete {
		t.Errorf("status = %s, want updated record", list[0].Status)
	}
}

func TestUpdateSearchStatus(t *testing.T) {
	store := newTestStore(t)

	meta := &models.SearchMeta{
		ID:        "id-1",
		Query:     "octocat",
		StartedAt: time.Now(),
		Status:    models.StatusRunning,
	}
	if err := store.SaveSearch(meta); err != nil {
		t.Fatalf("SaveSearch failed: %v", err)
	}

	if err := store.UpdateSearchStatus("id-1", models.StatusComplete); err != nil {
		t.Fatalf("UpdateSearchStatus failed: %v", err)
	}

	got, err := store.GetSearch("id-1")
	if err != nil {
		t.Fatalf("GetSearch failed: %v", err)
	}
	if got.Status != models.StatusComplete {
		t.Errorf("status = %s, want complete", got.Status)
	}
	if got.CompletedAt == nil {
		t.Error("CompletedAt not set on terminal transition")
	}
}

func TestSanitizeQuery(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"octocat", "octocat"},
		{"john.doe@example.com", "john.doe_example.com"},
		{"+1 (555) 123-4567", "_1_555_123-4567"},
		{"../../etc/passwd", ".._.._etc_passwd"},
	}
	for _, tt := range tests {
		if got := SanitizeQuery(tt.in); got != tt.want {
			t.Errorf("SanitizeQuery(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestCreateSearchDir(t *testing.T) {
	base := t.TempDir()
	startedAt := time.Date(2026, 8, 31, 12, 30, 45, 0, time.UTC)

	dir, err := CreateSearchDir(base, "octocat", startedAt)
	if err != nil {
		t.Fatalf("CreateSearchDir failed: %v", err)
	}
	if filepath.Base(dir) != "octocat_20260831_123045" {
		t.Errorf("dir = %s, want query_timestamp name", filepath.Base(dir))
	}
	for _, sub := range []string{"reports", "raw"} {
		if _, err := os.Stat(filepath.Join(dir, sub)); err != nil {
			t.Errorf("subdirectory %s missing: %v", sub, err)
		}
	}
}
