package aggregate

import (
	"context"

	"github.com/hakim/osintdash/internal/models"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// searchUsername fans the query out to every platform and paste-site
// adapter concurrently, waits for all of them to settle, then derives the
// aggregate fields from the merged results.
//
// Each task gets its own deadline and records failures on its own result,
// so a single slow or broken platform never aborts the batch. Results land
// in catalog order: the slices are indexed up front and each task writes
// only its own slot.
func (a *Aggregator) searchUsername(ctx context.Context, result *models.SearchResult) {
	query := result.Query
	f := &result.Findings

	social := make([]models.AdapterResult, len(a.UsernameAdapters))
	pastes := make([]models.AdapterResult, len(a.PasteAdapters))

	g, gctx := errgroup.WithContext(ctx)

	for i, adapter := range a.UsernameAdapters {
		g.Go(func() error {
			cctx, cancel := context.WithTimeout(gctx, a.cfg.ProfileTimeout)
			defer cancel()
			social[i] = a.Checker.Check(cctx, adapter.Name, adapter.URL(query), adapter.Kind)
			return nil
		})
	}

	for i, adapter := range a.PasteAdapters {
		g.Go(func() error {
			cctx, cancel := context.WithTimeout(gctx, a.cfg.QuickTimeout)
			defer cancel()
			pastes[i] = a.Checker.CheckPaste(cctx, adapter.Name, adapter.URL(query))
			return nil
		})
	}

	// Tasks never return errors; this is purely the settle-all barrier.
	_ = g.Wait()

	f.SocialMedia = social
	f.PasteSites = pastes

	deriveUsername(f, query, len(a.UsernameAdapters))

	a.logger.Info("username fan-out complete",
		zap.String("query", query),
		zap.Intp("platforms_found", f.PlatformsFound),
		zap.Int("platforms_checked", len(a.UsernameAdapters)))
}
