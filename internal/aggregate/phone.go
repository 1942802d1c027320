package aggregate

import (
	"context"
	"fmt"
	"strings"

	"github.com/hakim/osintdash/internal/models"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// searchPhone normalizes the number, derives country and formatting from
// the dialing prefix, and fans out to the caller-reputation sites.
func (a *Aggregator) searchPhone(ctx context.Context, result *models.SearchResult) {
	query := result.Query
	f := &result.Findings

	cleaned := digitsOnly(query)

	phone := &models.PhoneIntelligence{
		Original:    query,
		Cleaned:     cleaned,
		Length:      len(cleaned),
		IsValid:     len(cleaned) >= 10 && len(cleaned) <= 15,
		SpamReports: []models.AdapterResult{},
	}

	if phone.IsValid {
		phone.Country, phone.CountryCode = countryFromPrefix(cleaned)
		phone.Formatted = formatNumber(cleaned)
	}

	reports := make([]models.AdapterResult, len(a.SpamAdapters))

	g, gctx := errgroup.WithContext(ctx)
	for i, adapter := range a.SpamAdapters {
		g.Go(func() error {
			cctx, cancel := context.WithTimeout(gctx, a.cfg.QuickTimeout)
			defer cancel()
			reports[i] = a.Checker.CheckPaste(cctx, adapter.Name, adapter.URL(cleaned))
			return nil
		})
	}
	_ = g.Wait()

	phone.SpamReports = reports
	f.Phone = phone

	a.logger.Info("phone lookup complete",
		zap.String("query", query),
		zap.Bool("valid", phone.IsValid),
		zap.String("country", phone.Country))
}

func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// countryFromPrefix maps the leading dialing code to a country. Only the
// handful of codes the dashboard labels are recognised; everything else is
// left unidentified.
func countryFromPrefix(cleaned string) (country, code string) {
	switch {
	case strings.HasPrefix(cleaned, "1") && len(cleaned) == 11:
		return "US/Canada", "+1"
	case strings.HasPrefix(cleaned, "44"):
		return "UK", "+44"
	case strings.HasPrefix(cleaned, "91"):
		return "India", "+91"
	case strings.HasPrefix(cleaned, "86"):
		return "China", "+86"
	case strings.HasPrefix(cleaned, "61"):
		return "Australia", "+61"
	}
	return "", ""
}

// formatNumber renders 11-digit NANP numbers in the conventional grouping.
// Other prefixes are left unformatted.
func formatNumber(cleaned string) string {
	if len(cleaned) == 11 && strings.HasPrefix(cleaned, "1") {
		return fmt.Sprintf("+1 (%s) %s-%s", cleaned[1:4], cleaned[4:7], cleaned[7:])
	}
	return ""
}
