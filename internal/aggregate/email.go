package aggregate

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/hakim/osintdash/internal/models"
	"github.com/hakim/osintdash/internal/platforms"
	"github.com/hakim/osintdash/internal/scoring"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// emailShapeRe is a coarse syntactic check, not RFC validation
var emailShapeRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// variationDomains generate the common-provider address variations
var variationDomains = []string{"gmail.com", "outlook.com", "yahoo.com", "hotmail.com"}

// searchEmail runs the full email pipeline: local address intelligence
// first, then a concurrent fan-out over the breach, footprint, DNS/WHOIS,
// certificate, archive, subdomain and site collaborators, then the derived
// categories (deliverability, security posture, dorks, geolocation). The
// domain collaborators run only when the address carries a domain.
//
// Quota gates are decided sequentially before anything launches, so APIsUsed
// is never written from two goroutines and a denial is recorded exactly once
// as the category's error.
func (a *Aggregator) searchEmail(ctx context.Context, result *models.SearchResult) {
	query := result.Query
	f := &result.Findings

	localPart, domain, _ := strings.Cut(query, "@")

	f.EmailIntelligence = emailIntelligence(query, localPart, domain)

	breachOK, breachReason := a.gate("breach-check", result)

	// Domain lookups run only when the address actually carries a domain.
	// A bare local part still gets the breach check, footprint probes and
	// address analysis, but must not debit the domain quotas or emit junk
	// requests for empty hostnames.
	var (
		dnsOK, certOK, waybackOK             bool
		dnsReason, certReason, waybackReason string
	)
	if domain != "" {
		dnsOK, dnsReason = a.gate("dns-whois-lookup", result)
		certOK, certReason = a.gate("cert-transparency", result)
		waybackOK, waybackReason = a.gate("wayback-lookup", result)
	}

	footprintAdapters := platforms.ForEmailFootprint(localPart)
	footprint := make([]models.FootprintResult, len(footprintAdapters))

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if !breachOK {
			f.Breaches = &models.BreachFindings{Breaches: []models.BreachRecord{}, Error: breachReason}
			return nil
		}
		cctx, cancel := context.WithTimeout(gctx, a.cfg.QuickTimeout)
		defer cancel()
		findings, err := a.Breach.Check(cctx, query)
		if err != nil {
			f.Breaches = &models.BreachFindings{Breaches: []models.BreachRecord{}, Error: err.Error()}
			return nil
		}
		f.Breaches = findings
		return nil
	})

	for i, adapter := range footprintAdapters {
		g.Go(func() error {
			cctx, cancel := context.WithTimeout(gctx, a.cfg.QuickTimeout)
			defer cancel()
			footprint[i] = a.Checker.CheckFootprint(cctx, adapter.Name, adapter.URL(query), adapter.Kind)
			return nil
		})
	}

	if domain != "" {
		g.Go(func() error {
			if !dnsOK {
				f.DNS = &models.DNSFindings{Domain: domain, Error: dnsReason}
				return nil
			}
			cctx, cancel := context.WithTimeout(gctx, a.cfg.SiteTimeout)
			defer cancel()
			dns := &models.DNSFindings{
				Domain:  domain,
				Records: a.DNS.LookupRecords(cctx, domain),
			}
			if whois, err := a.Whois.Lookup(cctx, domain); err == nil {
				dns.Whois = whois
			} else {
				dns.Whois = &models.WhoisInfo{Error: err.Error()}
			}
			f.DNS = dns
			return nil
		})

		g.Go(func() error {
			if !certOK {
				f.Certificates = &models.CertificateFindings{
					Domain:       domain,
					Certificates: []models.Certificate{},
					Subdomains:   []string{},
					Error:        certReason,
				}
				return nil
			}
			cctx, cancel := context.WithTimeout(gctx, a.cfg.SiteTimeout)
			defer cancel()
			certs, err := a.Certs.Search(cctx, domain)
			if err != nil {
				f.Certificates = &models.CertificateFindings{
					Domain:       domain,
					Certificates: []models.Certificate{},
					Subdomains:   []string{},
					Error:        err.Error(),
				}
				return nil
			}
			f.Certificates = certs
			return nil
		})

		g.Go(func() error {
			if !waybackOK {
				f.Wayback = &models.WaybackFindings{URL: domain, Error: waybackReason}
				return nil
			}
			cctx, cancel := context.WithTimeout(gctx, a.cfg.QuickTimeout)
			defer cancel()
			wayback, err := a.Wayback.Snapshots(cctx, domain)
			if err != nil {
				f.Wayback = &models.WaybackFindings{URL: domain, Error: err.Error()}
				return nil
			}
			f.Wayback = wayback
			return nil
		})

		g.Go(func() error {
			f.Subdomains = a.bruteForceSubdomains(gctx, domain)
			return nil
		})

		g.Go(func() error {
			cctx, cancel := context.WithTimeout(gctx, a.cfg.SiteTimeout)
			defer cancel()
			tech, err := a.Site.Fingerprint(cctx, domain)
			if err != nil {
				a.logger.Debug("site fingerprint failed",
					zap.String("domain", domain), zap.Error(err))
				return nil
			}
			f.TechStack = tech
			return nil
		})
	}

	// Tasks never return errors; this is purely the settle-all barrier.
	_ = g.Wait()

	f.PublicFootprint = footprint

	if f.DNS != nil && f.DNS.Error == "" {
		records := f.DNS.Records
		hasMX := len(records.MX) > 0
		hasSPF := records.SPF != ""
		hasDMARC := records.DMARC != ""
		score, rating := scoring.Deliverability(hasMX, hasSPF, hasDMARC)
		f.Deliverability = &models.Deliverability{
			Score:    score,
			Rating:   rating,
			HasMX:    hasMX,
			HasSPF:   hasSPF,
			HasDMARC: hasDMARC,
		}
	}

	if f.TechStack != nil {
		f.SecurityPosture = securityPosture(f.TechStack.Security)
	}

	f.GoogleDorks = googleDorks(query, domain)

	if domain != "" {
		// Sequential on purpose: the geolocation client paces itself and the
		// provider bans bursty callers.
		f.IPGeolocation = a.geolocate(ctx, f)
	}

	subdomainsFound := 0
	if f.Subdomains != nil {
		subdomainsFound = f.Subdomains.Total
	}
	a.logger.Info("email fan-out complete",
		zap.String("query", query),
		zap.String("domain", domain),
		zap.Int("subdomains_found", subdomainsFound),
		zap.Int("ips_geolocated", len(f.IPGeolocation)))
}

// bruteForceSubdomains probes the fixed wordlist against the domain over
// DNS, at most five in flight, and keeps only names that resolve.
func (a *Aggregator) bruteForceSubdomains(ctx context.Context, domain string) *models.SubdomainFindings {
	candidates := make([]models.DiscoveredSubdomain, len(a.SubdomainWords))
	resolved := make([]bool, len(a.SubdomainWords))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(5)

	for i, word := range a.SubdomainWords {
		g.Go(func() error {
			cctx, cancel := context.WithTimeout(gctx, a.cfg.QuickTimeout)
			defer cancel()
			name := word + "." + domain
			ips, err := a.DNS.ResolveSubdomain(cctx, name)
			if err == nil && len(ips) > 0 {
				candidates[i] = models.DiscoveredSubdomain{Subdomain: name, IPs: ips}
				resolved[i] = true
			}
			return nil
		})
	}
	_ = g.Wait()

	found := []models.DiscoveredSubdomain{}
	for i := range candidates {
		if resolved[i] {
			found = append(found, candidates[i])
		}
	}
	return &models.SubdomainFindings{Total: len(found), Found: found}
}

// geolocate looks up every unique IP discovered by the DNS and subdomain
// collectors, capped to the configured budget. Lookup failures skip the IP.
func (a *Aggregator) geolocate(ctx context.Context, f *models.Findings) []models.GeoIPRecord {
	seen := make(map[string]bool)
	var ips []string
	add := func(ip string) {
		if ip != "" && !seen[ip] {
			seen[ip] = true
			ips = append(ips, ip)
		}
	}

	if f.DNS != nil {
		for _, ip := range f.DNS.Records.A {
			add(ip)
		}
	}
	if f.Subdomains != nil {
		for _, sub := range f.Subdomains.Found {
			for _, ip := range sub.IPs {
				add(ip)
			}
		}
	}

	if len(ips) > a.cfg.GeoIPMaxIPs {
		ips = ips[:a.cfg.GeoIPMaxIPs]
	}

	var records []models.GeoIPRecord
	for _, ip := range ips {
		record, err := a.GeoIP.Lookup(ctx, ip)
		if err != nil {
			a.logger.Debug("geolocation skipped",
				zap.String("ip", ip), zap.Error(err))
			continue
		}
		records = append(records, *record)
	}
	return records
}

// emailIntelligence derives the no-network address analysis: likely
// usernames and common-provider variations.
func emailIntelligence(email, localPart, domain string) *models.EmailIntelligence {
	seen := make(map[string]bool)
	usernames := []string{}
	add := func(name string) {
		if name != "" && !seen[name] {
			seen[name] = true
			usernames = append(usernames, name)
		}
	}

	stripped := strings.NewReplacer(".", "", "_", "", "-", "").Replace(localPart)
	segments := strings.FieldsFunc(localPart, func(r rune) bool {
		return r == '.' || r == '_' || r == '-'
	})

	add(localPart)
	add(stripped)
	if len(segments) > 0 {
		add(segments[0])
	}
	add(strings.ToLower(localPart))

	variations := []string{}
	for _, provider := range variationDomains {
		candidate := localPart + "@" + provider
		if candidate != email {
			variations = append(variations, candidate)
		}
	}

	return &models.EmailIntelligence{
		LocalPart:         localPart,
		Domain:            domain,
		IsValid:           emailShapeRe.MatchString(email),
		PossibleUsernames: usernames,
		CommonVariations:  variations,
	}
}

// securityPosture scores header presence: HTTPS 30, HSTS 25, CSP 25, and 10
// each for frame and XSS protection headers.
func securityPosture(headers models.SecurityHeaders) *models.SecurityPosture {
	score := 0
	if headers.HTTPS {
		score += 30
	}
	if headers.HSTS {
		score += 25
	}
	if headers.CSP {
		score += 25
	}
	if headers.XFrameOptions != "" && headers.XFrameOptions != "Not set" {
		score += 10
	}
	if headers.XSSProtection != "" && headers.XSSProtection != "Not set" {
		score += 10
	}
	return &models.SecurityPosture{
		SecurityHeaders: headers,
		Score:           score,
		Grade:           scoring.SecurityGrade(score),
	}
}

// googleDorks builds the suggested search queries for manual follow-up.
// They are rendered as links only and never executed by the service. The
// domain dork is omitted when the query carries no domain.
func googleDorks(email, domain string) []models.GoogleDork {
	type dorkEntry struct {
		query       string
		risk        string
		description string
	}

	entries := []dorkEntry{
		{fmt.Sprintf("%q", email), "low", "Pages mentioning the address"},
		{fmt.Sprintf("%q filetype:pdf", email), "medium", "PDF documents containing the address"},
		{fmt.Sprintf("%q site:pastebin.com", email), "high", "Paste dumps containing the address"},
	}
	if domain != "" {
		entries = append(entries, dorkEntry{fmt.Sprintf("site:%s filetype:sql OR filetype:env OR filetype:log", domain), "high", "Exposed data or log files on the domain"})
	}
	entries = append(entries, dorkEntry{fmt.Sprintf("%q intext:password", email), "high", "Pages associating the address with credentials"})

	dorks := make([]models.GoogleDork, 0, len(entries))
	for _, e := range entries {
		dorks = append(dorks, models.GoogleDork{
			Query:       e.query,
			URL:         "https://www.google.com/search?q=" + url.QueryEscape(e.query),
			Risk:        e.risk,
			Description: e.description,
		})
	}
	return dorks
}
