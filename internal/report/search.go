// Package report renders search results as markdown for the one-shot CLI
// flow. The HTTP API returns raw JSON; these files exist for humans.
package report

import (
	"fmt"
	"os"
	"strings"

	"github.com/hakim/osintdash/internal/models"
)

// WriteSearchReport generates a markdown report for a completed search and
// writes it to the specified output path.
func WriteSearchReport(result *models.SearchResult, outputPath string) error {
	var b strings.Builder

	// Header
	b.WriteString("# OSINT Search Report\n\n")
	b.WriteString(fmt.Sprintf("**Query:** %s\n", result.Query))
	b.WriteString(fmt.Sprintf("**Type:** %s\n", result.Type))
	b.WriteString(fmt.Sprintf("**Date:** %s\n", result.Timestamp.Format("2006-01-02 15:04:05")))
	b.WriteString(fmt.Sprintf("**Overall risk score:** %d/100\n\n", result.OverallRiskScore))

	f := &result.Findings

	if f.Summary != nil {
		writeSummary(&b, f.Summary)
	}
	if len(f.SocialMedia) > 0 {
		writeSocialMedia(&b, f.SocialMedia)
	}
	if len(f.DiscoveredEmails) > 0 {
		b.WriteString("## Discovered Emails\n\n")
		for _, email := range f.DiscoveredEmails {
			b.WriteString(fmt.Sprintf("- %s\n", email))
		}
		b.WriteString("\n")
	}
	if f.DarkWeb != nil {
		writeDarkWeb(&b, f.DarkWeb)
	}
	if f.EmailIntelligence != nil {
		writeEmailIntelligence(&b, f.EmailIntelligence)
	}
	if f.Breaches != nil {
		writeBreaches(&b, f.Breaches)
	}
	if f.DNS != nil {
		writeDNS(&b, f.DNS)
	}
	if f.Certificates != nil {
		writeCertificates(&b, f.Certificates)
	}
	if f.Subdomains != nil {
		writeSubdomains(&b, f.Subdomains)
	}
	if len(f.IPGeolocation) > 0 {
		writeGeolocation(&b, f.IPGeolocation)
	}
	if f.Deliverability != nil {
		b.WriteString("## Email Deliverability\n\n")
		b.WriteString(fmt.Sprintf("**Score:** %d/100 (%s) | MX: %t | SPF: %t | DMARC: %t\n\n",
			f.Deliverability.Score, f.Deliverability.Rating,
			f.Deliverability.HasMX, f.Deliverability.HasSPF, f.Deliverability.HasDMARC))
	}
	if f.SecurityPosture != nil {
		b.WriteString("## Domain Security Posture\n\n")
		b.WriteString(fmt.Sprintf("**Score:** %d/100 (grade %s)\n\n",
			f.SecurityPosture.Score, f.SecurityPosture.Grade))
	}
	if len(f.GoogleDorks) > 0 {
		writeDorks(&b, f.GoogleDorks)
	}
	if f.Phone != nil {
		writePhone(&b, f.Phone)
	}

	// APIs used
	b.WriteString("## APIs Used\n\n")
	if len(result.APIsUsed) > 0 {
		for _, api := range result.APIsUsed {
			b.WriteString(fmt.Sprintf("- %s\n", api))
		}
	} else {
		b.WriteString("None.\n")
	}
	b.WriteString("\n")

	// Write to file
	if err := os.WriteFile(outputPath, []byte(b.String()), 0644); err != nil {
		return fmt.Errorf("writing report to %s: %w", outputPath, err)
	}

	return nil
}

func writeSummary(b *strings.Builder, s *models.Summary) {
	b.WriteString("## Summary\n\n")
	b.WriteString(fmt.Sprintf("**Platforms:** %d found of %d checked\n", s.FoundPlatforms, s.TotalPlatforms))
	b.WriteString(fmt.Sprintf("**Discovered emails:** %d\n", s.DiscoveredEmails))
	b.WriteString(fmt.Sprintf("**Data richness:** %s | **Activity:** %s | **Risk:** %s\n\n",
		s.Richness, s.SocialActivity, s.RiskLevel))
}

func writeSocialMedia(b *strings.Builder, results []models.AdapterResult) {
	b.WriteString("## Social Media Presence\n\n")
	b.WriteString("| Platform | Status | Profile |\n")
	b.WriteString("|----------|--------|--------|\n")
	for _, r := range results {
		status := "not found"
		switch {
		case r.Error != "":
			status = fmt.Sprintf("error (%s)", r.Error)
		case r.Found:
			status = "found"
		}
		b.WriteString(fmt.Sprintf("| %s | %s | %s |\n", r.Platform, status, r.ProfileURL))
	}
	b.WriteString("\n")
}

func writeDarkWeb(b *strings.Builder, d *models.DarkWebIndicators) {
	b.WriteString("## Exposure Indicators\n\n")
	b.WriteString(fmt.Sprintf("**Breach exposure:** %s | **Paste exposure:** %s | **Risk:** %s\n\n",
		d.BreachExposure, d.PasteExposure, d.RiskLevel))
	if len(d.Recommendations) > 0 {
		for _, rec := range d.Recommendations {
			b.WriteString(fmt.Sprintf("- %s\n", rec))
		}
		b.WriteString("\n")
	}
}

func writeEmailIntelligence(b *strings.Builder, e *models.EmailIntelligence) {
	b.WriteString("## Email Intelligence\n\n")
	b.WriteString(fmt.Sprintf("**Local part:** %s | **Domain:** %s | **Valid:** %t\n",
		e.LocalPart, e.Domain, e.IsValid))
	b.WriteString(fmt.Sprintf("**Possible usernames:** %s\n\n", strings.Join(e.PossibleUsernames, ", ")))
}

func writeBreaches(b *strings.Builder, br *models.BreachFindings) {
	b.WriteString("## Data Breaches\n\n")
	if br.Error != "" {
		b.WriteString(fmt.Sprintf("Check unavailable: %s\n\n", br.Error))
		return
	}
	if !br.Found {
		b.WriteString("No breaches found.\n\n")
		return
	}
	b.WriteString(fmt.Sprintf("**%d breach(es) found.**\n\n", br.Count))
	b.WriteString("| Breach | Date | Accounts | Data Classes |\n")
	b.WriteString("|--------|------|----------|-------------|\n")
	for _, record := range br.Breaches {
		b.WriteString(fmt.Sprintf("| %s | %s | %d | %s |\n",
			record.Title, record.BreachDate, record.PwnCount,
			strings.Join(record.DataClasses, ", ")))
	}
	b.WriteString("\n")
}

func writeDNS(b *strings.Builder, d *models.DNSFindings) {
	b.WriteString("## DNS & Registration\n\n")
	if d.Error != "" {
		b.WriteString(fmt.Sprintf("Check unavailable: %s\n\n", d.Error))
		return
	}
	b.WriteString(fmt.Sprintf("**A:** %s\n", strings.Join(d.Records.A, ", ")))
	b.WriteString(fmt.Sprintf("**MX:** %s\n", strings.Join(d.Records.MX, ", ")))
	if d.Records.SPF != "" {
		b.WriteString(fmt.Sprintf("**SPF:** %s\n", d.Records.SPF))
	}
	if d.Records.DMARC != "" {
		b.WriteString(fmt.Sprintf("**DMARC:** %s\n", d.Records.DMARC))
	}
	if d.Whois != nil && d.Whois.Error == "" {
		b.WriteString(fmt.Sprintf("**Registrar:** %s | **Created:** %s | **Expires:** %s\n",
			d.Whois.Registrar, d.Whois.CreatedDate, d.Whois.ExpiresDate))
	}
	b.WriteString("\n")
}

func writeCertificates(b *strings.Builder, c *models.CertificateFindings) {
	b.WriteString("## Certificate Transparency\n\n")
	if c.Error != "" {
		b.WriteString(fmt.Sprintf("Check unavailable: %s\n\n", c.Error))
		return
	}
	b.WriteString(fmt.Sprintf("**Certificates:** %d | **Subdomains from CT logs:** %d\n\n",
		c.Total, len(c.Subdomains)))
	if len(c.Subdomains) > 0 {
		for _, sub := range c.Subdomains {
			b.WriteString(fmt.Sprintf("- %s\n", sub))
		}
		b.WriteString("\n")
	}
}

func writeSubdomains(b *strings.Builder, s *models.SubdomainFindings) {
	b.WriteString("## Discovered Subdomains\n\n")
	if len(s.Found) == 0 {
		b.WriteString("None found.\n\n")
		return
	}
	b.WriteString("| Subdomain | IPs |\n")
	b.WriteString("|-----------|-----|\n")
	for _, sub := range s.Found {
		b.WriteString(fmt.Sprintf("| %s | %s |\n", sub.Subdomain, strings.Join(sub.IPs, ", ")))
	}
	b.WriteString("\n")
}

func writeGeolocation(b *strings.Builder, records []models.GeoIPRecord) {
	b.WriteString("## IP Geolocation\n\n")
	b.WriteString("| IP | Location | ISP | Hosting | Proxy |\n")
	b.WriteString("|----|----------|-----|---------|-------|\n")
	for _, r := range records {
		location := strings.TrimSuffix(strings.TrimSpace(r.City+", "+r.Country), ",")
		b.WriteString(fmt.Sprintf("| %s | %s | %s | %t | %t |\n",
			r.IP, location, r.ISP, r.Hosting, r.Proxy))
	}
	b.WriteString("\n")
}

func writeDorks(b *strings.Builder, dorks []models.GoogleDork) {
	b.WriteString("## Suggested Search Queries\n\n")
	b.WriteString("| Query | Risk | Description |\n")
	b.WriteString("|-------|------|-------------|\n")
	for _, d := range dorks {
		b.WriteString(fmt.Sprintf("| `%s` | %s | %s |\n", d.Query, d.Risk, d.Description))
	}
	b.WriteString("\n")
}

func writePhone(b *strings.Builder, p *models.PhoneIntelligence) {
	b.WriteString("## Phone Intelligence\n\n")
	b.WriteString(fmt.Sprintf("**Number:** %s | **Valid:** %t\n", p.Original, p.IsValid))
	if p.Country != "" {
		line := fmt.Sprintf("**Country:** %s (%s)", p.Country, p.CountryCode)
		if p.Formatted != "" {
			line += fmt.Sprintf(" | **Formatted:** %s", p.Formatted)
		}
		b.WriteString(line + "\n")
	}
	b.WriteString("\n**Spam reports:**\n\n")
	for _, r := range p.SpamReports {
		status := "clean"
		switch {
		case r.Error != "":
			status = fmt.Sprintf("error (%s)", r.Error)
		case r.Found:
			status = "reported"
		}
		b.WriteString(fmt.Sprintf("- %s: %s\n", r.Platform, status))
	}
	b.WriteString("\n")
}
