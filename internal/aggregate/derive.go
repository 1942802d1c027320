package aggregate

import (
	"regexp"
	"strings"

	"github.com/hakim/osintdash/internal/models"
	"github.com/hakim/osintdash/internal/scoring"
)

// emailPattern matches addresses embedded in bio/description free text
var emailPattern = regexp.MustCompile(`[\w.-]+@[\w.-]+\.\w+`)

// bioThemeKeywords are the fixed interests extracted from profile bios
var bioThemeKeywords = []string{
	"developer", "designer", "artist", "gamer",
	"creator", "entrepreneur", "student", "engineer",
}

// commonMailDomains generate the potential-address suggestions
var commonMailDomains = []string{
	"gmail.com", "outlook.com", "yahoo.com", "hotmail.com", "protonmail.com",
}

// deriveUsername computes every aggregate field of a username search from
// the merged findings. It runs exactly once, after all adapters have
// settled, and reads nothing but f.
func deriveUsername(f *models.Findings, query string, checked int) {
	foundPlatforms := make([]models.AdapterResult, 0, len(f.SocialMedia))
	for _, p := range f.SocialMedia {
		if p.Found {
			foundPlatforms = append(foundPlatforms, p)
		}
	}
	found := len(foundPlatforms)

	f.DiscoveredEmails = extractEmails(f.SocialMedia)
	f.PotentialEmails = potentialEmails(query)

	f.PlatformsFound = intPtr(found)
	f.PlatformsChecked = intPtr(checked)

	f.SocialGraph = buildSocialGraph(query, foundPlatforms)

	pasteHits := 0
	for _, p := range f.PasteSites {
		if p.Found {
			pasteHits++
		}
	}

	// Risk factors: discovered addresses, paste exposure, an unusually wide
	// platform footprint, and any profile leaking a raw address.
	factors := 0
	if len(f.DiscoveredEmails) > 0 {
		factors++
	}
	if pasteHits > 0 {
		factors++
	}
	if found > 20 {
		factors++
	}
	for _, p := range foundPlatforms {
		if p.Email != "" {
			factors++
			break
		}
	}

	level, recommendations := scoring.RiskLevel(factors)

	breachExposure := "Check breach data"
	if f.Breaches != nil && f.Breaches.Error != "" {
		breachExposure = "Unknown"
	}
	pasteExposure := "None detected"
	if pasteHits > 0 {
		pasteExposure = "Found"
	}

	f.DarkWeb = &models.DarkWebIndicators{
		BreachExposure:  breachExposure,
		PasteExposure:   pasteExposure,
		RiskLevel:       level,
		Recommendations: recommendations,
	}

	hasAvatar := false
	hasBio := false
	hasLocation := false
	for _, p := range foundPlatforms {
		if p.AvatarURL != "" {
			hasAvatar = true
		}
		if p.Bio != "" || p.Description != "" {
			hasBio = true
		}
		if p.Location != "" {
			hasLocation = true
		}
	}

	richness := scoring.DataRichness(found, checked, len(f.DiscoveredEmails) > 0, hasAvatar, hasBio, hasLocation)
	f.DataRichness = intPtr(richness)

	f.Summary = &models.Summary{
		TotalPlatforms:    checked,
		FoundPlatforms:    found,
		DiscoveredEmails:  len(f.DiscoveredEmails),
		PasteSitesChecked: len(f.PasteSites),
		Richness:          scoring.RichnessTier(richness),
		SocialActivity:    f.SocialGraph.EstimatedActivity,
		RiskLevel:         level,
	}
}

// extractEmails collects the de-duplicated address set from adapter email
// fields and from regex matches inside bio/description text, preserving
// first-seen order.
func extractEmails(results []models.AdapterResult) []string {
	seen := make(map[string]bool)
	var emails []string

	add := func(email string) {
		if email != "" && !seen[email] {
			seen[email] = true
			emails = append(emails, email)
		}
	}

	for _, p := range results {
		add(p.FoundEmail)
		add(p.Email)
		for _, match := range emailPattern.FindAllString(p.Bio, -1) {
			add(match)
		}
		for _, match := range emailPattern.FindAllString(p.Description, -1) {
			add(match)
		}
	}

	return emails
}

// potentialEmails suggests addresses the subject may use at common providers
func potentialEmails(query string) []string {
	clean := strings.ReplaceAll(query, "@", "")
	out := make([]string, 0, len(commonMailDomains))
	for _, domain := range commonMailDomains {
		out = append(out, clean+"@"+domain)
	}
	return out
}

// buildSocialGraph summarises cross-platform presence: one connection per
// found platform plus the bio themes shared across them.
func buildSocialGraph(query string, foundPlatforms []models.AdapterResult) *models.SocialGraph {
	graph := &models.SocialGraph{
		Username:     query,
		Connections:  []models.Connection{},
		CommonThemes: []string{},
	}

	themeSeen := make(map[string]bool)
	for _, p := range foundPlatforms {
		graph.Connections = append(graph.Connections, models.Connection{
			Platform:  p.Platform,
			URL:       p.ProfileURL,
			HasAvatar: p.AvatarURL != "",
			HasBio:    p.Bio != "" || p.Description != "",
		})

		bio := strings.ToLower(p.Bio)
		for _, keyword := range bioThemeKeywords {
			if !themeSeen[keyword] && strings.Contains(bio, keyword) {
				themeSeen[keyword] = true
				graph.CommonThemes = append(graph.CommonThemes, keyword)
			}
		}
	}

	graph.EstimatedActivity = scoring.ActivityLevel(len(foundPlatforms))
	return graph
}

func intPtr(v int) *int {
	return &v
}
