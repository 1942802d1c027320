// Package scoring holds the pure derivation functions computed from merged
// findings. The weights and thresholds are tuning values carried over
// verbatim from the dashboard they calibrate; do not re-derive them.
package scoring

import (
	"math"
	"strings"
)

// Risk levels reported by RiskLevel and consumed by OverallRisk
const (
	RiskLow    = "Low"
	RiskMedium = "Medium"
	RiskHigh   = "High"
)

// ActivityLevel maps a found-platform count to an activity tier
func ActivityLevel(platformsFound int) string {
	switch {
	case platformsFound >= 15:
		return "Very Active"
	case platformsFound >= 8:
		return "Active"
	case platformsFound >= 3:
		return "Moderate"
	default:
		return "Low"
	}
}

// RiskLevel maps a boolean risk-factor count to a level and its fixed
// recommendation list.
func RiskLevel(factors int) (string, []string) {
	switch {
	case factors >= 3:
		return RiskHigh, []string{
			"Consider using unique passwords per service",
			"Enable 2FA on all accounts",
			"Review and limit public information exposure",
		}
	case factors >= 1:
		return RiskMedium, []string{
			"Enable 2FA where available",
			"Regular password updates recommended",
		}
	default:
		return RiskLow, []string{
			"Maintain good security practices",
		}
	}
}

// DataRichness scores how much information was recovered about a subject,
// 0-100 rounded. Coverage contributes up to 30 points; the presence signals
// contribute 20/15/20/15.
func DataRichness(found, checked int, hasEmails, hasAvatar, hasBio, hasLocation bool) int {
	var coverage float64
	if checked > 0 {
		coverage = float64(found) / float64(checked) * 30
	}

	score := coverage
	if hasEmails {
		score += 20
	}
	if hasAvatar {
		score += 15
	}
	if hasBio {
		score += 20
	}
	if hasLocation {
		score += 15
	}

	return int(math.Round(score))
}

// RichnessTier maps a richness score to the dashboard's display tier
func RichnessTier(score int) string {
	switch {
	case score >= 70:
		return "High"
	case score >= 40:
		return "Medium"
	default:
		return "Low"
	}
}

// OverallRisk computes the 0-100 exposure score shown on the risk meter:
// 10 per breach, 30/15 for high/medium dark-web risk, 20 for exposed files,
// 5 per paste-site hit, capped at 100.
func OverallRisk(breachCount int, darkWebLevel string, exposedFiles bool, pasteFindings int) int {
	score := 10 * breachCount

	switch strings.ToLower(darkWebLevel) {
	case "high":
		score += 30
	case "medium":
		score += 15
	}

	if exposedFiles {
		score += 20
	}

	score += 5 * pasteFindings

	if score > 100 {
		score = 100
	}
	return score
}

// Deliverability computes the weighted mail-setup score (MX 40, SPF 30,
// DMARC 30) and its rating tier.
func Deliverability(hasMX, hasSPF, hasDMARC bool) (int, string) {
	score := 0
	if hasMX {
		score += 40
	}
	if hasSPF {
		score += 30
	}
	if hasDMARC {
		score += 30
	}

	var rating string
	switch {
	case score >= 90:
		rating = "Excellent"
	case score >= 70:
		rating = "Good"
	case score >= 40:
		rating = "Fair"
	default:
		rating = "Poor"
	}
	return score, rating
}

// SecurityGrade maps a security-posture score to a letter grade
func SecurityGrade(score int) string {
	switch {
	case score >= 90:
		return "A"
	case score >= 70:
		return "B"
	case score >= 50:
		return "C"
	case score >= 30:
		return "D"
	default:
		return "F"
	}
}
