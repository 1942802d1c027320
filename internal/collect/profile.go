package collect

import (
	"context"
	"encoding/json"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/hakim/osintdash/internal/models"
)

// notFoundIndicators mark an HTML page as an error/absence page.
// Matched as substrings against the lowercased body.
var notFoundIndicators = []string{
	"page not found",
	"user not found",
	"profile not found",
	"account not found",
	"sorry, this page",
	"404",
	"does not exist",
	"isn't available",
	"suspended account",
	"this account doesn't exist",
	"no longer exists",
	"couldn't find",
	"nothing to see here",
	"not on",
	"isn't on",
}

// foundIndicators are structural markers that only render on real profiles
var foundIndicators = []string{
	"og:type",
	"profile:username",
	"twitter:creator",
	"author",
	"article:author",
	"profile",
	"followers",
	"following",
	"posts",
	"tweets",
	"videos",
}

// minProfileContentLength excludes typical error-page sizes: real profile
// pages are rarely under 5 KB, stock 404 pages rarely over it.
const minProfileContentLength = 5000

var (
	titleRe   = regexp.MustCompile(`(?i)<title[^>]*>([^<]+)</title>`)
	descRe    = regexp.MustCompile(`(?i)<meta[^>]*name=["']description["'][^>]*content=["']([^"']+)["']`)
	ogTitleRe = regexp.MustCompile(`(?i)<meta[^>]*property=["']og:title["'][^>]*content=["']([^"']+)["']`)
)

// ClassifyHTML applies the best-effort existence heuristic to profile
// markup. A page "exists" when it carries a strong structural marker or
// substantial content, and no absence phrase. False positives and negatives
// are expected; callers must not treat the answer as authoritative.
func ClassifyHTML(html string) (exists bool, confidence string) {
	lower := strings.ToLower(html)

	for _, indicator := range notFoundIndicators {
		if strings.Contains(lower, indicator) {
			return false, ""
		}
	}

	for _, indicator := range foundIndicators {
		if strings.Contains(lower, indicator) {
			return true, "high"
		}
	}

	if len(html) > minProfileContentLength {
		return true, "medium"
	}

	return false, ""
}

// ExtractPageMeta pulls the display title and description out of profile
// markup, preferring open-graph tags over the document title.
func ExtractPageMeta(html string) (title, description string) {
	if m := ogTitleRe.FindStringSubmatch(html); m != nil {
		title = m[1]
	} else if m := titleRe.FindStringSubmatch(html); m != nil {
		title = m[1]
	}
	if m := descRe.FindStringSubmatch(html); m != nil {
		description = m[1]
	}
	return title, description
}

// ProfileChecker performs single platform checks for the fan-out aggregator
type ProfileChecker struct {
	HTTPClient *http.Client
}

// NewProfileChecker creates a checker over the shared outbound client
func NewProfileChecker(client *http.Client) *ProfileChecker {
	return &ProfileChecker{HTTPClient: client}
}

// Check fetches one platform endpoint and classifies the outcome. It never
// returns an error: failures are recorded on the result so a single
// adapter's trouble cannot abort a batch.
func (c *ProfileChecker) Check(ctx context.Context, name, targetURL string, kind models.ResponseKind) models.AdapterResult {
	result := models.AdapterResult{Platform: name}

	resp, err := get(ctx, c.HTTPClient, targetURL, browserUserAgent,
		"text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8")
	if err != nil {
		if isTimeout(err) {
			result.Error = models.ErrorTimeout
		} else {
			result.Error = models.ErrorUnavailable
		}
		return result
	}

	body, err := readBody(resp)
	if err != nil {
		result.Error = models.ErrorUnavailable
		return result
	}

	// Only an exact 200 counts as a hit; redirects to login walls and soft
	// 404s with other statuses are treated as absent.
	if resp.StatusCode != http.StatusOK {
		return result
	}

	contentType := resp.Header.Get("Content-Type")

	switch {
	case kind == models.KindAPI || strings.Contains(contentType, "application/json"):
		var payload map[string]any
		if err := json.Unmarshal(body, &payload); err != nil {
			result.Error = models.ErrorUnavailable
			return result
		}
		result.Found = true
		extractStructured(&result, name, targetURL, payload)

	case strings.Contains(contentType, "text/html"):
		html := string(body)
		exists, confidence := ClassifyHTML(html)
		if !exists {
			return result
		}
		result.Found = true
		result.Confidence = confidence
		result.Title, result.Description = ExtractPageMeta(html)
		result.ProfileURL = targetURL

	default:
		// 200 with an unexpected content type: count the hit, keep it bare.
		result.Found = true
		result.ProfileURL = targetURL
	}

	return result
}

// extractStructured fills platform-specific fields for the small hard-coded
// set of sources with a known JSON response shape. Everything else keeps
// only the generic found/profileUrl fields.
func extractStructured(result *models.AdapterResult, name, targetURL string, payload map[string]any) {
	switch name {
	case "GitHub":
		if login, ok := payload["login"].(string); ok {
			result.Username = login
			result.Name = str(payload["name"])
			result.Bio = str(payload["bio"])
			result.Location = str(payload["location"])
			result.Company = str(payload["company"])
			result.Blog = str(payload["blog"])
			result.Twitter = str(payload["twitter_username"])
			result.PublicRepos = num(payload["public_repos"])
			result.Followers = num(payload["followers"])
			result.Following = num(payload["following"])
			result.CreatedAt = str(payload["created_at"])
			result.AvatarURL = str(payload["avatar_url"])
			result.ProfileURL = str(payload["html_url"])
			result.Email = str(payload["email"])
			if result.Email != "" {
				result.FoundEmail = result.Email
			}
		}
	case "Reddit":
		data, ok := payload["data"].(map[string]any)
		if !ok {
			return
		}
		result.Username = str(data["name"])
		result.Karma = num(data["total_karma"])
		result.LinkKarma = num(data["link_karma"])
		result.CommentKarma = num(data["comment_karma"])
		if created, ok := data["created_utc"].(float64); ok {
			result.CreatedAt = time.Unix(int64(created), 0).UTC().Format(time.RFC3339)
		}
		if premium, ok := data["is_gold"].(bool); ok {
			result.IsPremium = premium
		}
		result.AvatarURL = str(data["icon_img"])
		if result.Username != "" {
			result.ProfileURL = "https://reddit.com/user/" + result.Username
		}
	default:
		result.ProfileURL = targetURL
	}
}

// pasteExposureHints mark a paste-site page as empty for a user
var pasteExposureHints = []string{"not found", "no pastes", "404"}

// CheckPaste fetches one paste-site page and reports whether it suggests
// data exposure for the queried subject.
func (c *ProfileChecker) CheckPaste(ctx context.Context, name, targetURL string) models.AdapterResult {
	result := models.AdapterResult{Platform: name}

	resp, err := get(ctx, c.HTTPClient, targetURL, browserUserAgent, "")
	if err != nil {
		if isTimeout(err) {
			result.Error = models.ErrorTimeout
		} else {
			result.Error = models.ErrorUnavailable
		}
		return result
	}

	body, err := readBody(resp)
	if err != nil {
		result.Error = models.ErrorUnavailable
		return result
	}
	if resp.StatusCode != http.StatusOK {
		return result
	}

	lower := strings.ToLower(string(body))
	for _, hint := range pasteExposureHints {
		if strings.Contains(lower, hint) {
			return result
		}
	}

	result.Found = true
	result.URL = targetURL
	result.Note = "Potential data exposure found"
	return result
}

func str(v any) string {
	s, _ := v.(string)
	return s
}

func num(v any) int {
	f, _ := v.(float64)
	return int(f)
}
