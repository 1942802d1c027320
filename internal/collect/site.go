package collect

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/hakim/osintdash/internal/models"
)

// SiteClient fetches a domain's front page for technology fingerprinting
// and security-header inspection.
type SiteClient struct {
	HTTPClient *http.Client
}

// NewSiteClient creates a site fetcher over the shared outbound client
func NewSiteClient(client *http.Client) *SiteClient {
	return &SiteClient{HTTPClient: client}
}

// Fingerprint fetches https://{domain}, follows redirects, and derives the
// technology stack from response headers and markup substrings. The
// detection is substring matching, not parsing; wrong answers are possible
// and tolerated.
func (c *SiteClient) Fingerprint(ctx context.Context, domain string) (*models.TechStack, error) {
	resp, err := get(ctx, c.HTTPClient, "https://"+domain, browserUserAgent, "")
	if err != nil {
		return nil, fmt.Errorf("site fetch failed: %w", err)
	}

	body, err := readBody(resp)
	if err != nil {
		return nil, fmt.Errorf("reading site response: %w", err)
	}

	headers := resp.Header
	html := strings.ToLower(string(body))

	tech := &models.TechStack{
		Server:    headerOr(headers, "Server", "Unknown"),
		PoweredBy: headerOr(headers, "X-Powered-By", "Not disclosed"),
		Analytics: []string{},
		CDN:       "None detected",
		Security: models.SecurityHeaders{
			HTTPS:         strings.HasPrefix(resp.Request.URL.String(), "https"),
			HSTS:          headers.Get("Strict-Transport-Security") != "",
			CSP:           headers.Get("Content-Security-Policy") != "",
			XFrameOptions: headerOr(headers, "X-Frame-Options", "Not set"),
			XSSProtection: headerOr(headers, "X-Xss-Protection", "Not set"),
		},
	}

	if headers.Get("Cf-Ray") != "" {
		tech.CDN = "Cloudflare"
	} else if headers.Get("X-Amz-Cf-Id") != "" {
		tech.CDN = "AWS CloudFront"
	}

	// CMS fingerprints; later matches win, same as checking each in order
	for _, fp := range []struct{ marker, cms string }{
		{"wp-content", "WordPress"},
		{"wordpress", "WordPress"},
		{"drupal", "Drupal"},
		{"joomla", "Joomla"},
		{"shopify", "Shopify"},
		{"wix", "Wix"},
	} {
		if strings.Contains(html, fp.marker) {
			tech.CMS = fp.cms
		}
	}

	for _, fp := range []struct{ marker, framework string }{
		{"react", "React"},
		{"vue", "Vue.js"},
		{"angular", "Angular"},
		{"next", "Next.js"},
	} {
		if strings.Contains(html, fp.marker) {
			tech.Framework = fp.framework
		}
	}

	if strings.Contains(html, "google-analytics") || strings.Contains(html, "gtag") {
		tech.Analytics = append(tech.Analytics, "Google Analytics")
	}
	if strings.Contains(html, "facebook.com/tr") {
		tech.Analytics = append(tech.Analytics, "Facebook Pixel")
	}
	if strings.Contains(html, "hotjar") {
		tech.Analytics = append(tech.Analytics, "Hotjar")
	}
	if strings.Contains(html, "mixpanel") {
		tech.Analytics = append(tech.Analytics, "Mixpanel")
	}

	return tech, nil
}

func headerOr(h http.Header, key, fallback string) string {
	if v := h.Get(key); v != "" {
		return v
	}
	return fallback
}
