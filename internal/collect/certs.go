package collect

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/hakim/osintdash/internal/models"
)

const defaultCertBaseURL = "https://crt.sh"

// Caps on what a CT search reports back. Popular domains return thousands
// of certificates; the dashboard only renders the head of the list.
const (
	maxCertificates = 50
	maxCTSubdomains = 30
)

// CertClient searches certificate-transparency logs via crt.sh
type CertClient struct {
	HTTPClient *http.Client
	BaseURL    string
}

// NewCertClient creates a CT log search client
func NewCertClient(client *http.Client) *CertClient {
	return &CertClient{HTTPClient: client, BaseURL: defaultCertBaseURL}
}

// Search returns certificates logged for a domain, with subject alternative
// names deduplicated into a subdomain set. Certificates are capped at the
// 50 most recent and subdomains at 30.
func (c *CertClient) Search(ctx context.Context, domain string) (*models.CertificateFindings, error) {
	searchURL := fmt.Sprintf("%s/?q=%s&output=json", c.BaseURL, url.QueryEscape(domain))

	resp, err := get(ctx, c.HTTPClient, searchURL, toolUserAgent, "")
	if err != nil {
		return nil, fmt.Errorf("CT log search failed: %w", err)
	}

	body, err := readBody(resp)
	if err != nil {
		return nil, fmt.Errorf("reading CT response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("CT log search returned status %d", resp.StatusCode)
	}

	var certs []models.Certificate
	if err := json.Unmarshal(body, &certs); err != nil {
		return nil, fmt.Errorf("parsing CT response: %w", err)
	}

	// Deduplicate SANs into a subdomain set, preserving first-seen order
	seen := make(map[string]bool)
	var subdomains []string
	for _, cert := range certs {
		for _, name := range strings.Split(cert.NameValue, "\n") {
			name = strings.TrimSpace(name)
			if name == "" || seen[name] {
				continue
			}
			seen[name] = true
			subdomains = append(subdomains, name)
		}
	}

	findings := &models.CertificateFindings{
		Domain:       domain,
		Total:        len(certs),
		Certificates: certs,
		Subdomains:   subdomains,
	}
	if len(findings.Certificates) > maxCertificates {
		findings.Certificates = findings.Certificates[:maxCertificates]
	}
	if len(findings.Subdomains) > maxCTSubdomains {
		findings.Subdomains = findings.Subdomains[:maxCTSubdomains]
	}

	return findings, nil
}
