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

const defaultDoHBaseURL = "https://cloudflare-dns.com/dns-query"

// DNSAnswer is one answer record from the DNS-over-HTTPS resolver
type DNSAnswer struct {
	Name string `json:"name"`
	Type int    `json:"type"`
	TTL  int    `json:"TTL"`
	Data string `json:"data"`
}

// DNSClient resolves names through a JSON DNS-over-HTTPS endpoint
type DNSClient struct {
	HTTPClient *http.Client
	BaseURL    string
}

// NewDNSClient creates a resolver client against the Cloudflare DoH endpoint
func NewDNSClient(client *http.Client) *DNSClient {
	return &DNSClient{HTTPClient: client, BaseURL: defaultDoHBaseURL}
}

// Resolve queries one record type for a name. An empty answer section is a
// normal result, not an error.
func (c *DNSClient) Resolve(ctx context.Context, name, recordType string) ([]DNSAnswer, error) {
	queryURL := fmt.Sprintf("%s?name=%s&type=%s", c.BaseURL, url.QueryEscape(name), url.QueryEscape(recordType))

	resp, err := get(ctx, c.HTTPClient, queryURL, toolUserAgent, "application/dns-json")
	if err != nil {
		return nil, fmt.Errorf("DoH query for %s/%s failed: %w", name, recordType, err)
	}

	body, err := readBody(resp)
	if err != nil {
		return nil, fmt.Errorf("reading DoH response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("DoH resolver returned status %d", resp.StatusCode)
	}

	var payload struct {
		Answer []DNSAnswer `json:"Answer"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("parsing DoH response: %w", err)
	}

	return payload.Answer, nil
}

// LookupRecords builds the per-type record breakdown for a domain:
// A, MX and TXT answers plus the SPF and DMARC policies found in TXT data.
// Individual record-type failures are tolerated; the breakdown is best-effort.
func (c *DNSClient) LookupRecords(ctx context.Context, domain string) models.DNSRecordSet {
	var set models.DNSRecordSet

	if answers, err := c.Resolve(ctx, domain, "A"); err == nil {
		for _, a := range answers {
			set.A = append(set.A, a.Data)
		}
	}

	if answers, err := c.Resolve(ctx, domain, "MX"); err == nil {
		for _, a := range answers {
			set.MX = append(set.MX, a.Data)
		}
	}

	if answers, err := c.Resolve(ctx, domain, "TXT"); err == nil {
		for _, a := range answers {
			txt := strings.Trim(a.Data, `"`)
			set.TXT = append(set.TXT, txt)
			if strings.HasPrefix(txt, "v=spf1") {
				set.SPF = txt
			}
		}
	}

	if answers, err := c.Resolve(ctx, "_dmarc."+domain, "TXT"); err == nil {
		for _, a := range answers {
			txt := strings.Trim(a.Data, `"`)
			if strings.HasPrefix(txt, "v=DMARC1") {
				set.DMARC = txt
				break
			}
		}
	}

	return set
}

// ResolveSubdomain probes one candidate subdomain, returning its resolved
// addresses. Empty result means the name does not resolve.
func (c *DNSClient) ResolveSubdomain(ctx context.Context, name string) ([]string, error) {
	answers, err := c.Resolve(ctx, name, "A")
	if err != nil {
		return nil, err
	}

	ips := make([]string, 0, len(answers))
	for _, a := range answers {
		ips = append(ips, a.Data)
	}
	return ips, nil
}
