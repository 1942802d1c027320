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

const defaultWhoisBaseURL = "https://www.whoisxmlapi.com/whoisserver/WhoisService"

// WhoisClient queries the whoisxmlapi free tier for registration metadata
type WhoisClient struct {
	HTTPClient *http.Client
	BaseURL    string
	APIKey     string
}

// NewWhoisClient creates a WHOIS client. The free-tier key is used when no
// key is configured.
func NewWhoisClient(client *http.Client, apiKey string) *WhoisClient {
	if apiKey == "" {
		apiKey = "at_free"
	}
	return &WhoisClient{HTTPClient: client, BaseURL: defaultWhoisBaseURL, APIKey: apiKey}
}

// Lookup fetches registrant/registration metadata for a domain. A
// premium-tier refusal from the provider is reported on the result, not as
// a transport error.
func (c *WhoisClient) Lookup(ctx context.Context, domain string) (*models.WhoisInfo, error) {
	lookupURL := fmt.Sprintf("%s?apiKey=%s&domainName=%s&outputFormat=JSON",
		c.BaseURL, url.QueryEscape(c.APIKey), url.QueryEscape(domain))

	resp, err := get(ctx, c.HTTPClient, lookupURL, toolUserAgent, "")
	if err != nil {
		return nil, fmt.Errorf("WHOIS lookup failed: %w", err)
	}

	body, err := readBody(resp)
	if err != nil {
		return nil, fmt.Errorf("reading WHOIS response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("WHOIS provider returned status %d", resp.StatusCode)
	}

	var payload struct {
		WhoisRecord struct {
			RegistrarName string `json:"registrarName"`
			CreatedDate   string `json:"createdDate"`
			ExpiresDate   string `json:"expiresDate"`
			Registrant    struct {
				Organization string `json:"organization"`
				Name         string `json:"name"`
			} `json:"registrant"`
		} `json:"WhoisRecord"`
		ErrorMessage struct {
			Msg string `json:"msg"`
		} `json:"ErrorMessage"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("parsing WHOIS response: %w", err)
	}

	if msg := payload.ErrorMessage.Msg; msg != "" {
		info := &models.WhoisInfo{Error: msg}
		if strings.Contains(strings.ToLower(msg), "premium") || strings.Contains(strings.ToLower(msg), "subscription") {
			info.Error = "WHOIS data requires a premium subscription"
		}
		return info, nil
	}

	registrant := payload.WhoisRecord.Registrant.Organization
	if registrant == "" {
		registrant = payload.WhoisRecord.Registrant.Name
	}

	return &models.WhoisInfo{
		Registrar:   payload.WhoisRecord.RegistrarName,
		CreatedDate: payload.WhoisRecord.CreatedDate,
		ExpiresDate: payload.WhoisRecord.ExpiresDate,
		Registrant:  registrant,
	}, nil
}
