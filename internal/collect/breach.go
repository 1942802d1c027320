package collect

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/hakim/osintdash/internal/models"
)

// ErrCredentialRequired signals that the breach provider cannot be queried
// because no API credential is configured. Callers surface this as a
// distinct condition, not a generic upstream failure.
var ErrCredentialRequired = errors.New("breach lookup unavailable: API credential required")

const defaultBreachBaseURL = "https://haveibeenpwned.com/api/v3"

// BreachClient queries the Have I Been Pwned v3 API for breached accounts
type BreachClient struct {
	HTTPClient *http.Client
	BaseURL    string
	APIKey     string
}

// NewBreachClient creates a breach client. apiKey may be empty; lookups then
// fail with ErrCredentialRequired instead of hitting the network.
func NewBreachClient(client *http.Client, apiKey string) *BreachClient {
	return &BreachClient{
		HTTPClient: client,
		BaseURL:    defaultBreachBaseURL,
		APIKey:     apiKey,
	}
}

// Check looks up breach records for an email address. A 404 from the
// provider means the address is clean and is not an error.
func (c *BreachClient) Check(ctx context.Context, email string) (*models.BreachFindings, error) {
	if c.APIKey == "" {
		return nil, ErrCredentialRequired
	}

	lookupURL := fmt.Sprintf("%s/breachedaccount/%s?truncateResponse=false",
		c.BaseURL, url.PathEscape(email))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, lookupURL, nil)
	if err != nil {
		return nil, fmt.Errorf("building breach request: %w", err)
	}
	req.Header.Set("User-Agent", toolUserAgent)
	req.Header.Set("hibp-api-key", c.APIKey)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("breach lookup failed: %w", err)
	}

	body, err := readBody(resp)
	if err != nil {
		return nil, fmt.Errorf("reading breach response: %w", err)
	}

	if resp.StatusCode == http.StatusNotFound {
		return &models.BreachFindings{
			Found:    false,
			Breaches: []models.BreachRecord{},
			Message:  "No breaches found",
		}, nil
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("breach provider returned status %d", resp.StatusCode)
	}

	var breaches []models.BreachRecord
	if err := json.Unmarshal(body, &breaches); err != nil {
		return nil, fmt.Errorf("parsing breach response: %w", err)
	}

	return &models.BreachFindings{
		Found:    true,
		Count:    len(breaches),
		Breaches: breaches,
	}, nil
}
