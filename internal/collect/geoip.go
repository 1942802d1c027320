package collect

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/hakim/osintdash/internal/models"
	"golang.org/x/time/rate"
)

const defaultGeoIPBaseURL = "http://ip-api.com/json"

// GeoIPClient resolves IP addresses to location/ASN data. Calls are
// throttled through a token-bucket limiter to respect the provider's
// free-tier request budget.
type GeoIPClient struct {
	HTTPClient *http.Client
	BaseURL    string
	Limiter    *rate.Limiter
}

// NewGeoIPClient creates a geolocation client spacing requests by interval
func NewGeoIPClient(client *http.Client, interval time.Duration) *GeoIPClient {
	return &GeoIPClient{
		HTTPClient: client,
		BaseURL:    defaultGeoIPBaseURL,
		Limiter:    rate.NewLimiter(rate.Every(interval), 1),
	}
}

// Lookup geolocates one IP. It blocks on the throttle first, so callers can
// loop over IPs without their own pacing.
func (c *GeoIPClient) Lookup(ctx context.Context, ip string) (*models.GeoIPRecord, error) {
	if err := c.Limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("geolocation throttle: %w", err)
	}

	lookupURL := fmt.Sprintf("%s/%s?fields=status,message,country,regionName,city,isp,org,as,lat,lon,hosting,proxy,query",
		c.BaseURL, url.PathEscape(ip))

	resp, err := get(ctx, c.HTTPClient, lookupURL, toolUserAgent, "")
	if err != nil {
		return nil, fmt.Errorf("geolocation lookup failed: %w", err)
	}

	body, err := readBody(resp)
	if err != nil {
		return nil, fmt.Errorf("reading geolocation response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("geolocation provider returned status %d", resp.StatusCode)
	}

	var payload struct {
		Status     string  `json:"status"`
		Message    string  `json:"message"`
		Country    string  `json:"country"`
		RegionName string  `json:"regionName"`
		City       string  `json:"city"`
		ISP        string  `json:"isp"`
		Org        string  `json:"org"`
		AS         string  `json:"as"`
		Lat        float64 `json:"lat"`
		Lon        float64 `json:"lon"`
		Hosting    bool    `json:"hosting"`
		Proxy      bool    `json:"proxy"`
		Query      string  `json:"query"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("parsing geolocation response: %w", err)
	}

	if payload.Status != "success" {
		return nil, fmt.Errorf("geolocation failed for %s: %s", ip, payload.Message)
	}

	return &models.GeoIPRecord{
		IP:      ip,
		Country: payload.Country,
		Region:  payload.RegionName,
		City:    payload.City,
		ISP:     payload.ISP,
		Org:     payload.Org,
		AS:      payload.AS,
		Lat:     payload.Lat,
		Lon:     payload.Lon,
		Hosting: payload.Hosting,
		Proxy:   payload.Proxy,
	}, nil
}
