package collect

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/hakim/osintdash/internal/models"
)

// CheckFootprint runs one public-footprint probe for an email query. Any 200
// counts as presence; API probes (the GitHub user search) additionally attach
// the first matching account when the hit count is positive. Like Check, it
// never returns an error.
func (c *ProfileChecker) CheckFootprint(ctx context.Context, name, targetURL string, kind models.ResponseKind) models.FootprintResult {
	result := models.FootprintResult{Platform: name, URL: targetURL}

	resp, err := get(ctx, c.HTTPClient, targetURL, browserUserAgent, "")
	if err != nil {
		return result
	}

	body, err := readBody(resp)
	if err != nil || resp.StatusCode != http.StatusOK {
		return result
	}

	if kind != models.KindAPI {
		result.Found = true
		return result
	}

	var payload struct {
		TotalCount int                       `json:"total_count"`
		Items      []models.GitHubSearchUser `json:"items"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return result
	}
	result.Found = true
	if payload.TotalCount > 0 && len(payload.Items) > 0 {
		user := payload.Items[0]
		result.Data = &user
	}
	return result
}
