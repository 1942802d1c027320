package collect

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/hakim/osintdash/internal/models"
)

const defaultWaybackBaseURL = "https://web.archive.org"

// waybackSnapshotLimit caps how many CDX rows we request per lookup
const waybackSnapshotLimit = 100

// WaybackClient queries the web-archive CDX snapshot index
type WaybackClient struct {
	HTTPClient *http.Client
	BaseURL    string
}

// NewWaybackClient creates a CDX index client
func NewWaybackClient(client *http.Client) *WaybackClient {
	return &WaybackClient{HTTPClient: client, BaseURL: defaultWaybackBaseURL}
}

// Snapshots returns the capture history for a URL: total count plus the
// oldest and newest capture timestamps in the index's chronological order.
func (c *WaybackClient) Snapshots(ctx context.Context, target string) (*models.WaybackFindings, error) {
	queryURL := fmt.Sprintf("%s/cdx/search/cdx?url=%s&output=json&limit=%d",
		c.BaseURL, url.QueryEscape(target), waybackSnapshotLimit)

	resp, err := get(ctx, c.HTTPClient, queryURL, toolUserAgent, "")
	if err != nil {
		return nil, fmt.Errorf("wayback lookup failed: %w", err)
	}

	body, err := readBody(resp)
	if err != nil {
		return nil, fmt.Errorf("reading wayback response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("wayback index returned status %d", resp.StatusCode)
	}

	// The CDX JSON shape is a row-oriented table: first row holds column
	// names, remaining rows are snapshots.
	var rows [][]string
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("parsing wayback response: %w", err)
	}

	findings := &models.WaybackFindings{URL: target}
	if len(rows) < 2 {
		return findings, nil
	}

	timestampCol := -1
	for i, col := range rows[0] {
		if col == "timestamp" {
			timestampCol = i
			break
		}
	}
	if timestampCol == -1 {
		return nil, fmt.Errorf("wayback response missing timestamp column")
	}

	snapshots := rows[1:]
	findings.Total = len(snapshots)
	if len(snapshots[0]) > timestampCol {
		findings.OldestSnapshot = snapshots[0][timestampCol]
	}
	if last := snapshots[len(snapshots)-1]; len(last) > timestampCol {
		findings.NewestSnapshot = last[timestampCol]
	}

	return findings, nil
}
