package sources

import (
	"context"
	"net/url"
	"time"
)

const defaultFredBaseURL = "https://api.stlouisfed.org/fred"

// FredObservation is one raw FRED observation. Value is the upstream text:
// a number, or the literal "." when FRED has no data for the period.
type FredObservation struct {
	Date  string `json:"date"`
	Value string `json:"value"`
}

type fredObservationsResponse struct {
	Observations []FredObservation `json:"observations"`
}

// FredClient fetches monthly series observations from the FRED API.
type FredClient struct {
	client  *Client
	apiKey  string
	baseURL string
}

// NewFredClient builds a FRED client on the shared transport.
func NewFredClient(client *Client, apiKey string) *FredClient {
	return &FredClient{client: client, apiKey: apiKey, baseURL: defaultFredBaseURL}
}

// WithBaseURL overrides the API base URL, for tests.
func (c *FredClient) WithBaseURL(base string) *FredClient {
	c.baseURL = base
	return c
}

// Observations fetches one series at monthly frequency over [start, end].
// Higher-frequency series are averaged to monthly upstream.
func (c *FredClient) Observations(ctx context.Context, seriesID string, start, end time.Time) ([]FredObservation, error) {
	params := url.Values{}
	params.Set("series_id", seriesID)
	params.Set("api_key", c.apiKey)
	params.Set("file_type", "json")
	params.Set("observation_start", start.Format("2006-01-02"))
	params.Set("observation_end", end.Format("2006-01-02"))
	params.Set("frequency", "m")
	params.Set("aggregation_method", "avg")

	var resp fredObservationsResponse
	if err := c.client.getJSON(ctx, c.baseURL+"/series/observations", params, &resp); err != nil {
		return nil, err
	}
	return resp.Observations, nil
}
