package sources

import (
	"context"
	"fmt"
	"strings"
)

const defaultBLSBaseURL = "https://api.bls.gov/publicAPI/v2"

// MaxYearsPerRequest is the BLS public API limit on the span of a single
// timeseries request. Callers needing a longer range must chunk.
const MaxYearsPerRequest = 20

// BLSDataPoint is one raw BLS observation. Period is a code such as "M01";
// "M13" is the annual average, not a month.
type BLSDataPoint struct {
	Year   string `json:"year"`
	Period string `json:"period"`
	Value  string `json:"value"`
}

// BLSSeries is the data for one series ID in a timeseries response.
type BLSSeries struct {
	SeriesID string         `json:"seriesID"`
	Data     []BLSDataPoint `json:"data"`
}

type blsRequest struct {
	SeriesID        []string `json:"seriesid"`
	StartYear       string   `json:"startyear"`
	EndYear         string   `json:"endyear"`
	RegistrationKey string   `json:"registrationkey,omitempty"`
}

type blsResponse struct {
	Status  string   `json:"status"`
	Message []string `json:"message"`
	Results struct {
		Series []BLSSeries `json:"series"`
	} `json:"Results"`
}

// BLSClient fetches labor series from the BLS public timeseries API.
// The API key is optional; registered keys get higher request quotas.
type BLSClient struct {
	client  *Client
	apiKey  string
	baseURL string
}

// NewBLSClient builds a BLS client on the shared transport.
func NewBLSClient(client *Client, apiKey string) *BLSClient {
	return &BLSClient{client: client, apiKey: apiKey, baseURL: defaultBLSBaseURL}
}

// WithBaseURL overrides the API base URL, for tests.
func (c *BLSClient) WithBaseURL(base string) *BLSClient {
	c.baseURL = base
	return c
}

// Timeseries fetches the given series over [startYear, endYear]. The span
// must not exceed MaxYearsPerRequest. A response whose status is not
// REQUEST_SUCCEEDED is an error: the payload carries no usable data and the
// whole source is treated as failed for the run.
func (c *BLSClient) Timeseries(ctx context.Context, seriesIDs []string, startYear, endYear int) ([]BLSSeries, error) {
	payload := blsRequest{
		SeriesID:        seriesIDs,
		StartYear:       fmt.Sprintf("%d", startYear),
		EndYear:         fmt.Sprintf("%d", endYear),
		RegistrationKey: c.apiKey,
	}

	var resp blsResponse
	if err := c.client.postJSON(ctx, c.baseURL+"/timeseries/data/", payload, &resp); err != nil {
		return nil, err
	}
	if resp.Status != "REQUEST_SUCCEEDED" {
		return nil, fmt.Errorf("BLS request failed: %s: %s", resp.Status, strings.Join(resp.Message, "; "))
	}
	return resp.Results.Series, nil
}
