package sources

import (
	"context"
	"fmt"
	"net/url"
	"strings"
)

const defaultCensusBaseURL = "https://api.census.gov/data"

// CensusClient fetches ACS aggregates, CPS ASEC microdata, and PEP
// population estimates. Census endpoints all respond with a JSON array of
// rows whose first row is the header.
type CensusClient struct {
	client  *Client
	apiKey  string
	baseURL string
}

// NewCensusClient builds a Census client on the shared transport.
func NewCensusClient(client *Client, apiKey string) *CensusClient {
	return &CensusClient{client: client, apiKey: apiKey, baseURL: defaultCensusBaseURL}
}

// WithBaseURL overrides the API base URL, for tests.
func (c *CensusClient) WithBaseURL(base string) *CensusClient {
	c.baseURL = base
	return c
}

// ACS1 fetches the national 1-year ACS estimates for the given variables in
// one survey year. Years where ACS1 does not exist return an HTTP error.
func (c *CensusClient) ACS1(ctx context.Context, year int, variables []string) (Table, error) {
	params := url.Values{}
	params.Set("get", "NAME,"+strings.Join(variables, ","))
	params.Set("for", "us:1")
	params.Set("key", c.apiKey)

	var table Table
	if err := c.client.getJSON(ctx, fmt.Sprintf("%s/%d/acs/acs1", c.baseURL, year), params, &table); err != nil {
		return nil, err
	}
	return table, nil
}

// CPSASEC fetches household income microdata (total household income and its
// supplement weight) from the CPS March supplement for one survey year,
// restricted to the household reference person.
func (c *CensusClient) CPSASEC(ctx context.Context, year int) (Table, error) {
	params := url.Values{}
	params.Set("get", "HTOTVAL,HSUP_WGT,A_LINENO")
	params.Set("A_LINENO", "1")
	params.Set("key", c.apiKey)

	var table Table
	if err := c.client.getJSON(ctx, fmt.Sprintf("%s/%d/cps/asec/mar", c.baseURL, year), params, &table); err != nil {
		return nil, err
	}
	return table, nil
}

// PEPNationalByAge fetches the 1990s intercensal national population broken
// out by single-year age bands, filtered to one reference month. The month
// is passed through verbatim because the upstream dataset has accepted both
// "7" and "07" in different releases.
func (c *CensusClient) PEPNationalByAge(ctx context.Context, month string) (Table, error) {
	params := url.Values{}
	params.Set("get", "YEAR,MONTH,TOT_POP,AGE")
	params.Set("MONTH", month)
	params.Set("key", c.apiKey)

	var table Table
	if err := c.client.getJSON(ctx, c.baseURL+"/1990/pep/int_natrespop", params, &table); err != nil {
		return nil, err
	}
	return table, nil
}

// PEPEstimates fetches a national PEP estimate series. The dataset path
// selects the vintage (e.g. "2000/pep/int_population") and descVar names the
// free-text description column that identifies the reference date of each
// row ("DATE_DESC" for annual vintages, "MONTHLY_DESC" for the monthly one).
func (c *CensusClient) PEPEstimates(ctx context.Context, dataset, descVar string) (Table, error) {
	params := url.Values{}
	params.Set("get", descVar+",POP")
	params.Set("for", "us:1")
	params.Set("key", c.apiKey)

	var table Table
	if err := c.client.getJSON(ctx, c.baseURL+"/"+dataset, params, &table); err != nil {
		return nil, err
	}
	return table, nil
}
