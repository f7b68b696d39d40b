package client

import (
	"encoding/json"
	"fmt"
	"net/url"

	"campreserv/pkg/model"
)

type QuoteClient struct {
	httpClient *HttpClient
}

func NewQuoteClient(baseURL string) *QuoteClient {
	return &QuoteClient{
		httpClient: NewHttpClient(baseURL),
	}
}

// Get asks the rate engine to price a stay on a specific site. The engine
// applies seasonal rules on top of the base rate, which is why the result
// carries both a subtotal and a rules delta.
func (c *QuoteClient) Get(campgroundID, siteID, arrivalDate, departureDate string) (*Response, error) {
	q := url.Values{}
	q.Set("campground_id", campgroundID)
	q.Set("site_id", siteID)
	q.Set("arrival_date", arrivalDate)
	q.Set("departure_date", departureDate)
	return c.httpClient.GET("/api/v1/quotes?" + q.Encode())
}

func (c *QuoteClient) DecodeQuote(resp *Response) (*model.Quote, error) {
	var wrapper struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(resp.Body, &wrapper); err != nil || wrapper.Data == nil {
		return nil, fmt.Errorf("could not decode quote wrapper: %s", resp.ToString())
	}

	var quote model.Quote
	if err := json.Unmarshal(wrapper.Data, &quote); err != nil {
		return nil, fmt.Errorf("could not decode quote json: %s", resp.ToString())
	}

	return &quote, nil
}
