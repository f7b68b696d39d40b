package client

import (
	"encoding/json"
	"fmt"
	"net/url"

	"campreserv/pkg/model"
)

type SiteClient struct {
	httpClient *HttpClient
}

func NewSiteClient(baseURL string) *SiteClient {
	return &SiteClient{
		httpClient: NewHttpClient(baseURL),
	}
}

// ListWithStatus returns the campground's sites annotated with their
// occupancy status over the requested date range.
func (c *SiteClient) ListWithStatus(campgroundID, arrivalDate, departureDate string) (*Response, error) {
	q := url.Values{}
	q.Set("campground_id", campgroundID)
	q.Set("arrival_date", arrivalDate)
	q.Set("departure_date", departureDate)
	return c.httpClient.GET("/api/v1/sites/status?" + q.Encode())
}

func (c *SiteClient) ListClasses(campgroundID string) (*Response, error) {
	q := url.Values{}
	q.Set("campground_id", campgroundID)
	return c.httpClient.GET("/api/v1/site-classes?" + q.Encode())
}

// Matched returns the advisory ranked site suggestions for a guest.
func (c *SiteClient) Matched(campgroundID, guestID string) (*Response, error) {
	q := url.Values{}
	q.Set("campground_id", campgroundID)
	q.Set("guest_id", guestID)
	return c.httpClient.GET("/api/v1/sites/matches?" + q.Encode())
}

func (c *SiteClient) GetByID(id string) (*Response, error) {
	return c.httpClient.GET("/api/v1/sites/" + url.PathEscape(id))
}

func (c *SiteClient) DecodeSite(resp *Response) (*model.Site, error) {
	var wrapper struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(resp.Body, &wrapper); err != nil || wrapper.Data == nil {
		return nil, fmt.Errorf("could not decode site wrapper: %s", resp.ToString())
	}

	var site model.Site
	if err := json.Unmarshal(wrapper.Data, &site); err != nil {
		return nil, fmt.Errorf("could not decode site json: %s", resp.ToString())
	}
	if site.ID == "" {
		return nil, fmt.Errorf("site payload missing id: %s", resp.ToString())
	}

	return &site, nil
}

func (c *SiteClient) DecodeSites(resp *Response) ([]*model.Site, error) {
	var wrapper struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(resp.Body, &wrapper); err != nil || wrapper.Data == nil {
		return nil, fmt.Errorf("could not decode site list wrapper: %s", resp.ToString())
	}

	var sites []*model.Site
	if err := json.Unmarshal(wrapper.Data, &sites); err != nil {
		return nil, fmt.Errorf("could not decode site list json: %s", resp.ToString())
	}

	return sites, nil
}

func (c *SiteClient) DecodeSuggestions(resp *Response) ([]*model.SiteSuggestion, error) {
	var wrapper struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(resp.Body, &wrapper); err != nil || wrapper.Data == nil {
		return nil, fmt.Errorf("could not decode suggestion wrapper: %s", resp.ToString())
	}

	var suggestions []*model.SiteSuggestion
	if err := json.Unmarshal(wrapper.Data, &suggestions); err != nil {
		return nil, fmt.Errorf("could not decode suggestion json: %s", resp.ToString())
	}

	return suggestions, nil
}

func (c *SiteClient) DecodeSiteClasses(resp *Response) ([]*model.SiteClass, error) {
	var wrapper struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(resp.Body, &wrapper); err != nil || wrapper.Data == nil {
		return nil, fmt.Errorf("could not decode site class wrapper: %s", resp.ToString())
	}

	var classes []*model.SiteClass
	if err := json.Unmarshal(wrapper.Data, &classes); err != nil {
		return nil, fmt.Errorf("could not decode site class json: %s", resp.ToString())
	}

	return classes, nil
}
