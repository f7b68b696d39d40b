package client

import (
	"encoding/json"
	"fmt"
	"net/url"

	"campreserv/pkg/model"
)

type GuestClient struct {
	httpClient *HttpClient
}

func NewGuestClient(baseURL string) *GuestClient {
	return &GuestClient{
		httpClient: NewHttpClient(baseURL),
	}
}

func (c *GuestClient) List(campgroundID string, search string) (*Response, error) {
	q := url.Values{}
	q.Set("campground_id", campgroundID)
	if search != "" {
		q.Set("search", search)
	}
	return c.httpClient.GET("/api/v1/guests?" + q.Encode())
}

func (c *GuestClient) Create(guest *model.Guest) (*Response, error) {
	return c.httpClient.POST("/api/v1/guests", guest)
}

func (c *GuestClient) GetByID(id string) (*Response, error) {
	return c.httpClient.GET("/api/v1/guests/" + url.PathEscape(id))
}

func (c *GuestClient) Update(id string, update *model.GuestUpdate, headers map[string]string) (*Response, error) {
	path := "/api/v1/guests/" + url.PathEscape(id)
	return c.httpClient.PATCHWithHeaders(path, update, headers)
}

func (c *GuestClient) DecodeGuest(resp *Response) (*model.Guest, error) {
	var wrapper struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(resp.Body, &wrapper); err != nil || wrapper.Data == nil {
		return nil, fmt.Errorf("could not decode guest wrapper: %s", resp.ToString())
	}

	var guest model.Guest
	if err := json.Unmarshal(wrapper.Data, &guest); err != nil {
		return nil, fmt.Errorf("could not decode guest json: %s", resp.ToString())
	}
	if guest.ID == "" {
		return nil, fmt.Errorf("guest payload missing id: %s", resp.ToString())
	}

	return &guest, nil
}

func (c *GuestClient) DecodeGuests(resp *Response) ([]*model.Guest, error) {
	var wrapper struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(resp.Body, &wrapper); err != nil || wrapper.Data == nil {
		return nil, fmt.Errorf("could not decode guest list wrapper: %s", resp.ToString())
	}

	var guests []*model.Guest
	if err := json.Unmarshal(wrapper.Data, &guests); err != nil {
		return nil, fmt.Errorf("could not decode guest list json: %s", resp.ToString())
	}

	return guests, nil
}
