package client

import (
	"encoding/json"
	"fmt"
	"net/url"

	"campreserv/pkg/model"
)

type ReservationClient struct {
	httpClient *HttpClient
}

func NewReservationClient(baseURL string) *ReservationClient {
	return &ReservationClient{
		httpClient: NewHttpClient(baseURL),
	}
}

func (c *ReservationClient) Create(create *model.ReservationCreate, headers map[string]string) (*Response, error) {
	return c.httpClient.POSTWithHeaders("/api/v1/reservations", create, headers)
}

func (c *ReservationClient) GetByID(id string) (*Response, error) {
	return c.httpClient.GET("/api/v1/reservations/" + url.PathEscape(id))
}

func (c *ReservationClient) UpdateStatus(id string, update *model.ReservationStatusUpdate, headers map[string]string) (*Response, error) {
	path := "/api/v1/reservations/" + url.PathEscape(id) + "/status"
	return c.httpClient.PATCHWithHeaders(path, update, headers)
}

func (c *ReservationClient) Cancel(id string, headers map[string]string) (*Response, error) {
	update := &model.ReservationStatusUpdate{Status: model.ReservationStatusCancelled}
	return c.UpdateStatus(id, update, headers)
}

func (c *ReservationClient) DecodeReservation(resp *Response) (*model.Reservation, error) {
	var wrapper struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(resp.Body, &wrapper); err != nil || wrapper.Data == nil {
		return nil, fmt.Errorf("could not decode reservation wrapper: %s", resp.ToString())
	}

	var reservation model.Reservation
	if err := json.Unmarshal(wrapper.Data, &reservation); err != nil {
		return nil, fmt.Errorf("could not decode reservation json: %s", resp.ToString())
	}
	if reservation.ID == "" {
		return nil, fmt.Errorf("reservation payload missing id: %s", resp.ToString())
	}

	return &reservation, nil
}
