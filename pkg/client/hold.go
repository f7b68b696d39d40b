package client

import (
	"encoding/json"
	"fmt"
	"net/url"

	"campreserv/pkg/model"
)

type HoldClient struct {
	httpClient *HttpClient
}

func NewHoldClient(baseURL string) *HoldClient {
	return &HoldClient{
		httpClient: NewHttpClient(baseURL),
	}
}

func (c *HoldClient) Create(create *model.HoldCreate, headers map[string]string) (*Response, error) {
	return c.httpClient.POSTWithHeaders("/api/v1/holds", create, headers)
}

func (c *HoldClient) Release(id string) (*Response, error) {
	return c.httpClient.DELETE("/api/v1/holds/" + url.PathEscape(id))
}

func (c *HoldClient) DecodeHold(resp *Response) (*model.Hold, error) {
	var wrapper struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(resp.Body, &wrapper); err != nil || wrapper.Data == nil {
		return nil, fmt.Errorf("could not decode hold wrapper: %s", resp.ToString())
	}

	var hold model.Hold
	if err := json.Unmarshal(wrapper.Data, &hold); err != nil {
		return nil, fmt.Errorf("could not decode hold json: %s", resp.ToString())
	}
	if hold.ID == "" {
		return nil, fmt.Errorf("hold payload missing id: %s", resp.ToString())
	}

	return &hold, nil
}
