package client

import (
	"encoding/json"
	"fmt"

	"campreserv/pkg/model"
)

type PaymentClient struct {
	httpClient *HttpClient
}

func NewPaymentClient(baseURL string) *PaymentClient {
	return &PaymentClient{
		httpClient: NewHttpClient(baseURL),
	}
}

func (c *PaymentClient) CreateIntent(create *model.PaymentIntentCreate, headers map[string]string) (*Response, error) {
	return c.httpClient.POSTWithHeaders("/api/v1/payment-intents", create, headers)
}

func (c *PaymentClient) DecodeIntent(resp *Response) (*model.PaymentIntent, error) {
	var wrapper struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(resp.Body, &wrapper); err != nil || wrapper.Data == nil {
		return nil, fmt.Errorf("could not decode payment intent wrapper: %s", resp.ToString())
	}

	var intent model.PaymentIntent
	if err := json.Unmarshal(wrapper.Data, &intent); err != nil {
		return nil, fmt.Errorf("could not decode payment intent json: %s", resp.ToString())
	}
	if intent.ID == "" {
		return nil, fmt.Errorf("payment intent payload missing id: %s", resp.ToString())
	}

	return &intent, nil
}
