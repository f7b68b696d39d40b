package client

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"campreserv/pkg/logger"
)

// Client bundles every external dependency a service can reach: the Mongo
// client for draft persistence and the typed HTTP clients for the platform
// backend. Services only set what they use.
type Client struct {
	Mongo *mongo.Client

	GuestClient       *GuestClient
	SiteClient        *SiteClient
	QuoteClient       *QuoteClient
	ReservationClient *ReservationClient
	HoldClient        *HoldClient
	PaymentClient     *PaymentClient

	log *logger.Logger
}

func NewClient() *Client {
	return &Client{}
}

func (c *Client) SetMongo(log *logger.Logger, mongoURI string, mongoConnTimeout time.Duration) {
	ctx, cancel := context.WithTimeout(context.Background(), mongoConnTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURI))
	if err != nil {
		log.Fatal("Failed to connect to MongoDB",
			"error", err,
			"uri", mongoURI,
		)
	}

	if err := client.Ping(ctx, nil); err != nil {
		log.Fatal("Failed to ping MongoDB", "error", err)
	}

	log.Info("Successfully connected to MongoDB")
	c.Mongo = client
	c.log = log
}

func (c *Client) SetGuestClient(baseURL string) {
	c.GuestClient = NewGuestClient(baseURL)
}

func (c *Client) SetSiteClient(baseURL string) {
	c.SiteClient = NewSiteClient(baseURL)
}

func (c *Client) SetQuoteClient(baseURL string) {
	c.QuoteClient = NewQuoteClient(baseURL)
}

func (c *Client) SetReservationClient(baseURL string) {
	c.ReservationClient = NewReservationClient(baseURL)
}

func (c *Client) SetHoldClient(baseURL string) {
	c.HoldClient = NewHoldClient(baseURL)
}

func (c *Client) SetPaymentClient(baseURL string) {
	c.PaymentClient = NewPaymentClient(baseURL)
}

func (c *Client) GracefulShutdown() {
	if c.Mongo == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := c.Mongo.Disconnect(ctx); err != nil && c.log != nil {
		c.log.Error("Failed to disconnect MongoDB client", "error", err)
	}
}
