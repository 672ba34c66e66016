package icici

import (
	"context"
	"time"

	"famwealth/src/clients/brokers"
	"famwealth/src/config"
	"famwealth/src/models"
	"famwealth/src/utils/requests"
)

// Client reads ICICI Securities holdings; equity and funds share one list.
type Client struct {
	API      *requests.ExternalAPIService
	BaseURL  string
	TokenURL string
	ClientID string
	now      func() time.Time
}

func NewClient(cfg config.PasswordAPIConfig) *Client {
	return &Client{
		API:      requests.NewExternalAPIService(),
		BaseURL:  cfg.BaseURL,
		TokenURL: cfg.TokenURL,
		ClientID: cfg.ClientID,
		now:      time.Now,
	}
}

func (c *Client) Name() string { return brokers.ICICISecurities }

func (c *Client) Authenticate(ctx context.Context, creds brokers.Credentials) (*brokers.Session, error) {
	return brokers.PasswordGrant(ctx, c.API, c.Name(), c.TokenURL, c.ClientID, creds, c.now())
}

func (c *Client) FetchHoldings(ctx context.Context, session *brokers.Session) ([]brokers.VendorRecord, error) {
	return brokers.FetchBearerList(ctx, c.API, c.Name(), c.BaseURL+"/holdings", session)
}

func (c *Client) Classify(record brokers.VendorRecord) models.AssetClass {
	return brokers.ClassifyByIndicators(record)
}

func (c *Client) Extract(record brokers.VendorRecord, class models.AssetClass) brokers.Position {
	return brokers.ExtractCommon(record, class)
}
