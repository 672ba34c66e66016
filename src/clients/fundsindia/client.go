package fundsindia

import (
	"context"
	"time"

	"famwealth/src/clients/brokers"
	"famwealth/src/config"
	"famwealth/src/models"
	"famwealth/src/utils/requests"
)

// Client reads FundsIndia portfolios, which only hold mutual funds.
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

func (c *Client) Name() string { return brokers.FundsIndia }

func (c *Client) Authenticate(ctx context.Context, creds brokers.Credentials) (*brokers.Session, error) {
	return brokers.PasswordGrant(ctx, c.API, c.Name(), c.TokenURL, c.ClientID, creds, c.now())
}

func (c *Client) FetchHoldings(ctx context.Context, session *brokers.Session) ([]brokers.VendorRecord, error) {
	return brokers.FetchBearerList(ctx, c.API, c.Name(), c.BaseURL+"/holdings", session)
}

func (c *Client) Classify(brokers.VendorRecord) models.AssetClass {
	return models.AssetClassMutualFund
}

func (c *Client) Extract(record brokers.VendorRecord, _ models.AssetClass) brokers.Position {
	return brokers.Position{
		Symbol:       record.String("scheme_code", "isin"),
		Name:         record.String("scheme_name", "fund_name"),
		FolioNumber:  record.String("folio_number", "folio"),
		FundHouse:    record.String("amc_name", "amc", "fund_house"),
		Quantity:     record.Decimal("units", "quantity"),
		AveragePrice: record.Decimal("average_nav", "avg_nav"),
		CurrentPrice: record.Decimal("current_nav", "nav"),
	}
}
