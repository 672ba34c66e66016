package hdfc

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"time"

	"famwealth/src/clients/brokers"
	"famwealth/src/config"
	"famwealth/src/models"
	"famwealth/src/utils"
	"famwealth/src/utils/requests"

	"github.com/PaesslerAG/jsonpath"
)

// sessionLifetime is how long an InvestRight access token is trusted.
const sessionLifetime = 8 * time.Hour

// holdingsPaths are tried in order to locate the holdings list in a payload.
var holdingsPaths = []string{"$.data.holdings", "$.data", "$.holdings", "$"}

// Client implements the InvestRight login and holdings API.
type Client struct {
	API       *requests.ExternalAPIService
	BaseURL   string
	APIKey    string
	APISecret string
	now       func() time.Time
}

func NewClient(cfg config.HDFCConfig) *Client {
	return &Client{
		API:       requests.NewExternalAPIService(),
		BaseURL:   cfg.BaseURL,
		APIKey:    cfg.APIKey,
		APISecret: cfg.APISecret,
		now:       time.Now,
	}
}

func (c *Client) Name() string { return brokers.HDFCSecurities }

// Authenticate runs the four step flow: token id, credential validation,
// OTP validation and the access token exchange.
func (c *Client) Authenticate(ctx context.Context, creds brokers.Credentials) (*brokers.Session, error) {
	apiKey, apiSecret := c.APIKey, c.APISecret
	if creds.APIKey != "" {
		apiKey = creds.APIKey
	}
	if creds.APISecret != "" {
		apiSecret = creds.APISecret
	}
	if apiKey == "" || apiSecret == "" {
		return nil, &utils.AuthenticationError{Broker: c.Name(), Err: errors.New("api key and secret are not configured")}
	}
	if creds.Username == "" || creds.Password == "" || creds.TwoFactorAnswer == "" {
		return nil, &utils.AuthenticationError{Broker: c.Name(), Err: errors.New("username, password and OTP are required")}
	}

	body, err := c.API.Get(ctx, c.BaseURL+"/login", url.Values{"api_key": {apiKey}}, nil)
	if err != nil {
		return nil, brokers.WrapError(c.Name(), "token id", err)
	}
	var token tokenIDResponse
	if err := json.Unmarshal(body, &token); err != nil || token.TokenID == "" {
		return nil, &utils.AuthenticationError{Broker: c.Name(), Err: fmt.Errorf("no tokenId in response: %s", body)}
	}

	tokenParams := url.Values{"api_key": {apiKey}, "token_id": {token.TokenID}}
	if _, err := c.API.PostJSON(ctx, c.BaseURL+"/login/validate", tokenParams,
		loginPayload{Username: creds.Username, Password: creds.Password}, nil); err != nil {
		return nil, brokers.WrapError(c.Name(), "login validate", err)
	}

	body, err = c.API.PostJSON(ctx, c.BaseURL+"/twofa/validate", tokenParams, twoFAPayload{Answer: creds.TwoFactorAnswer}, nil)
	if err != nil {
		return nil, brokers.WrapError(c.Name(), "twofa validate", err)
	}
	var twoFA twoFAResponse
	if err := json.Unmarshal(body, &twoFA); err != nil || twoFA.RequestToken == "" {
		return nil, &utils.AuthenticationError{Broker: c.Name(), Err: errors.New("OTP was not accepted")}
	}

	body, err = c.API.PostJSON(ctx, c.BaseURL+"/access-token",
		url.Values{"api_key": {apiKey}, "request_token": {twoFA.RequestToken}},
		accessTokenPayload{APISecret: apiSecret}, nil)
	if err != nil {
		return nil, brokers.WrapError(c.Name(), "access token", err)
	}
	var access accessTokenResponse
	if err := json.Unmarshal(body, &access); err != nil || access.AccessToken == "" {
		return nil, &utils.AuthenticationError{Broker: c.Name(), Err: errors.New("no accessToken returned")}
	}

	return &brokers.Session{
		Broker:      c.Name(),
		UserID:      creds.UserID,
		AccessToken: access.AccessToken,
		ExpiresAt:   c.now().Add(sessionLifetime),
	}, nil
}

func (c *Client) FetchHoldings(ctx context.Context, session *brokers.Session) ([]brokers.VendorRecord, error) {
	body, err := c.API.Get(ctx, c.BaseURL+"/portfolio/holdings", nil, requests.BearerHeader(session.AccessToken))
	if err != nil {
		return nil, brokers.WrapError(c.Name(), "GET /portfolio/holdings", err)
	}
	records, err := ParseHoldings(body)
	if err != nil {
		return nil, &utils.TransportError{Broker: c.Name(), Op: "GET /portfolio/holdings", Err: err}
	}
	return records, nil
}

// ParseHoldings accepts a bare list, a list of lists, or either wrapped in
// data / holdings, and returns the flattened objects.
func ParseHoldings(body []byte) ([]brokers.VendorRecord, error) {
	var payload interface{}
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	if err := dec.Decode(&payload); err != nil {
		return nil, fmt.Errorf("invalid holdings payload: %w", err)
	}

	for _, path := range holdingsPaths {
		found, err := jsonpath.Get(path, payload)
		if err != nil {
			continue
		}
		if items, ok := found.([]interface{}); ok {
			return brokers.ToRecords(flatten(items)), nil
		}
	}
	return nil, errors.New("holdings list not found in payload")
}

func flatten(items []interface{}) []interface{} {
	flat := make([]interface{}, 0, len(items))
	for _, item := range items {
		if nested, ok := item.([]interface{}); ok {
			flat = append(flat, nested...)
			continue
		}
		flat = append(flat, item)
	}
	return flat
}

func (c *Client) Classify(record brokers.VendorRecord) models.AssetClass {
	return brokers.ClassifyByIndicators(record)
}

func (c *Client) Extract(record brokers.VendorRecord, class models.AssetClass) brokers.Position {
	if class == models.AssetClassMutualFund {
		return brokers.Position{
			Symbol:       record.String("scheme_code", "security_id", "isin"),
			Name:         record.String("scheme_name", "company_name", "schemename"),
			FolioNumber:  record.String("folio", "folio_number"),
			FundHouse:    record.String("fund_house", "fundhouse"),
			Quantity:     record.Decimal("quantity", "units"),
			AveragePrice: record.Decimal("average_price", "averageprice", "averagenav"),
			CurrentPrice: record.Decimal("close_price", "nav"),
		}
	}
	return brokers.Position{
		Symbol:       record.String("security_id", "tradingsymbol", "symbol"),
		Name:         record.String("company_name", "name"),
		Quantity:     record.Decimal("quantity"),
		AveragePrice: record.Decimal("average_price", "averageprice"),
		CurrentPrice: record.Decimal("close_price", "last_price", "lastprice"),
	}
}
