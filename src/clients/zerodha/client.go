package zerodha

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
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
)

const kiteVersion = "3"

// Kite access tokens are invalidated at 06:00 IST the next morning.
var ist = time.FixedZone("IST", 5*3600+1800)

// Client talks to the Kite Connect API.
type Client struct {
	API       *requests.ExternalAPIService
	BaseURL   string
	LoginBase string
	APIKey    string
	APISecret string
	now       func() time.Time
}

func NewClient(cfg config.ZerodhaConfig) *Client {
	return &Client{
		API:       requests.NewExternalAPIService(),
		BaseURL:   cfg.BaseURL,
		LoginBase: cfg.LoginURL,
		APIKey:    cfg.APIKey,
		APISecret: cfg.APISecret,
		now:       time.Now,
	}
}

func (c *Client) Name() string { return brokers.Zerodha }

// LoginURL is where the user signs in; Kite redirects back with a request_token.
func (c *Client) LoginURL() string {
	return c.LoginBase + "?" + url.Values{"v": {kiteVersion}, "api_key": {c.APIKey}}.Encode()
}

// Checksum is the hex SHA-256 of api_key + request_token + api_secret.
func Checksum(apiKey, requestToken, apiSecret string) string {
	sum := sha256.Sum256([]byte(apiKey + requestToken + apiSecret))
	return hex.EncodeToString(sum[:])
}

func (c *Client) Authenticate(ctx context.Context, creds brokers.Credentials) (*brokers.Session, error) {
	apiKey, apiSecret := c.APIKey, c.APISecret
	if creds.APIKey != "" {
		apiKey = creds.APIKey
	}
	if creds.APISecret != "" {
		apiSecret = creds.APISecret
	}
	if creds.RequestToken == "" {
		return nil, &utils.AuthenticationError{Broker: c.Name(), Err: errors.New("missing request_token")}
	}
	if apiKey == "" || apiSecret == "" {
		return nil, &utils.AuthenticationError{Broker: c.Name(), Err: errors.New("api key and secret are not configured")}
	}

	form := url.Values{
		"api_key":       {apiKey},
		"request_token": {creds.RequestToken},
		"checksum":      {Checksum(apiKey, creds.RequestToken, apiSecret)},
	}
	body, err := c.API.PostForm(ctx, c.BaseURL+"/session/token", form, map[string]string{"X-Kite-Version": kiteVersion})
	if err != nil {
		return nil, brokers.WrapError(c.Name(), "session token", err)
	}

	var data sessionData
	if err := decode(body, &data); err != nil {
		return nil, &utils.AuthenticationError{Broker: c.Name(), Err: err}
	}
	if data.AccessToken == "" {
		return nil, &utils.AuthenticationError{Broker: c.Name(), Err: errors.New("no access_token in response")}
	}

	return &brokers.Session{
		Broker:      c.Name(),
		UserID:      creds.UserID,
		AccessToken: data.AccessToken,
		ExpiresAt:   nextExpiry(c.now()),
		Extra:       map[string]string{"api_key": apiKey, "kite_user_id": data.UserID},
	}, nil
}

func nextExpiry(now time.Time) time.Time {
	local := now.In(ist)
	expiry := time.Date(local.Year(), local.Month(), local.Day(), 6, 0, 0, 0, ist)
	if !expiry.After(local) {
		expiry = expiry.AddDate(0, 0, 1)
	}
	return expiry
}

// FetchHoldings returns equity holdings followed by mutual fund holdings.
func (c *Client) FetchHoldings(ctx context.Context, session *brokers.Session) ([]brokers.VendorRecord, error) {
	apiKey := c.APIKey
	if session.Extra != nil && session.Extra["api_key"] != "" {
		apiKey = session.Extra["api_key"]
	}
	headers := map[string]string{
		"X-Kite-Version": kiteVersion,
		"Authorization":  fmt.Sprintf("token %s:%s", apiKey, session.AccessToken),
	}

	var records []brokers.VendorRecord
	for _, path := range []string{"/portfolio/holdings", "/mf/holdings"} {
		body, err := c.API.Get(ctx, c.BaseURL+path, nil, headers)
		if err != nil {
			return nil, brokers.WrapError(c.Name(), "GET "+path, err)
		}
		var raw json.RawMessage
		if err := decode(body, &raw); err != nil {
			return nil, &utils.TransportError{Broker: c.Name(), Op: "GET " + path, Err: err}
		}
		page, err := brokers.DecodeRecords(raw)
		if err != nil {
			return nil, &utils.TransportError{Broker: c.Name(), Op: "GET " + path, Err: err}
		}
		records = append(records, page...)
	}
	return records, nil
}

// Classify marks records carrying a fund name or folio as mutual funds.
func (c *Client) Classify(record brokers.VendorRecord) models.AssetClass {
	if record.Has("fund", "folio") {
		return models.AssetClassMutualFund
	}
	return models.AssetClassEquity
}

func (c *Client) Extract(record brokers.VendorRecord, class models.AssetClass) brokers.Position {
	if class == models.AssetClassMutualFund {
		return brokers.Position{
			Symbol:       record.String("instrument_token", "tradingsymbol"),
			Name:         record.String("fund", "tradingsymbol"),
			FolioNumber:  record.String("folio"),
			FundHouse:    record.String("fund_house"),
			Quantity:     record.Decimal("quantity"),
			AveragePrice: record.Decimal("average_price"),
			CurrentPrice: record.Decimal("last_price"),
		}
	}
	return brokers.Position{
		Symbol:       record.String("tradingsymbol"),
		Name:         record.String("tradingsymbol"),
		Quantity:     record.Decimal("quantity"),
		AveragePrice: record.Decimal("average_price"),
		CurrentPrice: record.Decimal("last_price"),
	}
}

func decode(body []byte, data interface{}) error {
	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return fmt.Errorf("invalid kite response: %w", err)
	}
	if env.Status != "success" {
		return fmt.Errorf("kite %s: %s", env.ErrorType, env.Message)
	}
	if raw, ok := data.(*json.RawMessage); ok {
		*raw = env.Data
		return nil
	}
	return json.Unmarshal(env.Data, data)
}
