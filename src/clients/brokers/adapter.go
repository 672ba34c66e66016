// Package brokers defines the contract every brokerage integration fulfils and
// the helpers they share for reading loosely typed vendor payloads.
package brokers

import (
	"context"
	"time"

	"famwealth/src/models"

	"github.com/shopspring/decimal"
)

const (
	Zerodha         = "Zerodha"
	HDFCSecurities  = "HDFC Securities"
	ICICISecurities = "ICICI Securities"
	FundsIndia      = "FundsIndia"
)

// Credentials is everything a broker login may need. Static API keys come from
// configuration or the secrets store, the rest from the user.
type Credentials struct {
	UserID          string
	RequestToken    string
	Username        string
	Password        string
	TwoFactorAnswer string
	APIKey          string
	APISecret       string
	ClientSecret    string
}

// Session is the opaque bearer credential produced by Authenticate.
type Session struct {
	Broker      string            `json:"broker"`
	UserID      string            `json:"user_id"`
	AccessToken string            `json:"access_token"`
	ExpiresAt   time.Time         `json:"expires_at"`
	Extra       map[string]string `json:"extra,omitempty"`
}

// Expired reports whether the session carries an expiry that has passed.
func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && now.After(s.ExpiresAt)
}

// Position is a vendor record reduced to the fields a Holding is built from.
// Empty strings and zero decimals mean the vendor did not report the field.
type Position struct {
	Symbol       string
	Name         string
	FolioNumber  string
	FundHouse    string
	Quantity     decimal.Decimal
	AveragePrice decimal.Decimal
	CurrentPrice decimal.Decimal
}

// Adapter is one brokerage integration.
type Adapter interface {
	Name() string
	// Authenticate returns an AuthenticationError when the broker rejects the
	// credentials and a TransportError when it cannot be reached.
	Authenticate(ctx context.Context, creds Credentials) (*Session, error)
	FetchHoldings(ctx context.Context, session *Session) ([]VendorRecord, error)
	Classify(record VendorRecord) models.AssetClass
	Extract(record VendorRecord, class models.AssetClass) Position
}

// LoginURLProvider is implemented by brokers whose login starts with a
// redirect to the vendor site.
type LoginURLProvider interface {
	LoginURL() string
}
