package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type AssetClass string

const (
	AssetClassEquity     AssetClass = "Equity"
	AssetClassMutualFund AssetClass = "MutualFund"
)

// ParseAssetClass accepts the canonical names and the labels used by the UI.
func ParseAssetClass(value string) (AssetClass, error) {
	switch strings.ToLower(strings.ReplaceAll(strings.TrimSpace(value), " ", "")) {
	case "equity", "stock", "stocks":
		return AssetClassEquity, nil
	case "mutualfund", "mutualfunds", "mf":
		return AssetClassMutualFund, nil
	}
	return "", fmt.Errorf("unknown asset class %q", value)
}

// SyncScope is the (user, broker, member, asset class) tuple bounding one
// reconciliation.
type SyncScope struct {
	UserID         string     `json:"user_id"`
	BrokerPlatform string     `json:"broker_platform"`
	MemberID       string     `json:"member_id"`
	AssetClass     AssetClass `json:"asset_class"`
}

func (s SyncScope) String() string {
	return fmt.Sprintf("%s/%s/%s/%s", s.UserID, s.BrokerPlatform, s.MemberID, s.AssetClass)
}

// Holding is an equity or mutual fund position. Equity rows live in
// equity_holdings, mutual fund rows in mutual_fund_holdings; Symbol and Name map
// to scheme_code and scheme_name there.
type Holding struct {
	ID             string          `db:"id" json:"id"`
	UserID         string          `db:"user_id" json:"user_id"`
	MemberID       string          `db:"member_id" json:"member_id"`
	BrokerPlatform string          `db:"broker_platform" json:"broker_platform"`
	AssetClass     AssetClass      `db:"-" json:"asset_class"`
	ImportDate     time.Time       `db:"import_date" json:"import_date"`
	Symbol         string          `db:"symbol" json:"symbol"`
	Name           string          `db:"company_name" json:"name"`
	FolioNumber    string          `db:"folio_number" json:"folio_number,omitempty"`
	FundHouse      string          `db:"fund_house" json:"fund_house,omitempty"`
	Quantity       decimal.Decimal `db:"quantity" json:"quantity"`
	AveragePrice   decimal.Decimal `db:"average_price" json:"average_price"`
	CurrentPrice   decimal.Decimal `db:"current_price" json:"current_price"`
	InvestedAmount decimal.Decimal `db:"invested_amount" json:"invested_amount"`
	CurrentValue   decimal.Decimal `db:"current_value" json:"current_value"`
	CreatedAt      time.Time       `db:"created_at" json:"created_at"`
}

// Scope returns the sync tuple the holding belongs to.
func (h Holding) Scope() SyncScope {
	return SyncScope{
		UserID:         h.UserID,
		BrokerPlatform: h.BrokerPlatform,
		MemberID:       h.MemberID,
		AssetClass:     h.AssetClass,
	}
}

// BrokerMapping assigns the holdings of one asset class at a broker to a
// family member.
type BrokerMapping struct {
	Broker     string     `json:"broker"`
	MemberID   string     `json:"member_id"`
	AssetClass AssetClass `json:"asset_class"`
}
