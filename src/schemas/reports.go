package schemas

import (
	"time"

	"github.com/shopspring/decimal"
)

type ReportCategory string

const (
	ReportEquity        ReportCategory = "equity"
	ReportMutualFunds   ReportCategory = "mutualFunds"
	ReportFixedDeposits ReportCategory = "fixedDeposits"
	ReportInsurance     ReportCategory = "insurance"
	ReportGold          ReportCategory = "gold"
	ReportProperty      ReportCategory = "property"
	ReportOthers        ReportCategory = "others"
)

// ReportCategories lists every category in the order reports are exported.
var ReportCategories = []ReportCategory{
	ReportEquity, ReportMutualFunds, ReportFixedDeposits, ReportInsurance,
	ReportGold, ReportProperty, ReportOthers,
}

type ReportRow struct {
	ID             string          `json:"id"`
	MemberID       string          `json:"member_id"`
	MemberName     string          `json:"member_name"`
	Name           string          `json:"name"`
	Platform       string          `json:"platform,omitempty"`
	InvestedAmount decimal.Decimal `json:"invested_amount"`
	CurrentValue   decimal.Decimal `json:"current_value"`
	Gain           decimal.Decimal `json:"gain"`
	GainPercent    decimal.Decimal `json:"gain_percent"`
	Date           time.Time       `json:"date"`
	MaturityDate   *time.Time      `json:"maturity_date,omitempty"`
}

// ReportTotals aggregates a category. ShowsGain is false for categories
// where gains are not meaningful, such as deposits and insurance.
type ReportTotals struct {
	Count                int             `json:"count"`
	TotalInvested        decimal.Decimal `json:"total_invested"`
	CurrentValue         decimal.Decimal `json:"current_value"`
	Gain                 decimal.Decimal `json:"gain"`
	ReturnPercent        decimal.Decimal `json:"return_percent"`
	ShowsGain            bool            `json:"shows_gain"`
	TotalInvestedDisplay string          `json:"total_invested_display"`
	CurrentValueDisplay  string          `json:"current_value_display"`
	GainDisplay          string          `json:"gain_display"`
}

type CategoryReport struct {
	Category    ReportCategory `json:"category"`
	DisplayName string         `json:"display_name"`
	Rows        []ReportRow    `json:"rows"`
	Totals      ReportTotals   `json:"totals"`
}
