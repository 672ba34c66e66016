package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Investment is a manually tracked asset that no broker reports: fixed
// deposits, insurance, gold, property and bank balances.
type Investment struct {
	ID             string          `db:"id" json:"id"`
	UserID         string          `db:"user_id" json:"user_id"`
	MemberID       string          `db:"member_id" json:"member_id"`
	InvestmentType string          `db:"investment_type" json:"investment_type"`
	Name           string          `db:"name" json:"name"`
	InvestedAmount decimal.Decimal `db:"invested_amount" json:"invested_amount"`
	CurrentValue   decimal.Decimal `db:"current_value" json:"current_value"`
	MaturityDate   *time.Time      `db:"maturity_date" json:"maturity_date,omitempty"`
	PremiumDueDate *time.Time      `db:"premium_due_date" json:"premium_due_date,omitempty"`
	Comments       string          `db:"comments" json:"comments"`
	CreatedAt      time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time       `db:"updated_at" json:"updated_at"`
}

// Value is the current value, or the invested amount when no valuation exists.
func (i Investment) Value() decimal.Decimal {
	if !i.CurrentValue.IsZero() {
		return i.CurrentValue
	}
	return i.InvestedAmount
}
