package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	LiabilityTypeHomeLoan     = "homeLoan"
	LiabilityTypePersonalLoan = "personalLoan"
	LiabilityTypeCreditCard   = "creditCard"
	LiabilityTypeOther        = "other"
)

type Liability struct {
	ID                string          `db:"id" json:"id"`
	UserID            string          `db:"user_id" json:"user_id"`
	MemberID          string          `db:"member_id" json:"member_id"`
	Type              string          `db:"type" json:"type"`
	Lender            string          `db:"lender" json:"lender"`
	OutstandingAmount decimal.Decimal `db:"outstanding_amount" json:"outstanding_amount"`
	EMIAmount         decimal.Decimal `db:"emi_amount" json:"emi_amount"`
	InterestRate      decimal.Decimal `db:"interest_rate" json:"interest_rate"`
	CreatedAt         time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt         time.Time       `db:"updated_at" json:"updated_at"`
}
