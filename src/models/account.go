package models

import "time"

const (
	AccountStatusActive   = "Active"
	AccountStatusInactive = "Inactive"
)

type Account struct {
	ID            string    `db:"id" json:"id"`
	UserID        string    `db:"user_id" json:"user_id"`
	AccountType   string    `db:"account_type" json:"account_type"`
	Institution   string    `db:"institution" json:"institution"`
	AccountNumber string    `db:"account_number" json:"account_number"`
	HolderID      string    `db:"holder_id" json:"holder_id"`
	NomineeID     *string   `db:"nominee_id" json:"nominee_id,omitempty"`
	Status        string    `db:"status" json:"status"`
	Comments      string    `db:"comments" json:"comments"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time `db:"updated_at" json:"updated_at"`
}
