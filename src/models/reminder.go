package models

import "time"

type Reminder struct {
	ID            string    `db:"id" json:"id"`
	UserID        string    `db:"user_id" json:"user_id"`
	MemberID      string    `db:"member_id" json:"member_id"`
	InvestmentID  *string   `db:"investment_id" json:"investment_id,omitempty"`
	Title         string    `db:"title" json:"title"`
	Description   string    `db:"description" json:"description"`
	ReminderType  string    `db:"reminder_type" json:"reminder_type"`
	ReminderDate  time.Time `db:"reminder_date" json:"reminder_date"`
	AutoGenerated bool      `db:"auto_generated" json:"auto_generated"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
}
