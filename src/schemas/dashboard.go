package schemas

import (
	"famwealth/src/models"

	"github.com/shopspring/decimal"
)

type Urgency string

const (
	UrgencyUrgent  Urgency = "urgent"
	UrgencyWarning Urgency = "warning"
	UrgencyNormal  Urgency = "normal"
)

type ReminderView struct {
	models.Reminder
	DaysUntil int     `json:"days_until"`
	Urgency   Urgency `json:"urgency"`
}

type MemberSummary struct {
	MemberID           string          `json:"member_id"`
	Name               string          `json:"name"`
	Relationship       string          `json:"relationship"`
	Assets             decimal.Decimal `json:"assets"`
	Liabilities        decimal.Decimal `json:"liabilities"`
	NetWorth           decimal.Decimal `json:"net_worth"`
	AssetsDisplay      string          `json:"assets_display"`
	LiabilitiesDisplay string          `json:"liabilities_display"`
	NetWorthDisplay    string          `json:"net_worth_display"`
	HoldingCount       int             `json:"holding_count"`
	InvestmentCount    int             `json:"investment_count"`
	LiabilityCount     int             `json:"liability_count"`
	AccountCount       int             `json:"account_count"`
}

type DashboardSummary struct {
	TotalAssets             decimal.Decimal `json:"total_assets"`
	TotalLiabilities        decimal.Decimal `json:"total_liabilities"`
	NetWorth                decimal.Decimal `json:"net_worth"`
	TotalAssetsDisplay      string          `json:"total_assets_display"`
	TotalLiabilitiesDisplay string          `json:"total_liabilities_display"`
	NetWorthDisplay         string          `json:"net_worth_display"`
	AccountCount            int             `json:"account_count"`
	Members                 []MemberSummary `json:"members"`
	UrgentReminders         []ReminderView  `json:"urgent_reminders"`
	UpcomingReminders       []ReminderView  `json:"upcoming_reminders"`
}
