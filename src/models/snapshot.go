package models

// Snapshot is every row of one user that the dashboard aggregates over.
type Snapshot struct {
	Members     []FamilyMember
	Holdings    []Holding
	Investments []Investment
	Liabilities []Liability
	Accounts    []Account
	Reminders   []Reminder
}
