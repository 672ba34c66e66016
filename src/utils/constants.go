package utils

const ShortDashDateLayout = "2006-01-02"

// Investment types of the legacy investments table.
const (
	InvestmentTypeEquity        = "equity"
	InvestmentTypeMutualFunds   = "mutualFunds"
	InvestmentTypeFixedDeposits = "fixedDeposits"
	InvestmentTypeInsurance     = "insurance"
	InvestmentTypeGold          = "gold"
	InvestmentTypeProperty      = "property"
	InvestmentTypeBank          = "bank"
	InvestmentTypeOther         = "other"
)

// Reminder types.
const (
	ReminderTypeFDMaturity       = "fd_maturity"
	ReminderTypeInsurancePremium = "insurance_premium"
	ReminderTypeCustom           = "custom"
)

const DefaultCurrency = "INR"

// UnknownLabel fills missing descriptive fields on imported holdings.
const UnknownLabel = "Unknown"
