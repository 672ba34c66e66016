package services

import (
	"math"
	"sort"
	"time"

	"famwealth/src/models"
	"famwealth/src/schemas"
	"famwealth/src/utils"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

const (
	urgentWithinDays  = 7
	warningWithinDays = 15
)

// brokerReportedTypes are investment types whose value now comes from synced
// holdings. Counting them again would double the member's assets.
var brokerReportedTypes = map[string]bool{
	utils.InvestmentTypeEquity:      true,
	utils.InvestmentTypeMutualFunds: true,
}

// MemberAssets sums the member's holdings of both classes and the manually
// tracked investments that no broker reports.
func MemberAssets(snapshot models.Snapshot, memberID string) decimal.Decimal {
	total := decimal.Zero
	for _, h := range snapshot.Holdings {
		if h.MemberID == memberID {
			total = total.Add(h.CurrentValue)
		}
	}
	for _, inv := range snapshot.Investments {
		if inv.MemberID == memberID && !brokerReportedTypes[inv.InvestmentType] {
			total = total.Add(inv.Value())
		}
	}
	return total
}

func MemberLiabilities(snapshot models.Snapshot, memberID string) decimal.Decimal {
	total := decimal.Zero
	for _, l := range snapshot.Liabilities {
		if l.MemberID == memberID {
			total = total.Add(l.OutstandingAmount)
		}
	}
	return total
}

func NetWorth(snapshot models.Snapshot, memberID string) decimal.Decimal {
	return MemberAssets(snapshot, memberID).Sub(MemberLiabilities(snapshot, memberID))
}

// ReminderUrgency buckets a reminder by the days left until it is due.
func ReminderUrgency(daysUntil int) schemas.Urgency {
	switch {
	case daysUntil <= urgentWithinDays:
		return schemas.UrgencyUrgent
	case daysUntil <= warningWithinDays:
		return schemas.UrgencyWarning
	default:
		return schemas.UrgencyNormal
	}
}

// Summarize aggregates a snapshot into family totals, per-member figures and
// the reminders that are coming up. Reminders in the past are left out.
func Summarize(snapshot models.Snapshot, now time.Time) schemas.DashboardSummary {
	summary := schemas.DashboardSummary{
		TotalAssets:       decimal.Zero,
		TotalLiabilities:  decimal.Zero,
		AccountCount:      len(snapshot.Accounts),
		Members:           make([]schemas.MemberSummary, 0, len(snapshot.Members)),
		UrgentReminders:   []schemas.ReminderView{},
		UpcomingReminders: []schemas.ReminderView{},
	}

	for _, m := range snapshot.Members {
		ms := summarizeMember(snapshot, m)
		summary.TotalAssets = summary.TotalAssets.Add(ms.Assets)
		summary.TotalLiabilities = summary.TotalLiabilities.Add(ms.Liabilities)
		summary.Members = append(summary.Members, ms)
	}
	summary.NetWorth = summary.TotalAssets.Sub(summary.TotalLiabilities)
	summary.TotalAssetsDisplay = FormatINR(summary.TotalAssets)
	summary.TotalLiabilitiesDisplay = FormatINR(summary.TotalLiabilities)
	summary.NetWorthDisplay = FormatINR(summary.NetWorth)

	for _, r := range snapshot.Reminders {
		days := utils.DaysBetween(now, r.ReminderDate)
		if days < 0 {
			continue
		}
		view := schemas.ReminderView{Reminder: r, DaysUntil: days, Urgency: ReminderUrgency(days)}
		summary.UpcomingReminders = append(summary.UpcomingReminders, view)
		if days <= urgentWithinDays {
			summary.UrgentReminders = append(summary.UrgentReminders, view)
		}
	}
	sortReminderViews(summary.UpcomingReminders)
	sortReminderViews(summary.UrgentReminders)

	return summary
}

func summarizeMember(snapshot models.Snapshot, m models.FamilyMember) schemas.MemberSummary {
	ms := schemas.MemberSummary{
		MemberID:     m.ID,
		Name:         m.Name,
		Relationship: m.Relationship,
		Assets:       MemberAssets(snapshot, m.ID),
		Liabilities:  MemberLiabilities(snapshot, m.ID),
	}
	ms.NetWorth = ms.Assets.Sub(ms.Liabilities)
	ms.AssetsDisplay = FormatINR(ms.Assets)
	ms.LiabilitiesDisplay = FormatINR(ms.Liabilities)
	ms.NetWorthDisplay = FormatINR(ms.NetWorth)

	for _, h := range snapshot.Holdings {
		if h.MemberID == m.ID {
			ms.HoldingCount++
		}
	}
	for _, inv := range snapshot.Investments {
		if inv.MemberID == m.ID {
			ms.InvestmentCount++
		}
	}
	for _, l := range snapshot.Liabilities {
		if l.MemberID == m.ID {
			ms.LiabilityCount++
		}
	}
	for _, a := range snapshot.Accounts {
		if a.HolderID == m.ID {
			ms.AccountCount++
		}
	}
	return ms
}

func sortReminderViews(views []schemas.ReminderView) {
	sort.SliceStable(views, func(i, j int) bool {
		return views[i].ReminderDate.Before(views[j].ReminderDate)
	})
}

var maxMinorUnits = decimal.NewFromInt(math.MaxInt64)

// FormatINR renders an amount the way the dashboard shows it, e.g. ₹1,500.00.
// Amounts beyond int64 paise are printed as plain decimals.
func FormatINR(amount decimal.Decimal) string {
	cur := money.GetCurrency(utils.DefaultCurrency)
	factor := decimal.New(1, int32(cur.Fraction))
	minor := amount.Mul(factor).Round(0)
	if !minor.IsInteger() || minor.Abs().GreaterThan(maxMinorUnits) {
		return amount.StringFixed(int32(cur.Fraction))
	}
	return money.New(minor.IntPart(), utils.DefaultCurrency).Display()
}
