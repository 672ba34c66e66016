package services

import (
	"sort"
	"strings"
	"time"

	"famwealth/src/models"
	"famwealth/src/schemas"
	"famwealth/src/utils"

	"github.com/shopspring/decimal"
)

const unknownMember = "Unknown"

var hundred = decimal.NewFromInt(100)

var reportDisplayNames = map[schemas.ReportCategory]string{
	schemas.ReportEquity:        "Equity",
	schemas.ReportMutualFunds:   "Mutual Funds",
	schemas.ReportFixedDeposits: "Fixed Deposits",
	schemas.ReportInsurance:     "Insurance",
	schemas.ReportGold:          "Gold",
	schemas.ReportProperty:      "Property",
	schemas.ReportOthers:        "Others",
}

// investmentCategories routes manually tracked investment types. Anything
// missing lands in others.
var investmentCategories = map[string]schemas.ReportCategory{
	utils.InvestmentTypeFixedDeposits: schemas.ReportFixedDeposits,
	utils.InvestmentTypeInsurance:     schemas.ReportInsurance,
	utils.InvestmentTypeGold:          schemas.ReportGold,
	utils.InvestmentTypeProperty:      schemas.ReportProperty,
}

// ParseReportCategory accepts the category key case-insensitively.
func ParseReportCategory(value string) (schemas.ReportCategory, error) {
	for _, c := range schemas.ReportCategories {
		if strings.EqualFold(strings.TrimSpace(value), string(c)) {
			return c, nil
		}
	}
	return "", utils.NewValidationError("category", "unknown report category "+value)
}

// BuildCategoryReports returns one report per category, empty ones included.
func BuildCategoryReports(snapshot models.Snapshot) []schemas.CategoryReport {
	reports := make([]schemas.CategoryReport, 0, len(schemas.ReportCategories))
	for _, c := range schemas.ReportCategories {
		reports = append(reports, BuildCategoryReport(snapshot, c))
	}
	return reports
}

// BuildCategoryReport lists the category's positions sorted by member then
// name. Equity and mutual funds come from synced holdings; the rest come from
// manually tracked investments.
func BuildCategoryReport(snapshot models.Snapshot, category schemas.ReportCategory) schemas.CategoryReport {
	names := make(map[string]string, len(snapshot.Members))
	for _, m := range snapshot.Members {
		names[m.ID] = m.Name
	}
	memberName := func(id string) string {
		if n, ok := names[id]; ok {
			return n
		}
		return unknownMember
	}

	rows := []schemas.ReportRow{}
	switch category {
	case schemas.ReportEquity, schemas.ReportMutualFunds:
		class := models.AssetClassEquity
		if category == schemas.ReportMutualFunds {
			class = models.AssetClassMutualFund
		}
		for _, h := range snapshot.Holdings {
			if h.AssetClass != class {
				continue
			}
			name := h.Name
			if name == "" {
				name = h.Symbol
			}
			rows = append(rows, reportRow(h.ID, h.MemberID, memberName(h.MemberID), name, h.BrokerPlatform,
				h.InvestedAmount, h.CurrentValue, h.ImportDate, nil))
		}
	default:
		for _, inv := range snapshot.Investments {
			if brokerReportedTypes[inv.InvestmentType] || investmentCategory(inv.InvestmentType) != category {
				continue
			}
			rows = append(rows, reportRow(inv.ID, inv.MemberID, memberName(inv.MemberID), inv.Name, "",
				inv.InvestedAmount, inv.Value(), inv.CreatedAt, inv.MaturityDate))
		}
	}
	SortReportRows(rows, "", false)

	return schemas.CategoryReport{
		Category:    category,
		DisplayName: reportDisplayNames[category],
		Rows:        rows,
		Totals:      reportTotals(category, rows),
	}
}

func investmentCategory(investmentType string) schemas.ReportCategory {
	if c, ok := investmentCategories[investmentType]; ok {
		return c
	}
	return schemas.ReportOthers
}

func reportRow(id, memberID, member, name, platform string, invested, current decimal.Decimal, date time.Time, maturity *time.Time) schemas.ReportRow {
	gain := current.Sub(invested)
	return schemas.ReportRow{
		ID:             id,
		MemberID:       memberID,
		MemberName:     member,
		Name:           name,
		Platform:       platform,
		InvestedAmount: invested,
		CurrentValue:   current,
		Gain:           gain,
		GainPercent:    percentOf(gain, invested),
		Date:           date,
		MaturityDate:   maturity,
	}
}

// percentOf is part/whole*100 rounded to two places, zero when whole is zero.
func percentOf(part, whole decimal.Decimal) decimal.Decimal {
	if whole.IsZero() {
		return decimal.Zero
	}
	return part.Div(whole).Mul(hundred).Round(2)
}

func reportTotals(category schemas.ReportCategory, rows []schemas.ReportRow) schemas.ReportTotals {
	totals := schemas.ReportTotals{
		Count:     len(rows),
		ShowsGain: category != schemas.ReportFixedDeposits && category != schemas.ReportInsurance,
	}
	for _, r := range rows {
		totals.TotalInvested = totals.TotalInvested.Add(r.InvestedAmount)
		totals.CurrentValue = totals.CurrentValue.Add(r.CurrentValue)
	}
	totals.Gain = totals.CurrentValue.Sub(totals.TotalInvested)
	totals.ReturnPercent = percentOf(totals.Gain, totals.TotalInvested)
	totals.TotalInvestedDisplay = FormatINR(totals.TotalInvested)
	totals.CurrentValueDisplay = FormatINR(totals.CurrentValue)
	totals.GainDisplay = FormatINR(totals.Gain)
	return totals
}

// SortReportRows orders rows by member, name, invested, current, gain,
// gain_percent or date. Unknown keys fall back to member then name. Ties
// keep member then name order.
func SortReportRows(rows []schemas.ReportRow, key string, desc bool) {
	byMember := func(a, b schemas.ReportRow) int {
		if c := strings.Compare(a.MemberName, b.MemberName); c != 0 {
			return c
		}
		return strings.Compare(a.Name, b.Name)
	}
	var primary func(a, b schemas.ReportRow) int
	switch key {
	case "name":
		primary = func(a, b schemas.ReportRow) int { return strings.Compare(a.Name, b.Name) }
	case "invested":
		primary = func(a, b schemas.ReportRow) int { return a.InvestedAmount.Cmp(b.InvestedAmount) }
	case "current":
		primary = func(a, b schemas.ReportRow) int { return a.CurrentValue.Cmp(b.CurrentValue) }
	case "gain":
		primary = func(a, b schemas.ReportRow) int { return a.Gain.Cmp(b.Gain) }
	case "gain_percent":
		primary = func(a, b schemas.ReportRow) int { return a.GainPercent.Cmp(b.GainPercent) }
	case "date":
		primary = func(a, b schemas.ReportRow) int { return a.Date.Compare(b.Date) }
	default:
		primary = byMember
	}

	sort.SliceStable(rows, func(i, j int) bool {
		c := primary(rows[i], rows[j])
		if desc {
			c = -c
		}
		if c == 0 {
			return byMember(rows[i], rows[j]) < 0
		}
		return c < 0
	})
}
