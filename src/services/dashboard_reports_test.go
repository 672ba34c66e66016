package services

import (
	"context"
	"testing"
	"time"

	"famwealth/src/models"
	"famwealth/src/schemas"
	"famwealth/src/utils"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func reportSnapshot() models.Snapshot {
	return models.Snapshot{
		Members: []models.FamilyMember{{ID: "m1", Name: "Asha"}, {ID: "m2", Name: "Ravi"}},
		Holdings: []models.Holding{
			{ID: "h1", MemberID: "m2", AssetClass: models.AssetClassEquity, Name: "Infosys", BrokerPlatform: "zerodha", InvestedAmount: d(1000), CurrentValue: d(1250)},
			{ID: "h2", MemberID: "m1", AssetClass: models.AssetClassEquity, Symbol: "TCS", InvestedAmount: d(2000), CurrentValue: d(1800)},
			{ID: "h3", MemberID: "m1", AssetClass: models.AssetClassMutualFund, Name: "Index Fund", InvestedAmount: d(500), CurrentValue: d(600)},
		},
		Investments: []models.Investment{
			{ID: "i1", MemberID: "m1", InvestmentType: utils.InvestmentTypeFixedDeposits, Name: "SBI FD", InvestedAmount: d(10000)},
			{ID: "i2", MemberID: "m1", InvestmentType: utils.InvestmentTypeInsurance, Name: "LIC", InvestedAmount: d(3000), CurrentValue: d(3000)},
			{ID: "i3", MemberID: "m2", InvestmentType: utils.InvestmentTypeGold, Name: "Coins", InvestedAmount: d(400), CurrentValue: d(500)},
			{ID: "i4", MemberID: "m2", InvestmentType: utils.InvestmentTypeBank, Name: "Savings", InvestedAmount: d(700)},
			{ID: "i5", MemberID: "gone", InvestmentType: "crypto", Name: "BTC", CurrentValue: d(900)},
			{ID: "i6", MemberID: "m1", InvestmentType: utils.InvestmentTypeEquity, Name: "Old equity", InvestedAmount: d(1)},
		},
	}
}

func TestBuildCategoryReportFromHoldings(t *testing.T) {
	report := BuildCategoryReport(reportSnapshot(), schemas.ReportEquity)

	assert.Equal(t, "Equity", report.DisplayName)
	require.Len(t, report.Rows, 2)
	assert.Equal(t, "Asha", report.Rows[0].MemberName)
	assert.Equal(t, "TCS", report.Rows[0].Name)
	assert.True(t, report.Rows[0].GainPercent.Equal(d(-10)))
	assert.Equal(t, "zerodha", report.Rows[1].Platform)
	assert.True(t, report.Rows[1].Gain.Equal(d(250)))

	totals := report.Totals
	assert.Equal(t, 2, totals.Count)
	assert.True(t, totals.TotalInvested.Equal(d(3000)))
	assert.True(t, totals.CurrentValue.Equal(d(3050)))
	assert.True(t, totals.ReturnPercent.Equal(decimal.RequireFromString("1.67")))
	assert.True(t, totals.ShowsGain)
}

func TestBuildCategoryReportRoutesInvestmentTypes(t *testing.T) {
	reports := BuildCategoryReports(reportSnapshot())
	require.Len(t, reports, len(schemas.ReportCategories))

	ids := map[schemas.ReportCategory][]string{}
	for _, r := range reports {
		for _, row := range r.Rows {
			ids[r.Category] = append(ids[r.Category], row.ID)
		}
	}
	assert.Equal(t, []string{"h2", "h1"}, ids[schemas.ReportEquity])
	assert.Equal(t, []string{"h3"}, ids[schemas.ReportMutualFunds])
	assert.Equal(t, []string{"i1"}, ids[schemas.ReportFixedDeposits])
	assert.Equal(t, []string{"i2"}, ids[schemas.ReportInsurance])
	assert.Equal(t, []string{"i3"}, ids[schemas.ReportGold])
	assert.Empty(t, ids[schemas.ReportProperty])
	assert.Equal(t, []string{"i4", "i5"}, ids[schemas.ReportOthers])

	others := reports[len(reports)-1]
	assert.Equal(t, unknownMember, others.Rows[1].MemberName)
}

func TestBuildCategoryReportZeroInvested(t *testing.T) {
	report := BuildCategoryReport(reportSnapshot(), schemas.ReportOthers)

	btc := report.Rows[1]
	assert.True(t, btc.Gain.Equal(d(900)))
	assert.True(t, btc.GainPercent.IsZero())

	empty := BuildCategoryReport(models.Snapshot{}, schemas.ReportGold)
	assert.NotNil(t, empty.Rows)
	assert.Zero(t, empty.Totals.Count)
	assert.True(t, empty.Totals.ReturnPercent.IsZero())
}

func TestBuildCategoryReportHidesGainForDepositsAndInsurance(t *testing.T) {
	fd := BuildCategoryReport(reportSnapshot(), schemas.ReportFixedDeposits)
	assert.False(t, fd.Totals.ShowsGain)
	// No valuation yet, so the deposit is worth what went in.
	assert.True(t, fd.Rows[0].CurrentValue.Equal(d(10000)))
	assert.True(t, fd.Totals.Gain.IsZero())

	assert.False(t, BuildCategoryReport(reportSnapshot(), schemas.ReportInsurance).Totals.ShowsGain)
	assert.True(t, BuildCategoryReport(reportSnapshot(), schemas.ReportGold).Totals.ShowsGain)
}

func TestSortReportRows(t *testing.T) {
	day := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	rows := []schemas.ReportRow{
		{ID: "a", MemberName: "Ravi", Name: "X", Gain: d(10), Date: day.AddDate(0, 0, 2)},
		{ID: "b", MemberName: "Asha", Name: "Y", Gain: d(30), Date: day},
		{ID: "c", MemberName: "Asha", Name: "X", Gain: d(10), Date: day.AddDate(0, 0, 1)},
	}
	order := func() []string {
		var out []string
		for _, r := range rows {
			out = append(out, r.ID)
		}
		return out
	}

	SortReportRows(rows, "gain", true)
	assert.Equal(t, []string{"b", "c", "a"}, order())

	SortReportRows(rows, "date", false)
	assert.Equal(t, []string{"b", "c", "a"}, order())

	SortReportRows(rows, "bogus", false)
	assert.Equal(t, []string{"c", "b", "a"}, order())
}

func TestParseReportCategory(t *testing.T) {
	c, err := ParseReportCategory(" MutualFunds ")
	require.NoError(t, err)
	assert.Equal(t, schemas.ReportMutualFunds, c)

	_, err = ParseReportCategory("crypto")
	var validationErr *utils.ValidationError
	assert.ErrorAs(t, err, &validationErr)
}

func TestDashboardServiceGetCategoryReport(t *testing.T) {
	store := newMemStore()
	svc := NewDashboardService(memMemberRepo{store}, &memHoldingRepo{}, memInvestmentRepo{store},
		memLiabilityRepo{store}, memAccountRepo{store}, memReminderRepo{store})
	ctx := context.Background()

	for _, inv := range []models.Investment{
		{UserID: "u1", MemberID: "m1", InvestmentType: utils.InvestmentTypeGold, Name: "Bar", InvestedAmount: d(100), CurrentValue: d(150)},
		{UserID: "u1", MemberID: "m1", InvestmentType: utils.InvestmentTypeGold, Name: "Coins", InvestedAmount: d(100), CurrentValue: d(300)},
		{UserID: "u2", MemberID: "m9", InvestmentType: utils.InvestmentTypeGold, Name: "Other", InvestedAmount: d(1)},
	} {
		inv := inv
		require.NoError(t, memInvestmentRepo{store}.Create(ctx, &inv))
	}

	report, err := svc.GetCategoryReport(ctx, "u1", "gold", "gain_percent", true)
	require.NoError(t, err)
	require.Len(t, report.Rows, 2)
	assert.Equal(t, "Coins", report.Rows[0].Name)
	assert.True(t, report.Rows[0].GainPercent.Equal(d(200)))
	assert.True(t, report.Totals.ReturnPercent.Equal(d(125)))

	_, err = svc.GetCategoryReport(ctx, "u1", "crypto", "", false)
	assert.Error(t, err)
}
