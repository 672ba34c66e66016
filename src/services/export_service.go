package services

import (
	"context"
	"fmt"

	"famwealth/src/models"
	"famwealth/src/schemas"
	"famwealth/src/utils"

	"github.com/xuri/excelize/v2"
)

const (
	summarySheet   = "Summary"
	holdingsSheet  = "Holdings"
	remindersSheet = "Reminders"
)

type ExportServiceI interface {
	GenerateXLSX(ctx context.Context, userID string) (*excelize.File, error)
}

// ExportService writes the dashboard into an XLSX workbook.
type ExportService struct {
	dashboard DashboardServiceI
}

func NewExportService(dashboard DashboardServiceI) *ExportService {
	return &ExportService{dashboard: dashboard}
}

func (s *ExportService) GenerateXLSX(ctx context.Context, userID string) (*excelize.File, error) {
	snapshot, err := s.dashboard.LoadSnapshot(ctx, userID)
	if err != nil {
		return nil, err
	}
	summary, err := s.dashboard.GetSummary(ctx, userID)
	if err != nil {
		return nil, err
	}
	return BuildWorkbook(*snapshot, *summary)
}

// BuildWorkbook renders an already aggregated dashboard.
func BuildWorkbook(snapshot models.Snapshot, summary schemas.DashboardSummary) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return nil, err
	}

	summaryRows := [][]interface{}{{"Member", "Relationship", "Assets", "Liabilities", "Net worth"}}
	for _, m := range summary.Members {
		summaryRows = append(summaryRows, []interface{}{
			m.Name, m.Relationship, m.Assets.InexactFloat64(), m.Liabilities.InexactFloat64(), m.NetWorth.InexactFloat64(),
		})
	}
	summaryRows = append(summaryRows, []interface{}{
		"TOTAL", "", summary.TotalAssets.InexactFloat64(), summary.TotalLiabilities.InexactFloat64(), summary.NetWorth.InexactFloat64(),
	})
	if err := writeSheet(f, summarySheet, summaryRows, 3); err != nil {
		return nil, err
	}

	memberNames := make(map[string]string, len(snapshot.Members))
	for _, m := range snapshot.Members {
		memberNames[m.ID] = m.Name
	}
	holdingRows := [][]interface{}{{"Member", "Broker", "Class", "Symbol", "Name", "Quantity", "Invested", "Current value"}}
	for _, h := range snapshot.Holdings {
		holdingRows = append(holdingRows, []interface{}{
			memberNames[h.MemberID], h.BrokerPlatform, string(h.AssetClass), h.Symbol, h.Name,
			h.Quantity.InexactFloat64(), h.InvestedAmount.InexactFloat64(), h.CurrentValue.InexactFloat64(),
		})
	}
	if _, err := f.NewSheet(holdingsSheet); err != nil {
		return nil, err
	}
	if err := writeSheet(f, holdingsSheet, holdingRows, 7); err != nil {
		return nil, err
	}

	reminderRows := [][]interface{}{{"Date", "Title", "Type", "Days until", "Urgency"}}
	for _, r := range summary.UpcomingReminders {
		reminderRows = append(reminderRows, []interface{}{
			r.ReminderDate.Format("2006-01-02"), r.Title, r.ReminderType, r.DaysUntil, string(r.Urgency),
		})
	}
	if _, err := f.NewSheet(remindersSheet); err != nil {
		return nil, err
	}
	if err := writeSheet(f, remindersSheet, reminderRows, 0); err != nil {
		return nil, err
	}

	for _, report := range BuildCategoryReports(snapshot) {
		if err := writeReportSheet(f, report); err != nil {
			return nil, err
		}
	}

	f.SetActiveSheet(0)
	return f, nil
}

// writeReportSheet adds a sheet named after the category with a TOTAL row.
func writeReportSheet(f *excelize.File, report schemas.CategoryReport) error {
	rows := [][]interface{}{{"Member", "Name", "Platform", "Date", "Invested", "Current value", "Gain", "Gain %"}}
	for _, r := range report.Rows {
		date := ""
		if !r.Date.IsZero() {
			date = r.Date.Format(utils.ShortDashDateLayout)
		}
		rows = append(rows, []interface{}{
			r.MemberName, r.Name, r.Platform, date,
			r.InvestedAmount.InexactFloat64(), r.CurrentValue.InexactFloat64(), r.Gain.InexactFloat64(), r.GainPercent.InexactFloat64(),
		})
	}
	t := report.Totals
	rows = append(rows, []interface{}{
		"TOTAL", fmt.Sprintf("%d positions", t.Count), "", "",
		t.TotalInvested.InexactFloat64(), t.CurrentValue.InexactFloat64(), t.Gain.InexactFloat64(), t.ReturnPercent.InexactFloat64(),
	})

	if _, err := f.NewSheet(report.DisplayName); err != nil {
		return err
	}
	return writeSheet(f, report.DisplayName, rows, 5)
}

// writeSheet fills rows starting at A1, bolds the header and formats columns
// from amountFrom (1-based) onwards as amounts. amountFrom 0 skips it.
func writeSheet(f *excelize.File, sheet string, rows [][]interface{}, amountFrom int) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}
	if len(rows) == 0 {
		return nil
	}
	lastCol := len(rows[0])

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E6E6E6"}, Pattern: 1},
	})
	if err != nil {
		return err
	}
	endHeader, err := excelize.CoordinatesToCellName(lastCol, 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", endHeader, headerStyle); err != nil {
		return err
	}

	if amountFrom == 0 || len(rows) < 2 {
		return nil
	}
	amountStyle, err := f.NewStyle(&excelize.Style{NumFmt: 4})
	if err != nil {
		return err
	}
	start, err := excelize.CoordinatesToCellName(amountFrom, 2)
	if err != nil {
		return err
	}
	end, err := excelize.CoordinatesToCellName(lastCol, len(rows))
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, start, end, amountStyle); err != nil {
		return fmt.Errorf("failed to format %s amounts: %w", sheet, err)
	}
	return nil
}
