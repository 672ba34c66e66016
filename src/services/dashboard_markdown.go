package services

import (
	"fmt"
	"strings"

	"famwealth/src/schemas"
	"famwealth/src/utils"
)

// SummaryMarkdown renders the dashboard as a markdown document for terminals.
func SummaryMarkdown(summary *schemas.DashboardSummary) string {
	var b strings.Builder

	b.WriteString("# Family net worth\n\n")
	fmt.Fprintf(&b, "| Assets | Liabilities | Net worth | Accounts |\n|---:|---:|---:|---:|\n")
	fmt.Fprintf(&b, "| %s | %s | %s | %d |\n\n",
		summary.TotalAssetsDisplay, summary.TotalLiabilitiesDisplay, summary.NetWorthDisplay, summary.AccountCount)

	if len(summary.Members) > 0 {
		b.WriteString("## Members\n\n")
		b.WriteString("| Member | Relationship | Assets | Liabilities | Net worth | Holdings |\n|---|---|---:|---:|---:|---:|\n")
		for _, m := range summary.Members {
			fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %d |\n",
				m.Name, m.Relationship, m.AssetsDisplay, m.LiabilitiesDisplay, m.NetWorthDisplay, m.HoldingCount)
		}
		b.WriteString("\n")
	}

	writeReminders(&b, "Urgent reminders", summary.UrgentReminders)
	writeReminders(&b, "Upcoming reminders", summary.UpcomingReminders)
	return b.String()
}

// ReportMarkdown renders one category report as a table with a totals line.
func ReportMarkdown(report *schemas.CategoryReport) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", report.DisplayName)
	if len(report.Rows) == 0 {
		fmt.Fprintf(&b, "No %s investments found.\n", report.DisplayName)
		return b.String()
	}

	b.WriteString("| Member | Name | Invested | Current value | Gain | Gain % |\n|---|---|---:|---:|---:|---:|\n")
	for _, r := range report.Rows {
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %s%% |\n",
			r.MemberName, r.Name, FormatINR(r.InvestedAmount), FormatINR(r.CurrentValue), FormatINR(r.Gain), r.GainPercent.StringFixed(2))
	}

	t := report.Totals
	fmt.Fprintf(&b, "\n**%d positions.** Invested %s, current value %s", t.Count, t.TotalInvestedDisplay, t.CurrentValueDisplay)
	if t.ShowsGain {
		fmt.Fprintf(&b, ", gain %s (%s%%)", t.GainDisplay, t.ReturnPercent.StringFixed(2))
	}
	b.WriteString(".\n")
	return b.String()
}

func writeReminders(b *strings.Builder, title string, reminders []schemas.ReminderView) {
	if len(reminders) == 0 {
		return
	}
	fmt.Fprintf(b, "## %s\n\n", title)
	for _, r := range reminders {
		fmt.Fprintf(b, "- **%s** on %s (%d days, %s)\n", r.Title, r.ReminderDate.Format(utils.ShortDashDateLayout), r.DaysUntil, r.Urgency)
	}
	b.WriteString("\n")
}
