package cli

import (
	"fmt"
	"strings"

	"github.com/Veraticus/the-rolodex-must-flow/internal/analytics"
	"github.com/Veraticus/the-rolodex-must-flow/internal/classify"
	"github.com/Veraticus/the-rolodex-must-flow/internal/model"
)

// RenderCleaningSummary renders the post-clean counts box: how many records
// survived and how many landed in each anomaly category.
func RenderCleaningSummary(result classify.Result) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s %s\n\n",
		SuccessStyle.Render("Contacts cleaned:"),
		BoldStyle.Render(fmt.Sprintf("%d active", len(result.Cleaned))))

	rows := []struct {
		label string
		count int
	}{
		{"Duplicate contacts", len(result.Summary.Duplicates)},
		{"Invalid emails", len(result.Summary.Invalid)},
		{"Incomplete entries", len(result.Summary.Incomplete)},
		{"Similar contacts", len(result.Summary.Similar)},
	}

	for _, row := range rows {
		style := SubtleStyle
		if row.count > 0 {
			style = WarningStyle
		}
		fmt.Fprintf(&b, "  %s %s\n",
			TableCellStyle.Render(fmt.Sprintf("%-20s", row.label)),
			style.Render(fmt.Sprintf("%d", row.count)))
	}

	if result.Summary.IsEmpty() {
		b.WriteString("\n" + FormatSuccess("No anomalies found"))
	}

	return RenderBox("Cleaning Summary", strings.TrimRight(b.String(), "\n"))
}

// RenderCategoryPreview renders the first few records of a category under
// the summary, with their reasons.
func RenderCategoryPreview(name string, contacts []*model.Contact, limit int) string {
	if len(contacts) == 0 {
		return ""
	}
	if limit <= 0 || limit > len(contacts) {
		limit = len(contacts)
	}

	var b strings.Builder
	b.WriteString(TableHeaderStyle.Render(fmt.Sprintf("%s (%d)", titleCase(name), len(contacts))))
	b.WriteString("\n")

	for _, c := range contacts[:limit] {
		reason := strings.Join(c.Reasons, "; ")
		if c.SimilarityReason != "" {
			if reason != "" {
				reason += "; "
			}
			reason += c.SimilarityReason
		}
		fmt.Fprintf(&b, "  %s %s\n",
			BoldStyle.Render(c.DisplayName()),
			SubtleStyle.Render(reason))
	}
	if limit < len(contacts) {
		fmt.Fprintf(&b, "  %s\n", SubtleStyle.Render(fmt.Sprintf("… and %d more", len(contacts)-limit)))
	}

	return b.String()
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// RenderAnalyticsSummary renders the aggregate counts returned by the
// analytics backend.
func RenderAnalyticsSummary(summary *analytics.SummaryResponse) string {
	var b strings.Builder

	rows := []struct {
		label string
		count int
	}{
		{"Total contacts", summary.TotalContacts},
		{"Missing names", summary.MissingNames},
		{"Missing emails", summary.MissingEmails},
		{"Missing phones", summary.MissingPhones},
		{"Duplicates", summary.Duplicates},
	}
	for _, row := range rows {
		fmt.Fprintf(&b, "  %s %s\n",
			TableCellStyle.Render(fmt.Sprintf("%-16s", row.label)),
			BoldStyle.Render(fmt.Sprintf("%d", row.count)))
	}

	return RenderBox(ChartIcon+" Contact Analytics", strings.TrimRight(b.String(), "\n"))
}
