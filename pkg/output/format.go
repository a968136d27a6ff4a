// Package output provides utilities for formatting and displaying evaluated reports.
package output

import (
	"fmt"
	"math"
	"strings"

	"github.com/mhollis/unit-economics/internal/report"
	"github.com/mhollis/unit-economics/pkg/format"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// PrettyFormat outputs a human-readable rather than machine-readable table.
func PrettyFormat(results []report.Report) {
	p := message.NewPrinter(language.English)
	for _, result := range results {
		fmt.Printf("--- Results for scenario %s ---\n", result.Name)
		_, _ = p.Printf("Lifetime Value (LTV)        | %s\n", prettyCurrency(result.LTV))
		if result.ARPULTV != nil {
			_, _ = p.Printf("LTV (ARPU-based)            | %s\n", format.Currency(*result.ARPULTV))
		}
		_, _ = p.Printf("Customer Acquisition Cost   | %s\n", format.Currency(result.CAC))
		fmt.Printf("LTV/CAC Ratio               | %s\n", format.Ratio(result.Ratio))
		fmt.Printf("CAC Payback Period          | %s\n", format.Months(result.PaybackMonths))
		_, _ = p.Printf("Monthly Revenue / Customer  | %s\n", format.Currency(result.MonthlyRevenue))
		_, _ = p.Printf("Annual Revenue / Customer   | %s\n", format.Currency(result.AnnualRevenue))
		fmt.Printf("Monthly ROI                 | %.1f%%\n", result.MonthlyROI)
		fmt.Printf("Customer Lifespan           | %s\n", format.Years(result.LifespanYears))
		if result.Churn != nil {
			fmt.Printf("Monthly Churn Rate          | %s\n", format.Percent(result.Churn.MonthlyRate))
			fmt.Printf("Annual Churn Rate           | %s\n", format.Percent(result.Churn.AnnualRate))
		}
		fmt.Printf("Status: %s\n", result.Status)
		for _, action := range result.Actions {
			fmt.Printf("  - %s\n", action)
		}
		for _, insight := range result.Insights {
			fmt.Printf("%s (%s, %.1f%%): %s\n", insight.Metric, insight.Band, insight.RatePct, insight.Message)
		}
		if result.Scenario != nil {
			fmt.Printf("Scenario: new LTV %s, new CAC %s, new ratio %s",
				prettyCurrency(result.Scenario.NewLTV),
				format.Currency(result.Scenario.NewCAC),
				format.Ratio(result.Scenario.NewRatio))
			if result.Scenario.RatioChangeKnown {
				fmt.Printf(" (%s)", format.SignedPercent(result.Scenario.RatioChangePct))
			}
			fmt.Printf("\n")
		}
		for _, warning := range result.Warnings {
			fmt.Printf("Warning: %s\n", warning)
		}
		if len(results) > 1 {
			fmt.Printf("\n")
		}
	}
}

// CsvFormat outputs in comma-separated value format.
func CsvFormat(results []report.Report) {
	fmt.Print(CsvString(results))
}

// CsvString renders the reports as a CSV document. Used both by CsvFormat
// and by the HTTP server's response payload.
func CsvString(results []report.Report) string {
	var b strings.Builder
	b.WriteString(`"scenario","ltv","cac","ratio","paybackMonths","monthlyRevenue","monthlyRoi","lifespanYears","status"`)
	b.WriteString("\n")
	for _, result := range results {
		fmt.Fprintf(&b, `"%s","%s","%s","%s","%s","%s","%.1f","%s","%s"`,
			result.Name,
			csvNumber(result.LTV),
			csvNumber(result.CAC),
			format.Ratio(result.Ratio),
			csvMonths(result.PaybackMonths),
			csvNumber(result.MonthlyRevenue),
			result.MonthlyROI,
			format.Years(result.LifespanYears),
			result.Status,
		)
		b.WriteString("\n")
	}
	return b.String()
}

func csvMonths(months float64) string {
	s := format.Months(months)
	return strings.TrimSuffix(s, " months")
}

// csvNumber renders a currency column with thousands separators; the cells
// are quoted so the separators do not split fields.
func csvNumber(v float64) string {
	if math.IsInf(v, 1) {
		return format.Infinity
	}
	return format.NumericCurrency(v)
}

func prettyCurrency(v float64) string {
	if math.IsInf(v, 1) {
		return format.Infinity
	}
	return format.Currency(v)
}
