package commands

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"stockeye/internal/scan"
)

// printReport renders a scan report as a terminal table.
func printReport(w io.Writer, report *scan.Report) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "SYMBOL\tNAME\tRATING\tF-SCORE\tTECH\tCOMBINED\tRSI\tNOTES")

	for _, r := range report.Results {
		if r.Failed() {
			fmt.Fprintf(tw, "%s\t-\t-\t-\t-\t-\t-\t%s: %s\n", r.Symbol, r.State, r.Error)
			continue
		}

		name := "-"
		if r.Info != nil && r.Info.Name != "" {
			name = truncate(r.Info.Name, 28)
		}
		rsi := "-"
		if r.Snapshot.RSI != nil {
			rsi = fmt.Sprintf("%.1f", *r.Snapshot.RSI)
		}

		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%d\t%.1f\t%s\t%s\n",
			r.Symbol, name, r.Rating.Level, r.Breakdown.FScore,
			r.Breakdown.Technical, r.Breakdown.Combined, rsi,
			strings.Join(r.Rating.Rationale, ","))
	}
	tw.Flush()

	fmt.Fprintf(w, "\nregime=%s vix=%s calendar=%s | scanned=%d failed=%d qualified=%d in %s\n",
		report.Context.Regime, report.Context.VIXBand, report.Context.CalendarFlag,
		report.Summary.Scanned, report.Summary.Failed, report.Summary.Qualified,
		report.Duration.Round(10*time.Millisecond))
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-1] + "…"
}
