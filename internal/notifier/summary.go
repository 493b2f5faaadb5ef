package notifier

import (
	"fmt"
	"strings"

	"marketdash/internal/model"
)

// FormatRunSummary renders a short HTML summary of a dashboard run:
// destination, leader/laggard by 6-month relative strength, and any
// tickers that failed to fetch.
func FormatRunSummary(rows []model.DashboardRow, dest string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "📊 <b>Dashboard updated</b>\n\n%d tickers → %s\n", len(rows), dest)

	var leader, laggard *model.DashboardRow
	var failed []string
	for i := range rows {
		r := &rows[i]
		if r.Err != nil {
			failed = append(failed, r.Ticker)
			continue
		}
		if r.RS6M == nil {
			continue
		}
		if leader == nil || *r.RS6M > *leader.RS6M {
			leader = r
		}
		if laggard == nil || *r.RS6M < *laggard.RS6M {
			laggard = r
		}
	}

	if leader != nil && laggard != nil {
		fmt.Fprintf(&b, "\n6M RS leader: <b>%s</b> (%+.1f%%)\n", leader.Ticker, *leader.RS6M*100)
		fmt.Fprintf(&b, "6M RS laggard: <b>%s</b> (%+.1f%%)\n", laggard.Ticker, *laggard.RS6M*100)
	}
	if len(failed) > 0 {
		fmt.Fprintf(&b, "\n⚠️ no data: %s\n", strings.Join(failed, ", "))
	}
	return b.String()
}
