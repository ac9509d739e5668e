// Package report renders run summaries for operators: a console table after
// every run and an XLSX export for audits.
package report

import (
	"fmt"
	"io"
	"strings"

	"migration-service/internal/migration"
	"migration-service/internal/models"
)

// PrintSummary writes the counts table for one or more runs to w. This is
// informational output only; nothing parses it.
func PrintSummary(w io.Writer, results []*migration.Result) {
	fmt.Fprintln(w, "\n=== Migration Summary ===")

	fmt.Fprintf(w, "%-12s %8s %8s %8s %8s %8s  %s\n", "Entity", "Seen", "Created", "Updated", "Skipped", "Errors", "Status")
	fmt.Fprintln(w, strings.Repeat("-", 72))

	var seen, created, updated, skipped, errs int64
	for _, res := range results {
		fmt.Fprintf(w, "%-12s %8d %8d %8d %8d %8d  %s\n",
			res.EntityType,
			res.Counters.Seen,
			res.Counters.Created,
			res.Counters.Updated,
			res.Counters.Skipped,
			res.Counters.Errors,
			res.Status,
		)
		seen += res.Counters.Seen
		created += res.Counters.Created
		updated += res.Counters.Updated
		skipped += res.Counters.Skipped
		errs += res.Counters.Errors
	}

	fmt.Fprintln(w, strings.Repeat("-", 72))
	fmt.Fprintf(w, "%-12s %8d %8d %8d %8d %8d\n", "TOTAL", seen, created, updated, skipped, errs)

	for _, res := range results {
		switch res.Status {
		case models.RunStatusRolledBack:
			fmt.Fprintf(w, "\n%s: DRY RUN - no changes were made (transaction rolled back)\n", res.EntityType)
		case models.RunStatusFailed:
			fmt.Fprintf(w, "\n%s: FAILED - no changes were made (transaction rolled back)\n", res.EntityType)
		}
		if n := len(res.Counters.Warnings); n > 0 {
			fmt.Fprintf(w, "\n%s: %d warning(s)\n", res.EntityType, n)
			for _, warning := range res.Counters.Warnings {
				fmt.Fprintf(w, "  - %s\n", warning)
			}
		}
	}
}
