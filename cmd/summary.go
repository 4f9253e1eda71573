package cmd

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"app-inventory/feature/pipeline"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
)

// printSummary renders the run counters as a table.
func printSummary(w io.Writer, s *pipeline.Summary) {
	ok := color.New(color.FgGreen).SprintFunc()
	warn := color.New(color.FgYellow).SprintFunc()
	bad := color.New(color.FgRed).SprintFunc()

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Phase", "Metric", "Value"})
	table.SetAutoWrapText(false)
	table.SetAlignment(tablewriter.ALIGN_LEFT)

	table.Append([]string{"fetch", "records", strconv.Itoa(s.Ingest.Fetched)})
	table.Append([]string{"persist", "inserted", ok(s.Ingest.Inserted)})
	table.Append([]string{"persist", "existing", strconv.Itoa(s.Ingest.Existing)})
	table.Append([]string{"persist", "skipped", warn(s.Ingest.Skipped)})
	if s.Enrichment != nil {
		table.Append([]string{"enrich", "enriched", ok(s.Enrichment.Enriched)})
		table.Append([]string{"enrich", "failed", bad(s.Enrichment.Failed)})
	}
	if s.Export != nil {
		table.Append([]string{"export", "rows", strconv.Itoa(s.Export.Rows)})
		table.Append([]string{"export", "csv", s.Export.CSVPath})
		table.Append([]string{"export", "json", s.Export.JSONPath})
		for _, obj := range s.Export.Objects {
			table.Append([]string{"export", "object", obj})
		}
	}
	if s.Duration > 0 {
		table.Append([]string{"run", "duration", s.Duration.Round(time.Millisecond).String()})
	}
	table.Render()
	fmt.Fprintln(w)
}
