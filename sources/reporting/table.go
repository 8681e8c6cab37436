package reporting

import (
	"fmt"
	"io"
	"time"
	"toolscout/sources/quadrant"
	"toolscout/sources/texting/format"

	"github.com/olekukonko/tablewriter"
)

// RenderTable writes the grouped listing, one section per quadrant in fixed
// order, rows sorted by median price ascending.
func (x *Reporter) RenderTable(w io.Writer, report *Report) {
	fmt.Fprintf(w, "\nModel catalog quadrants, %s\n", format.Datify(time.Now()))
	fmt.Fprintf(w, "Cut points: %s tokens context, %s per million output tokens\n",
		format.Contextify(report.Thresholds.Context),
		format.Currencify(report.Thresholds.Price),
	)

	for _, label := range quadrant.Labels() {
		group := report.Grouped(label)

		fmt.Fprintf(w, "\n%s (%s models)\n", label, format.Numberify(int64(len(group))))
		if len(group) == 0 {
			continue
		}

		table := tablewriter.NewWriter(w)
		table.SetHeader([]string{"Model", "Vendor", "Context", "Input $/M", "Output $/M", "Median $/M"})
		table.SetAutoWrapText(false)
		table.SetAlignment(tablewriter.ALIGN_LEFT)

		for _, entry := range group {
			table.Append([]string{
				entry.Model.Name,
				entry.Model.Vendor,
				format.Contextify(entry.Model.ContextLength),
				format.PerMillionify(entry.Model.InputPerMillion),
				format.PerMillionify(entry.Model.OutputPerMillion),
				format.PerMillionify(entry.Model.MedianPerMillion),
			})
		}

		table.Render()
	}
}

// RenderCheapest writes the cheapest-N digest below the quadrant sections.
func (x *Reporter) RenderCheapest(w io.Writer, report *Report, n int) {
	cheapest := report.Cheapest(n)
	if len(cheapest) == 0 {
		return
	}

	fmt.Fprintf(w, "\nCheapest %d models by median price\n", len(cheapest))

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"#", "Model", "Vendor", "Median $/M", "Quadrant"})
	table.SetAutoWrapText(false)
	table.SetAlignment(tablewriter.ALIGN_LEFT)

	for i, entry := range cheapest {
		table.Append([]string{
			fmt.Sprintf("%d", i+1),
			entry.Model.Name,
			entry.Model.Vendor,
			format.PerMillionify(entry.Model.MedianPerMillion),
			entry.Label.String(),
		})
	}

	table.Render()
}
