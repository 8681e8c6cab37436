package reporting

import (
	"sort"
	"toolscout/sources/pricing"
	"toolscout/sources/quadrant"
)

type Entry struct {
	Model *pricing.Model
	Label quadrant.Label
}

// Report is the classified snapshot handed to every renderer. Entries are
// already labeled; renderers only group, sort and draw.
type Report struct {
	Entries      []Entry
	Thresholds   quadrant.Thresholds
	FreeExcluded int
}

// Build classifies every normalized model. Free tier entries (both prices
// zero) are excluded unless includeFree is set, matching the analysis the
// snapshot exists for: paid-tier price/context trade-offs.
func Build(models []*pricing.Model, thresholds quadrant.Thresholds, includeFree bool) *Report {
	report := &Report{Thresholds: thresholds}

	for _, model := range models {
		if model.Free() && !includeFree {
			report.FreeExcluded++
			continue
		}
		report.Entries = append(report.Entries, Entry{
			Model: model,
			Label: quadrant.Classify(model, thresholds),
		})
	}

	return report
}

// Grouped returns the entries of one quadrant sorted by median price
// ascending, ties broken by model id for stable artifacts.
func (r *Report) Grouped(label quadrant.Label) []Entry {
	group := make([]Entry, 0)
	for _, entry := range r.Entries {
		if entry.Label == label {
			group = append(group, entry)
		}
	}

	sort.Slice(group, func(i, j int) bool {
		cmp := group[i].Model.MedianPerMillion.Cmp(group[j].Model.MedianPerMillion)
		if cmp != 0 {
			return cmp < 0
		}
		return group[i].Model.ID < group[j].Model.ID
	})

	return group
}

// Cheapest returns up to n paid entries across all quadrants, cheapest
// median first. Free tier entries never rank here even when the report
// includes them: a $0 row says nothing about price trade-offs.
func (r *Report) Cheapest(n int) []Entry {
	all := make([]Entry, 0, len(r.Entries))
	for _, entry := range r.Entries {
		if entry.Model.Free() {
			continue
		}
		all = append(all, entry)
	}

	sort.Slice(all, func(i, j int) bool {
		cmp := all[i].Model.MedianPerMillion.Cmp(all[j].Model.MedianPerMillion)
		if cmp != 0 {
			return cmp < 0
		}
		return all[i].Model.ID < all[j].Model.ID
	})

	if n > len(all) {
		n = len(all)
	}
	return all[:n]
}
