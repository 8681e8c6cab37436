package reporting

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"toolscout/sources/quadrant"
	"toolscout/sources/tracing"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

var quadrantColors = map[quadrant.Label]color.RGBA{
	quadrant.LowCostHighContext:  {R: 0x2e, G: 0xcc, B: 0x71, A: 0xff},
	quadrant.HighCostHighContext: {R: 0x34, G: 0x98, B: 0xdb, A: 0xff},
	quadrant.LowCostLowContext:   {R: 0xf3, G: 0x9c, B: 0x12, A: 0xff},
	quadrant.HighCostLowContext:  {R: 0xe7, G: 0x4c, B: 0x3c, A: 0xff},
}

// RenderChart draws the context-vs-price scatter, one colored series per
// quadrant, on log-log axes. Log scaling is what lets the full observed
// dynamic range (price spans hundreds of times, context tens) fit without
// clipping outliers. Zero-priced entries cannot sit on a log axis and are
// left out of the chart. With nothing plottable at all the chart is skipped
// and no file is produced; an empty snapshot is not an error.
func (x *Reporter) RenderChart(log *tracing.Logger, report *Report) (string, error) {
	p := newLogPlot("LLM Cost vs Context Window")

	plotted := 0
	for _, label := range quadrant.Labels() {
		scatter, points, err := scatterFor(report.Grouped(label), quadrantColors[label])
		if err != nil {
			return "", err
		}
		if points == 0 {
			continue
		}

		p.Add(scatter)
		p.Legend.Add(label.String(), scatter)
		plotted += points
	}

	if plotted == 0 {
		log.W("Chart skipped, no plottable entries")
		return "", nil
	}

	if err := x.addThresholdLines(p, report); err != nil {
		return "", err
	}

	dir := filepath.Join(x.config.Artifacts.ReportsDir, "charts")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create charts directory: %w", err)
	}

	path := filepath.Join(dir, "quadrant_overview.png")
	if err := p.Save(12*vg.Inch, 9*vg.Inch, path); err != nil {
		return "", fmt.Errorf("failed to save chart: %w", err)
	}

	log.I("Chart written", tracing.ArtifactPath, path, tracing.RecordsReported, plotted)
	return path, nil
}

// RenderQuadrantCharts draws one standalone scatter per quadrant next to the
// combined overview. Quadrants with nothing plottable produce no file.
func (x *Reporter) RenderQuadrantCharts(log *tracing.Logger, report *Report) ([]string, error) {
	var paths []string

	for _, label := range quadrant.Labels() {
		scatter, points, err := scatterFor(report.Grouped(label), quadrantColors[label])
		if err != nil {
			return nil, err
		}
		if points == 0 {
			continue
		}

		p := newLogPlot(label.String())
		p.Add(scatter)
		p.Legend.Add(label.String(), scatter)

		dir := filepath.Join(x.config.Artifacts.ReportsDir, "charts")
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create charts directory: %w", err)
		}

		path := filepath.Join(dir, fmt.Sprintf("quadrant_%s.png", label.Key()))
		if err := p.Save(8*vg.Inch, 6*vg.Inch, path); err != nil {
			return nil, fmt.Errorf("failed to save quadrant chart %s: %w", label.Key(), err)
		}

		log.I("Quadrant chart written", tracing.QuadrantKey, label.Key(), tracing.ArtifactPath, path, tracing.RecordsReported, points)
		paths = append(paths, path)
	}

	return paths, nil
}

func newLogPlot(title string) *plot.Plot {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Context Window (K tokens, log scale)"
	p.Y.Label.Text = "Output Price ($/M tokens, log scale)"
	p.X.Scale = plot.LogScale{}
	p.Y.Scale = plot.LogScale{}
	p.X.Tick.Marker = plot.LogTicks{Prec: -1}
	p.Y.Tick.Marker = plot.LogTicks{Prec: -1}
	p.Legend.Top = true
	return p
}

// scatterFor builds one colored series from a quadrant group, dropping
// zero-priced entries. The returned count is the number of points kept.
func scatterFor(group []Entry, c color.RGBA) (*plotter.Scatter, int, error) {
	points := plotter.XYs{}
	for _, entry := range group {
		price, _ := entry.Model.OutputPerMillion.Float64()
		if price <= 0 {
			continue
		}
		points = append(points, plotter.XY{
			X: float64(entry.Model.ContextLength) / 1000,
			Y: price,
		})
	}
	if len(points) == 0 {
		return nil, 0, nil
	}

	scatter, err := plotter.NewScatter(points)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build scatter series: %w", err)
	}
	scatter.GlyphStyle.Color = c
	scatter.GlyphStyle.Radius = vg.Points(2.5)
	scatter.GlyphStyle.Shape = draw.CircleGlyph{}

	return scatter, len(points), nil
}

// addThresholdLines draws the quadrant cross-hair at the configured cut
// points, spanning the observed data range on each axis.
func (x *Reporter) addThresholdLines(p *plot.Plot, report *Report) error {
	minX, maxX, minY, maxY := dataRange(report)
	if minX <= 0 || minY <= 0 {
		return nil
	}

	contextK := float64(report.Thresholds.Context) / 1000
	price, _ := report.Thresholds.Price.Float64()

	vertical, err := plotter.NewLine(plotter.XYs{{X: contextK, Y: minY}, {X: contextK, Y: maxY}})
	if err != nil {
		return fmt.Errorf("failed to build threshold line: %w", err)
	}
	vertical.LineStyle.Color = color.Gray{Y: 0x40}
	vertical.LineStyle.Width = vg.Points(1)
	p.Add(vertical)

	if price > 0 {
		horizontal, err := plotter.NewLine(plotter.XYs{{X: minX, Y: price}, {X: maxX, Y: price}})
		if err != nil {
			return fmt.Errorf("failed to build threshold line: %w", err)
		}
		horizontal.LineStyle.Color = color.Gray{Y: 0x40}
		horizontal.LineStyle.Width = vg.Points(1)
		p.Add(horizontal)
	}

	return nil
}

func dataRange(report *Report) (minX, maxX, minY, maxY float64) {
	for _, entry := range report.Entries {
		x := float64(entry.Model.ContextLength) / 1000
		y, _ := entry.Model.OutputPerMillion.Float64()
		if y <= 0 {
			continue
		}
		if minX == 0 || x < minX {
			minX = x
		}
		if x > maxX {
			maxX = x
		}
		if minY == 0 || y < minY {
			minY = y
		}
		if y > maxY {
			maxY = y
		}
	}
	return minX, maxX, minY, maxY
}
