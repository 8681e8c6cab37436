package reporting

import (
	"fmt"
	"os"
	"path/filepath"
	"toolscout/sources/quadrant"
	"toolscout/sources/tracing"

	"github.com/gocarina/gocsv"
)

type csvRow struct {
	ModelName        string `csv:"model_name"`
	ModelID          string `csv:"model_id"`
	Vendor           string `csv:"vendor"`
	ContextLength    int    `csv:"context_length"`
	InputPerMillion  string `csv:"input_price_usd_per_m"`
	OutputPerMillion string `csv:"output_price_usd_per_m"`
	MedianPerMillion string `csv:"median_price_usd_per_m"`
	Quadrant         string `csv:"quadrant"`
}

// WriteCSVs emits the master listing plus one file per quadrant. Prices are
// rounded to the fixed display precision here; upstream values stay exact.
func (x *Reporter) WriteCSVs(log *tracing.Logger, report *Report) error {
	dir := filepath.Join(x.config.Artifacts.ReportsDir, "data")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create reports directory: %w", err)
	}

	master := make([]*csvRow, 0, len(report.Entries))
	for _, label := range quadrant.Labels() {
		group := report.Grouped(label)

		rows := make([]*csvRow, 0, len(group))
		for _, entry := range group {
			rows = append(rows, rowOf(entry))
		}
		master = append(master, rows...)

		path := filepath.Join(dir, fmt.Sprintf("quadrant_%s.csv", label.Key()))
		if err := writeCsvFile(path, rows); err != nil {
			return err
		}
		log.I("Quadrant CSV written", tracing.QuadrantKey, label.Key(), tracing.ArtifactPath, path, tracing.RecordsReported, len(rows))
	}

	path := filepath.Join(dir, "all_models_with_quadrants.csv")
	if err := writeCsvFile(path, master); err != nil {
		return err
	}
	log.I("Master CSV written", tracing.ArtifactPath, path, tracing.RecordsReported, len(master))

	return nil
}

func rowOf(entry Entry) *csvRow {
	return &csvRow{
		ModelName:        entry.Model.Name,
		ModelID:          entry.Model.ID,
		Vendor:           entry.Model.Vendor,
		ContextLength:    entry.Model.ContextLength,
		InputPerMillion:  entry.Model.InputPerMillion.StringFixed(4),
		OutputPerMillion: entry.Model.OutputPerMillion.StringFixed(4),
		MedianPerMillion: entry.Model.MedianPerMillion.StringFixed(4),
		Quadrant:         entry.Label.String(),
	}
}

func writeCsvFile(path string, rows []*csvRow) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create csv file %s: %w", path, err)
	}
	defer file.Close()

	if err := gocsv.MarshalFile(&rows, file); err != nil {
		return fmt.Errorf("failed to write csv file %s: %w", path, err)
	}

	return nil
}
