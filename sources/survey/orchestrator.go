package survey

import (
	"fmt"
	"os"
	"time"
	"toolscout/sources/catalog"
	"toolscout/sources/configuration"
	"toolscout/sources/metrics"
	"toolscout/sources/persistence/entities"
	"toolscout/sources/pricing"
	"toolscout/sources/quadrant"
	"toolscout/sources/reporting"
	"toolscout/sources/repository"
	"toolscout/sources/tracing"

	"github.com/google/uuid"
)

// Orchestrator wires the four pipeline stages together: fetch, normalize,
// classify, report. Data flows strictly one way and nothing is shared
// between runs; every invocation is a fresh snapshot.
type Orchestrator struct {
	config     *configuration.Config
	catalog    *catalog.Client
	snapshots  *catalog.Snapshotter
	normalizer *pricing.Normalizer
	thresholds quadrant.Thresholds
	reporter   *reporting.Reporter
	runs       *repository.RunsRepository
	metrics    *metrics.MetricsService
}

func NewOrchestrator(
	config *configuration.Config,
	catalogClient *catalog.Client,
	snapshots *catalog.Snapshotter,
	normalizer *pricing.Normalizer,
	thresholds quadrant.Thresholds,
	reporter *reporting.Reporter,
	runs *repository.RunsRepository,
	metricsService *metrics.MetricsService,
) *Orchestrator {
	return &Orchestrator{
		config:     config,
		catalog:    catalogClient,
		snapshots:  snapshots,
		normalizer: normalizer,
		thresholds: thresholds,
		reporter:   reporter,
		runs:       runs,
		metrics:    metricsService,
	}
}

func (x *Orchestrator) Run(log *tracing.Logger) error {
	runID := uuid.New()
	log = log.With(tracing.RunId, runID.String())

	log.I("Snapshot run starting",
		tracing.CatalogUrl, x.config.Catalog.Endpoint,
		tracing.ContextThreshold, x.thresholds.Context,
		tracing.PriceThreshold, x.thresholds.Price.String(),
	)

	response, snapshotPath, err := x.acquire(log, runID)
	if err != nil {
		return err
	}

	capable := catalog.FilterToolCapable(response.Data)
	filtered := len(response.Data) - len(capable)

	models, skips := x.normalizer.NormalizeAll(log, capable)
	x.metrics.CountSkips("no_tool_support", skips.NoToolSupport)
	x.metrics.CountSkips("bad_context", skips.BadContext)
	x.metrics.CountSkips("bad_price", skips.BadPrice)

	report := tracing.ReportExecutionForR(log,
		func() *reporting.Report {
			return reporting.Build(models, x.thresholds, x.config.Analysis.IncludeFree)
		},
		func(l *tracing.Logger) { l.D("Report assembled") },
	)
	for _, label := range quadrant.Labels() {
		x.metrics.CountQuadrant(label.Key(), len(report.Grouped(label)))
	}

	x.reporter.RenderTable(os.Stdout, report)
	x.reporter.RenderCheapest(os.Stdout, report, x.config.Analysis.CheapestCount)

	if err := x.reporter.WriteCSVs(log, report); err != nil {
		return fmt.Errorf("failed to write csv artifacts: %w", err)
	}

	if _, err := tracing.ReportExecutionForRE(log,
		func() (string, error) { return x.reporter.RenderChart(log, report) },
		func(l *tracing.Logger) { l.D("Chart stage finished") },
	); err != nil {
		return fmt.Errorf("failed to render chart: %w", err)
	}

	if _, err := x.reporter.RenderQuadrantCharts(log, report); err != nil {
		return fmt.Errorf("failed to render quadrant charts: %w", err)
	}

	x.archive(log, runID, snapshotPath, len(response.Data), filtered, skips.Total(), report)

	if err := x.metrics.Push(); err != nil {
		log.W("Metrics push failed, run is unaffected", tracing.InnerError, err)
	}

	log.I("Snapshot run completed",
		tracing.RecordsFetched, len(response.Data),
		tracing.RecordsFiltered, filtered,
		tracing.RecordsSkipped, skips.Total(),
		tracing.FreeExcluded, report.FreeExcluded,
		tracing.RecordsReported, len(report.Entries),
	)

	return nil
}

// acquire either replays a stored snapshot or fetches a fresh one. A fresh
// fetch is persisted raw before anything downstream touches it.
func (x *Orchestrator) acquire(log *tracing.Logger, runID uuid.UUID) (*catalog.ModelsResponse, string, error) {
	if replay := x.config.Catalog.ReplayFile; replay != "" {
		_, response, err := x.snapshots.Load(log, replay)
		if err != nil {
			return nil, "", err
		}
		return response, replay, nil
	}

	start := time.Now()
	raw, response, err := x.catalog.Fetch(log)
	if err != nil {
		return nil, "", err
	}
	x.metrics.ObserveFetch(time.Since(start), len(response.Data))

	snapshotPath, err := x.snapshots.Write(log, runID, raw)
	if err != nil {
		return nil, "", err
	}

	return response, snapshotPath, nil
}

// archive records the run in the local archive; failures are logged and
// swallowed, the report artifacts already exist on disk.
func (x *Orchestrator) archive(log *tracing.Logger, runID uuid.UUID, snapshotPath string, fetched, filtered, skipped int, report *reporting.Report) {
	run := &entities.Run{
		ID:               runID.String(),
		Endpoint:         x.config.Catalog.Endpoint,
		SnapshotPath:     snapshotPath,
		ContextThreshold: x.thresholds.Context,
		PriceThreshold:   x.thresholds.Price,
		Fetched:          fetched,
		Filtered:         filtered,
		Skipped:          skipped,
		Classified:       len(report.Entries),
	}

	rows := make([]entities.RunModel, 0, len(report.Entries))
	for _, entry := range report.Entries {
		rows = append(rows, entities.RunModel{
			RunID:            runID.String(),
			ModelID:          entry.Model.ID,
			Name:             entry.Model.Name,
			Vendor:           entry.Model.Vendor,
			ContextLength:    entry.Model.ContextLength,
			InputPerMillion:  entry.Model.InputPerMillion,
			OutputPerMillion: entry.Model.OutputPerMillion,
			MedianPerMillion: entry.Model.MedianPerMillion,
			Quadrant:         entry.Label.Key(),
		})
	}

	if err := x.runs.SaveRun(log, run, rows); err != nil {
		log.E("Failed to archive run", tracing.InnerError, err)
	}
}
