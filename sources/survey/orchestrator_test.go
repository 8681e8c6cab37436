package survey

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
	"toolscout/sources/catalog"
	"toolscout/sources/configuration"
	"toolscout/sources/metrics"
	"toolscout/sources/pricing"
	"toolscout/sources/quadrant"
	"toolscout/sources/reporting"
	"toolscout/sources/repository"
	"toolscout/sources/tracing"

	"github.com/shopspring/decimal"
)

const pipelinePayload = `{
	"data": [
		{
			"id": "cheaplab/longhorn",
			"name": "CheapLab: Longhorn",
			"context_length": 2000000,
			"pricing": {"prompt": "0.0000003", "completion": "0.0000005"},
			"supported_parameters": ["tools", "temperature"]
		},
		{
			"id": "midlab/compact",
			"name": "MidLab: Compact",
			"context_length": 33000,
			"pricing": {"prompt": "0.000002", "completion": "0.000002"},
			"supported_parameters": ["tools"]
		},
		{
			"id": "brokenlab/zero-context",
			"name": "BrokenLab: Zero Context",
			"context_length": 0,
			"pricing": {"prompt": "0.000001", "completion": "0.000001"},
			"supported_parameters": ["tools"]
		},
		{
			"id": "chatlab/no-tools",
			"name": "ChatLab: No Tools",
			"context_length": 128000,
			"pricing": {"prompt": "0.000001", "completion": "0.000001"},
			"supported_parameters": ["temperature"]
		}
	]
}`

func pipelineConfig(endpoint string, base string) *configuration.Config {
	return &configuration.Config{
		Catalog: configuration.CatalogConfig{
			Endpoint:       endpoint,
			MaxRetries:     2,
			BackoffDelay:   time.Millisecond,
			RequestTimeout: time.Second,
		},
		Analysis: configuration.AnalysisConfig{
			ContextThreshold: 150000,
			PriceThreshold:   decimal.RequireFromString("2.0"),
			CheapestCount:    5,
		},
		Artifacts: configuration.ArtifactsConfig{
			SnapshotsDir: filepath.Join(base, "raw"),
			ReportsDir:   filepath.Join(base, "analysis"),
		},
	}
}

func newPipeline(t *testing.T, config *configuration.Config, httpClient *http.Client) (*Orchestrator, *tracing.Logger) {
	t.Helper()
	log := tracing.NewConsoleLogger()

	thresholds, err := quadrant.NewThresholds(config)
	if err != nil {
		t.Fatalf("thresholds: %v", err)
	}

	return NewOrchestrator(
		config,
		catalog.NewClient(httpClient, config),
		catalog.NewSnapshotter(config),
		pricing.NewNormalizer(),
		thresholds,
		reporting.NewReporter(config),
		repository.NewRunsRepository(nil),
		metrics.NewMetricsService(log, config),
	), log
}

func TestRunProducesAllArtifacts(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(pipelinePayload))
	}))
	defer server.Close()

	base := t.TempDir()
	config := pipelineConfig(server.URL, base)
	orchestrator, log := newPipeline(t, config, server.Client())

	if err := orchestrator.Run(log); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	snapshots, err := os.ReadDir(config.Artifacts.SnapshotsDir)
	if err != nil || len(snapshots) != 1 {
		t.Fatalf("expected exactly one raw snapshot, got %v (err %v)", snapshots, err)
	}

	master, err := os.ReadFile(filepath.Join(config.Artifacts.ReportsDir, "data", "all_models_with_quadrants.csv"))
	if err != nil {
		t.Fatalf("master csv missing: %v", err)
	}
	content := string(master)

	if !strings.Contains(content, "cheaplab/longhorn") || !strings.Contains(content, "Low Cost / High Context") {
		t.Error("cheap long-context model not classified into Low Cost / High Context")
	}
	// $2.00 output per million is exactly at the threshold: high price side.
	if !strings.Contains(content, "midlab/compact") || !strings.Contains(content, "High Cost / Low Context") {
		t.Error("threshold-priced compact model not classified into High Cost / Low Context")
	}
	if strings.Contains(content, "brokenlab/zero-context") {
		t.Error("invalid record leaked into the report")
	}
	if strings.Contains(content, "chatlab/no-tools") {
		t.Error("record without tool support leaked into the report")
	}

	if _, err := os.Stat(filepath.Join(config.Artifacts.ReportsDir, "charts", "quadrant_overview.png")); err != nil {
		t.Errorf("chart artifact missing: %v", err)
	}
	if _, err := os.Stat(filepath.Join(config.Artifacts.ReportsDir, "charts", "quadrant_low_cost_high_context.png")); err != nil {
		t.Errorf("per-quadrant chart artifact missing: %v", err)
	}
}

func TestRunSucceedsOnAllFreeCatalog(t *testing.T) {
	payload := `{"data": [{
		"id": "freelab/gratis",
		"name": "FreeLab: Gratis",
		"context_length": 64000,
		"pricing": {"prompt": "0", "completion": "0"},
		"supported_parameters": ["tools"]
	}]}`

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(payload))
	}))
	defer server.Close()

	base := t.TempDir()
	config := pipelineConfig(server.URL, base)
	orchestrator, log := newPipeline(t, config, server.Client())

	if err := orchestrator.Run(log); err != nil {
		t.Fatalf("Run() error = %v on an all-free catalog", err)
	}

	if _, err := os.Stat(filepath.Join(config.Artifacts.ReportsDir, "charts")); !os.IsNotExist(err) {
		t.Error("all-free run produced chart files with nothing plottable")
	}
	if _, err := os.Stat(filepath.Join(config.Artifacts.ReportsDir, "data", "all_models_with_quadrants.csv")); err != nil {
		t.Errorf("all-free run produced no master csv: %v", err)
	}
}

func TestRunReplaySkipsNetwork(t *testing.T) {
	base := t.TempDir()

	replay := filepath.Join(base, "stored.json")
	if err := os.WriteFile(replay, []byte(pipelinePayload), 0o644); err != nil {
		t.Fatalf("write replay snapshot: %v", err)
	}

	config := pipelineConfig("http://127.0.0.1:1/unreachable", base)
	config.Catalog.ReplayFile = replay

	orchestrator, log := newPipeline(t, config, &http.Client{Timeout: time.Second})

	if err := orchestrator.Run(log); err != nil {
		t.Fatalf("Run() with replay error = %v", err)
	}

	if entries, _ := os.ReadDir(config.Artifacts.SnapshotsDir); len(entries) != 0 {
		t.Error("replay run wrote a new raw snapshot")
	}

	if _, err := os.Stat(filepath.Join(config.Artifacts.ReportsDir, "data", "all_models_with_quadrants.csv")); err != nil {
		t.Errorf("replay run produced no master csv: %v", err)
	}
}

func TestRunAbortsWhenCatalogIsDown(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	base := t.TempDir()
	config := pipelineConfig(server.URL, base)
	orchestrator, log := newPipeline(t, config, server.Client())

	if err := orchestrator.Run(log); err == nil {
		t.Fatal("Run() succeeded against a failing catalog, expected error")
	}

	if _, err := os.Stat(filepath.Join(config.Artifacts.ReportsDir, "data")); !os.IsNotExist(err) {
		t.Error("failed run left partial report artifacts")
	}
}
