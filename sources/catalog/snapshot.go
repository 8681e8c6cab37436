package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
	"toolscout/sources/configuration"
	"toolscout/sources/tracing"

	"github.com/google/uuid"
)

type Snapshotter struct {
	config *configuration.Config
}

func NewSnapshotter(config *configuration.Config) *Snapshotter {
	return &Snapshotter{config: config}
}

// Write persists the raw catalog payload for the given run before any
// transformation, so later stages can be replayed without touching the network.
func (x *Snapshotter) Write(log *tracing.Logger, runID uuid.UUID, payload []byte) (string, error) {
	dir := x.config.Artifacts.SnapshotsDir
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create snapshots directory: %w", err)
	}

	name := fmt.Sprintf("models-%s-%s.json", time.Now().UTC().Format("20060102-150405"), shortID(runID))
	path := filepath.Join(dir, name)

	if err := os.WriteFile(path, payload, 0o644); err != nil {
		return "", fmt.Errorf("failed to write raw snapshot: %w", err)
	}

	log.I("Raw snapshot persisted", tracing.RunId, runID.String(), tracing.SnapshotPath, path)
	return path, nil
}

// Load reads a previously persisted snapshot for an offline replay run.
func (x *Snapshotter) Load(log *tracing.Logger, path string) ([]byte, *ModelsResponse, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read snapshot: %w", err)
	}

	models := &ModelsResponse{}
	if err := json.Unmarshal(raw, models); err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrCatalogPayload, err)
	}

	log.I("Snapshot loaded for replay", tracing.SnapshotPath, path, tracing.RecordsFetched, len(models.Data))
	return raw, models, nil
}

func shortID(id uuid.UUID) string {
	return id.String()[:8]
}
