package configuration

import (
	"time"

	"github.com/shopspring/decimal"
)

type Config struct {
	Catalog   CatalogConfig   `yaml:"catalog"`
	Proxy     ProxyConfig     `yaml:"proxy"`
	Network   NetworkConfig   `yaml:"network"`
	Analysis  AnalysisConfig  `yaml:"analysis"`
	Artifacts ArtifactsConfig `yaml:"artifacts"`
	Archive   ArchiveConfig   `yaml:"archive"`
	Metrics   MetricsConfig   `yaml:"metrics"`
}

type CatalogConfig struct {
	Endpoint       string        `yaml:"endpoint"`
	Token          string        `yaml:"token"`
	MaxRetries     int           `yaml:"max_retries"`
	BackoffDelay   time.Duration `yaml:"backoff_delay"`
	RequestTimeout time.Duration `yaml:"request_timeout"`

	// ReplayFile short-circuits the network fetch with a stored raw
	// snapshot; command line only.
	ReplayFile string `yaml:"-"`
}

type ProxyConfig struct {
	Enabled bool   `yaml:"enabled"`
	Address string `yaml:"address"`
	User    string `yaml:"user"`
	Pass    string `yaml:"pass"`
}

type NetworkConfig struct {
	ClientTimeout time.Duration `yaml:"client_timeout"`
}

type AnalysisConfig struct {
	ContextThreshold int             `yaml:"context_threshold"`
	PriceThreshold   decimal.Decimal `yaml:"price_threshold"`
	IncludeFree      bool            `yaml:"include_free"`
	CheapestCount    int             `yaml:"cheapest_count"`
}

type ArtifactsConfig struct {
	SnapshotsDir string `yaml:"snapshots_dir"`
	ReportsDir   string `yaml:"reports_dir"`
}

type ArchiveConfig struct {
	Path string `yaml:"path"`
}

type MetricsConfig struct {
	PushGateway string `yaml:"push_gateway"`
	Job         string `yaml:"job"`
}
