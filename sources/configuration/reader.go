package configuration

import (
	"fmt"
	"os"
	"regexp"
	"toolscout/sources/platform"
	"toolscout/sources/tracing"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// NewYaml reads the configuration from the specified file path (default: config.yaml)
// and returns a Config struct. It supports environment variable expansion. Overrides
// coming from the command line are applied on top of the file values.
func NewYaml(log *tracing.Logger, overrides *Overrides) (*Config, error) {
	defer tracing.ProfilePoint(log, "Configuration loaded", "configuration.load")()

	filePath := os.Getenv("CONFIG_PATH")
	if filePath == "" {
		filePath = "config.yaml"
	}

	log.I("reading configuration", "path", filePath)

	config := defaults()

	content, err := os.ReadFile(filePath)
	if err == nil {
		expandedContent := expandEnv(string(content))
		if err := yaml.Unmarshal([]byte(expandedContent), config); err != nil {
			log.E("failed to parse configuration file", tracing.InnerError, err, "path", filePath)
			return nil, fmt.Errorf("failed to parse configuration file: %w", err)
		}
	} else if os.Getenv("CONFIG_PATH") != "" {
		log.E("failed to read configuration file", tracing.InnerError, err, "path", filePath)
		return nil, fmt.Errorf("failed to read configuration file: %w", err)
	} else {
		log.W("configuration file not found, using defaults", "path", filePath)
	}

	overrides.apply(config)

	if err := config.Validate(); err != nil {
		log.E("invalid configuration", tracing.InnerError, err)
		return nil, err
	}

	return config, nil
}

func defaults() *Config {
	return &Config{
		Catalog: CatalogConfig{
			Endpoint:       platform.Get("CATALOG_ENDPOINT", "https://openrouter.ai/api/v1/models"),
			Token:          platform.Get("OPENROUTER_API_KEY", ""),
			MaxRetries:     platform.GetAsInt("CATALOG_MAX_RETRIES", 3),
			BackoffDelay:   platform.GetAsDuration("CATALOG_BACKOFF_DELAY", "2s"),
			RequestTimeout: platform.GetAsDuration("CATALOG_REQUEST_TIMEOUT", "30s"),
		},
		Proxy: ProxyConfig{
			Enabled: platform.GetAsBool("PROXY_ENABLED", false),
			Address: platform.Get("PROXY_ADDRESS", "localhost:9050"),
			User:    platform.Get("PROXY_USER", ""),
			Pass:    platform.Get("PROXY_PASS", ""),
		},
		Network: NetworkConfig{
			ClientTimeout: platform.GetAsDuration("NETWORK_CLIENT_TIMEOUT", "60s"),
		},
		Analysis: AnalysisConfig{
			ContextThreshold: platform.GetAsInt("CONTEXT_THRESHOLD", 150000),
			PriceThreshold:   platform.GetDecimal("PRICE_THRESHOLD", "2.0"),
			IncludeFree:      platform.GetAsBool("INCLUDE_FREE_MODELS", false),
			CheapestCount:    platform.GetAsInt("CHEAPEST_COUNT", 10),
		},
		Artifacts: ArtifactsConfig{
			SnapshotsDir: platform.Get("SNAPSHOTS_DIR", "data/raw"),
			ReportsDir:   platform.Get("REPORTS_DIR", "analysis"),
		},
		Archive: ArchiveConfig{
			Path: platform.Get("ARCHIVE_PATH", ""),
		},
		Metrics: MetricsConfig{
			PushGateway: platform.Get("METRICS_PUSH_GATEWAY", ""),
			Job:         platform.Get("METRICS_JOB", "toolscout"),
		},
	}
}

// Overrides carries command line values that win over file and environment ones.
type Overrides struct {
	Endpoint         string
	ContextThreshold int
	PriceThreshold   string
	ReportsDir       string
	SnapshotsDir     string
	ReplayFile       string
	IncludeFree      bool
}

func (o *Overrides) apply(config *Config) {
	if o == nil {
		return
	}
	if o.Endpoint != "" {
		config.Catalog.Endpoint = o.Endpoint
	}
	if o.ContextThreshold > 0 {
		config.Analysis.ContextThreshold = o.ContextThreshold
	}
	if o.PriceThreshold != "" {
		if value, err := decimal.NewFromString(o.PriceThreshold); err == nil {
			config.Analysis.PriceThreshold = value
		}
	}
	if o.ReportsDir != "" {
		config.Artifacts.ReportsDir = o.ReportsDir
	}
	if o.SnapshotsDir != "" {
		config.Artifacts.SnapshotsDir = o.SnapshotsDir
	}
	if o.ReplayFile != "" {
		config.Catalog.ReplayFile = o.ReplayFile
	}
	if o.IncludeFree {
		config.Analysis.IncludeFree = true
	}
}

func (c *Config) Validate() error {
	if err := platform.ValidateNotEmpty(c.Catalog.Endpoint, "catalog endpoint"); err != nil {
		return err
	}
	if err := platform.ValidateOpenRouterToken(c.Catalog.Token); err != nil {
		return err
	}
	if c.Catalog.MaxRetries < 1 {
		return fmt.Errorf("catalog max_retries must be at least 1, got %d", c.Catalog.MaxRetries)
	}
	if c.Catalog.RequestTimeout <= 0 {
		return fmt.Errorf("catalog request_timeout must be positive, got %s", c.Catalog.RequestTimeout)
	}
	if c.Analysis.ContextThreshold <= 0 {
		return fmt.Errorf("context_threshold must be positive, got %d", c.Analysis.ContextThreshold)
	}
	if c.Analysis.PriceThreshold.IsNegative() {
		return fmt.Errorf("price_threshold must be non-negative, got %s", c.Analysis.PriceThreshold)
	}
	return nil
}

// expandEnv replaces ${VAR} or ${VAR:default} with environment values.
func expandEnv(content string) string {
	re := regexp.MustCompile(`\$\{([a-zA-Z_][a-zA-Z0-9_]*)(?::([^}]*))?\}`)

	return re.ReplaceAllStringFunc(content, func(match string) string {
		matches := re.FindStringSubmatch(match)
		key := matches[1]
		defaultValue := ""
		if len(matches) > 2 {
			defaultValue = matches[2]
		}

		value, exists := os.LookupEnv(key)
		if !exists {
			return defaultValue
		}
		return value
	})
}
