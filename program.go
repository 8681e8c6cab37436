package main

import (
	"context"
	"time"
	"toolscout/sources/catalog"
	"toolscout/sources/configuration"
	"toolscout/sources/metrics"
	"toolscout/sources/network"
	"toolscout/sources/persistence"
	"toolscout/sources/platform"
	"toolscout/sources/pricing"
	"toolscout/sources/quadrant"
	"toolscout/sources/reporting"
	"toolscout/sources/repository"
	"toolscout/sources/survey"
	"toolscout/sources/tracing"

	"github.com/alecthomas/kong"
	"go.uber.org/fx"
)

var (
	version   = "0.0.0"
	buildTime = "1970-01-01"
)

var cli struct {
	Endpoint         string `help:"Model catalog endpoint URL." placeholder:"URL"`
	ContextThreshold int    `help:"Context window cut point in tokens." placeholder:"TOKENS"`
	PriceThreshold   string `help:"Output price cut point in USD per million tokens." placeholder:"USD"`
	ReportsDir       string `help:"Directory for report artifacts." placeholder:"DIR"`
	SnapshotsDir     string `help:"Directory for raw snapshots." placeholder:"DIR"`
	Replay           string `help:"Replay a stored raw snapshot instead of fetching." placeholder:"FILE"`
	IncludeFree      bool   `help:"Keep free tier models in the quadrant report."`
}

func main() {
	kong.Parse(&cli,
		kong.Name("toolscout"),
		kong.Description("Snapshot the model catalog and map tool-calling models into price/context quadrants."),
		kong.Vars{"version": version},
	)

	platform.SetAppManifest(version, buildTime, time.Now())

	overrides := &configuration.Overrides{
		Endpoint:         cli.Endpoint,
		ContextThreshold: cli.ContextThreshold,
		PriceThreshold:   cli.PriceThreshold,
		ReportsDir:       cli.ReportsDir,
		SnapshotsDir:     cli.SnapshotsDir,
		ReplayFile:       cli.Replay,
		IncludeFree:      cli.IncludeFree,
	}

	fx.New(
		fx.Supply(overrides),

		tracing.Module,
		configuration.Module,
		network.Module,
		catalog.Module,
		pricing.Module,
		quadrant.Module,
		reporting.Module,
		persistence.Module,
		repository.Module,
		metrics.Module,
		survey.Module,

		fx.Invoke(func(lc fx.Lifecycle, shutdowner fx.Shutdowner, orchestrator *survey.Orchestrator, log *tracing.Logger) {
			lc.Append(fx.Hook{
				OnStart: func(ctx context.Context) error {
					log.I("Toolscout started", "version", version, "build_time", buildTime)

					go func() {
						if err := orchestrator.Run(log); err != nil {
							log.E("Snapshot run failed", tracing.InnerError, err)
							_ = shutdowner.Shutdown(fx.ExitCode(1))
							return
						}
						_ = shutdowner.Shutdown()
					}()

					return nil
				},
				OnStop: func(ctx context.Context) error {
					log.I("Toolscout stopped", "version", version, "build_time", buildTime)
					return nil
				},
			})
		}),
	).Run()
}
