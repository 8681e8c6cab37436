package reporting

import (
	"toolscout/sources/configuration"
)

type Reporter struct {
	config *configuration.Config
}

func NewReporter(config *configuration.Config) *Reporter {
	return &Reporter{config: config}
}
