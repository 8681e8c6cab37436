package reporting

import "go.uber.org/fx"

var Module = fx.Module("reporting", fx.Provide(NewReporter))
