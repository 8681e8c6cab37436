package survey

import "go.uber.org/fx"

var Module = fx.Module("survey", fx.Provide(NewOrchestrator))
