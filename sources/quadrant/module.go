package quadrant

import "go.uber.org/fx"

var Module = fx.Module("quadrant", fx.Provide(NewThresholds))
