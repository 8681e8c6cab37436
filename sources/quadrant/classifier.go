package quadrant

import (
	"errors"
	"fmt"
	"toolscout/sources/configuration"
	"toolscout/sources/pricing"

	"github.com/shopspring/decimal"
)

var (
	ErrContextThreshold = errors.New("context threshold must be positive")
	ErrPriceThreshold   = errors.New("price threshold must be non-negative")
)

// Thresholds is an explicit parameter object: the two cut points are
// configuration, not data, so reclassifying never mutates stored records.
type Thresholds struct {
	Context int
	Price   decimal.Decimal
}

func NewThresholds(config *configuration.Config) (Thresholds, error) {
	t := Thresholds{
		Context: config.Analysis.ContextThreshold,
		Price:   config.Analysis.PriceThreshold,
	}
	if err := t.Validate(); err != nil {
		return Thresholds{}, err
	}
	return t, nil
}

func (t Thresholds) Validate() error {
	if t.Context <= 0 {
		return fmt.Errorf("%w: got %d", ErrContextThreshold, t.Context)
	}
	if t.Price.IsNegative() {
		return fmt.Errorf("%w: got %s", ErrPriceThreshold, t.Price)
	}
	return nil
}

// Classify labels one normalized model. Both axes resolve independently and
// ties land on the non-exceeding side: a context length exactly equal to the
// threshold is "low" context, an output price exactly equal to the threshold
// is "high" price.
func Classify(model *pricing.Model, thresholds Thresholds) Label {
	highContext := model.ContextLength > thresholds.Context
	lowPrice := model.OutputPerMillion.LessThan(thresholds.Price)

	switch {
	case lowPrice && highContext:
		return LowCostHighContext
	case !lowPrice && highContext:
		return HighCostHighContext
	case lowPrice && !highContext:
		return LowCostLowContext
	default:
		return HighCostLowContext
	}
}
