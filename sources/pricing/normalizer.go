package pricing

import (
	"errors"
	"fmt"
	"strings"
	"toolscout/sources/catalog"
	"toolscout/sources/tracing"

	"github.com/shopspring/decimal"
)

var (
	ErrNoToolSupport  = errors.New("model does not support tool calling")
	ErrContextLength  = errors.New("context length is missing or non-positive")
	ErrPriceMissing   = errors.New("price field is missing")
	ErrPriceMalformed = errors.New("price field is not a decimal")
	ErrPriceNegative  = errors.New("price field is negative")
)

var million = decimal.NewFromInt(1_000_000)

type Normalizer struct{}

func NewNormalizer() *Normalizer {
	return &Normalizer{}
}

// Normalize converts one catalog record into its per-million-token form.
// Conversion is exact multiplication; nothing is rounded here. The tool
// capability check is repeated even though the fetch step already filters,
// an upstream guarantee is not assumed to hold.
func (x *Normalizer) Normalize(record catalog.Model) (*Model, error) {
	if !record.SupportsTools() {
		return nil, ErrNoToolSupport
	}

	if record.ContextLength <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrContextLength, record.ContextLength)
	}

	input, err := parsePerToken(record.Pricing.Prompt, "prompt")
	if err != nil {
		return nil, err
	}

	output, err := parsePerToken(record.Pricing.Completion, "completion")
	if err != nil {
		return nil, err
	}

	cacheRead := decimal.Zero
	if record.Pricing.InputCacheRead != "" {
		if cacheRead, err = parsePerToken(record.Pricing.InputCacheRead, "input_cache_read"); err != nil {
			return nil, err
		}
	}

	inputPerMillion := input.Mul(million)
	outputPerMillion := output.Mul(million)

	return &Model{
		ID:                  record.ID,
		Name:                record.Name,
		Vendor:              vendorOf(record.ID),
		ContextLength:       record.ContextLength,
		InputPerMillion:     inputPerMillion,
		OutputPerMillion:    outputPerMillion,
		MedianPerMillion:    inputPerMillion.Add(outputPerMillion).Div(decimal.NewFromInt(2)),
		CacheReadPerMillion: cacheRead.Mul(million),
	}, nil
}

// NormalizeAll runs every record through Normalize. A malformed record is
// skipped and logged, never fatal: one bad entry must not discard the rest
// of the snapshot.
func (x *Normalizer) NormalizeAll(log *tracing.Logger, records []catalog.Model) ([]*Model, *SkipReport) {
	models := make([]*Model, 0, len(records))
	skips := &SkipReport{}

	for _, record := range records {
		model, err := x.Normalize(record)
		if err != nil {
			switch {
			case errors.Is(err, ErrNoToolSupport):
				skips.NoToolSupport++
			case errors.Is(err, ErrContextLength):
				skips.BadContext++
			default:
				skips.BadPrice++
			}
			log.W("Record skipped during normalization", tracing.ModelId, record.ID, tracing.SkipReason, err.Error())
			continue
		}
		models = append(models, model)
	}

	log.I("Normalization completed", tracing.RecordsReported, len(models), tracing.RecordsSkipped, skips.Total())
	return models, skips
}

func parsePerToken(value, field string) (decimal.Decimal, error) {
	if value == "" {
		return decimal.Zero, fmt.Errorf("%w: %s", ErrPriceMissing, field)
	}

	parsed, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %s=%q", ErrPriceMalformed, field, value)
	}

	if parsed.IsNegative() {
		return decimal.Zero, fmt.Errorf("%w: %s=%s", ErrPriceNegative, field, parsed)
	}

	return parsed, nil
}

func vendorOf(id string) string {
	if vendor, _, found := strings.Cut(id, "/"); found {
		return vendor
	}
	return "unknown"
}
