package pricing

import "github.com/shopspring/decimal"

// Model is the normalized, immutable form of one catalog record. All prices
// are USD per one million tokens, kept at full precision until display time.
type Model struct {
	ID            string
	Name          string
	Vendor        string
	ContextLength int

	InputPerMillion     decimal.Decimal
	OutputPerMillion    decimal.Decimal
	MedianPerMillion    decimal.Decimal
	CacheReadPerMillion decimal.Decimal
}

// Free reports whether the model is a free tier entry, both prices zero.
func (m *Model) Free() bool {
	return m.InputPerMillion.IsZero() && m.OutputPerMillion.IsZero()
}

// SkipReport counts records dropped during normalization, keyed by reason.
type SkipReport struct {
	NoToolSupport int
	BadContext    int
	BadPrice      int
}

func (r *SkipReport) Total() int {
	return r.NoToolSupport + r.BadContext + r.BadPrice
}
