package quadrant

// Label is one of the four price/context buckets. It carries no ranking, a
// quadrant is a name, not a score.
type Label int

const (
	LowCostHighContext Label = iota
	HighCostHighContext
	LowCostLowContext
	HighCostLowContext
)

func (l Label) String() string {
	switch l {
	case LowCostHighContext:
		return "Low Cost / High Context"
	case HighCostHighContext:
		return "High Cost / High Context"
	case LowCostLowContext:
		return "Low Cost / Low Context"
	case HighCostLowContext:
		return "High Cost / Low Context"
	}
	return "Unknown"
}

// Key is the file-name-safe form of the label, used for CSV artifacts.
func (l Label) Key() string {
	switch l {
	case LowCostHighContext:
		return "low_cost_high_context"
	case HighCostHighContext:
		return "high_cost_high_context"
	case LowCostLowContext:
		return "low_cost_low_context"
	case HighCostLowContext:
		return "high_cost_low_context"
	}
	return "unknown"
}

// Labels returns every quadrant in the fixed reporting order.
func Labels() []Label {
	return []Label{LowCostHighContext, HighCostHighContext, LowCostLowContext, HighCostLowContext}
}
