package quadrant

import (
	"errors"
	"testing"
	"toolscout/sources/pricing"

	"github.com/shopspring/decimal"
)

func defaultThresholds() Thresholds {
	return Thresholds{Context: 150000, Price: decimal.RequireFromString("2.0")}
}

func model(context int, outputPerMillion string) *pricing.Model {
	output := decimal.RequireFromString(outputPerMillion)
	return &pricing.Model{
		ID:               "vendor/test",
		ContextLength:    context,
		OutputPerMillion: output,
		MedianPerMillion: output,
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		context  int
		output   string
		expected Label
	}{
		{
			name:     "Cheap long context",
			context:  2000000,
			output:   "0.5",
			expected: LowCostHighContext,
		},
		{
			name:     "Cheap short context",
			context:  33000,
			output:   "0.002",
			expected: LowCostLowContext,
		},
		{
			name:     "Expensive long context",
			context:  1000000,
			output:   "15",
			expected: HighCostHighContext,
		},
		{
			name:     "Expensive short context",
			context:  8192,
			output:   "75",
			expected: HighCostLowContext,
		},
		{
			name:     "Context exactly at threshold is low",
			context:  150000,
			output:   "0.5",
			expected: LowCostLowContext,
		},
		{
			name:     "Context one above threshold is high",
			context:  150001,
			output:   "0.5",
			expected: LowCostHighContext,
		},
		{
			name:     "Price exactly at threshold is high",
			context:  2000000,
			output:   "2.0",
			expected: HighCostHighContext,
		},
		{
			name:     "Price just under threshold is low",
			context:  2000000,
			output:   "1.9999",
			expected: LowCostHighContext,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(model(tt.context, tt.output), defaultThresholds())
			if got != tt.expected {
				t.Errorf("Classify() = %s, expected %s", got, tt.expected)
			}
		})
	}
}

func TestClassifyIsDeterministic(t *testing.T) {
	m := model(150000, "2.0")
	thresholds := defaultThresholds()

	first := Classify(m, thresholds)
	for i := 0; i < 100; i++ {
		if got := Classify(m, thresholds); got != first {
			t.Fatalf("Classify() = %s on repeat %d, expected %s", got, i, first)
		}
	}
}

func TestClassifyRespectsThresholdObject(t *testing.T) {
	m := model(100000, "1.0")

	wide := Thresholds{Context: 50000, Price: decimal.RequireFromString("5.0")}
	if got := Classify(m, wide); got != LowCostHighContext {
		t.Errorf("Classify() with wide thresholds = %s, expected %s", got, LowCostHighContext)
	}

	narrow := Thresholds{Context: 200000, Price: decimal.RequireFromString("0.5")}
	if got := Classify(m, narrow); got != HighCostLowContext {
		t.Errorf("Classify() with narrow thresholds = %s, expected %s", got, HighCostLowContext)
	}
}

func TestThresholdsValidate(t *testing.T) {
	tests := []struct {
		name    string
		t       Thresholds
		wantErr error
	}{
		{
			name: "Valid defaults",
			t:    defaultThresholds(),
		},
		{
			name:    "Zero context threshold",
			t:       Thresholds{Context: 0, Price: decimal.RequireFromString("2.0")},
			wantErr: ErrContextThreshold,
		},
		{
			name:    "Negative price threshold",
			t:       Thresholds{Context: 150000, Price: decimal.RequireFromString("-1")},
			wantErr: ErrPriceThreshold,
		},
		{
			name: "Zero price threshold is allowed",
			t:    Thresholds{Context: 150000, Price: decimal.Zero},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.t.Validate()
			if tt.wantErr == nil && err != nil {
				t.Errorf("Validate() error = %v, expected nil", err)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() error = %v, expected %v", err, tt.wantErr)
			}
		})
	}
}

func TestLabelKeys(t *testing.T) {
	seen := map[string]bool{}
	for _, label := range Labels() {
		key := label.Key()
		if key == "unknown" {
			t.Errorf("label %d has no key", label)
		}
		if seen[key] {
			t.Errorf("duplicate label key %q", key)
		}
		seen[key] = true
	}
	if len(seen) != 4 {
		t.Errorf("Labels() produced %d distinct keys, expected 4", len(seen))
	}
}
