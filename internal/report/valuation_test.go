package report

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func floatPtr(v float64) *float64 { return &v }

func TestEvaluate(t *testing.T) {
	stats := Stats{AverageTarget: floatPtr(100), SourceDiversity: 2, ReportCount: 3}

	v := Evaluate(floatPtr(72), stats, 0.9, 0.8)

	require.NotNil(t, v.ReportEvaluation)
	require.NotNil(t, v.AcceptablePrice)
	require.NotNil(t, v.Ratio)
	assert.InDelta(t, 90.0, *v.ReportEvaluation, 1e-9)
	assert.InDelta(t, 72.0, *v.AcceptablePrice, 1e-9)
	assert.InDelta(t, 0.8, *v.Ratio, 1e-9)
}

func TestEvaluate_NilAverage(t *testing.T) {
	v := Evaluate(floatPtr(72), Stats{ReportCount: 0}, 0.9, 0.8)

	assert.Nil(t, v.ReportEvaluation)
	assert.Nil(t, v.AcceptablePrice)
	assert.Nil(t, v.Ratio)
}

func TestEvaluate_NilCurrentPrice(t *testing.T) {
	stats := Stats{AverageTarget: floatPtr(100), ReportCount: 1}

	v := Evaluate(nil, stats, 0.9, 0.8)

	require.NotNil(t, v.ReportEvaluation)
	require.NotNil(t, v.AcceptablePrice)
	assert.Nil(t, v.Ratio)
}

func TestSafeRatio(t *testing.T) {
	tests := []struct {
		name    string
		current *float64
		eval    *float64
		want    *float64
	}{
		{"both present", floatPtr(90), floatPtr(110), floatPtr(90.0 / 110.0)},
		{"nil current", nil, floatPtr(110), nil},
		{"nil evaluation", floatPtr(90), nil, nil},
		{"zero evaluation", floatPtr(90), floatPtr(0), nil},
		{"nan evaluation", floatPtr(90), floatPtr(math.NaN()), nil},
		{"nan current", floatPtr(math.NaN()), floatPtr(110), nil},
		{"both nil", nil, nil, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SafeRatio(tt.current, tt.eval)
			if tt.want == nil {
				assert.Nil(t, got)
			} else {
				require.NotNil(t, got)
				assert.InDelta(t, *tt.want, *got, 1e-12)
			}
		})
	}
}
