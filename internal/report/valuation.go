package report

import "math"

// Valuation is the fair-value derivation for one ticker. All fields
// are nil when the window had no usable target price.
type Valuation struct {
	ReportEvaluation *float64
	AcceptablePrice  *float64
	Ratio            *float64
}

// Evaluate derives the report evaluation and acceptable purchase price
// from the averaged target, and the current-price-to-evaluation ratio.
func Evaluate(currentPrice *float64, stats Stats, reportFactor, bargainFactor float64) Valuation {
	var v Valuation
	if stats.AverageTarget == nil {
		return v
	}

	evaluation := *stats.AverageTarget * reportFactor
	acceptable := evaluation * bargainFactor

	v.ReportEvaluation = &evaluation
	v.AcceptablePrice = &acceptable
	v.Ratio = SafeRatio(currentPrice, v.ReportEvaluation)
	return v
}

// SafeRatio divides the current price by the report evaluation. It is
// nil, never a panic or ±Inf, when either operand is missing, the
// evaluation is zero, or either value is NaN.
func SafeRatio(currentPrice, reportEvaluation *float64) *float64 {
	if currentPrice == nil || reportEvaluation == nil {
		return nil
	}
	if *reportEvaluation == 0 || math.IsNaN(*reportEvaluation) || math.IsNaN(*currentPrice) {
		return nil
	}

	ratio := *currentPrice / *reportEvaluation
	return &ratio
}
