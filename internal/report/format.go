package report

import (
	"fmt"
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Tier classifies how far the current price sits below the report
// evaluation.
type Tier string

const (
	TierNone   Tier = ""
	TierStrong Tier = "strong" // ratio <= 0.8
	TierMedium Tier = "medium" // 0.8 < ratio < 0.9
)

// Highlight colors per tier.
const (
	colorStrong = "#6E0080"
	colorMedium = "#00803E"
)

// pricePrinter renders integers with thousands separators.
var pricePrinter = message.NewPrinter(language.English)

// FormatPrice renders a price-like value rounded to the nearest whole
// number with thousands separators. Missing and NaN values render as
// the empty string.
func FormatPrice(v *float64) string {
	if v == nil || math.IsNaN(*v) {
		return ""
	}
	return pricePrinter.Sprintf("%d", int64(math.Round(*v)))
}

// FormatRatio renders a ratio with three decimal places, or the empty
// string when missing or NaN.
func FormatRatio(v *float64) string {
	if v == nil || math.IsNaN(*v) {
		return ""
	}
	return fmt.Sprintf("%.3f", *v)
}

// TierForRatio maps a ratio onto a highlight tier. The strong tier is
// inclusive at 0.8; the medium tier is open on both ends, so exactly
// 0.9 gets no highlight.
func TierForRatio(ratio *float64) Tier {
	if ratio == nil || math.IsNaN(*ratio) {
		return TierNone
	}

	switch {
	case *ratio <= 0.8:
		return TierStrong
	case *ratio < 0.9:
		return TierMedium
	}
	return TierNone
}

// Color returns the fixed highlight color for the tier, empty for none.
func (t Tier) Color() string {
	switch t {
	case TierStrong:
		return colorStrong
	case TierMedium:
		return colorMedium
	}
	return ""
}
