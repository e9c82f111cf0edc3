package finance

import (
	"fmt"
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// ManwonKRW is one 만원 in KRW. User-facing amounts are rendered in 만원
// steps.
const ManwonKRW = 10_000

var krPrinter = message.NewPrinter(language.Korean)

// KRWToManwon converts a KRW amount to rounded 만원 (e.g. 29040000 -> 2904).
// Negative and non-finite values map to 0.
func KRWToManwon(v float64) int64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return int64(math.Round(v / ManwonKRW))
}

// ManwonToKRW converts 만원 back to KRW (e.g. 2904 -> 29040000). Negative
// input maps to 0.
func ManwonToKRW(manwon int64) float64 {
	if manwon < 0 {
		return 0
	}
	return float64(manwon) * ManwonKRW
}

// FormatManwon renders a KRW amount as "X만원" with grouped digits
// (e.g. 29040000 -> "2,904만원").
func FormatManwon(v float64) string {
	return krPrinter.Sprintf("%d만원", KRWToManwon(v))
}

// FormatKRW renders a KRW amount with the currency sign and grouped digits
// (e.g. 842300 -> "₩842,300").
func FormatKRW(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return "₩0"
	}
	return krPrinter.Sprintf("₩%d", int64(math.Round(v)))
}

// formatManwonRange renders a KRW range in 만원, collapsing equal bounds
// (e.g. "1~3만원", "60만원").
func formatManwonRange(minKRW, maxKRW float64) string {
	min := KRWToManwon(minKRW)
	max := KRWToManwon(maxKRW)
	if min == max {
		return krPrinter.Sprintf("%d만원", min)
	}
	return fmt.Sprintf("%s~%s", krPrinter.Sprintf("%d", min), krPrinter.Sprintf("%d만원", max))
}

// RoundToManwon rounds a KRW amount to the nearest 만원 step
// (e.g. 123456 -> 120000).
func RoundToManwon(v float64) float64 {
	return math.Round(v/ManwonKRW) * ManwonKRW
}
