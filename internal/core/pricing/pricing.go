// Package pricing holds the pure money transforms for the storefront.
// Everything is integer-cents arithmetic; floating-point currency values
// never enter the pipeline.
package pricing

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/fashionstore/cart-service/internal/core/domain"
)

var printer = message.NewPrinter(language.EuropeanSpanish)

// ApplyPercentDiscount returns the per-unit price after a percentage
// discount, floored to whole cents. A percent of zero or less leaves the
// price unchanged; a negative price is treated as 0. The result is never
// negative.
func ApplyPercentDiscount(unitPriceCents int64, percent int) int64 {
	if percent <= 0 {
		return unitPriceCents
	}
	base := unitPriceCents
	if base < 0 {
		base = 0
	}
	discounted := base * int64(100-percent) / 100
	if discounted < 0 {
		return 0
	}
	return discounted
}

// SubtotalCents sums unit price times quantity across lines.
func SubtotalCents(lines []domain.CartLine) int64 {
	var sum int64
	for _, l := range lines {
		sum += l.UnitPriceCents * int64(l.Quantity)
	}
	return sum
}

// DiscountedSubtotalCents discounts each line's unit price before
// multiplying by quantity, which is how the storefront displays totals.
func DiscountedSubtotalCents(lines []domain.CartLine, percent int) int64 {
	if percent <= 0 {
		return SubtotalCents(lines)
	}
	var sum int64
	for _, l := range lines {
		sum += ApplyPercentDiscount(l.UnitPriceCents, percent) * int64(l.Quantity)
	}
	return sum
}

// FormatCents renders integer cents as the storefront's es-ES euro string,
// e.g. 1999 -> "19,99 €". CLDR data can emit non-breaking spaces; those are
// normalized to regular spaces.
func FormatCents(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	s := printer.Sprintf("%v,%02d €", number.Decimal(cents/100), cents%100)
	return sign + strings.ReplaceAll(s, " ", " ")
}
