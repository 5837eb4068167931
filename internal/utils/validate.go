package utils

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/bazaar-dev/bazaar/internal/apperr"
	"github.com/shopspring/decimal"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// PriceOutOfRange is reported for any price that does not fit decimal(5,2).
const PriceOutOfRange = "The Price Must Be Between 0 to 9999.99"

var (
	maxPrice = decimal.RequireFromString("9999.99")

	slugPattern    = regexp.MustCompile(`^[-a-zA-Z0-9_]+$`)
	slugStrip      = regexp.MustCompile(`[^\w\s-]`)
	slugSeparators = regexp.MustCompile(`[-\s]+`)
)

// ValidatePrice checks that price fits five digits with two decimals and is
// not negative.
func ValidatePrice(field string, price decimal.Decimal) error {
	if price.IsNegative() || price.GreaterThan(maxPrice) {
		return apperr.Invalid(field, PriceOutOfRange)
	}

	if !price.Equal(price.Truncate(2)) {
		return apperr.Invalid(field, "Ensure that there are no more than 2 decimal places.")
	}

	return nil
}

// IsSlug reports whether s consists of letters, numbers, underscores or hyphens.
func IsSlug(s string) bool {
	return slugPattern.MatchString(s)
}

// Slugify turns a display name into a URL slug: accents are folded to ASCII,
// anything but word characters, spaces and hyphens is dropped, and runs of
// spaces or hyphens collapse to a single hyphen.
func Slugify(s string) string {
	t := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}

	ascii := strings.Map(func(r rune) rune {
		if r > unicode.MaxASCII {
			return -1
		}
		return r
	}, folded)

	ascii = slugStrip.ReplaceAllString(strings.ToLower(ascii), "")
	ascii = slugSeparators.ReplaceAllString(strings.TrimSpace(ascii), "-")

	return strings.Trim(ascii, "-_")
}
