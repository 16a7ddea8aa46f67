package normalize

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	// Comma-grouped numeric values ("1,270", "500000")
	numberGroupRegex = regexp.MustCompile(`\d{1,3}(?:,\d{3})+|\d+`)
	yearRegex        = regexp.MustCompile(`\b(19|20)\d{2}\b`)
	annualRateRegex  = regexp.MustCompile(`(?i)(per year|mỗi năm|/year|năm)`)

	titleCaser = cases.Title(language.Und)
)

// Marques whose first name token is only half of the brand ("mercedes benz",
// "alfa romeo"). The first two tokens of the car name belong to the brand.
var twoTokenMarques = map[string]bool{
	"mercedes": true,
	"alfa":     true,
}

// Fold normalizes a name into a lookup key: lowercase, accents stripped,
// whitespace collapsed. Used for cache keys and special-case table lookups.
func Fold(s string) string {
	s = strings.ToLower(s)

	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	s, _, _ = transform.String(t, s)

	return strings.Join(strings.Fields(s), " ")
}

// CleanCarName collapses consecutive duplicate tokens ("Ferrari Ferrari
// Roma") that bilingual model output produces when brand and model overlap.
func CleanCarName(name string) string {
	parts := strings.Fields(name)
	var cleaned []string
	for _, part := range parts {
		if len(cleaned) == 0 || !strings.EqualFold(part, cleaned[len(cleaned)-1]) {
			cleaned = append(cleaned, part)
		}
	}
	return strings.Join(cleaned, " ")
}

// JoinMarque hyphenates a two-token marque ("Mercedes Benz") into its
// canonical form. Any other brand text is returned unchanged.
func JoinMarque(brand string) string {
	parts := strings.Fields(brand)
	if len(parts) < 2 || !twoTokenMarques[strings.ToLower(parts[0])] {
		return brand
	}
	joined := titleCaser.String(strings.ToLower(parts[0] + "-" + parts[1]))
	return strings.Join(append([]string{joined}, parts[2:]...), " ")
}

// BrandFromCarName derives the brand from the leading tokens of a car name,
// joining two-token marques with a hyphen before titlecasing.
func BrandFromCarName(carName string) string {
	parts := strings.Fields(carName)
	if len(parts) == 0 {
		return ""
	}

	brand := parts[0]
	if len(parts) > 1 && twoTokenMarques[strings.ToLower(parts[0])] {
		brand = parts[0] + "-" + parts[1]
	}

	return titleCaser.String(strings.ToLower(brand))
}

// AverageYear collapses a year range to a single year. A hyphenated range
// yields the first 4-digit year found; anything else is returned unchanged.
func AverageYear(text string) string {
	if !strings.Contains(text, "-") {
		return text
	}
	if year := yearRegex.FindString(text); year != "" {
		return year
	}
	return text
}

// stripCurrency removes currency markers and unifies dash variants so the
// numeric groups can be extracted.
func stripCurrency(text string) string {
	replacer := strings.NewReplacer(
		"$", "",
		"USD", "",
		"usd", "",
		"–", "-", // en dash
		"—", "-", // em dash
	)
	return strings.TrimSpace(replacer.Replace(text))
}

// extractNumbers returns all parseable integers in the text, commas stripped.
func extractNumbers(text string) []int64 {
	var nums []int64
	for _, group := range numberGroupRegex.FindAllString(text, -1) {
		n, err := strconv.ParseInt(strings.ReplaceAll(group, ",", ""), 10, 64)
		if err != nil {
			continue
		}
		nums = append(nums, n)
	}
	return nums
}

// meanOf rounds the arithmetic mean half away from zero.
func meanOf(nums []int64) int64 {
	var sum int64
	for _, n := range nums {
		sum += n
	}
	return int64(math.Round(float64(sum) / float64(len(nums))))
}

// groupThousands formats n with the given thousands separator.
func groupThousands(n int64, sep string) string {
	s := strconv.FormatInt(n, 10)
	if len(s) <= 3 {
		return s
	}

	var b strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteString(sep)
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}

// AveragePrice collapses a price range to a single "$x,xxx" value. Two or
// more numbers average to their mean, a single number is echoed back
// formatted, and non-numeric input is returned unchanged.
func AveragePrice(text string) string {
	nums := extractNumbers(stripCurrency(text))
	switch {
	case len(nums) >= 2:
		return "$" + groupThousands(meanOf(nums), ",")
	case len(nums) == 1:
		return "$" + groupThousands(nums[0], ",")
	default:
		return text
	}
}

// FormatPrice applies the same numeric-mean logic as AveragePrice but
// renders "$ x xxx" with a space separator, matching the display consumer.
func FormatPrice(text string) string {
	nums := extractNumbers(stripCurrency(text))
	switch {
	case len(nums) >= 2:
		return "$ " + groupThousands(meanOf(nums), " ")
	case len(nums) == 1:
		return "$ " + groupThousands(nums[0], " ")
	default:
		return text
	}
}

// SimplifyNumberProduced reduces a production-count blurb to its first number
// plus a localized units token. Text without a number is returned unchanged.
func SimplifyNumberProduced(text, lang string) string {
	group := numberGroupRegex.FindString(text)
	if group == "" {
		return text
	}
	number := strings.ReplaceAll(group, ",", "")

	annual := annualRateRegex.MatchString(text)
	if lang == "vi" {
		if annual {
			return number + " xe/năm"
		}
		return number + " xe"
	}
	if annual {
		return number + " units/year"
	}
	return number + " units"
}

// FirstNumber extracts the first integer from the text, commas stripped.
// Returns 0, false when no number is present.
func FirstNumber(text string) (int64, bool) {
	group := numberGroupRegex.FindString(text)
	if group == "" {
		return 0, false
	}
	n, err := strconv.ParseInt(strings.ReplaceAll(group, ",", ""), 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// MaxProductionCount returns the largest integer in the text that does not
// look like a calendar year. Search snippets about production runs routinely
// mix counts with model years.
func MaxProductionCount(text string) (int64, bool) {
	var best int64
	found := false
	for _, n := range extractNumbers(text) {
		if n >= 1900 && n <= 2100 {
			continue
		}
		if !found || n > best {
			best = n
			found = true
		}
	}
	return best, found
}

// FormatGrouped renders n with comma thousands separators.
func FormatGrouped(n int64) string {
	return groupThousands(n, ",")
}
