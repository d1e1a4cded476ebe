package gridtab

import (
	"math"
	"net/netip"
	"regexp"
	"strconv"
	"strings"
)

// Classifier maps a raw value to a [TypeTag] by ordered pattern matching.
// All patterns are compiled at construction and never change, so a single
// instance is safe to share across goroutines.
type Classifier struct {
	url        *regexp.Regexp
	email      *regexp.Regexp
	boolWord   *regexp.Regexp
	currency   *regexp.Regexp
	dates      []*regexp.Regexp
	percentage *regexp.Regexp
	number     *regexp.Regexp
	phone      *regexp.Regexp
	phoneSep   *strings.Replacer
}

// NewClassifier builds a classifier with the full pattern set compiled.
// Most callers can use the package-level [Classify] instead.
func NewClassifier() *Classifier {
	return &Classifier{
		url:      regexp.MustCompile(`(?i)^https?://[^\s/]+(?:/\S*)?$`),
		email:    regexp.MustCompile(`^[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}$`),
		boolWord: regexp.MustCompile(`(?i)^(?:true|false|yes|no|on|off|1|0|enabled|disabled|active|inactive)$`),
		currency: regexp.MustCompile(`^[$€¥]\s?(?:\d{1,3}(?:,\d{3})+|\d+)(?:\.\d+)?$` +
			`|^(?:\d{1,3}(?:,\d{3})+|\d+)(?:\.\d+)?\s?[$€¥]$`),
		dates: []*regexp.Regexp{
			regexp.MustCompile(`^\d{4}-\d{1,2}-\d{1,2}(?:[T ]\d{2}:\d{2}(?::\d{2})?(?:\.\d+)?(?:Z|[+\-]\d{2}:?\d{2})?)?$`),
			regexp.MustCompile(`^\d{4}/\d{1,2}/\d{1,2}$`),
			regexp.MustCompile(`^\d{1,2}/\d{1,2}/\d{4}$`),
			regexp.MustCompile(`^\d{1,2}-\d{1,2}-\d{4}$`),
		},
		percentage: regexp.MustCompile(`^\d+(?:\.\d+)?%$`),
		number:     regexp.MustCompile(`^-?(?:\d{1,3}(?:,\d{3})+|\d+)(?:\.\d+)?$`),
		phone:      regexp.MustCompile(`^\+?\d{7,15}$`),
		phoneSep:   strings.NewReplacer(" ", "", "-", "", "(", "", ")", "", ".", ""),
	}
}

// std is the shared immutable classifier used by [Classify] and by
// components constructed without an explicit one.
var std = NewClassifier()

// Classify maps a raw value to a [TypeTag] using the shared classifier.
func Classify(v any) TypeTag { return std.Classify(v) }

// Classify returns the semantic type of v. The first matching rule wins;
// the rule order prevents ambiguous overlap (currency and date before the
// generic number pattern, IP before the loose phone heuristic).
func (c *Classifier) Classify(v any) TypeTag {
	switch val := v.(type) {
	case nil:
		return TypeNull
	case bool:
		return TypeBoolean
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return TypeInteger
	case float32:
		return floatTag(float64(val))
	case float64:
		return floatTag(val)
	case string:
		return c.classifyString(val)
	case map[string]any, []any:
		return TypeObject
	default:
		return TypeUnknown
	}
}

// floatTag distinguishes whole JSON numbers from fractional ones. Through
// encoding/json every number arrives as float64; integral values inside the
// float64-exact integer range keep the integer tag.
func floatTag(f float64) TypeTag {
	if f == math.Trunc(f) && math.Abs(f) < 1<<53 {
		return TypeInteger
	}
	return TypeFloat
}

func (c *Classifier) classifyString(s string) TypeTag {
	s = strings.TrimSpace(s)
	if s == "" {
		return TypeString
	}
	switch {
	case c.url.MatchString(s):
		return TypeURL
	case c.email.MatchString(s):
		return TypeEmail
	case isIP(s):
		return TypeIP
	case c.boolWord.MatchString(s):
		return TypeBoolean
	case c.currency.MatchString(s):
		return TypeCurrency
	case c.matchDate(s):
		return TypeDate
	case c.percentage.MatchString(s):
		return TypePercentage
	case c.number.MatchString(s):
		return TypeNumber
	case c.phone.MatchString(c.phoneSep.Replace(s)):
		return TypePhone
	default:
		return TypeString
	}
}

func (c *Classifier) matchDate(s string) bool {
	for _, re := range c.dates {
		if re.MatchString(s) {
			return true
		}
	}
	return false
}

// isIP accepts IPv4 and IPv6 literals. netip is strict about octet ranges
// and leading zeros, which keeps dotted phone-like strings out.
func isIP(s string) bool {
	addr, err := netip.ParseAddr(s)
	return err == nil && addr.IsValid()
}

// numericValue strips grouping separators and parses s as a float.
func numericValue(s string) (float64, error) {
	return strconv.ParseFloat(strings.ReplaceAll(strings.TrimSpace(s), ",", ""), 64)
}
