package profile

import (
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// MaxSummarySentences is the most sentence terminators a summary may contain.
const MaxSummarySentences = 5

var nonDigit = regexp.MustCompile(`\D`)

// dateLayouts are tried in order; month-only layouts resolve to the first of the month.
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-1",
	"1/2006",
	"1-2006",
	"2006",
}

// NormalizePhone reduces a US phone number to "(XXX) XXX-XXXX".
// Ten digits are accepted as-is; eleven digits are accepted when the first is a
// country code of 1. Applying it to its own output returns the same value.
func NormalizePhone(raw string) (string, error) {
	digits := nonDigit.ReplaceAllString(raw, "")
	if len(digits) == 11 && digits[0] == '1' {
		digits = digits[1:]
	}
	if len(digits) != 10 {
		return "", FieldError{
			Code:    CodeInvalidPhoneFormat,
			Message: fmt.Sprintf("phone number must be exactly 10 digits (US format), you provided %d digits", len(digits)),
		}
	}
	return fmt.Sprintf("(%s) %s-%s", digits[:3], digits[3:6], digits[6:]), nil
}

// NormalizeURL trims the value and prefixes https:// when no http(s) scheme is present.
// Empty input stays empty.
func NormalizeURL(raw string) string {
	u := strings.TrimSpace(raw)
	if u == "" {
		return ""
	}
	lower := strings.ToLower(u)
	if !strings.HasPrefix(lower, "http://") && !strings.HasPrefix(lower, "https://") {
		u = "https://" + u
	}
	return u
}

// NormalizeLinkedIn normalizes a LinkedIn URL and checks it points at linkedin.com.
func NormalizeLinkedIn(raw string) (string, error) {
	u := NormalizeURL(raw)
	if u == "" {
		return "", nil
	}
	if !strings.Contains(strings.ToLower(u), "linkedin.com") {
		return "", FieldError{
			Code:    CodeInvalidLinkedInURL,
			Message: fmt.Sprintf("LinkedIn URL must contain linkedin.com, got %q", raw),
		}
	}
	return u, nil
}

// ParseDate parses ISO dates, YYYY-MM, MM/YYYY, MM-YYYY and bare years.
// "present" and "current" report ongoing with a nil date. Empty input returns
// nil without error so callers decide whether the field is required.
func ParseDate(raw string) (*time.Time, bool, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil, false, nil
	}
	switch strings.ToLower(s) {
	case "present", "current":
		return nil, true, nil
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
			return &d, false, nil
		}
	}

	return nil, false, FieldError{
		Code:    CodeInvalidDateFormat,
		Message: fmt.Sprintf("unrecognized date %q (expected YYYY-MM-DD, MM/YYYY, MM-YYYY or YYYY)", raw),
	}
}

// NormalizeGPA converts a GPA on a 4, 10 or 100 point scale to the 4 point scale,
// rounded to two decimals. Values above 100 clamp to 4.0. Non-numeric input,
// including NaN and infinities, yields nil.
func NormalizeGPA(v any) *float64 {
	var g float64
	switch val := v.(type) {
	case nil:
		return nil
	case float64:
		g = val
	case float32:
		g = float64(val)
	case int:
		g = float64(val)
	case json.Number:
		f, err := val.Float64()
		if err != nil {
			return nil
		}
		g = f
	case string:
		s := strings.TrimSpace(val)
		if s == "" {
			return nil
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil
		}
		g = f
	default:
		return nil
	}
	if math.IsNaN(g) || math.IsInf(g, 0) {
		return nil
	}

	var out float64
	switch {
	case g <= 4.0:
		out = round2(g)
	case g <= 10.0:
		out = round2(g / 10.0 * 4.0)
	case g <= 100.0:
		out = round2(g / 100.0 * 4.0)
	default:
		out = 4.0
	}
	return &out
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}

// CountSentences counts sentence terminators ('.', '!', '?').
func CountSentences(text string) int {
	n := 0
	for _, r := range text {
		switch r {
		case '.', '!', '?':
			n++
		}
	}
	return n
}

// CheckSummary rejects summaries with more than MaxSummarySentences sentences.
func CheckSummary(summary string) error {
	if n := CountSentences(summary); n > MaxSummarySentences {
		return FieldError{
			Code:    CodeSummaryTooLong,
			Message: fmt.Sprintf("summary must be %d sentences or fewer, found %d", MaxSummarySentences, n),
		}
	}
	return nil
}
