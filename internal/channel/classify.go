package channel

import "strings"

// Rule is one row of a channel's error-classification table. A row matches
// when the error code falls inside [CodeMin, CodeMax], or when Substr is a
// case-insensitive substring of the error message. Vendor error text is not
// contractually stable, which is why substring matching is used at all.
// Sentinel, when set, names the failure class the matched error should be
// marked with so callers can test it with errs.Is.
type Rule struct {
	CodeMin  int
	CodeMax  int
	Substr   string
	Eligible bool
	Sentinel error
}

// Classify walks the table in order and returns the first matching row's
// fallback verdict and sentinel. No match means terminal and unmarked: an
// unrecognized failure is never retried blindly.
func Classify(rules []Rule, code int, message string) (eligible bool, sentinel error) {
	lowered := strings.ToLower(message)
	for _, r := range rules {
		if r.CodeMin != 0 || r.CodeMax != 0 {
			if code >= r.CodeMin && code <= r.CodeMax {
				return r.Eligible, r.Sentinel
			}
			continue
		}
		if r.Substr != "" && strings.Contains(lowered, r.Substr) {
			return r.Eligible, r.Sentinel
		}
	}
	return false, nil
}
