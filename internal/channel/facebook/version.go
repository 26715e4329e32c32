package facebook

import (
	"strconv"
	"strings"
)

const (
	// DefaultGraphVersion is the newest Graph API version this integration
	// is known to work against.
	DefaultGraphVersion = "v25.0"

	// minGraphVersion is the floor below which page event creation is
	// missing fields we rely on.
	minGraphVersion = 18.0
)

// ResolveVersion canonicalizes a requested Graph API version. Version
// negotiation must never block a distribution attempt, so anything absent,
// malformed or below the floor resolves to DefaultGraphVersion instead of
// an error.
func ResolveVersion(requested string) string {
	v := strings.TrimSpace(requested)
	if v == "" {
		return DefaultGraphVersion
	}

	numeric := strings.TrimPrefix(strings.TrimPrefix(v, "v"), "V")

	n, err := strconv.ParseFloat(numeric, 64)
	if err != nil || n < minGraphVersion {
		return DefaultGraphVersion
	}

	return "v" + numeric
}
