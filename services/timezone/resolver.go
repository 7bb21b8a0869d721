// Package timezone normalizes the timezone identifiers attached to
// upstream calendar metadata. Those identifiers are frequently malformed
// (vendor-specific historical names, free-text descriptions), so
// normalization never fails: the worst case is a degraded fallback to
// UTC, flagged to the caller.
package timezone

import (
	"strings"
	"time"
	_ "time/tzdata" // embed the zone registry; resolution must not depend on host tzdata
)

// Resolution is the outcome of normalizing a raw zone identifier.
// Degraded is set when nothing matched and UTC was substituted.
type Resolution struct {
	Zone     string `json:"zone"`
	Degraded bool   `json:"degraded,omitempty"`
}

// legacyZones maps vendor-specific historical identifiers to canonical
// IANA ones. Keys are lowercase; lookups are case-insensitive exact
// matches.
var legacyZones = map[string]string{
	"asia/calcutta":                "Asia/Kolkata",
	"asia/saigon":                  "Asia/Ho_Chi_Minh",
	"us/eastern":                   "America/New_York",
	"us/central":                   "America/Chicago",
	"us/mountain":                  "America/Denver",
	"us/pacific":                   "America/Los_Angeles",
	"india standard time":          "Asia/Kolkata",
	"eastern standard time":        "America/New_York",
	"central standard time":        "America/Chicago",
	"mountain standard time":       "America/Denver",
	"pacific standard time":        "America/Los_Angeles",
	"gmt standard time":            "Europe/London",
	"w. europe standard time":      "Europe/Berlin",
	"central europe standard time": "Europe/Warsaw",
	"singapore standard time":      "Asia/Singapore",
	"china standard time":          "Asia/Shanghai",
	"tokyo standard time":          "Asia/Tokyo",
	"aus eastern standard time":    "Australia/Sydney",
	"gmt":                          "UTC",
	"z":                            "UTC",
}

// keywordRule maps a substring of a free-text zone description to a
// canonical zone.
type keywordRule struct {
	Keyword string
	Zone    string
}

// keywordRules are evaluated in order; the first match wins. Order
// matters: more specific phrases sit above the generic ones they contain.
var keywordRules = []keywordRule{
	{"kolkata", "Asia/Kolkata"},
	{"calcutta", "Asia/Kolkata"},
	{"india", "Asia/Kolkata"},
	{"ist", "Asia/Kolkata"},
	{"new york", "America/New_York"},
	{"eastern", "America/New_York"},
	{"chicago", "America/Chicago"},
	{"central", "America/Chicago"},
	{"denver", "America/Denver"},
	{"mountain", "America/Denver"},
	{"los angeles", "America/Los_Angeles"},
	{"pacific", "America/Los_Angeles"},
	{"london", "Europe/London"},
	{"british", "Europe/London"},
	{"berlin", "Europe/Berlin"},
	{"paris", "Europe/Paris"},
	{"singapore", "Asia/Singapore"},
	{"tokyo", "Asia/Tokyo"},
	{"japan", "Asia/Tokyo"},
	{"sydney", "Australia/Sydney"},
	{"utc", "UTC"},
	{"greenwich", "UTC"},
}

// Resolver normalizes arbitrary timezone identifiers to canonical zones.
type Resolver struct{}

// NewResolver returns a Resolver backed by the embedded zone registry.
func NewResolver() *Resolver {
	return &Resolver{}
}

// Validate reports whether zone is a canonical identifier in the
// registry. Unlike Normalize, it is strict: legacy names and free-text
// descriptions fail. The registry itself accepts deprecated link names
// (Asia/Calcutta loads fine), so anything in the legacy table is
// rejected here even though it would load.
func (r *Resolver) Validate(zone string) bool {
	zone = strings.TrimSpace(zone)
	if zone == "" || zone == "Local" {
		return false
	}
	if _, legacy := legacyZones[strings.ToLower(zone)]; legacy {
		return false
	}
	_, err := time.LoadLocation(zone)
	return err == nil
}

// Normalize resolves raw to a canonical zone. Resolution order:
// legacy-name table, exact registry match, keyword heuristics, then UTC
// with the degraded flag. The legacy table runs first because the
// registry resolves deprecated link names without renaming them; the
// table is what rewrites them to their canonical successors. It never
// fails.
func (r *Resolver) Normalize(raw string) Resolution {
	raw = strings.TrimSpace(raw)
	lower := strings.ToLower(raw)
	if canonical, ok := legacyZones[lower]; ok {
		return Resolution{Zone: canonical}
	}
	if r.Validate(raw) {
		return Resolution{Zone: raw}
	}

	for _, rule := range keywordRules {
		if strings.Contains(lower, rule.Keyword) {
			return Resolution{Zone: rule.Zone}
		}
	}

	return Resolution{Zone: "UTC", Degraded: true}
}

// Location loads the *time.Location for a canonical zone, falling back
// to UTC if the zone somehow fails to load.
func (r *Resolver) Location(zone string) *time.Location {
	loc, err := time.LoadLocation(zone)
	if err != nil {
		return time.UTC
	}
	return loc
}
