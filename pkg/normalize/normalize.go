// Package normalize reconciles loosely shaped brand records into canonical
// brands. Each canonical field has an ordered list of candidate sources;
// the first candidate holding a valid value wins and a literal default is
// substituted when none does. Normalization never fails: malformed input
// degrades to the documented defaults.
package normalize

import (
	"slices"
	"strings"
	"time"

	"github.com/agentstation/brandmap/pkg/brands"
	"github.com/agentstation/brandmap/pkg/constants"
)

// Candidate extracts one possible source value for a field.
type Candidate func(brands.RawRecord) any

// Candidate sources per canonical field, in precedence order.
var (
	BrandNameCandidates = []Candidate{
		func(r brands.RawRecord) any { return r.BrandName },
		func(r brands.RawRecord) any {
			if r.Brand == nil {
				return nil
			}
			return r.Brand.Name
		},
	}

	YearFoundedCandidates = []Candidate{
		func(r brands.RawRecord) any { return r.YearCreated },
		func(r brands.RawRecord) any { return r.YearsFounded },
		func(r brands.RawRecord) any { return r.YearFounded },
	}

	HeadquartersCandidates = []Candidate{
		func(r brands.RawRecord) any { return r.Headquarters },
		func(r brands.RawRecord) any { return r.HQAddress },
	}

	// numberOfLocations has no legacy alias.
	NumberOfLocationsCandidates = []Candidate{
		func(r brands.RawRecord) any { return r.NumberOfLocations },
	}
)

// Resolution is the outcome of normalizing one raw record.
type Resolution struct {
	Brand brands.Brand

	// Defaulted lists the fields that fell back to their literal default,
	// in canonical field order.
	Defaulted []brands.Field
}

// WasDefaulted reports whether field fell back to its default.
func (r Resolution) WasDefaulted(field brands.Field) bool {
	return slices.Contains(r.Defaulted, field)
}

// Normalizer applies the field precedence and fallback policy.
type Normalizer struct {
	now func() time.Time
}

// Option configures a Normalizer.
type Option func(*Normalizer)

// WithClock sets the clock used to derive the current year.
func WithClock(now func() time.Time) Option {
	return func(n *Normalizer) {
		if now != nil {
			n.now = now
		}
	}
}

// New creates a Normalizer. The default clock is time.Now.
func New(opts ...Option) *Normalizer {
	n := &Normalizer{now: time.Now}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Normalize derives the canonical brand for raw. The identifier and
// timestamps are left zero for the caller to assign.
func (n *Normalizer) Normalize(raw brands.RawRecord) brands.Brand {
	return n.Resolve(raw).Brand
}

// Resolve is Normalize plus a record of which fields were defaulted.
func (n *Normalizer) Resolve(raw brands.RawRecord) Resolution {
	currentYear := n.now().Year()

	var res Resolution
	var ok bool

	if res.Brand.BrandName, ok = firstString(raw, BrandNameCandidates); !ok {
		res.Brand.BrandName = constants.DefaultBrandName
		res.Defaulted = append(res.Defaulted, brands.FieldBrandName)
	}

	year, ok := ParseInt(firstDefined(raw, YearFoundedCandidates))
	if ok && year >= constants.MinYearFounded && year <= int64(currentYear) {
		res.Brand.YearFounded = int(year)
	} else {
		res.Brand.YearFounded = constants.DefaultYearFounded
		res.Defaulted = append(res.Defaulted, brands.FieldYearFounded)
	}

	if res.Brand.Headquarters, ok = firstString(raw, HeadquartersCandidates); !ok {
		res.Brand.Headquarters = constants.DefaultHeadquarters
		res.Defaulted = append(res.Defaulted, brands.FieldHeadquarters)
	}

	locations, ok := ParseInt(firstDefined(raw, NumberOfLocationsCandidates))
	if ok && locations >= constants.MinLocations {
		res.Brand.NumberOfLocations = int(locations)
	} else {
		res.Brand.NumberOfLocations = constants.DefaultNumberOfLocations
		res.Defaulted = append(res.Defaulted, brands.FieldNumberOfLocations)
	}

	return res
}

// firstString returns the first candidate that casts to a non-empty
// trimmed string.
func firstString(raw brands.RawRecord, candidates []Candidate) (string, bool) {
	for _, candidate := range candidates {
		if s, ok := castString(candidate(raw)); ok {
			return s, true
		}
	}
	return "", false
}

// firstDefined returns the first candidate value that is present and not
// null. Later candidates are never consulted once one is defined, even
// when that value turns out to be unusable.
func firstDefined(raw brands.RawRecord, candidates []Candidate) any {
	for _, candidate := range candidates {
		if v := candidate(raw); v != nil {
			return v
		}
	}
	return nil
}

// castString converts scalar values to trimmed text. Objects, arrays and
// nil do not cast.
func castString(v any) (string, bool) {
	var s string
	switch val := v.(type) {
	case nil, map[string]any, brands.Document, []any:
		return "", false
	case string:
		s = val
	default:
		s = brands.StringForm(val)
		if s == "[object Object]" {
			return "", false
		}
	}
	s = strings.TrimSpace(s)
	return s, s != ""
}
