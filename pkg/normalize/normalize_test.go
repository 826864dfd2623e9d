package normalize

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/brandmap/pkg/brands"
)

var fixedNow = time.Date(2026, time.October, 19, 9, 30, 0, 0, time.UTC)

func newTestNormalizer() *Normalizer {
	return New(WithClock(func() time.Time { return fixedNow }))
}

func normalizeDoc(doc brands.Document) Resolution {
	return newTestNormalizer().Resolve(brands.RawRecordFromDocument(doc))
}

func TestNormalize_AlreadyCanonicalIsUnchanged(t *testing.T) {
	doc := brands.Document{
		"brandName":         "Acme",
		"yearFounded":       json.Number("1950"),
		"headquarters":      "Springfield, USA",
		"numberOfLocations": json.Number("12"),
	}

	res := normalizeDoc(doc)
	assert.Equal(t, brands.Brand{
		BrandName:         "Acme",
		YearFounded:       1950,
		Headquarters:      "Springfield, USA",
		NumberOfLocations: 12,
	}, res.Brand)
	assert.Empty(t, res.Defaulted)
}

func TestNormalize_EmptyRecordYieldsDefaults(t *testing.T) {
	res := normalizeDoc(brands.Document{})

	assert.Equal(t, brands.Brand{
		BrandName:         "Unknown Brand",
		YearFounded:       1600,
		Headquarters:      "Unknown HQ Address",
		NumberOfLocations: 1,
	}, res.Brand)
	assert.Equal(t, brands.CanonicalFields, res.Defaulted)
	assert.NoError(t, res.Brand.Validate(fixedNow))
}

func TestNormalize_YearPrecedence(t *testing.T) {
	tests := []struct {
		name string
		doc  brands.Document
		want int
	}{
		{
			name: "yearCreated beats yearsFounded",
			doc:  brands.Document{"yearCreated": 1999, "yearsFounded": 1888},
			want: 1999,
		},
		{
			name: "yearsFounded beats yearFounded",
			doc:  brands.Document{"yearsFounded": "1888", "yearFounded": 1777},
			want: 1888,
		},
		{
			name: "yearFounded used alone",
			doc:  brands.Document{"yearFounded": 1777},
			want: 1777,
		},
		{
			name: "null alias skipped",
			doc:  brands.Document{"yearCreated": nil, "yearFounded": 1900},
			want: 1900,
		},
		{
			name: "leading digits parsed",
			doc:  brands.Document{"yearFounded": "1850abc"},
			want: 1850,
		},
		{
			name: "whitespace and sign tolerated",
			doc:  brands.Document{"yearFounded": "  +1901"},
			want: 1901,
		},
		{
			name: "fractional number truncated",
			doc:  brands.Document{"yearFounded": 1850.9},
			want: 1850,
		},
		{
			name: "unparseable first alias is not skipped",
			doc:  brands.Document{"yearCreated": "soon", "yearFounded": 1910},
			want: 1600,
		},
		{
			name: "out of range first alias is not skipped",
			doc:  brands.Document{"yearCreated": 1200, "yearsFounded": 1950},
			want: 1600,
		},
		{
			name: "empty string counts as defined",
			doc:  brands.Document{"yearsFounded": "", "yearFounded": 1920},
			want: 1600,
		},
		{
			name: "all aliases absent",
			doc:  brands.Document{"brandName": "Acme"},
			want: 1600,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, normalizeDoc(tt.doc).Brand.YearFounded)
		})
	}
}

func TestResolve_InvalidFirstYearAliasIsDefaulted(t *testing.T) {
	res := normalizeDoc(brands.Document{"yearCreated": 1200, "yearsFounded": 1950})
	assert.Equal(t, 1600, res.Brand.YearFounded)
	assert.True(t, res.WasDefaulted(brands.FieldYearFounded))
}

func TestNormalize_YearBoundaries(t *testing.T) {
	tests := []struct {
		in        any
		want      int
		defaulted bool
	}{
		{in: 1600, want: 1600},
		{in: 1599, want: 1600, defaulted: true},
		{in: 2026, want: 2026},
		{in: 2027, want: 1600, defaulted: true},
		{in: "abc", want: 1600, defaulted: true},
		{in: true, want: 1600, defaulted: true},
		{in: map[string]any{"year": 1900}, want: 1600, defaulted: true},
	}

	for _, tt := range tests {
		res := normalizeDoc(brands.Document{"yearFounded": tt.in})
		assert.Equal(t, tt.want, res.Brand.YearFounded, "input %#v", tt.in)
		assert.Equal(t, tt.defaulted, res.WasDefaulted(brands.FieldYearFounded), "input %#v", tt.in)
	}
}

func TestNormalize_CurrentYearFollowsClock(t *testing.T) {
	doc := brands.Document{"yearFounded": 2026}

	earlier := New(WithClock(func() time.Time { return fixedNow.AddDate(-1, 0, 0) }))
	assert.Equal(t, 1600, earlier.Normalize(brands.RawRecordFromDocument(doc)).YearFounded)
	assert.Equal(t, 2026, newTestNormalizer().Normalize(brands.RawRecordFromDocument(doc)).YearFounded)
}

func TestNormalize_NumberOfLocations(t *testing.T) {
	tests := []struct {
		in   any
		want int
	}{
		{in: "0", want: 1},
		{in: "1", want: 1},
		{in: "-5", want: 1},
		{in: 0, want: 1},
		{in: json.Number("250"), want: 250},
		{in: "42 stores", want: 42},
		{in: nil, want: 1},
		{in: "", want: 1},
		{in: "99999999999999999999999", want: 1},
	}

	for _, tt := range tests {
		res := normalizeDoc(brands.Document{"numberOfLocations": tt.in})
		assert.Equal(t, tt.want, res.Brand.NumberOfLocations, "input %#v", tt.in)
	}
}

func TestNormalize_LocationsHaveNoAlias(t *testing.T) {
	res := normalizeDoc(brands.Document{"locations": 40, "numberOfLocation": 30})
	assert.Equal(t, 1, res.Brand.NumberOfLocations)
	assert.True(t, res.WasDefaulted(brands.FieldNumberOfLocations))
}

func TestNormalize_BrandName(t *testing.T) {
	tests := []struct {
		name string
		doc  brands.Document
		want string
	}{
		{name: "top level", doc: brands.Document{"brandName": "Acme"}, want: "Acme"},
		{name: "nested fallback", doc: brands.Document{"brand": map[string]any{"name": "Acme"}}, want: "Acme"},
		{name: "top level wins", doc: brands.Document{"brandName": "Top", "brand": map[string]any{"name": "Nested"}}, want: "Top"},
		{name: "empty top level skipped", doc: brands.Document{"brandName": "", "brand": map[string]any{"name": "Nested"}}, want: "Nested"},
		{name: "trimmed", doc: brands.Document{"brandName": "  Acme  "}, want: "Acme"},
		{name: "numeric name cast", doc: brands.Document{"brandName": json.Number("7")}, want: "7"},
		{name: "nested without name", doc: brands.Document{"brand": map[string]any{}}, want: "Unknown Brand"},
		{name: "brand not an object", doc: brands.Document{"brand": "Acme"}, want: "Unknown Brand"},
		{name: "both absent", doc: brands.Document{}, want: "Unknown Brand"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, normalizeDoc(tt.doc).Brand.BrandName)
		})
	}
}

func TestNormalize_Headquarters(t *testing.T) {
	assert.Equal(t, "Paris", normalizeDoc(brands.Document{"headquarters": "Paris", "hqAddress": "Lyon"}).Brand.Headquarters)
	assert.Equal(t, "Lyon", normalizeDoc(brands.Document{"hqAddress": "Lyon"}).Brand.Headquarters)
	assert.Equal(t, "Lyon", normalizeDoc(brands.Document{"headquarters": "   ", "hqAddress": "Lyon"}).Brand.Headquarters)
	assert.Equal(t, "Unknown HQ Address", normalizeDoc(brands.Document{"headquarters": nil}).Brand.Headquarters)
}

func TestNormalize_TotalValidity(t *testing.T) {
	inputs := []brands.Document{
		{},
		{"brandName": nil, "yearFounded": nil, "numberOfLocations": nil},
		{"brandName": []any{"a"}, "yearCreated": "-1", "headquarters": map[string]any{}, "numberOfLocations": "NaN"},
		{"brand": map[string]any{"name": ""}, "yearsFounded": "99999", "hqAddress": false, "numberOfLocations": -3.5},
		{"yearFounded": []any{}, "numberOfLocations": []any{nil}},
		{"extra": "field", "another": 12},
	}

	n := newTestNormalizer()
	for _, doc := range inputs {
		b := n.Normalize(brands.RawRecordFromDocument(doc))
		require.NoError(t, b.Validate(fixedNow), "input %#v", doc)
	}
}

func TestParseInt(t *testing.T) {
	tests := []struct {
		in   any
		want int64
		ok   bool
	}{
		{in: "1850abc", want: 1850, ok: true},
		{in: "-12", want: -12, ok: true},
		{in: "0x10", want: 0, ok: true},
		{in: "abc", ok: false},
		{in: "", ok: false},
		{in: "-", ok: false},
		{in: nil, ok: false},
		{in: false, ok: false},
		{in: json.Number("1.85e3"), want: 1850, ok: true},
		{in: []any{json.Number("1999"), "x"}, want: 1999, ok: true},
		{in: "9223372036854775808", ok: false},
	}

	for _, tt := range tests {
		got, ok := ParseInt(tt.in)
		assert.Equal(t, tt.ok, ok, "input %#v", tt.in)
		if tt.ok {
			assert.Equal(t, tt.want, got, "input %#v", tt.in)
		}
	}
}
