// Package seed generates synthetic, always valid brands. Each of the first
// ten brands exercises a distinct case and carries a note describing it.
package seed

import (
	"strings"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/agentstation/brandmap/pkg/brands"
	"github.com/agentstation/brandmap/pkg/constants"
)

// Source supplies random values. *gofakeit.Faker satisfies it.
type Source interface {
	Company() string
	City() string
	Country() string
	Noun() string
	IntRange(min, max int) int
}

var _ Source = (*gofakeit.Faker)(nil)

// NewFaker returns a gofakeit source. A zero seed draws a random one.
func NewFaker(seed uint64) *gofakeit.Faker {
	return gofakeit.New(seed)
}

// MaxLocations is the upper bound for generated location counts.
const MaxLocations = 5000

// Case notes.
const (
	NoteStandard      = "Standard valid brand"
	NoteGlobal        = "Standard global corporation"
	NoteStartup       = "Newly established brand (founded this year)"
	NoteSingleSite    = "Mid-20th century brand with a single location"
	NoteHighGrowth    = "High-growth international chain"
	NoteUppercase     = "Brand name styled in uppercase (marketing emphasis)"
	NoteFamily        = "Family-owned traditional brand"
	NoteRemote        = "Fully remote digital-first brand"
	NoteIndustrial    = "Generic industrial-style brand naming"
	NoteHeritage      = "Legacy heritage brand (founded at minimum valid year)"
	NoteInternational = "Global expansion brand with strong identity"
)

// RemoteHeadquarters is the headquarters used by the remote-first case.
const RemoteHeadquarters = "Remote / Virtual HQ"

// Seeded is a generated brand with its case note.
type Seeded struct {
	Brand brands.Brand
	Note  string
}

// Generator builds synthetic brands from a Source.
type Generator struct {
	src   Source
	now   func() time.Time
	title cases.Caser
}

// Option configures a Generator.
type Option func(*Generator)

// WithClock sets the time source bounding founding years.
func WithClock(now func() time.Time) Option {
	return func(g *Generator) {
		if now != nil {
			g.now = now
		}
	}
}

// New creates a Generator.
func New(src Source, opts ...Option) *Generator {
	g := &Generator{
		src:   src,
		now:   time.Now,
		title: cases.Title(language.English),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate returns n brands. Identifiers and timestamps are left for the
// store to assign.
func (g *Generator) Generate(n int) []Seeded {
	if n <= 0 {
		return nil
	}
	currentYear := g.now().Year()

	out := make([]Seeded, 0, n)
	for i := 0; i < n; i++ {
		b := brands.Brand{
			BrandName:         g.src.Company(),
			YearFounded:       g.src.IntRange(constants.MinYearFounded, currentYear),
			Headquarters:      g.src.City() + ", " + g.src.Country(),
			NumberOfLocations: g.src.IntRange(constants.MinLocations, MaxLocations),
		}
		note := NoteStandard

		switch i {
		case 0:
			note = NoteGlobal
		case 1:
			b.YearFounded = currentYear
			note = NoteStartup
		case 2:
			b.YearFounded = 1950
			b.NumberOfLocations = constants.MinLocations
			note = NoteSingleSite
		case 3:
			b.NumberOfLocations = 3000
			note = NoteHighGrowth
		case 4:
			b.BrandName = strings.ToUpper(b.BrandName)
			note = NoteUppercase
		case 5:
			b.BrandName += " & Sons"
			note = NoteFamily
		case 6:
			b.Headquarters = RemoteHeadquarters
			note = NoteRemote
		case 7:
			b.BrandName = g.title.String(g.src.Noun()) + " Industries"
			note = NoteIndustrial
		case 8:
			b.YearFounded = constants.MinYearFounded
			note = NoteHeritage
		case 9:
			b.BrandName = g.src.Company() + " International Group"
			note = NoteInternational
		}

		out = append(out, Seeded{Brand: b, Note: note})
	}
	return out
}

// Brands returns the brands of seeded, in order.
func Brands(seeded []Seeded) []brands.Brand {
	out := make([]brands.Brand, len(seeded))
	for i, s := range seeded {
		out[i] = s.Brand
	}
	return out
}
