package export

import (
	"strconv"
	"time"

	"github.com/agentstation/brandmap/pkg/brands"
)

// Record is the serializable form of a canonical brand.
type Record struct {
	ID                string     `json:"_id" yaml:"_id"`
	BrandName         string     `json:"brandName" yaml:"brandName"`
	YearFounded       int        `json:"yearFounded" yaml:"yearFounded"`
	Headquarters      string     `json:"headquarters" yaml:"headquarters"`
	NumberOfLocations int        `json:"numberOfLocations" yaml:"numberOfLocations"`
	CreatedAt         *time.Time `json:"createdAt,omitempty" yaml:"createdAt,omitempty"`
	UpdatedAt         *time.Time `json:"updatedAt,omitempty" yaml:"updatedAt,omitempty"`
}

// Records projects brands into records, preserving order.
func Records(bs []brands.Brand) []Record {
	out := make([]Record, len(bs))
	for i, b := range bs {
		out[i] = Record{
			ID:                b.ID.Hex(),
			BrandName:         b.BrandName,
			YearFounded:       b.YearFounded,
			Headquarters:      b.Headquarters,
			NumberOfLocations: b.NumberOfLocations,
			CreatedAt:         timePtr(b.CreatedAt),
			UpdatedAt:         timePtr(b.UpdatedAt),
		}
	}
	return out
}

func timePtr(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	t = t.UTC()
	return &t
}

// Headers are the column titles of the tabular output.
var Headers = []string{"Brand Name", "Year Founded", "Headquarters", "Number of Locations", "Case Note"}

// Row is one line of tabular output.
type Row struct {
	BrandName         string
	YearFounded       int
	Headquarters      string
	NumberOfLocations int
	Note              string
}

// Project selects the tabular columns of brands. Notes are left empty.
func Project(bs []brands.Brand) []Row {
	out := make([]Row, len(bs))
	for i, b := range bs {
		out[i] = Row{
			BrandName:         b.BrandName,
			YearFounded:       b.YearFounded,
			Headquarters:      b.Headquarters,
			NumberOfLocations: b.NumberOfLocations,
		}
	}
	return out
}

// WithNote returns rows with every note set to note.
func WithNote(rows []Row, note string) []Row {
	out := make([]Row, len(rows))
	for i, r := range rows {
		r.Note = note
		out[i] = r
	}
	return out
}

// Values returns the row cells in column order.
func (r Row) Values() []any {
	return []any{r.BrandName, r.YearFounded, r.Headquarters, r.NumberOfLocations, r.Note}
}

// Strings returns the row cells as text.
func (r Row) Strings() []string {
	return []string{
		r.BrandName,
		strconv.Itoa(r.YearFounded),
		r.Headquarters,
		strconv.Itoa(r.NumberOfLocations),
		r.Note,
	}
}
