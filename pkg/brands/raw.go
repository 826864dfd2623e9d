package brands

import "github.com/agentstation/brandmap/pkg/constants"

// Raw document keys, including the legacy aliases.
const (
	KeyBrandName         = "brandName"
	KeyBrand             = "brand"
	KeyBrandNestedName   = "name"
	KeyYearFounded       = "yearFounded"
	KeyYearCreated       = "yearCreated"
	KeyYearsFounded      = "yearsFounded"
	KeyHeadquarters      = "headquarters"
	KeyHQAddress         = "hqAddress"
	KeyNumberOfLocations = "numberOfLocations"
	KeyCreatedAt         = "createdAt"
)

// RawRecord is an as-ingested brand document with every attribute
// optional. A nil value means absent or null; the two are not
// distinguished. Values keep whatever type the decoder produced.
type RawRecord struct {
	ID any

	BrandName any
	Brand     *RawBrandRef

	YearFounded  any
	YearCreated  any
	YearsFounded any

	Headquarters any
	HQAddress    any

	NumberOfLocations any

	CreatedAt any

	// Extra holds keys outside the known shape. It never reaches a
	// canonical record.
	Extra map[string]any
}

// RawBrandRef is the nested {"brand": {"name": ...}} legacy shape.
type RawBrandRef struct {
	Name any
}

// RawRecordFromDocument maps a loosely typed document onto a RawRecord.
// A "brand" value that is not an object carries no nested name.
func RawRecordFromDocument(doc Document) RawRecord {
	var r RawRecord
	for key, value := range doc {
		switch key {
		case constants.FieldID:
			r.ID = value
		case KeyBrandName:
			r.BrandName = value
		case KeyBrand:
			r.Brand = nestedBrand(value)
			if r.Brand == nil {
				r.addExtra(key, value)
			}
		case KeyYearFounded:
			r.YearFounded = value
		case KeyYearCreated:
			r.YearCreated = value
		case KeyYearsFounded:
			r.YearsFounded = value
		case KeyHeadquarters:
			r.Headquarters = value
		case KeyHQAddress:
			r.HQAddress = value
		case KeyNumberOfLocations:
			r.NumberOfLocations = value
		case KeyCreatedAt:
			r.CreatedAt = value
		default:
			r.addExtra(key, value)
		}
	}
	return r
}

func (r *RawRecord) addExtra(key string, value any) {
	if r.Extra == nil {
		r.Extra = make(map[string]any)
	}
	r.Extra[key] = value
}

func nestedBrand(v any) *RawBrandRef {
	switch m := v.(type) {
	case map[string]any:
		return &RawBrandRef{Name: m[KeyBrandNestedName]}
	case Document:
		return &RawBrandRef{Name: m[KeyBrandNestedName]}
	default:
		return nil
	}
}
