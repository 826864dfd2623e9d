// Package brands defines the canonical brand entity persisted by brandmap,
// the loosely shaped raw record it is derived from, and the document type
// exchanged with the store.
package brands

import (
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/agentstation/brandmap/pkg/constants"
	"github.com/agentstation/brandmap/pkg/errors"
)

// Field names a canonical brand attribute.
type Field string

// Canonical field names, as stored.
const (
	FieldBrandName         Field = "brandName"
	FieldYearFounded       Field = "yearFounded"
	FieldHeadquarters      Field = "headquarters"
	FieldNumberOfLocations Field = "numberOfLocations"
	FieldCreatedAt         Field = "createdAt"
	FieldUpdatedAt         Field = "updatedAt"
)

// CanonicalFields lists the four validated attributes in schema order.
var CanonicalFields = []Field{
	FieldBrandName,
	FieldYearFounded,
	FieldHeadquarters,
	FieldNumberOfLocations,
}

// String returns the stored key of the field.
func (f Field) String() string { return string(f) }

// Brand is the canonical, validated brand record.
type Brand struct {
	ID                bson.ObjectID `json:"_id" yaml:"_id" bson:"_id"`
	BrandName         string        `json:"brandName" yaml:"brandName" bson:"brandName"`
	YearFounded       int           `json:"yearFounded" yaml:"yearFounded" bson:"yearFounded"`
	Headquarters      string        `json:"headquarters" yaml:"headquarters" bson:"headquarters"`
	NumberOfLocations int           `json:"numberOfLocations" yaml:"numberOfLocations" bson:"numberOfLocations"`
	CreatedAt         time.Time     `json:"createdAt" yaml:"createdAt" bson:"createdAt"`
	UpdatedAt         time.Time     `json:"updatedAt" yaml:"updatedAt" bson:"updatedAt"`
}

// Validate checks the four canonical constraints. The upper year bound is
// the calendar year of now.
func (b Brand) Validate(now time.Time) error {
	if strings.TrimSpace(b.BrandName) == "" {
		return errors.NewValidationError(FieldBrandName.String(), b.BrandName, "brand name is required")
	}
	if b.YearFounded < constants.MinYearFounded {
		return errors.NewValidationError(FieldYearFounded.String(), b.YearFounded,
			fmt.Sprintf("year founded seems too old (minimum %d)", constants.MinYearFounded))
	}
	if b.YearFounded > now.Year() {
		return errors.NewValidationError(FieldYearFounded.String(), b.YearFounded,
			fmt.Sprintf("year founded cannot be in the future (maximum %d)", now.Year()))
	}
	if strings.TrimSpace(b.Headquarters) == "" {
		return errors.NewValidationError(FieldHeadquarters.String(), b.Headquarters, "headquarters location is required")
	}
	if b.NumberOfLocations < constants.MinLocations {
		return errors.NewValidationError(FieldNumberOfLocations.String(), b.NumberOfLocations,
			fmt.Sprintf("there should be at least %d location", constants.MinLocations))
	}
	return nil
}

// Document renders the brand as a store document holding exactly the
// canonical keys. Zero timestamps are omitted.
func (b Brand) Document() Document {
	doc := Document{
		constants.FieldID:               b.ID,
		FieldBrandName.String():         b.BrandName,
		FieldYearFounded.String():       b.YearFounded,
		FieldHeadquarters.String():      b.Headquarters,
		FieldNumberOfLocations.String(): b.NumberOfLocations,
	}
	if !b.CreatedAt.IsZero() {
		doc[FieldCreatedAt.String()] = b.CreatedAt
	}
	if !b.UpdatedAt.IsZero() {
		doc[FieldUpdatedAt.String()] = b.UpdatedAt
	}
	return doc
}

// FromDocument strictly decodes a stored document into a Brand. It fails
// when the document does not already have the canonical shape; it never
// substitutes defaults (that is the normalizer's job).
func FromDocument(doc Document) (Brand, error) {
	var b Brand

	id, ok := doc[constants.FieldID].(bson.ObjectID)
	if !ok {
		return Brand{}, errors.NewValidationError(constants.FieldID, doc[constants.FieldID], "missing canonical identifier")
	}
	b.ID = id

	name, ok := doc[FieldBrandName.String()].(string)
	if !ok {
		return Brand{}, errors.NewValidationError(FieldBrandName.String(), doc[FieldBrandName.String()], "must be a string")
	}
	b.BrandName = name

	hq, ok := doc[FieldHeadquarters.String()].(string)
	if !ok {
		return Brand{}, errors.NewValidationError(FieldHeadquarters.String(), doc[FieldHeadquarters.String()], "must be a string")
	}
	b.Headquarters = hq

	year, ok := IntValue(doc[FieldYearFounded.String()])
	if !ok {
		return Brand{}, errors.NewValidationError(FieldYearFounded.String(), doc[FieldYearFounded.String()], "must be an integer")
	}
	b.YearFounded = year

	locations, ok := IntValue(doc[FieldNumberOfLocations.String()])
	if !ok {
		return Brand{}, errors.NewValidationError(FieldNumberOfLocations.String(), doc[FieldNumberOfLocations.String()], "must be an integer")
	}
	b.NumberOfLocations = locations

	b.CreatedAt, _ = TimeValue(doc[FieldCreatedAt.String()])
	b.UpdatedAt, _ = TimeValue(doc[FieldUpdatedAt.String()])

	for key := range doc {
		if !isCanonicalKey(key) {
			return Brand{}, errors.NewValidationError(key, doc[key], "unexpected field")
		}
	}

	return b, nil
}

func isCanonicalKey(key string) bool {
	switch key {
	case constants.FieldID, FieldCreatedAt.String(), FieldUpdatedAt.String():
		return true
	}
	for _, f := range CanonicalFields {
		if f.String() == key {
			return true
		}
	}
	return false
}
