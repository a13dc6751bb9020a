package model

import (
	"errors"
	"strings"
	"time"
)

// Sentinels stored in enrichment fields whose value is unknown.
const (
	UnknownText   = "-1"
	UnknownRating = -1.0
)

// Validation errors returned by Restaurant.Validate.
var (
	ErrArabicNameRequired  = errors.New("arabic_name is required")
	ErrEnglishNameRequired = errors.New("english_name is required")
)

// Enrichment is the externally sourced portion of a restaurant record.
type Enrichment struct {
	Phone          string
	Type           string
	Address        string
	PlaceID        string
	GoogleRating   float64
	PricePerPerson string
	Directions     string
	GoogleReviews  string
}

// UnknownEnrichment returns an Enrichment with every field set to its sentinel.
func UnknownEnrichment() Enrichment {
	return Enrichment{
		Phone:          UnknownText,
		Type:           UnknownText,
		Address:        UnknownText,
		PlaceID:        UnknownText,
		GoogleRating:   UnknownRating,
		PricePerPerson: UnknownText,
		Directions:     UnknownText,
		GoogleReviews:  UnknownText,
	}
}

// Restaurant is a stored restaurant record.
type Restaurant struct {
	ID          string
	ArabicName  string
	EnglishName string
	Enrichment
	CreatedAt time.Time
	UpdatedAt time.Time
}

// RestaurantInput is caller-supplied data for a new restaurant. Enrichment
// fields are optional; nil means the caller did not send them.
type RestaurantInput struct {
	ArabicName     string
	EnglishName    string
	Phone          *string
	Type           *string
	Address        *string
	PlaceID        *string
	GoogleRating   *float64
	PricePerPerson *string
	Directions     *string
	GoogleReviews  *string
}

// RestaurantPatch is a partial update. Nil fields are left unchanged.
type RestaurantPatch struct {
	ArabicName     *string
	EnglishName    *string
	Phone          *string
	Type           *string
	Address        *string
	PlaceID        *string
	GoogleRating   *float64
	PricePerPerson *string
	Directions     *string
	GoogleReviews  *string
}

// Validate checks the required name fields.
func (r *Restaurant) Validate() error {
	if strings.TrimSpace(r.ArabicName) == "" {
		return ErrArabicNameRequired
	}
	if strings.TrimSpace(r.EnglishName) == "" {
		return ErrEnglishNameRequired
	}
	return nil
}

// HasMissingData reports whether any of phone, type, address, place_id,
// directions, google_reviews or google_rating still holds its sentinel.
// price_per_person is not part of the check.
func (r *Restaurant) HasMissingData() bool {
	return r.Phone == UnknownText ||
		r.Type == UnknownText ||
		r.Address == UnknownText ||
		r.PlaceID == UnknownText ||
		r.Directions == UnknownText ||
		r.GoogleReviews == UnknownText ||
		r.GoogleRating == UnknownRating
}

// Apply copies every non-nil patch field onto r. Enrichment text fields
// patched to "" are stored as UnknownText so they are never empty.
func (r *Restaurant) Apply(p RestaurantPatch) {
	if p.ArabicName != nil {
		r.ArabicName = *p.ArabicName
	}
	if p.EnglishName != nil {
		r.EnglishName = *p.EnglishName
	}
	if p.GoogleRating != nil {
		r.GoogleRating = *p.GoogleRating
	}

	setText(&r.Phone, p.Phone)
	setText(&r.Type, p.Type)
	setText(&r.Address, p.Address)
	setText(&r.PlaceID, p.PlaceID)
	setText(&r.PricePerPerson, p.PricePerPerson)
	setText(&r.Directions, p.Directions)
	setText(&r.GoogleReviews, p.GoogleReviews)
}

func setText(dst *string, v *string) {
	if v == nil {
		return
	}
	if *v == "" {
		*dst = UnknownText
		return
	}
	*dst = *v
}
