package application

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"github.com/ericfisherdev/tasteofthebes/internal/domain/model"
)

var textPolicy = bluemonday.StrictPolicy()

// cleanText strips any markup from caller-supplied text. The strict policy
// HTML-escapes what it keeps, so the result is unescaped back to plain text.
func cleanText(s string) string {
	return html.UnescapeString(textPolicy.Sanitize(s))
}

func cleanTextPtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := cleanText(*s)
	return &v
}

func trimmedPtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}

// sanitizeInput cleans every text field; arabic_name and phone are also trimmed.
func sanitizeInput(in model.RestaurantInput) model.RestaurantInput {
	in.ArabicName = strings.TrimSpace(cleanText(in.ArabicName))
	in.EnglishName = cleanText(in.EnglishName)
	in.Phone = trimmedPtr(cleanTextPtr(in.Phone))
	in.Type = cleanTextPtr(in.Type)
	in.Address = cleanTextPtr(in.Address)
	in.PlaceID = cleanTextPtr(in.PlaceID)
	in.PricePerPerson = cleanTextPtr(in.PricePerPerson)
	in.Directions = cleanTextPtr(in.Directions)
	in.GoogleReviews = cleanTextPtr(in.GoogleReviews)
	return in
}

func sanitizePatch(p model.RestaurantPatch) model.RestaurantPatch {
	p.ArabicName = trimmedPtr(cleanTextPtr(p.ArabicName))
	p.EnglishName = cleanTextPtr(p.EnglishName)
	p.Phone = trimmedPtr(cleanTextPtr(p.Phone))
	p.Type = cleanTextPtr(p.Type)
	p.Address = cleanTextPtr(p.Address)
	p.PlaceID = cleanTextPtr(p.PlaceID)
	p.PricePerPerson = cleanTextPtr(p.PricePerPerson)
	p.Directions = cleanTextPtr(p.Directions)
	p.GoogleReviews = cleanTextPtr(p.GoogleReviews)
	return p
}
