package mom

import (
	"strings"
	"time"

	"github.com/jinzhu/now"

	"github.com/johnquangdev/mom-service/internal/domain/entities"
)

// Strict layouts are tried first, in this order
var visitDateLayouts = []string{
	"2006-01-02",
	"02/01/2006",
	"January 2, 2006",
	"Jan 2, 2006",
	"2 January 2006",
	time.RFC3339,
}

// ParseVisitDate accepts YYYY-MM-DD, DD/MM/YYYY, a few long forms, and
// anything else jinzhu/now can make sense of. The result is a UTC date.
func ParseVisitDate(raw string) (time.Time, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return time.Time{}, missingFields("visitDate")
	}

	for _, layout := range visitDateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return entities.DateOnly(t), nil
		}
	}

	t, err := now.With(time.Now().UTC()).Parse(value)
	if err != nil {
		return time.Time{}, invalidField("visitDate", raw, "unrecognised date format")
	}
	return entities.DateOnly(t), nil
}
