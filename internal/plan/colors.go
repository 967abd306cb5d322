package plan

import (
	"math"
)

const DefaultRatingColor = "#667eea"

// colors used before ratings were bound to templates
var legacyRatingColors = map[int]string{
	1: "#dc3545",
	2: "#fd7e14",
	3: "#ffc107",
	4: "#28a745",
	5: "#20c997",
}

// ColorFor returns the display colour of a day rating: the template colour when the
// rating references a known template, the legacy palette for plain 1..5 ratings,
// otherwise the default colour.
func ColorFor(templateID string, rating *float64, catalog Catalog[DayTemplate]) string {
	if templateID != "" {
		if t, ok := catalog[templateID]; ok && t.Color != "" {
			return t.Color
		}
	}

	if rating != nil {
		if c, ok := legacyRatingColors[int(math.Round(*rating))]; ok {
			return c
		}
	}

	return DefaultRatingColor
}
