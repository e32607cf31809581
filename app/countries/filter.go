package countries

import (
	"strings"

	"github.com/joefazee/atlas/models"
)

// Filter returns the records whose common name contains query, ignoring
// case. An empty query keeps every record. Relative order is preserved and
// the result never aliases records; a nil input yields an empty slice.
func Filter(records []models.Country, query string) []models.Country {
	out := make([]models.Country, 0, len(records))
	if query == "" {
		return append(out, records...)
	}

	needle := strings.ToLower(query)
	for i := range records {
		if strings.Contains(strings.ToLower(records[i].CommonName), needle) {
			out = append(out, records[i])
		}
	}
	return out
}
