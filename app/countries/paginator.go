package countries

import "github.com/joefazee/atlas/models"

// Page is one window of a record sequence.
type Page struct {
	Items         []models.Country
	TotalPages    int
	EffectivePage int
}

// Paginate cuts records into pages of pageSize and returns the requested
// one. requestedPage is clamped into [1, max(TotalPages, 1)], so any integer
// is accepted. A non-positive pageSize falls back to DefaultPageSize.
func Paginate(records []models.Country, pageSize, requestedPage int) Page {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}

	total := TotalPages(len(records), pageSize)
	page := clampPage(requestedPage, total)

	start := (page - 1) * pageSize
	end := len(records)
	if end-start > pageSize {
		end = start + pageSize
	}

	items := make([]models.Country, 0, end-start)
	if start < end {
		items = append(items, records[start:end]...)
	}

	return Page{Items: items, TotalPages: total, EffectivePage: page}
}

// TotalPages is ceil(count / pageSize), 0 for an empty sequence.
func TotalPages(count, pageSize int) int {
	if count <= 0 || pageSize <= 0 {
		return 0
	}
	pages := count / pageSize
	if count%pageSize != 0 {
		pages++
	}
	return pages
}

func clampPage(page, totalPages int) int {
	upper := totalPages
	if upper < 1 {
		upper = 1
	}
	switch {
	case page < 1:
		return 1
	case page > upper:
		return upper
	default:
		return page
	}
}
