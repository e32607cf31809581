package countries

import (
	"strings"

	"github.com/joefazee/atlas/models"
)

// Direction is a pagination step.
type Direction string

const (
	DirectionPrevious Direction = "previous"
	DirectionNext     Direction = "next"
)

// ParseDirection accepts "previous" (or "prev") and "next", in any case.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "previous", "prev":
		return DirectionPrevious, nil
	case "next":
		return DirectionNext, nil
	default:
		return "", models.ErrInvalidDirection
	}
}

// View is the read-only snapshot a presentation layer renders.
// NoResults means the filter excluded every record of a non-empty
// collection; CollectionEmpty means there was nothing to search at all.
type View struct {
	PageItems       []models.Country
	CurrentPage     int
	TotalPages      int
	NoResults       bool
	CollectionEmpty bool
	Query           string
	HasPrevious     bool
	HasNext         bool
	MatchCount      int
	PageSize        int
}

// Controller owns one search session: the query and the current page over a
// fixed collection. It is not safe for concurrent use.
type Controller struct {
	records  []models.Country
	pageSize int
	state    models.SearchState

	filtered      []models.Country
	filteredQuery string
	filterValid   bool
}

// NewController starts a session over records at query "" and page 1.
func NewController(records []models.Country, pageSize int) *Controller {
	return RestoreController(records, pageSize, models.NewSearchState())
}

// RestoreController resumes a saved session. The page is clamped into the
// bounds of the current collection since it may have changed since the save.
func RestoreController(records []models.Country, pageSize int, state models.SearchState) *Controller {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	c := &Controller{
		records:  records,
		pageSize: pageSize,
		state:    state.Normalize(),
	}
	c.state.CurrentPage = clampPage(c.state.CurrentPage, c.totalPages())
	return c
}

// SetQuery replaces the query and always returns to page 1, even when the
// query is unchanged.
func (c *Controller) SetQuery(query string) {
	c.state.Query = query
	c.state.CurrentPage = 1
}

// GoToPage moves one page back or forward. Both directions stop at the
// boundaries; next never leaves page 1 when nothing matches.
func (c *Controller) GoToPage(dir Direction) error {
	switch dir {
	case DirectionPrevious:
		if c.state.CurrentPage > 1 {
			c.state.CurrentPage--
		}
	case DirectionNext:
		if c.state.CurrentPage < c.totalPages() {
			c.state.CurrentPage++
		}
	default:
		return models.ErrInvalidDirection
	}
	return nil
}

// View derives the current page from the state.
func (c *Controller) View() View {
	matches := c.matches()
	page := Paginate(matches, c.pageSize, c.state.CurrentPage)

	return View{
		PageItems:       page.Items,
		CurrentPage:     page.EffectivePage,
		TotalPages:      page.TotalPages,
		NoResults:       len(page.Items) == 0 && len(c.records) > 0,
		CollectionEmpty: len(c.records) == 0,
		Query:           c.state.Query,
		HasPrevious:     page.EffectivePage > 1,
		HasNext:         page.EffectivePage < page.TotalPages,
		MatchCount:      len(matches),
		PageSize:        c.pageSize,
	}
}

// State returns the persistable part of the session.
func (c *Controller) State() models.SearchState {
	return c.state
}

func (c *Controller) totalPages() int {
	return TotalPages(len(c.matches()), c.pageSize)
}

func (c *Controller) matches() []models.Country {
	if !c.filterValid || c.filteredQuery != c.state.Query {
		c.filtered = Filter(c.records, c.state.Query)
		c.filteredQuery = c.state.Query
		c.filterValid = true
	}
	return c.filtered
}
