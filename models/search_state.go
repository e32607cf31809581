package models

// SearchState is the interactive state of one search session: the query
// typed by the user and the page currently shown.
type SearchState struct {
	Query       string `json:"query"`
	CurrentPage int    `json:"current_page"`
}

// NewSearchState returns the state every session starts from
func NewSearchState() SearchState {
	return SearchState{Query: "", CurrentPage: 1}
}

// Normalize returns a copy with a page number no lower than 1
func (s SearchState) Normalize() SearchState {
	if s.CurrentPage < 1 {
		s.CurrentPage = 1
	}
	return s
}
