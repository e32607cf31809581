package countries

import (
	"time"

	"github.com/joefazee/atlas/app/api"
	"github.com/joefazee/atlas/internal/formatter"
	"github.com/joefazee/atlas/models"
	"golang.org/x/text/language"
)

// CountryResponse represents one country card
type CountryResponse struct {
	Code              string `json:"code"`
	Name              string `json:"name"`
	Region            string `json:"region"`
	Population        int64  `json:"population"`
	PopulationDisplay string `json:"population_display"`
	FlagURL           string `json:"flag_url,omitempty"`
	DialingCode       string `json:"dialing_code,omitempty"`
}

// ViewResponse represents the current page of a search session
type ViewResponse struct {
	Countries       []CountryResponse `json:"countries"`
	Query           string            `json:"query"`
	CurrentPage     int               `json:"current_page"`
	TotalPages      int               `json:"total_pages"`
	PageSize        int               `json:"page_size"`
	MatchCount      int               `json:"match_count"`
	HasPrevious     bool              `json:"has_previous"`
	HasNext         bool              `json:"has_next"`
	NoResults       bool              `json:"no_results"`
	CollectionEmpty bool              `json:"collection_empty"`
}

// StatusResponse represents the state of the country collection load
type StatusResponse struct {
	State    string     `json:"state" example:"ready"`
	Records  int        `json:"records"`
	Attempt  int        `json:"attempt"`
	LoadedAt *time.Time `json:"loaded_at,omitempty"`
	Error    string     `json:"error,omitempty"`
}

// SetQueryRequest represents a search query change
type SetQueryRequest struct {
	Query string `json:"query" form:"q"`
}

// GoToPageRequest represents a page navigation step
type GoToPageRequest struct {
	Direction string `json:"direction" form:"direction" binding:"required" example:"next"`
}

// ToCountryResponse converts a country record to a card, formatting numbers for tag
func ToCountryResponse(c *models.Country, tag language.Tag) CountryResponse {
	return CountryResponse{
		Code:              c.Key(),
		Name:              c.CommonName,
		Region:            c.Region,
		Population:        c.Population,
		PopulationDisplay: formatter.Population(c.Population, tag),
		FlagURL:           c.FlagImageURL,
		DialingCode:       formatter.DialingCode(c.AlphaTwo),
	}
}

// ToViewResponse converts a controller view to its response
func ToViewResponse(v *View, tag language.Tag) *ViewResponse {
	cards := make([]CountryResponse, len(v.PageItems))
	for i := range v.PageItems {
		cards[i] = ToCountryResponse(&v.PageItems[i], tag)
	}
	return &ViewResponse{
		Countries:       cards,
		Query:           v.Query,
		CurrentPage:     v.CurrentPage,
		TotalPages:      v.TotalPages,
		PageSize:        v.PageSize,
		MatchCount:      v.MatchCount,
		HasPrevious:     v.HasPrevious,
		HasNext:         v.HasNext,
		NoResults:       v.NoResults,
		CollectionEmpty: v.CollectionEmpty,
	}
}

// PaginationMeta describes the page for the JSON envelope
func (v *ViewResponse) PaginationMeta() api.PaginationMeta {
	return api.PaginationMeta{
		Page:       v.CurrentPage,
		PerPage:    v.PageSize,
		Total:      int64(v.MatchCount),
		TotalPages: v.TotalPages,
		HasNext:    v.HasNext,
		HasPrev:    v.HasPrevious,
	}
}

// ToStatusResponse converts a loader snapshot to its response
func ToStatusResponse(s *Snapshot) StatusResponse {
	resp := StatusResponse{
		State:   string(s.State),
		Records: len(s.Records),
		Attempt: s.Attempt,
	}
	if !s.LoadedAt.IsZero() {
		loadedAt := s.LoadedAt
		resp.LoadedAt = &loadedAt
	}
	if s.Err != nil {
		resp.Error = s.Err.Error()
	}
	return resp
}
