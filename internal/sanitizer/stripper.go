package sanitizer

import (
	"html"

	"github.com/microcosm-cc/bluemonday"
)

// HTMLStripperer removes markup from user supplied text.
type HTMLStripperer interface {
	StripHTML(s string) string
}

type HTMLStripper struct {
	bm *bluemonday.Policy
}

var _ HTMLStripperer = (*HTMLStripper)(nil)

// NewHTMLStripper return a new instance of blue monday policy
func NewHTMLStripper() *HTMLStripper {
	return &HTMLStripper{
		bm: bluemonday.StrictPolicy(),
	}
}

// StripHTML drops every tag and returns plain text. Entities escaped by
// the policy are decoded again so "Côte d'Ivoire" survives unchanged.
func (hs *HTMLStripper) StripHTML(s string) string {
	return html.UnescapeString(hs.bm.Sanitize(s))
}
