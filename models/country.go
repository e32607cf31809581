package models

import (
	"net/url"
	"strings"
)

// Country represents a single entry of the world countries collection
// as delivered by the upstream data source. Values are immutable once built.
type Country struct {
	CommonName   string `json:"common_name"`
	Region       string `json:"region"`
	Population   int64  `json:"population"`
	FlagImageURL string `json:"flag_image_url"`
	Code         string `json:"code"`      // ISO 3166-1 alpha-3
	AlphaTwo     string `json:"alpha_two"` // ISO 3166-1 alpha-2, optional
}

// Key returns the stable identity of the record inside a collection
func (c *Country) Key() string {
	return strings.ToUpper(c.Code)
}

// HasFlag reports whether the record carries a usable flag image
func (c *Country) HasFlag() bool {
	return c.FlagImageURL != ""
}

// Validate performs validation on the country record
func (c *Country) Validate() error {
	if strings.TrimSpace(c.CommonName) == "" {
		return ErrInvalidCountryName
	}
	if len(c.Code) < 2 || len(c.Code) > 3 {
		return ErrInvalidCountryCode
	}
	if c.Population < 0 {
		return ErrInvalidPopulation
	}
	if c.FlagImageURL != "" {
		u, err := url.ParseRequestURI(c.FlagImageURL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return ErrInvalidFlagURL
		}
	}
	return nil
}
