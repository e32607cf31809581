package countries

import (
	"fmt"

	"github.com/joefazee/atlas/models"
)

// makeCountries builds n valid records named "Country 001".. with codes C001..
func makeCountries(n int) []models.Country {
	out := make([]models.Country, n)
	for i := range out {
		out[i] = models.Country{
			CommonName:   fmt.Sprintf("Country %03d", i+1),
			Region:       "Testland",
			Population:   int64(1000 * (i + 1)),
			FlagImageURL: fmt.Sprintf("https://flagcdn.com/c%03d.svg", i+1),
			Code:         fmt.Sprintf("C%02d", i+1),
		}
	}
	return out
}

func sampleCountries() []models.Country {
	return []models.Country{
		{CommonName: "Nigeria", Region: "Africa", Population: 206139587, FlagImageURL: "https://flagcdn.com/ng.svg", Code: "NGA", AlphaTwo: "NG"},
		{CommonName: "Niger", Region: "Africa", Population: 24206636, FlagImageURL: "https://flagcdn.com/ne.svg", Code: "NER", AlphaTwo: "NE"},
		{CommonName: "Germany", Region: "Europe", Population: 83240525, FlagImageURL: "https://flagcdn.com/de.svg", Code: "DEU", AlphaTwo: "DE"},
		{CommonName: "United States", Region: "Americas", Population: 329484123, FlagImageURL: "https://flagcdn.com/us.svg", Code: "USA", AlphaTwo: "US"},
		{CommonName: "United Kingdom", Region: "Europe", Population: 67215293, FlagImageURL: "https://flagcdn.com/gb.svg", Code: "GBR", AlphaTwo: "GB"},
		{CommonName: "Åland Islands", Region: "Europe", Population: 29458, FlagImageURL: "https://flagcdn.com/ax.svg", Code: "ALA", AlphaTwo: "AX"},
	}
}

func names(records []models.Country) []string {
	out := make([]string, len(records))
	for i := range records {
		out[i] = records[i].CommonName
	}
	return out
}
