package countries

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/joefazee/atlas/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilter(t *testing.T) {
	records := sampleCountries()

	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{"empty query keeps everything", "", names(records)},
		{"substring match", "nig", []string{"Nigeria", "Niger"}},
		{"case is ignored", "UNITED", []string{"United States", "United Kingdom"}},
		{"mixed case query", "gErMaNy", []string{"Germany"}},
		{"match in the middle", "king", []string{"United Kingdom"}},
		{"non-ascii folds", "åland", []string{"Åland Islands"}},
		{"no match", "atlantis", []string{}},
		{"whitespace is literal", " ", []string{"United States", "United Kingdom", "Åland Islands"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Filter(records, tt.query)
			if diff := cmp.Diff(tt.want, names(got)); diff != "" {
				t.Errorf("Filter(%q) mismatch (-want +got):\n%s", tt.query, diff)
			}
		})
	}
}

func TestFilter_ResultIsSubsequence(t *testing.T) {
	records := sampleCountries()

	for _, query := range []string{"", "a", "n", "ger", "united", "zzz"} {
		got := Filter(records, query)
		j := 0
		for _, r := range got {
			assert.Contains(t, strings.ToLower(r.CommonName), strings.ToLower(query))
			for j < len(records) && records[j].Code != r.Code {
				j++
			}
			require.Less(t, j, len(records), "%s out of order for query %q", r.CommonName, query)
			j++
		}
	}
}

func TestFilter_DoesNotAliasInput(t *testing.T) {
	records := sampleCountries()
	original := sampleCountries()

	got := Filter(records, "")
	require.Len(t, got, len(records))
	got[0].CommonName = "Changed"

	if diff := cmp.Diff(original, records); diff != "" {
		t.Errorf("input mutated (-want +got):\n%s", diff)
	}
}

func TestFilter_NilInput(t *testing.T) {
	got := Filter(nil, "x")
	assert.NotNil(t, got)
	assert.Empty(t, got)

	got = Filter([]models.Country{}, "")
	assert.NotNil(t, got)
	assert.Empty(t, got)
}
