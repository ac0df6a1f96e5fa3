package amocrm_test

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fieldline-io/amocrm-client/pkg/amocrm"
)

func TestFilters_Params(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		filter   amocrm.Filter
		expected url.Values
	}{
		{
			name:     "eq",
			filter:   amocrm.Eq("status_id", "3"),
			expected: url.Values{"filter[status_id]": []string{"3"}},
		},
		{
			name:   "in",
			filter: amocrm.In("pipeline_id", "7", "8"),
			expected: url.Values{
				"filter[pipeline_id][0]": []string{"7"},
				"filter[pipeline_id][1]": []string{"8"},
			},
		},
		{
			name:   "range",
			filter: amocrm.Between("created_at", "1672531200", "1675209600"),
			expected: url.Values{
				"filter[created_at][from]": []string{"1672531200"},
				"filter[created_at][to]":   []string{"1675209600"},
			},
		},
		{
			name:     "range with open upper bound",
			filter:   amocrm.Between("price", "100", ""),
			expected: url.Values{"filter[price][from]": []string{"100"}},
		},
		{
			name:     "query",
			filter:   amocrm.Query("ada"),
			expected: url.Values{"query": []string{"ada"}},
		},
	}

	for _, testCase := range tests {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, testCase.expected, testCase.filter.Params())
		})
	}
}

func TestMergeFilterParams(t *testing.T) {
	t.Parallel()

	t.Run("later filters win on key collision", func(t *testing.T) {
		t.Parallel()

		merged := amocrm.MergeFilterParams(nil,
			amocrm.Eq("a", "1"),
			filterFunc(url.Values{"filter[a]": []string{"2"}, "filter[b]": []string{"3"}}),
		)

		assert.Equal(t, url.Values{
			"filter[a]": []string{"2"},
			"filter[b]": []string{"3"},
		}, merged)
	})

	t.Run("base params are preserved", func(t *testing.T) {
		t.Parallel()

		base := url.Values{"with": []string{"contacts,loss_reason"}}
		merged := amocrm.MergeFilterParams(base, amocrm.Query("ada"))

		assert.Equal(t, "contacts,loss_reason", merged.Get("with"))
		assert.Equal(t, "ada", merged.Get("query"))
	})

	t.Run("no filters returns params unchanged", func(t *testing.T) {
		t.Parallel()

		merged := amocrm.MergeFilterParams(nil)
		assert.Empty(t, merged)
	})
}

// filterFunc adapts a fixed value set to the Filter interface.
type filterFunc url.Values

func (f filterFunc) Params() url.Values { return url.Values(f) }
