package amocrm_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fieldline-io/amocrm-client/pkg/amocrm"
)

func TestTimestamp_UnmarshalJSON(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected time.Time
		wantErr  bool
	}{
		{
			name:     "epoch seconds",
			input:    `1672531200`,
			expected: time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name:     "RFC3339 with offset",
			input:    `"2023-06-01T12:00:00+03:00"`,
			expected: time.Date(2023, 6, 1, 9, 0, 0, 0, time.UTC),
		},
		{
			name:     "RFC3339 UTC",
			input:    `"2023-06-01T12:00:00Z"`,
			expected: time.Date(2023, 6, 1, 12, 0, 0, 0, time.UTC),
		},
		{
			name:     "naive datetime treated as UTC",
			input:    `"2023-06-01T12:00:00"`,
			expected: time.Date(2023, 6, 1, 12, 0, 0, 0, time.UTC),
		},
		{
			name:    "garbage",
			input:   `"yesterday"`,
			wantErr: true,
		},
	}

	for _, testCase := range tests {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			var ts amocrm.Timestamp

			err := json.Unmarshal([]byte(testCase.input), &ts)
			if testCase.wantErr {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.True(t, testCase.expected.Equal(ts.Time))
			assert.Equal(t, "UTC", ts.Location().String())
		})
	}
}

func TestTimestamp_MarshalJSON(t *testing.T) {
	t.Parallel()

	ts := amocrm.NewTimestamp(time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC))

	encoded, err := json.Marshal(ts)
	require.NoError(t, err)
	assert.Equal(t, "1672531200", string(encoded))
}

func TestDecodeList(t *testing.T) {
	t.Parallel()

	newTag := func() *amocrm.Tag { return &amocrm.Tag{} }

	t.Run("decodes resources under the key", func(t *testing.T) {
		t.Parallel()

		body := `{"_page": 2, "_embedded": {"tags": [{"id": 1, "name": "vip"}, {"id": 2, "name": "cold"}]}}`

		page, err := amocrm.DecodeList([]byte(body), "tags", newTag)
		require.NoError(t, err)
		assert.Equal(t, 2, page.Page)
		require.Len(t, page.Resources, 2)
		assert.Equal(t, "vip", page.Resources[0].Name)
	})

	t.Run("missing collection decodes empty", func(t *testing.T) {
		t.Parallel()

		page, err := amocrm.DecodeList([]byte(`{"_embedded": {}}`), "tags", newTag)
		require.NoError(t, err)
		assert.Empty(t, page.Resources)
	})

	t.Run("empty body decodes empty", func(t *testing.T) {
		t.Parallel()

		page, err := amocrm.DecodeList(nil, "tags", newTag)
		require.NoError(t, err)
		assert.Empty(t, page.Resources)
	})

	t.Run("malformed envelope fails", func(t *testing.T) {
		t.Parallel()

		_, err := amocrm.DecodeList([]byte(`"nope"`), "tags", newTag)
		require.Error(t, err)

		var validationErr *amocrm.ValidationError
		assert.ErrorAs(t, err, &validationErr)
	})

	t.Run("malformed element reports its path", func(t *testing.T) {
		t.Parallel()

		body := `{"_embedded": {"tags": [{"id": "not a number"}]}}`

		_, err := amocrm.DecodeList([]byte(body), "tags", newTag)
		require.Error(t, err)

		var validationErr *amocrm.ValidationError
		require.ErrorAs(t, err, &validationErr)
		assert.Equal(t, "_embedded.tags[0]", validationErr.Path)
	})
}
