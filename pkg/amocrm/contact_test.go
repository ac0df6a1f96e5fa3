package amocrm_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fieldline-io/amocrm-client/pkg/amocrm"
)

func TestContact_UnmarshalJSON(t *testing.T) {
	t.Parallel()

	t.Run("embedded leads are mirrored", func(t *testing.T) {
		t.Parallel()

		payload := `{"id": 9, "name": "Ada", "_embedded": {"leads": [{"id": 42}, {"id": 43}]}}`

		var contact amocrm.Contact
		require.NoError(t, json.Unmarshal([]byte(payload), &contact))

		require.NotNil(t, contact.Embedded)
		assert.Equal(t, contact.Embedded.Leads, contact.Leads)
	})

	t.Run("legacy linked_leads_id alias", func(t *testing.T) {
		t.Parallel()

		payload := `{"id": 9, "linked_leads_id": [{"id": 42}]}`

		var contact amocrm.Contact
		require.NoError(t, json.Unmarshal([]byte(payload), &contact))
		assert.Equal(t, []amocrm.ContactLead{{ID: 42}}, contact.Leads)
	})

	t.Run("phone and email derive from custom fields", func(t *testing.T) {
		t.Parallel()

		payload := `{
			"id": 9,
			"custom_fields_values": [
				{"field_id": 1, "field_code": "PHONE", "values": [{"value": "+3512345", "enum_code": "WORK"}]},
				{"field_id": 2, "field_code": "EMAIL", "values": [{"value": "ada@example.com"}]},
				{"field_id": 3, "field_code": "POSITION", "values": [{"value": "CTO"}]}
			]
		}`

		var contact amocrm.Contact
		require.NoError(t, json.Unmarshal([]byte(payload), &contact))

		require.Len(t, contact.Phone, 1)
		assert.Equal(t, "+3512345", contact.Phone[0].Value)
		require.Len(t, contact.Email, 1)
		assert.Equal(t, "ada@example.com", contact.Email[0].Value)
	})

	t.Run("timestamps normalize to UTC", func(t *testing.T) {
		t.Parallel()

		payload := `{"id": 9, "created_at": "2023-06-01T12:00:00+03:00", "closest_task_at": 1672531200}`

		var contact amocrm.Contact
		require.NoError(t, json.Unmarshal([]byte(payload), &contact))

		require.NotNil(t, contact.CreatedAt)
		assert.Equal(t, "UTC", contact.CreatedAt.Location().String())
		assert.Equal(t, 9, contact.CreatedAt.Hour())
		require.NotNil(t, contact.ClosestTaskAt)
		assert.Equal(t, "UTC", contact.ClosestTaskAt.Location().String())
	})
}

func TestContact_Payloads(t *testing.T) {
	t.Parallel()

	t.Run("derived fields never serialize", func(t *testing.T) {
		t.Parallel()

		payload := `{
			"id": 9,
			"name": "Ada",
			"created_user_id": 7,
			"custom_fields_values": [
				{"field_id": 1, "field_code": "PHONE", "values": [{"value": "+3512345"}]}
			],
			"_embedded": {"leads": [{"id": 42}]}
		}`

		var contact amocrm.Contact
		require.NoError(t, json.Unmarshal([]byte(payload), &contact))

		for _, out := range []map[string]any{contact.CreatePayload(), contact.UpdatePayload()} {
			for _, key := range []string{"phone", "email", "leads", "created_by", "created_at"} {
				assert.NotContains(t, out, key)
			}

			// The custom fields themselves still round-trip under the
			// current key only.
			assert.Contains(t, out, "custom_fields_values")
			assert.NotContains(t, out, "custom_fields")
		}
	})

	t.Run("update requires set fields only", func(t *testing.T) {
		t.Parallel()

		contact := amocrm.Contact{
			ID:        amocrm.Int64(9),
			FirstName: amocrm.String("Ada"),
		}

		payload := contact.UpdatePayload()
		assert.Len(t, payload, 2)
		assert.Contains(t, payload, "id")
		assert.Contains(t, payload, "first_name")
	})
}
