package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fieldline-io/amocrm-client/pkg/amocrm"
)

// newTestClient builds a base-typed client against a test server.
func newTestClient(t *testing.T, baseURL string) *Client[*amocrm.Lead, *amocrm.Contact] {
	t.Helper()

	client, err := New(&amocrm.Config{BaseURL: baseURL, AccessToken: "test-token"},
		func() *amocrm.Lead { return &amocrm.Lead{} },
		func() *amocrm.Contact { return &amocrm.Contact{} })
	require.NoError(t, err)

	return client
}

func TestLeadsClient_Get(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/api/v4/leads/42", request.URL.Path)
		assert.Equal(t, http.MethodGet, request.Method)
		assert.Equal(t, "contacts,loss_reason", request.URL.Query().Get("with"))
		assert.Equal(t, "Bearer test-token", request.Header.Get("Authorization"))

		_, _ = writer.Write([]byte(`{"id": 42, "name": "Deal", "_embedded": {"contacts": [{"id": 7, "is_main": true}]}}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	lead, err := client.Leads().Get(context.Background(), 42)
	require.NoError(t, err)
	assert.Equal(t, int64(42), *lead.ID)
	assert.Equal(t, []amocrm.LeadContact{{ID: 7, IsMain: true}}, lead.Contacts)
}

func TestLeadsClient_GetNotFound(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, _ *http.Request) {
		writer.WriteHeader(http.StatusNotFound)
		_, _ = writer.Write([]byte(`{"title": "Not Found", "detail": "lead not found", "status": 404}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	_, err := client.Leads().Get(context.Background(), 42)
	require.Error(t, err)

	var apiErr *amocrm.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
	assert.Equal(t, "Not Found", apiErr.Title)
}

func TestLeadsClient_Links(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/api/v4/leads/42/links", request.URL.Path)
		_, _ = writer.Write([]byte(`{"_embedded": {"links": [{"to_entity_id": 7, "to_entity_type": "contacts"}]}}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	links, err := client.Leads().Links(context.Background(), 42)
	require.NoError(t, err)
	require.Len(t, links, 1)
	assert.Equal(t, int64(7), links[0].ToEntityID)
	assert.Equal(t, "contacts", links[0].ToEntityType)
}

func TestLeadsClient_List(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/api/v4/leads", request.URL.Path)
		assert.Equal(t, "contacts,loss_reason", request.URL.Query().Get("with"))
		assert.Equal(t, "3", request.URL.Query().Get("filter[status_id]"))
		assert.Equal(t, "50", request.URL.Query().Get("limit"))

		if request.URL.Query().Get("page") != "1" {
			writer.WriteHeader(http.StatusNoContent)
			return
		}

		_, _ = writer.Write([]byte(`{"_page": 1, "_embedded": {"leads": [{"id": 1}, {"id": 2}]}}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	leads, err := client.Leads().List(context.Background(), 0, amocrm.Eq("status_id", "3")).All()
	require.NoError(t, err)
	require.Len(t, leads, 2)
	assert.Equal(t, int64(1), *leads[0].ID)
	assert.Equal(t, int64(2), *leads[1].ID)
}

func TestLeadsClient_Create(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/api/v4/leads", request.URL.Path)
		assert.Equal(t, http.MethodPost, request.Method)

		var body []map[string]any
		require.NoError(t, json.NewDecoder(request.Body).Decode(&body))
		require.Len(t, body, 1)
		assert.Equal(t, map[string]any{"name": "New deal", "price": float64(500)}, body[0])

		_, _ = writer.Write([]byte(`{"_embedded": {"leads": [{"id": 42, "request_id": "0"}]}}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	created, err := client.Leads().Create(context.Background(), &amocrm.Lead{
		Name:  amocrm.String("New deal"),
		Price: amocrm.Int64(500),
	})
	require.NoError(t, err)
	require.Len(t, created, 1)
	assert.Equal(t, int64(42), *created[0].ID)
}

func TestLeadsClient_CreateRequiresRecords(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, "http://127.0.0.1:1")

	_, err := client.Leads().Create(context.Background())
	assert.ErrorIs(t, err, amocrm.ErrNoRecordsProvided)
}

func TestLeadsClient_CreateComplex(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/api/v4/leads/complex", request.URL.Path)

		var body []map[string]any
		require.NoError(t, json.NewDecoder(request.Body).Decode(&body))
		require.Len(t, body, 1)
		assert.Equal(t, "Deal", body[0]["name"])

		embedded, ok := body[0]["_embedded"].(map[string]any)
		require.True(t, ok)
		contacts, ok := embedded["contacts"].([]any)
		require.True(t, ok)
		require.Len(t, contacts, 1)
		assert.Equal(t, map[string]any{"first_name": "Ada"}, contacts[0])

		_, _ = writer.Write([]byte(`[{"id": 42, "contact_id": 7, "request_id": "0", "merged": false}]`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	result, err := client.Leads().CreateComplex(context.Background(),
		&amocrm.Lead{Name: amocrm.String("Deal")},
		&amocrm.Contact{FirstName: amocrm.String("Ada")})
	require.NoError(t, err)
	assert.Equal(t, int64(42), result.ID)
	assert.Equal(t, int64(7), result.ContactID)
}

func TestLeadsClient_Update(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/api/v4/leads/42", request.URL.Path)
		assert.Equal(t, http.MethodPatch, request.Method)

		var body map[string]any
		require.NoError(t, json.NewDecoder(request.Body).Decode(&body))
		assert.Equal(t, float64(42), body["id"])
		assert.Equal(t, "Renamed", body["name"])

		_, _ = writer.Write([]byte(`{"id": 42, "updated_at": 1672531200}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	result, err := client.Leads().Update(context.Background(), &amocrm.Lead{
		ID:   amocrm.Int64(42),
		Name: amocrm.String("Renamed"),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(42), result.ID)
	require.NotNil(t, result.UpdatedAt)
}

func TestLeadsClient_UpdateWithoutIDFailsBeforeNetwork(t *testing.T) {
	t.Parallel()

	// An unroutable endpoint: the precondition check must fire before
	// any request is attempted.
	client := newTestClient(t, "http://127.0.0.1:1")

	_, err := client.Leads().Update(context.Background(), &amocrm.Lead{Name: amocrm.String("x")})
	require.Error(t, err)

	var preconditionErr *amocrm.PreconditionError
	require.ErrorAs(t, err, &preconditionErr)
}
