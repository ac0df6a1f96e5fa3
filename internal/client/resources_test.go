package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fieldline-io/amocrm-client/pkg/amocrm"
)

func TestPipelinesClient_GetWithStatuses(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/api/v4/leads/pipelines/3", request.URL.Path)

		_, _ = writer.Write([]byte(`{
			"id": 3,
			"name": "Sales",
			"is_main": true,
			"_embedded": {"statuses": [{"id": 142, "name": "Won", "pipeline_id": 3}]}
		}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	pipeline, err := client.Pipelines().Get(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, int64(3), pipeline.ID)
	assert.True(t, pipeline.IsMain)
	require.Len(t, pipeline.Embedded.Statuses, 1)
	assert.Equal(t, "Won", pipeline.Embedded.Statuses[0].Name)
}

func TestPipelinesClient_List(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/api/v4/leads/pipelines", request.URL.Path)

		_, _ = writer.Write([]byte(`{"_embedded": {"pipelines": [{"id": 3, "name": "Sales"}, {"id": 4, "name": "Support"}]}}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	pipelines, err := client.Pipelines().List(context.Background())
	require.NoError(t, err)
	require.Len(t, pipelines, 2)
	assert.Equal(t, "Support", pipelines[1].Name)
}

func TestPipelinesClient_Statuses(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		switch request.URL.Path {
		case "/api/v4/leads/pipelines/3/statuses":
			_, _ = writer.Write([]byte(`{"_embedded": {"statuses": [{"id": 142, "name": "Won"}]}}`))
		case "/api/v4/leads/pipelines/3/statuses/142":
			_, _ = writer.Write([]byte(`{"id": 142, "name": "Won", "pipeline_id": 3}`))
		default:
			t.Errorf("unexpected path %s", request.URL.Path)
		}
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	statuses, err := client.Pipelines().ListStatuses(context.Background(), 3)
	require.NoError(t, err)
	require.Len(t, statuses, 1)

	status, err := client.Pipelines().GetStatus(context.Background(), 3, 142)
	require.NoError(t, err)
	assert.Equal(t, int64(3), status.PipelineID)
}

func TestCustomFieldsClient_List(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/api/v4/leads/custom_fields", request.URL.Path)

		if request.URL.Query().Get("page") != "1" {
			writer.WriteHeader(http.StatusNoContent)
			return
		}

		_, _ = writer.Write([]byte(`{"_embedded": {"custom_fields": [
			{"id": 9, "name": "Source", "type": "select", "enums": [{"id": 1, "value": "Web"}]}
		]}}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	fields, err := client.CustomFields().List(context.Background()).All()
	require.NoError(t, err)
	require.Len(t, fields, 1)
	assert.Equal(t, "select", fields[0].Type)
	require.Len(t, fields[0].Enums, 1)
	assert.Equal(t, "Web", fields[0].Enums[0].Value)
}

func TestUsersClient_Get(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/api/v4/users/11", request.URL.Path)

		_, _ = writer.Write([]byte(`{"id": 11, "name": "Grace", "email": "grace@example.com"}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	user, err := client.Users().Get(context.Background(), 11)
	require.NoError(t, err)
	assert.Equal(t, "grace@example.com", user.Email)
}

func TestLossReasonsClient_List(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/api/v4/leads/loss_reasons", request.URL.Path)

		_, _ = writer.Write([]byte(`{"_embedded": {"loss_reasons": [{"id": 5, "name": "Too expensive"}]}}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	reasons, err := client.LossReasons().List(context.Background())
	require.NoError(t, err)
	require.Len(t, reasons, 1)
	assert.Equal(t, "Too expensive", reasons[0].Name)
}

func TestTagsClient_List(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/api/v4/leads/tags", request.URL.Path)

		if request.URL.Query().Get("page") != "1" {
			writer.WriteHeader(http.StatusNoContent)
			return
		}

		_, _ = writer.Write([]byte(`{"_embedded": {"tags": [{"id": 1, "name": "vip"}, {"id": 2, "name": "partner"}]}}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	tags, err := client.Tags().List(context.Background()).All()
	require.NoError(t, err)
	require.Len(t, tags, 2)
	assert.Equal(t, "partner", tags[1].Name)
}

func TestResourceGetNotFound(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, _ *http.Request) {
		writer.WriteHeader(http.StatusNotFound)
		_, _ = writer.Write([]byte(`{"title": "Not Found", "status": 404}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	_, err := client.Users().Get(context.Background(), 99)

	var apiErr *amocrm.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
}
