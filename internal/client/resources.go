package client

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/fieldline-io/amocrm-client/internal/http"
	"github.com/fieldline-io/amocrm-client/pkg/amocrm"
)

// getResource fetches and decodes one single-object endpoint.
func getResource[T any](ctx context.Context, httpClient *http.Client, path, what string) (*T, error) {
	resp, err := httpClient.Get(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("getting %s: %w", what, err)
	}

	if !resp.Success() {
		return nil, apiError(resp)
	}

	resource := new(T)
	if err := json.Unmarshal(resp.Body, resource); err != nil {
		return nil, &amocrm.ValidationError{Path: what, Err: err}
	}

	return resource, nil
}

// listResource fetches one non-paginated collection endpoint and
// returns its resources as values.
func listResource[T any](ctx context.Context, httpClient *http.Client, path, key, what string) ([]T, error) {
	resp, err := httpClient.Get(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", what, err)
	}

	if !resp.Success() {
		return nil, apiError(resp)
	}

	page, err := amocrm.DecodeList(resp.Body, key, func() *T { return new(T) })
	if err != nil {
		return nil, fmt.Errorf("parsing %s response: %w", what, err)
	}

	items := make([]T, 0, len(page.Resources))
	for _, item := range page.Resources {
		items = append(items, *item)
	}

	return items, nil
}

// PipelinesClient implements amocrm.PipelinesClient.
type PipelinesClient struct {
	httpClient *http.Client
}

// Get implements amocrm.PipelinesClient.Get.
func (c *PipelinesClient) Get(ctx context.Context, pipelineID int64) (*amocrm.Pipeline, error) {
	return getResource[amocrm.Pipeline](ctx, c.httpClient, fmt.Sprintf("%s/leads/pipelines/%d", basePath, pipelineID), "pipeline")
}

// List implements amocrm.PipelinesClient.List.
func (c *PipelinesClient) List(ctx context.Context) ([]amocrm.Pipeline, error) {
	return listResource[amocrm.Pipeline](ctx, c.httpClient, basePath+"/leads/pipelines", "pipelines", "pipelines")
}

// GetStatus implements amocrm.PipelinesClient.GetStatus.
func (c *PipelinesClient) GetStatus(ctx context.Context, pipelineID, statusID int64) (*amocrm.Status, error) {
	path := fmt.Sprintf("%s/leads/pipelines/%d/statuses/%d", basePath, pipelineID, statusID)

	return getResource[amocrm.Status](ctx, c.httpClient, path, "pipeline status")
}

// ListStatuses implements amocrm.PipelinesClient.ListStatuses.
func (c *PipelinesClient) ListStatuses(ctx context.Context, pipelineID int64) ([]amocrm.Status, error) {
	path := fmt.Sprintf("%s/leads/pipelines/%d/statuses", basePath, pipelineID)

	return listResource[amocrm.Status](ctx, c.httpClient, path, "statuses", "pipeline statuses")
}

// CustomFieldsClient implements amocrm.CustomFieldsClient.
type CustomFieldsClient struct {
	httpClient *http.Client
}

// Get implements amocrm.CustomFieldsClient.Get.
func (c *CustomFieldsClient) Get(ctx context.Context, fieldID int64) (*amocrm.CustomField, error) {
	return getResource[amocrm.CustomField](ctx, c.httpClient, fmt.Sprintf("%s/leads/custom_fields/%d", basePath, fieldID), "custom field")
}

// List implements amocrm.CustomFieldsClient.List.
func (c *CustomFieldsClient) List(ctx context.Context) *amocrm.RecordIterator[*amocrm.CustomField] {
	return amocrm.NewRecordIterator(ctx, c.httpClient, basePath+"/leads/custom_fields", "custom_fields", nil,
		func() *amocrm.CustomField { return &amocrm.CustomField{} })
}

// UsersClient implements amocrm.UsersClient.
type UsersClient struct {
	httpClient *http.Client
}

// Get implements amocrm.UsersClient.Get.
func (c *UsersClient) Get(ctx context.Context, userID int64) (*amocrm.User, error) {
	return getResource[amocrm.User](ctx, c.httpClient, fmt.Sprintf("%s/users/%d", basePath, userID), "user")
}

// List implements amocrm.UsersClient.List.
func (c *UsersClient) List(ctx context.Context) *amocrm.RecordIterator[*amocrm.User] {
	return amocrm.NewRecordIterator(ctx, c.httpClient, basePath+"/users", "users", nil,
		func() *amocrm.User { return &amocrm.User{} })
}

// LossReasonsClient implements amocrm.LossReasonsClient.
type LossReasonsClient struct {
	httpClient *http.Client
}

// Get implements amocrm.LossReasonsClient.Get.
func (c *LossReasonsClient) Get(ctx context.Context, lossReasonID int64) (*amocrm.LossReason, error) {
	return getResource[amocrm.LossReason](ctx, c.httpClient, fmt.Sprintf("%s/leads/loss_reasons/%d", basePath, lossReasonID), "loss reason")
}

// List implements amocrm.LossReasonsClient.List.
func (c *LossReasonsClient) List(ctx context.Context) ([]amocrm.LossReason, error) {
	return listResource[amocrm.LossReason](ctx, c.httpClient, basePath+"/leads/loss_reasons", "loss_reasons", "loss reasons")
}

// TagsClient implements amocrm.TagsClient.
type TagsClient struct {
	httpClient *http.Client
}

// List implements amocrm.TagsClient.List.
func (c *TagsClient) List(ctx context.Context) *amocrm.RecordIterator[*amocrm.Tag] {
	return amocrm.NewRecordIterator(ctx, c.httpClient, basePath+"/leads/tags", "tags", nil,
		func() *amocrm.Tag { return &amocrm.Tag{} })
}
