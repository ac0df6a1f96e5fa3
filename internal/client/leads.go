package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"

	"github.com/fieldline-io/amocrm-client/internal/http"
	"github.com/fieldline-io/amocrm-client/pkg/amocrm"
)

// leadExpansions is the default "with" expansion for lead reads.
const leadExpansions = "contacts,loss_reason"

// LeadsClient implements amocrm.LeadsClient.
type LeadsClient[L amocrm.LeadRecord, C amocrm.ContactRecord] struct {
	httpClient *http.Client
	newLead    func() L
	newContact func() C
}

// Get implements amocrm.LeadsClient.Get.
func (c *LeadsClient[L, C]) Get(ctx context.Context, leadID int64) (L, error) {
	var zero L

	query := url.Values{"with": []string{leadExpansions}}

	resp, err := c.httpClient.Get(ctx, fmt.Sprintf("%s/leads/%d", basePath, leadID), query)
	if err != nil {
		return zero, fmt.Errorf("getting lead: %w", err)
	}

	if !resp.Success() {
		return zero, apiError(resp)
	}

	lead := c.newLead()
	if err := json.Unmarshal(resp.Body, lead); err != nil {
		return zero, fmt.Errorf("parsing lead response: %w", err)
	}

	return lead, nil
}

// Links implements amocrm.LeadsClient.Links.
func (c *LeadsClient[L, C]) Links(ctx context.Context, leadID int64) ([]amocrm.Link, error) {
	resp, err := c.httpClient.Get(ctx, fmt.Sprintf("%s/leads/%d/links", basePath, leadID), nil)
	if err != nil {
		return nil, fmt.Errorf("getting lead links: %w", err)
	}

	if !resp.Success() {
		return nil, apiError(resp)
	}

	return decodeLinks(resp.Body)
}

// List implements amocrm.LeadsClient.List. The iterator owns its
// parameter set; the filters may be reused freely across calls.
func (c *LeadsClient[L, C]) List(ctx context.Context, limit int, filters ...amocrm.Filter) *amocrm.RecordIterator[L] {
	if limit <= 0 {
		limit = amocrm.ListPageSize
	}

	params := url.Values{
		"with":  []string{leadExpansions},
		"limit": []string{strconv.Itoa(limit)},
	}
	params = amocrm.MergeFilterParams(params, filters...)

	return amocrm.NewRecordIterator(ctx, c.httpClient, basePath+"/leads", "leads", params, c.newLead)
}

// Create implements amocrm.LeadsClient.Create. Only fields the caller
// populated are sent; the returned records carry the server-assigned
// identifiers.
func (c *LeadsClient[L, C]) Create(ctx context.Context, leads ...L) ([]L, error) {
	if len(leads) == 0 {
		return nil, amocrm.ErrNoRecordsProvided
	}

	payloads := make([]map[string]any, 0, len(leads))
	for _, lead := range leads {
		payloads = append(payloads, lead.CreatePayload())
	}

	resp, err := c.httpClient.Post(ctx, basePath+"/leads", payloads)
	if err != nil {
		return nil, fmt.Errorf("creating leads: %w", err)
	}

	if !resp.Success() {
		return nil, apiError(resp)
	}

	page, err := amocrm.DecodeList(resp.Body, "leads", c.newLead)
	if err != nil {
		return nil, fmt.Errorf("parsing create response: %w", err)
	}

	return page.Resources, nil
}

// CreateComplex implements amocrm.LeadsClient.CreateComplex: one lead
// with one contact nested under its embedded contacts key. The API
// returns one outer object per requested lead; with a single lead only
// the first element is meaningful.
func (c *LeadsClient[L, C]) CreateComplex(ctx context.Context, lead L, contact C) (*amocrm.ComplexCreateResponse, error) {
	leadData := lead.CreatePayload()
	leadData["_embedded"] = map[string]any{
		"contacts": []map[string]any{contact.CreatePayload()},
	}

	resp, err := c.httpClient.Post(ctx, basePath+"/leads/complex", []map[string]any{leadData})
	if err != nil {
		return nil, fmt.Errorf("creating complex lead: %w", err)
	}

	if !resp.Success() {
		return nil, apiError(resp)
	}

	var results []amocrm.ComplexCreateResponse
	if err := json.Unmarshal(resp.Body, &results); err != nil {
		return nil, &amocrm.ValidationError{Path: "complex create response", Err: err}
	}

	if len(results) == 0 {
		return nil, amocrm.ErrEmptyResponse
	}

	return &results[0], nil
}

// Update implements amocrm.LeadsClient.Update. The lead must carry an
// identifier; the check runs before any network call.
func (c *LeadsClient[L, C]) Update(ctx context.Context, lead L) (*amocrm.UpdateResponse, error) {
	leadID, ok := lead.RecordID()
	if !ok {
		return nil, &amocrm.PreconditionError{Op: "update lead", Reason: "record has no identifier"}
	}

	resp, err := c.httpClient.Patch(ctx, fmt.Sprintf("%s/leads/%d", basePath, leadID), lead.UpdatePayload())
	if err != nil {
		return nil, fmt.Errorf("updating lead: %w", err)
	}

	if !resp.Success() {
		return nil, apiError(resp)
	}

	var result amocrm.UpdateResponse
	if err := json.Unmarshal(resp.Body, &result); err != nil {
		return nil, &amocrm.ValidationError{Path: "update response", Err: err}
	}

	return &result, nil
}
