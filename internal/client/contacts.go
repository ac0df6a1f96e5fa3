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

// contactExpansions is the default "with" expansion for contact reads.
const contactExpansions = "leads"

// ContactsClient implements amocrm.ContactsClient.
type ContactsClient[C amocrm.ContactRecord] struct {
	httpClient *http.Client
	newContact func() C
}

// Get implements amocrm.ContactsClient.Get.
func (c *ContactsClient[C]) Get(ctx context.Context, contactID int64) (C, error) {
	var zero C

	query := url.Values{"with": []string{contactExpansions}}

	resp, err := c.httpClient.Get(ctx, fmt.Sprintf("%s/contacts/%d", basePath, contactID), query)
	if err != nil {
		return zero, fmt.Errorf("getting contact: %w", err)
	}

	if !resp.Success() {
		return zero, apiError(resp)
	}

	contact := c.newContact()
	if err := json.Unmarshal(resp.Body, contact); err != nil {
		return zero, fmt.Errorf("parsing contact response: %w", err)
	}

	return contact, nil
}

// Links implements amocrm.ContactsClient.Links.
func (c *ContactsClient[C]) Links(ctx context.Context, contactID int64) ([]amocrm.Link, error) {
	resp, err := c.httpClient.Get(ctx, fmt.Sprintf("%s/contacts/%d/links", basePath, contactID), nil)
	if err != nil {
		return nil, fmt.Errorf("getting contact links: %w", err)
	}

	if !resp.Success() {
		return nil, apiError(resp)
	}

	return decodeLinks(resp.Body)
}

// List implements amocrm.ContactsClient.List.
func (c *ContactsClient[C]) List(ctx context.Context, limit int, filters ...amocrm.Filter) *amocrm.RecordIterator[C] {
	if limit <= 0 {
		limit = amocrm.ListPageSize
	}

	params := url.Values{
		"with":  []string{contactExpansions},
		"limit": []string{strconv.Itoa(limit)},
	}
	params = amocrm.MergeFilterParams(params, filters...)

	return amocrm.NewRecordIterator(ctx, c.httpClient, basePath+"/contacts", "contacts", params, c.newContact)
}

// Create implements amocrm.ContactsClient.Create.
func (c *ContactsClient[C]) Create(ctx context.Context, contacts ...C) ([]C, error) {
	if len(contacts) == 0 {
		return nil, amocrm.ErrNoRecordsProvided
	}

	payloads := make([]map[string]any, 0, len(contacts))
	for _, contact := range contacts {
		payloads = append(payloads, contact.CreatePayload())
	}

	resp, err := c.httpClient.Post(ctx, basePath+"/contacts", payloads)
	if err != nil {
		return nil, fmt.Errorf("creating contacts: %w", err)
	}

	if !resp.Success() {
		return nil, apiError(resp)
	}

	page, err := amocrm.DecodeList(resp.Body, "contacts", c.newContact)
	if err != nil {
		return nil, fmt.Errorf("parsing create response: %w", err)
	}

	return page.Resources, nil
}

// Update implements amocrm.ContactsClient.Update.
func (c *ContactsClient[C]) Update(ctx context.Context, contact C) (*amocrm.UpdateResponse, error) {
	contactID, ok := contact.RecordID()
	if !ok {
		return nil, &amocrm.PreconditionError{Op: "update contact", Reason: "record has no identifier"}
	}

	resp, err := c.httpClient.Patch(ctx, fmt.Sprintf("%s/contacts/%d", basePath, contactID), contact.UpdatePayload())
	if err != nil {
		return nil, fmt.Errorf("updating contact: %w", err)
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
