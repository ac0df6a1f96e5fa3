package amocrm

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

// DefaultPageSize is the page size used by enumeration endpoints when
// the caller does not supply a limit.
const DefaultPageSize = 250

// ListPageSize is the default page size of the leads and contacts list
// operations.
const ListPageSize = 50

// RecordIterator lazily paginates one list endpoint. It is pull-based
// and forward-only: page N+1 is never requested before every record of
// page N has been yielded and the consumer asks for more. A non-2xx
// status from the server ends the sequence cleanly; it is not an
// error.
//
// An iterator owns its parameter set (the constructor copies it), so
// reusing one filter list across several list calls is safe. A single
// iterator is not safe for concurrent use.
type RecordIterator[T any] struct {
	ctx       context.Context
	requester Requester
	path      string
	key       string
	params    url.Values
	factory   func() T

	page      int
	buffer    []T
	index     int
	exhausted bool
	err       error
}

// NewRecordIterator builds an iterator over the collection at path,
// whose records sit under key inside "_embedded". params may carry
// "limit" and "page" overrides and any filter parameters; it is copied,
// never aliased.
func NewRecordIterator[T any](ctx context.Context, requester Requester, path, key string, params url.Values, factory func() T) *RecordIterator[T] {
	owned := url.Values{}
	for k, values := range params {
		owned[k] = append([]string(nil), values...)
	}

	if owned.Get("limit") == "" {
		owned.Set("limit", strconv.Itoa(DefaultPageSize))
	}

	page := 1
	if p, err := strconv.Atoi(owned.Get("page")); err == nil && p > 0 {
		page = p
	}

	return &RecordIterator[T]{
		ctx:       ctx,
		requester: requester,
		path:      path,
		key:       key,
		params:    owned,
		factory:   factory,
		page:      page,
	}
}

// HasNext reports whether another record is available, fetching the
// next page when the current one is drained. It also returns true when
// a pending error must be collected via Next.
func (it *RecordIterator[T]) HasNext() bool {
	for it.err == nil && !it.exhausted && it.index >= len(it.buffer) {
		it.fetchPage()
	}

	return it.err != nil || it.index < len(it.buffer)
}

// Next returns the next record. It returns ErrNoMoreRecords once the
// sequence has ended, or the transport/validation error that stopped
// it.
func (it *RecordIterator[T]) Next() (T, error) {
	var zero T

	if !it.HasNext() {
		return zero, ErrNoMoreRecords
	}

	if it.err != nil {
		err := it.err
		it.err = nil
		it.exhausted = true

		return zero, err
	}

	record := it.buffer[it.index]
	it.index++

	return record, nil
}

// All drains the remaining records into a slice.
func (it *RecordIterator[T]) All() ([]T, error) {
	var records []T

	for it.HasNext() {
		record, err := it.Next()
		if err != nil {
			return records, err
		}

		records = append(records, record)
	}

	return records, nil
}

func (it *RecordIterator[T]) fetchPage() {
	it.params.Set("page", strconv.Itoa(it.page))

	resp, err := it.requester.Request(it.ctx, http.MethodGet, it.path, it.params, nil)
	if err != nil {
		it.err = err
		return
	}

	// The server signals absence of further pages with a non-success
	// status, or 204 for a collection with nothing left; out-of-range
	// pages and genuine end-of-data are not distinguished. An empty but
	// successful 200 page is parsed normally and does not terminate.
	if !resp.Success() || resp.StatusCode == http.StatusNoContent {
		it.exhausted = true
		return
	}

	page, err := DecodeList(resp.Body, it.key, it.factory)
	if err != nil {
		it.err = err
		return
	}

	it.buffer = page.Resources
	it.index = 0
	it.page++
}
