package amocrm

import (
	"fmt"
	"net/url"
)

// Filter describes one query constraint. A Filter renders itself as
// query parameters deterministically from its own fields alone; no
// cross-filter validation is performed, the server is the final
// arbiter.
type Filter interface {
	Params() url.Values
}

// EqFilter constrains a field to one value: filter[field]=value.
type EqFilter struct {
	Field string
	Value string
}

// Params implements Filter.
func (f EqFilter) Params() url.Values {
	return url.Values{fmt.Sprintf("filter[%s]", f.Field): []string{f.Value}}
}

// Eq builds an EqFilter.
func Eq(field, value string) Filter {
	return EqFilter{Field: field, Value: value}
}

// InFilter constrains a field to any of several values:
// filter[field][0]=v0, filter[field][1]=v1, ...
type InFilter struct {
	Field  string
	Values []string
}

// Params implements Filter.
func (f InFilter) Params() url.Values {
	params := url.Values{}
	for i, value := range f.Values {
		params.Set(fmt.Sprintf("filter[%s][%d]", f.Field, i), value)
	}

	return params
}

// In builds an InFilter.
func In(field string, values ...string) Filter {
	return InFilter{Field: field, Values: values}
}

// RangeFilter constrains a field to an inclusive range:
// filter[field][from]=..., filter[field][to]=... Either bound may be
// empty.
type RangeFilter struct {
	Field string
	From  string
	To    string
}

// Params implements Filter.
func (f RangeFilter) Params() url.Values {
	params := url.Values{}
	if f.From != "" {
		params.Set(fmt.Sprintf("filter[%s][from]", f.Field), f.From)
	}

	if f.To != "" {
		params.Set(fmt.Sprintf("filter[%s][to]", f.Field), f.To)
	}

	return params
}

// Between builds a RangeFilter.
func Between(field, from, to string) Filter {
	return RangeFilter{Field: field, From: from, To: to}
}

// QueryFilter is a full-text search constraint: query=...
type QueryFilter struct {
	Query string
}

// Params implements Filter.
func (f QueryFilter) Params() url.Values {
	return url.Values{"query": []string{f.Query}}
}

// Query builds a QueryFilter.
func Query(q string) Filter {
	return QueryFilter{Query: q}
}

// MergeFilterParams unions the parameters of all filters, in order,
// into params. On key collision the later filter wins, matching
// ordinary map-merge semantics.
func MergeFilterParams(params url.Values, filters ...Filter) url.Values {
	if params == nil {
		params = url.Values{}
	}

	for _, filter := range filters {
		for key, values := range filter.Params() {
			params[key] = values
		}
	}

	return params
}
