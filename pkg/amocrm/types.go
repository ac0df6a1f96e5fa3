package amocrm

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// Timestamp wraps time.Time with the wire formats amoCRM uses for
// timestamps: Unix epoch seconds or an RFC 3339 string, with or without
// a UTC offset. Whatever the server supplied, the parsed value is
// normalized to UTC.
type Timestamp struct {
	time.Time
}

// NewTimestamp returns a Timestamp normalized to UTC.
func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{Time: t.UTC()}
}

// UnmarshalJSON implements json.Unmarshaler.
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	s := string(data)
	if s == "null" {
		return nil
	}

	if epoch, err := strconv.ParseInt(s, 10, 64); err == nil {
		t.Time = time.Unix(epoch, 0).UTC()
		return nil
	}

	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return fmt.Errorf("parsing timestamp: %w", err)
	}

	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02 15:04:05"} {
		if parsed, err := time.Parse(layout, str); err == nil {
			t.Time = parsed.UTC()
			return nil
		}
	}

	return fmt.Errorf("unrecognized timestamp %q", str)
}

// MarshalJSON implements json.Marshaler. Timestamps are emitted as
// epoch seconds, the canonical amoCRM request format.
func (t Timestamp) MarshalJSON() ([]byte, error) {
	return []byte(strconv.FormatInt(t.Unix(), 10)), nil
}

// Response is the raw result of one HTTP exchange as seen by this
// client: a status code and the body bytes. Interpretation of the
// status belongs to the resource layer.
type Response struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
}

// Success reports whether the response carries a 2xx status.
func (r *Response) Success() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// Requester is the transport collaborator. It issues one HTTP request
// and returns the status code and raw body. An error is returned only
// for transport-level failures; non-2xx statuses are reported through
// Response.StatusCode.
type Requester interface {
	Request(ctx context.Context, method, path string, query url.Values, body any) (*Response, error)
}

// ListResponse is one decoded page of a collection endpoint.
type ListResponse[T any] struct {
	Page      int
	Resources []T
}

// listEnvelope is the wire shape shared by every collection endpoint:
// a page marker plus resources nested under a per-resource key in
// "_embedded".
type listEnvelope struct {
	Page     int                        `json:"_page"`
	Embedded map[string]json.RawMessage `json:"_embedded"`
}

// DecodeList decodes one collection response body. key names the
// resource collection inside "_embedded" ("leads", "contacts", ...).
// A missing or empty collection decodes to zero resources.
func DecodeList[T any](body []byte, key string, factory func() T) (*ListResponse[T], error) {
	if len(body) == 0 {
		return &ListResponse[T]{}, nil
	}

	var envelope listEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, &ValidationError{Path: "_embedded", Err: err}
	}

	result := &ListResponse[T]{Page: envelope.Page}

	raw, ok := envelope.Embedded[key]
	if !ok {
		return result, nil
	}

	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, &ValidationError{Path: "_embedded." + key, Err: err}
	}

	for i, item := range items {
		record := factory()
		if err := json.Unmarshal(item, record); err != nil {
			return nil, &ValidationError{Path: fmt.Sprintf("_embedded.%s[%d]", key, i), Err: err}
		}

		result.Resources = append(result.Resources, record)
	}

	return result, nil
}

// UpdateResponse is the structured result of a PATCH: the identifier
// plus server-side modification metadata, not the full record.
type UpdateResponse struct {
	ID        int64      `json:"id"         yaml:"id"`
	Name      string     `json:"name,omitempty" yaml:"name,omitempty"`
	UpdatedAt *Timestamp `json:"updated_at,omitempty" yaml:"updated_at,omitempty"`
}

// ComplexCreateResponse is one element of the /leads/complex response.
type ComplexCreateResponse struct {
	ID        int64  `json:"id"         yaml:"id"`
	ContactID int64  `json:"contact_id" yaml:"contact_id"`
	CompanyID int64  `json:"company_id" yaml:"company_id"`
	RequestID string `json:"request_id" yaml:"request_id"`
	Merged    bool   `json:"merged"     yaml:"merged"`
}

// Link represents one entry of a /links endpoint: a relation from the
// parent record to another entity.
type Link struct {
	ToEntityID   int64          `json:"to_entity_id"   yaml:"to_entity_id"`
	ToEntityType string         `json:"to_entity_type" yaml:"to_entity_type"`
	Metadata     map[string]any `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}
