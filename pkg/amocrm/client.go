package amocrm

import (
	"context"
	"time"
)

// Logger interface for logging.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// Config represents client configuration for building an amocrm
// Client.
//
// Authentication precedence, applied by the concrete client:
//  1. AccessToken: used directly as a static Bearer token. amoCRM
//     long-lived tokens fit here.
//  2. ClientID/ClientSecret + RefreshToken: the refresh-token grant is
//     run against "<BaseURL>/oauth2/access_token", with tokens renewed
//     ahead of expiry.
//  3. No credentials: requests are sent without authentication (only
//     useful against test servers).
type Config struct {
	// BaseURL is the account endpoint, e.g.
	// "https://example.amocrm.ru". amoclient.New normalizes it by
	// trimming a trailing slash and adding "https://" when no scheme is
	// present. API paths are resolved under "<BaseURL>/api/v4".
	BaseURL string

	// AccessToken, if set, is used directly as a Bearer token.
	AccessToken string
	// ClientID and ClientSecret identify the OAuth2 integration.
	ClientID     string
	ClientSecret string
	// RedirectURI is the integration redirect, required by the token
	// endpoint even for the refresh-token grant.
	RedirectURI string
	// RefreshToken seeds the refresh-token grant.
	RefreshToken string

	// RetryMax is the maximum retry count for transient transport
	// failures; 0 selects the transport default.
	RetryMax int
	// RetryWaitMin and RetryWaitMax bound the retry backoff.
	RetryWaitMin time.Duration
	RetryWaitMax time.Duration
	// HTTPTimeout is the per-request timeout; prefer context deadlines
	// on client calls.
	HTTPTimeout time.Duration

	// Debug enables verbose HTTP logging when a Logger is provided.
	Debug bool
	// Logger is the optional structured logger used by the transport.
	Logger Logger
	// UserAgent overrides the default User-Agent header.
	UserAgent string
}

// LeadsClient operates on leads. L is the concrete lead type the
// client was configured with.
type LeadsClient[L LeadRecord, C ContactRecord] interface {
	// Get fetches one lead with contacts and loss reason expanded.
	Get(ctx context.Context, leadID int64) (L, error)
	// Links lists the entities linked to a lead.
	Links(ctx context.Context, leadID int64) ([]Link, error)
	// List lazily iterates leads matching the filters. limit <= 0
	// selects ListPageSize.
	List(ctx context.Context, limit int, filters ...Filter) *RecordIterator[L]
	// Create adds leads and returns the created records (identifier
	// and request metadata populated by the server).
	Create(ctx context.Context, leads ...L) ([]L, error)
	// CreateComplex adds a lead with an attached contact in one call.
	CreateComplex(ctx context.Context, lead L, contact C) (*ComplexCreateResponse, error)
	// Update patches a lead; the lead must carry an identifier.
	Update(ctx context.Context, lead L) (*UpdateResponse, error)
}

// ContactsClient operates on contacts.
type ContactsClient[C ContactRecord] interface {
	Get(ctx context.Context, contactID int64) (C, error)
	Links(ctx context.Context, contactID int64) ([]Link, error)
	List(ctx context.Context, limit int, filters ...Filter) *RecordIterator[C]
	Create(ctx context.Context, contacts ...C) ([]C, error)
	Update(ctx context.Context, contact C) (*UpdateResponse, error)
}

// PipelinesClient reads lead pipelines and their statuses.
type PipelinesClient interface {
	Get(ctx context.Context, pipelineID int64) (*Pipeline, error)
	List(ctx context.Context) ([]Pipeline, error)
	GetStatus(ctx context.Context, pipelineID, statusID int64) (*Status, error)
	ListStatuses(ctx context.Context, pipelineID int64) ([]Status, error)
}

// CustomFieldsClient reads lead custom field definitions.
type CustomFieldsClient interface {
	Get(ctx context.Context, fieldID int64) (*CustomField, error)
	List(ctx context.Context) *RecordIterator[*CustomField]
}

// UsersClient reads account users.
type UsersClient interface {
	Get(ctx context.Context, userID int64) (*User, error)
	List(ctx context.Context) *RecordIterator[*User]
}

// LossReasonsClient reads lead loss reasons.
type LossReasonsClient interface {
	Get(ctx context.Context, lossReasonID int64) (*LossReason, error)
	List(ctx context.Context) ([]LossReason, error)
}

// TagsClient reads lead tags.
type TagsClient interface {
	List(ctx context.Context) *RecordIterator[*Tag]
}

// Client is the façade over all resource clients. The concrete lead
// and contact types are fixed when the client is constructed and every
// operation returns instances of exactly those types.
type Client[L LeadRecord, C ContactRecord] interface {
	Leads() LeadsClient[L, C]
	Contacts() ContactsClient[C]
	Pipelines() PipelinesClient
	CustomFields() CustomFieldsClient
	Users() UsersClient
	LossReasons() LossReasonsClient
	Tags() TagsClient
}
