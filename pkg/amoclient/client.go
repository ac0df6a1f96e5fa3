// Package amoclient provides the entry point for creating amoCRM API
// clients.
package amoclient

import (
	"strings"

	"github.com/fieldline-io/amocrm-client/internal/client"
	"github.com/fieldline-io/amocrm-client/pkg/amocrm"
)

// Factories carries the explicit record factories a typed client is
// configured with. Every lead-returning operation of the resulting
// client instantiates NewLead, every contact-returning operation
// NewContact; the binding happens once, at construction.
type Factories[L amocrm.LeadRecord, C amocrm.ContactRecord] struct {
	NewLead    func() L
	NewContact func() C
}

// New creates a client bound to the base Lead and Contact records.
func New(config *amocrm.Config) (amocrm.Client[*amocrm.Lead, *amocrm.Contact], error) {
	return NewTyped(config, Factories[*amocrm.Lead, *amocrm.Contact]{
		NewLead:    func() *amocrm.Lead { return &amocrm.Lead{} },
		NewContact: func() *amocrm.Contact { return &amocrm.Contact{} },
	})
}

// NewTyped creates a client bound to caller-supplied lead and contact
// subtypes. The subtypes embed amocrm.Lead / amocrm.Contact and
// typically add typed accessors over custom field values.
func NewTyped[L amocrm.LeadRecord, C amocrm.ContactRecord](config *amocrm.Config, factories Factories[L, C]) (amocrm.Client[L, C], error) {
	if config == nil {
		return nil, amocrm.ErrConfigRequired
	}

	if config.BaseURL == "" {
		return nil, amocrm.ErrBaseURLRequired
	}

	if factories.NewLead == nil || factories.NewContact == nil {
		return nil, amocrm.ErrFactoryRequired
	}

	normalized := *config
	normalized.BaseURL = normalizeBaseURL(config.BaseURL)

	impl, err := client.New(&normalized, factories.NewLead, factories.NewContact)
	if err != nil {
		return nil, err
	}

	return impl, nil
}

// normalizeBaseURL trims a trailing slash and defaults the scheme to
// https.
func normalizeBaseURL(baseURL string) string {
	baseURL = strings.TrimSuffix(baseURL, "/")
	if !strings.HasPrefix(baseURL, "http://") && !strings.HasPrefix(baseURL, "https://") {
		baseURL = "https://" + baseURL
	}

	return baseURL
}
