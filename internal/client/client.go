// Package client implements the amocrm.Client interfaces on top of the
// internal HTTP transport.
package client

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/fieldline-io/amocrm-client/internal/auth"
	"github.com/fieldline-io/amocrm-client/internal/http"
	"github.com/fieldline-io/amocrm-client/pkg/amocrm"
)

// basePath prefixes every resource path.
const basePath = "/api/v4"

// Client implements amocrm.Client. The concrete lead and contact
// factories are fixed at construction; after that the client holds no
// mutable state and is safe for concurrent use.
type Client[L amocrm.LeadRecord, C amocrm.ContactRecord] struct {
	httpClient *http.Client

	leads        *LeadsClient[L, C]
	contacts     *ContactsClient[C]
	pipelines    *PipelinesClient
	customFields *CustomFieldsClient
	users        *UsersClient
	lossReasons  *LossReasonsClient
	tags         *TagsClient
}

// New creates a client from config and record factories. The factories
// are the explicit subtype configuration: every lead-returning
// operation instantiates newLead, every contact-returning operation
// newContact.
func New[L amocrm.LeadRecord, C amocrm.ContactRecord](config *amocrm.Config, newLead func() L, newContact func() C) (*Client[L, C], error) {
	if config == nil {
		return nil, amocrm.ErrConfigRequired
	}

	if config.BaseURL == "" {
		return nil, amocrm.ErrBaseURLRequired
	}

	if newLead == nil || newContact == nil {
		return nil, amocrm.ErrFactoryRequired
	}

	httpClient := http.NewClient(config.BaseURL, createTokenManager(config), httpOptions(config)...)

	client := &Client[L, C]{httpClient: httpClient}
	client.leads = &LeadsClient[L, C]{httpClient: httpClient, newLead: newLead, newContact: newContact}
	client.contacts = &ContactsClient[C]{httpClient: httpClient, newContact: newContact}
	client.pipelines = &PipelinesClient{httpClient: httpClient}
	client.customFields = &CustomFieldsClient{httpClient: httpClient}
	client.users = &UsersClient{httpClient: httpClient}
	client.lossReasons = &LossReasonsClient{httpClient: httpClient}
	client.tags = &TagsClient{httpClient: httpClient}

	return client, nil
}

// createTokenManager selects the token manager matching the configured
// credentials.
func createTokenManager(config *amocrm.Config) auth.TokenManager {
	if config.AccessToken != "" {
		return auth.NewStaticTokenManager(config.AccessToken)
	}

	if config.ClientID != "" && config.ClientSecret != "" && config.RefreshToken != "" {
		return auth.NewOAuth2TokenManager(&auth.OAuth2Config{
			TokenURL:     strings.TrimSuffix(config.BaseURL, "/") + "/oauth2/access_token",
			ClientID:     config.ClientID,
			ClientSecret: config.ClientSecret,
			RedirectURI:  config.RedirectURI,
			RefreshToken: config.RefreshToken,
		})
	}

	return nil // No authentication
}

func httpOptions(config *amocrm.Config) []http.Option {
	var opts []http.Option

	if config.Logger != nil {
		opts = append(opts, http.WithLogger(config.Logger))
	}

	if config.Debug {
		opts = append(opts, http.WithDebug(true))
	}

	if config.RetryMax > 0 {
		opts = append(opts, http.WithRetryConfig(config.RetryMax, config.RetryWaitMin, config.RetryWaitMax))
	}

	if config.HTTPTimeout > 0 {
		opts = append(opts, http.WithTimeout(config.HTTPTimeout))
	}

	if config.UserAgent != "" {
		opts = append(opts, http.WithUserAgent(config.UserAgent))
	}

	return opts
}

// Leads implements amocrm.Client.
func (c *Client[L, C]) Leads() amocrm.LeadsClient[L, C] { return c.leads }

// Contacts implements amocrm.Client.
func (c *Client[L, C]) Contacts() amocrm.ContactsClient[C] { return c.contacts }

// Pipelines implements amocrm.Client.
func (c *Client[L, C]) Pipelines() amocrm.PipelinesClient { return c.pipelines }

// CustomFields implements amocrm.Client.
func (c *Client[L, C]) CustomFields() amocrm.CustomFieldsClient { return c.customFields }

// Users implements amocrm.Client.
func (c *Client[L, C]) Users() amocrm.UsersClient { return c.users }

// LossReasons implements amocrm.Client.
func (c *Client[L, C]) LossReasons() amocrm.LossReasonsClient { return c.lossReasons }

// Tags implements amocrm.Client.
func (c *Client[L, C]) Tags() amocrm.TagsClient { return c.tags }

// apiError maps a non-success single-object response to an error.
func apiError(resp *amocrm.Response) error {
	apiErr := &amocrm.APIError{Status: resp.StatusCode, Title: "API request failed"}

	var problem struct {
		Status int    `json:"status"`
		Title  string `json:"title"`
		Detail string `json:"detail"`
	}

	if err := json.Unmarshal(resp.Body, &problem); err == nil && problem.Title != "" {
		apiErr.Title = problem.Title
		apiErr.Detail = problem.Detail
	}

	return apiErr
}

// decodeLinks parses a /links collection response into values.
func decodeLinks(body []byte) ([]amocrm.Link, error) {
	page, err := amocrm.DecodeList(body, "links", func() *amocrm.Link { return &amocrm.Link{} })
	if err != nil {
		return nil, fmt.Errorf("parsing links response: %w", err)
	}

	links := make([]amocrm.Link, 0, len(page.Resources))
	for _, link := range page.Resources {
		links = append(links, *link)
	}

	return links, nil
}
