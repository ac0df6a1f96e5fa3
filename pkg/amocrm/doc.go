// Package amocrm defines the public surface of the amoCRM API client:
// record types for leads, contacts, pipelines, custom fields, users,
// loss reasons and tags, the filter and pagination primitives used by
// list endpoints, and the client interfaces implemented by
// internal/client.
//
// Use github.com/fieldline-io/amocrm-client/pkg/amoclient to construct
// a client.
package amocrm
