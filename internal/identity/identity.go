// Package identity resolves the current customer for a request. Session
// and auth design live outside this service; whatever fronts it injects
// the resolved id as a header.
package identity

import "net/http"

const headerName = "X-Customer-ID"

// Provider yields the current customer id, or "" when none is resolved.
type Provider interface {
	CurrentCustomerID(r *http.Request) string
}

// HeaderProvider reads the customer id injected by the auth layer.
type HeaderProvider struct{}

func (HeaderProvider) CurrentCustomerID(r *http.Request) string {
	return r.Header.Get(headerName)
}
