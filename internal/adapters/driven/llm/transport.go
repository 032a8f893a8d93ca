// Package llm holds helpers shared by the model gateway adapters.
package llm

import (
	"crypto/tls"
	"net/http"
	"time"
)

// NewHTTPClient returns a client with the given request timeout.
// When insecure is set the client accepts any server certificate, which
// self-hosted gateways behind a private CA need.
func NewHTTPClient(timeout time.Duration, insecure bool) *http.Client {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	if insecure {
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true} //nolint:gosec // opt-in via llm.insecure_skip_verify
	}
	return &http.Client{
		Timeout:   timeout,
		Transport: transport,
	}
}

// Truncate shortens an error body for inclusion in a message.
func Truncate(body []byte, limit int) string {
	if len(body) <= limit {
		return string(body)
	}
	return string(body[:limit]) + "..."
}
