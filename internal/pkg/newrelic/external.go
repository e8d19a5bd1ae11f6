package newrelic

import (
	"net/http"
	"time"

	"github.com/newrelic/go-agent/v3/newrelic"
)

// NewHTTPClient returns a client whose requests are recorded as external
// segments of the transaction carried by the request context
func NewHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout:   timeout,
		Transport: newrelic.NewRoundTripper(http.DefaultTransport),
	}
}
