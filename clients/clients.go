package clients

import (
	"net/http"
	"time"
)

type HTTP struct {
	c       *http.Client
	timeout time.Duration
	retries int
}

// NewHTTP returns a client whose calls each get timeout in total, retries
// included.
func NewHTTP(timeout time.Duration, retries int) *HTTP {
	if retries < 0 {
		retries = 0
	}
	return &HTTP{c: &http.Client{Timeout: timeout}, timeout: timeout, retries: retries}
}
