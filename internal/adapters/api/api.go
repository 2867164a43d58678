package api

import (
	"net/http"
	"time"
)

const userAgent = "repo-dashboard/1.0"

// Error is a classified failure from a platform API. The message is safe to
// surface to the initiating user as-is.
type Error struct {
	Message string
	// IsPrivate is set on a 404: the repository may exist but be private,
	// which is indistinguishable from not existing without credentials.
	IsPrivate bool
}

func (e *Error) Error() string {
	return e.Message
}

func newHTTPClient() *http.Client {
	return &http.Client{Timeout: 10 * time.Second}
}
