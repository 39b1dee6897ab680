package fetch

import (
	"errors"
	"net/http"

	"github.com/conn-castle/buildtools/internal/messages"
)

// Kind classifies why a fetch failed.
type Kind int

// Fetch failure kinds.
const (
	// KindNetwork covers DNS, connection, TLS and timeout failures, including context cancellation.
	KindNetwork Kind = iota + 1
	// KindHTTPStatus is a response outside the 2xx range.
	KindHTTPStatus
	// KindArchive covers oversized bodies, unreadable zips and missing entries.
	KindArchive
	// KindFilesystem covers failures writing the extracted entry.
	KindFilesystem
)

// String returns a short label for the kind.
func (k Kind) String() string {
	switch k {
	case KindNetwork:
		return messages.FetchKindNetwork
	case KindHTTPStatus:
		return messages.FetchKindHTTPStatus
	case KindArchive:
		return messages.FetchKindArchive
	case KindFilesystem:
		return messages.FetchKindFilesystem
	default:
		return messages.FetchKindUnknown
	}
}

// Error is returned by FetchAndExtract for every failure.
type Error struct {
	Kind Kind
	URL  string
	// StatusCode and Status are set for KindHTTPStatus.
	StatusCode int
	Status     string
	Err        error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.Kind.String()
	}
	return e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Actionable reports whether the failure is likely fixable by the maintainers updating the URL.
// Only 4xx responses qualify; 5xx responses are treated as transient server trouble.
func (e *Error) Actionable() bool {
	return e != nil && e.Kind == KindHTTPStatus &&
		e.StatusCode >= http.StatusBadRequest && e.StatusCode < http.StatusInternalServerError
}

// IsKind reports whether err is a fetch Error of the given kind.
func IsKind(err error, kind Kind) bool {
	var fetchErr *Error
	if !errors.As(err, &fetchErr) {
		return false
	}
	return fetchErr.Kind == kind
}
