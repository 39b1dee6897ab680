package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/fatih/color"

	"github.com/conn-castle/buildtools/internal/messages"
)

// Report writes a diagnostic for err to w. HTTP failures print the status and URL, with the
// boxed notice for actionable statuses; network failures other than cancellation add a connectivity hint. Anything
// else is printed verbatim.
func Report(w io.Writer, err error) {
	if err == nil {
		return
	}
	errColor := color.New(color.FgRed)

	var fetchErr *Error
	if !errors.As(err, &fetchErr) {
		_, _ = errColor.Fprintln(w, err.Error())
		return
	}

	switch fetchErr.Kind {
	case KindHTTPStatus:
		_, _ = errColor.Fprintf(w, messages.FetchHTTPErrorFmt, fetchErr.StatusCode, http.StatusText(fetchErr.StatusCode), fetchErr.URL)
		if fetchErr.Actionable() {
			writeActionNotice(w, fetchErr.StatusCode)
		}
	case KindNetwork:
		var cause error = fetchErr
		if inner := errors.Unwrap(fetchErr.Err); inner != nil {
			cause = inner
		}
		_, _ = errColor.Fprintf(w, messages.FetchNetworkErrorFmt, fetchErr.URL, cause)
		if !errors.Is(err, context.Canceled) {
			_, _ = fmt.Fprint(w, messages.FetchNetworkHint)
		}
	default:
		_, _ = errColor.Fprintln(w, fetchErr.Error())
	}
}

func writeActionNotice(w io.Writer, status int) {
	warn := color.New(color.FgYellow)
	lines := []string{
		messages.FetchActionBannerTop,
		messages.FetchActionBannerFill,
		messages.FetchActionLine1,
		messages.FetchActionLine2,
		messages.FetchActionLine3,
		fmt.Sprintf(messages.FetchActionLine4Fmt, status),
		messages.FetchActionBannerFill,
		messages.FetchActionBannerEnd,
	}
	for _, line := range lines {
		_, _ = warn.Fprintln(w, line)
	}
}
