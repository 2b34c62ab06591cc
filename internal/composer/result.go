package composer

import (
	"errors"
)

var (
	ErrContentTypeMissing = errors.New("content type missing")
	ErrMalformedURL       = errors.New("malformed url")
	ErrSubmitInFlight     = errors.New("submit already in flight")
)

// ResultKind classifies the outcome of Submit.
type ResultKind int

const (
	ResultOK ResultKind = iota
	ResultContentTypeMissing
	ResultMalformedURL
	ResultUnexpected
	ResultBusy
)

func (k ResultKind) String() string {
	switch k {
	case ResultOK:
		return "ok"
	case ResultContentTypeMissing:
		return "content_type_missing"
	case ResultMalformedURL:
		return "malformed_url"
	case ResultUnexpected:
		return "unexpected"
	case ResultBusy:
		return "busy"
	default:
		return "unknown"
	}
}

// Result is the outcome of one Submit call. Response is only set for ResultOK.
type Result struct {
	Kind     ResultKind
	Response Response
	Err      error
}

// OK reports whether the request was dispatched and a response captured.
func (r Result) OK() bool {
	return r.Kind == ResultOK
}

// Message returns the user-facing text shown in the error alert.
func (r Result) Message() string {
	switch r.Kind {
	case ResultOK:
		return ""
	case ResultContentTypeMissing:
		return "Please select a content type."
	case ResultMalformedURL:
		return "The URL is malformed. Please change the URL and try again."
	case ResultBusy:
		return "A request is already in progress."
	default:
		detail := ""
		if r.Err != nil {
			detail = r.Err.Error()
		}
		return "An unexpected error occurred: " + detail
	}
}

func resultFromError(err error) Result {
	switch {
	case errors.Is(err, ErrContentTypeMissing):
		return Result{Kind: ResultContentTypeMissing, Err: err}
	case errors.Is(err, ErrMalformedURL):
		return Result{Kind: ResultMalformedURL, Err: err}
	case errors.Is(err, ErrSubmitInFlight):
		return Result{Kind: ResultBusy, Err: err}
	default:
		return Result{Kind: ResultUnexpected, Err: err}
	}
}
