package composer

import (
	"fmt"
	"net/http"
	"strings"
)

// Method is the request method selected on the screen.
type Method string

const (
	MethodGet    Method = "GET"
	MethodPost   Method = "POST"
	MethodPut    Method = "PUT"
	MethodDelete Method = "DELETE"
)

var methods = []Method{MethodGet, MethodPost, MethodPut, MethodDelete}

var contentTypes = []string{
	"application/json",
	"application/xml",
	"text/html",
	"text/plain",
}

// Methods returns the selectable request methods in display order.
func Methods() []Method {
	out := make([]Method, len(methods))
	copy(out, methods)
	return out
}

// ContentTypes returns the selectable request content types in display order.
func ContentTypes() []string {
	out := make([]string, len(contentTypes))
	copy(out, contentTypes)
	return out
}

// ParseMethod converts user input into a Method. Matching is case-insensitive.
func ParseMethod(value string) (Method, error) {
	candidate := Method(strings.ToUpper(strings.TrimSpace(value)))
	for _, m := range methods {
		if m == candidate {
			return m, nil
		}
	}
	return "", fmt.Errorf("unsupported method: %s", value)
}

// verb maps the method to its HTTP verb. A blank method falls back to GET.
func (m Method) verb() (string, error) {
	switch Method(strings.TrimSpace(string(m))) {
	case "", MethodGet:
		return http.MethodGet, nil
	case MethodPost:
		return http.MethodPost, nil
	case MethodPut:
		return http.MethodPut, nil
	case MethodDelete:
		return http.MethodDelete, nil
	default:
		return "", fmt.Errorf("unsupported method: %s", m)
	}
}

// Field identifies a tracked composer field in change notifications.
type Field string

const (
	FieldURL                 Field = "url"
	FieldMethod              Field = "method"
	FieldContentType         Field = "content_type"
	FieldBody                Field = "body"
	FieldResponseBody        Field = "response.body"
	FieldResponseContentType Field = "response.content_type"
	FieldResponseHeader      Field = "response.header"
)

// Response is what the screen shows after a successful dispatch.
type Response struct {
	Body          string
	HeaderSummary string
	ContentType   string
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
