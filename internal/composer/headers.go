package composer

import (
	"mime"
	"net/http"
	"sort"
	"strings"
)

// FormatHeaders flattens response headers into "Name: value" lines.
// Names are sorted; repeated headers produce one line per value.
func FormatHeaders(header http.Header) string {
	if len(header) == 0 {
		return ""
	}
	names := make([]string, 0, len(header))
	for name := range header {
		names = append(names, name)
	}
	sort.Strings(names)

	var lines []string
	for _, name := range names {
		for _, value := range header[name] {
			lines = append(lines, name+": "+value)
		}
	}
	return strings.Join(lines, "\n")
}

// mediaType extracts the bare media type from a Content-Type header value.
func mediaType(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return ""
	}
	parsed, _, err := mime.ParseMediaType(value)
	if err != nil {
		if idx := strings.IndexByte(value, ';'); idx >= 0 {
			return strings.TrimSpace(value[:idx])
		}
		return value
	}
	return parsed
}
