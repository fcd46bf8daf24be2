package voltra

import (
	"net/url"
	"strings"
)

// Endpoint builds a platform API URL from a base path, a logical function
// name and a flat map of query parameters. Pure string construction; the
// result feeds straight into the client's verb methods.
func Endpoint(base, fn string, params map[string]string) string {
	var builder strings.Builder
	builder.WriteString(strings.TrimRight(base, "/"))
	builder.WriteByte('/')
	builder.WriteString(strings.TrimLeft(fn, "/"))

	if len(params) == 0 {
		return builder.String()
	}

	q := url.Values{}
	for k, v := range params {
		q.Set(k, v)
	}
	builder.WriteByte('?')
	builder.WriteString(q.Encode())
	return builder.String()
}
