package voltra

import (
	"context"
	"net/http"
	"strings"

	"github.com/bytedance/sonic"
)

// encodeBody serializes a request body. A nil body yields no payload and a
// []byte passes through untouched.
func encodeBody(body any) ([]byte, error) {
	if body == nil {
		return nil, nil
	}
	if b, ok := body.([]byte); ok {
		return b, nil
	}
	return sonic.Marshal(body)
}

// buildResult decodes a 2xx response. Declared-JSON bodies that fail to parse
// degrade to an empty object rather than failing the call; non-JSON bodies
// come back as a string.
func buildResult(resp *http.Response, raw []byte) *Result {
	res := &Result{
		Status:    resp.StatusCode,
		Header:    resp.Header,
		RequestID: resp.Header.Get(RequestIDHeader),
		Raw:       raw,
	}

	if isJSONContentType(resp.Header.Get("Content-Type")) {
		var v any
		if err := sonic.Unmarshal(raw, &v); err != nil {
			res.Value = map[string]any{}
		} else {
			res.Value = v
		}
	} else {
		res.Value = string(raw)
	}

	return res
}

// errorFromResponse builds the normalized error for a non-2xx response,
// preferring server-supplied code and message fields from a JSON body.
func errorFromResponse(rawURL string, resp *http.Response, raw []byte, requestID string) *APIError {
	apiErr := &APIError{
		Status:    resp.StatusCode,
		Code:      CodeHTTP,
		RequestID: requestID,
		URL:       rawURL,
	}
	if id := resp.Header.Get(RequestIDHeader); id != "" {
		apiErr.RequestID = id
	}

	var decoded any
	if isJSONContentType(resp.Header.Get("Content-Type")) && sonic.Unmarshal(raw, &decoded) == nil {
		apiErr.Details = decoded
		if m, ok := decoded.(map[string]any); ok {
			if code, ok := m["code"].(string); ok && code != "" {
				apiErr.Code = code
			}
			if msg, ok := m["message"].(string); ok && msg != "" {
				apiErr.Message = msg
			}
		}
	} else if len(raw) > 0 {
		apiErr.Details = string(raw)
	}

	if apiErr.Message == "" {
		if body := strings.TrimSpace(string(raw)); body != "" {
			apiErr.Message = body
		} else if text := http.StatusText(resp.StatusCode); text != "" {
			apiErr.Message = text
		} else {
			apiErr.Message = "Network error"
		}
	}

	return apiErr
}

func isJSONContentType(ct string) bool {
	ct = strings.ToLower(strings.TrimSpace(ct))
	if i := strings.IndexByte(ct, ';'); i >= 0 {
		ct = strings.TrimSpace(ct[:i])
	}
	return ct == "application/json" || strings.HasSuffix(ct, "+json")
}

// GetJSON performs a GET and unmarshals the response body into out.
func (c *Client) GetJSON(ctx context.Context, url string, out any, opts ...CallOption) error {
	res, err := c.Get(ctx, url, opts...)
	if err != nil {
		return err
	}
	if len(res.Raw) == 0 {
		return nil
	}
	return sonic.Unmarshal(res.Raw, out)
}

// PostJSON performs a POST with a JSON body and unmarshals the response into out.
func (c *Client) PostJSON(ctx context.Context, url string, body, out any, opts ...CallOption) error {
	res, err := c.Post(ctx, url, body, opts...)
	if err != nil {
		return err
	}
	if out == nil || len(res.Raw) == 0 {
		return nil
	}
	return sonic.Unmarshal(res.Raw, out)
}
