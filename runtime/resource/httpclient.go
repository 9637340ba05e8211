package resource

import (
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/wfl-lang/wfl/runtime/value"
)

// HTTPResponse is a completed outgoing HTTP request/response pair, the
// handle behind `open url at ...` / `wait for open url at ...`.
type HTTPResponse struct {
	Status int
	Body   string
	client *http.Client
}

// RequestSpec configures an outgoing request beyond a bare GET, per
// `open url at "..." with method as POST, body as "...", header K as V`.
type RequestSpec struct {
	Method  string
	Body    string
	Headers map[string]string
}

// OpenURL issues spec's request against url and wraps the result as a
// *value.Resource; `.status`/`read response from handle` read Status
// and Body off the concrete *HTTPResponse.
func OpenURL(ctx context.Context, url string, spec RequestSpec) (*value.Resource, *HTTPResponse, error) {
	method := spec.Method
	if method == "" {
		method = http.MethodGet
	}

	var body io.Reader
	if spec.Body != "" {
		body = strings.NewReader(spec.Body)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, nil, err
	}
	for k, v := range spec.Headers {
		req.Header.Set(k, v)
	}

	client := &http.Client{Timeout: 30 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return nil, nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, err
	}

	handle := &HTTPResponse{Status: resp.StatusCode, Body: string(data), client: client}
	res := &value.Resource{KindName: "network", ID: nextID(), Closer: func() error { return nil }}
	return res, handle, nil
}
