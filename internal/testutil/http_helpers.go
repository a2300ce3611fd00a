package testutil

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/go-chi/chi/v5"
)

// NewRequestWithURLParams creates an HTTP request with chi URL parameters.
// This helper simplifies testing chi handlers that use chi.URLParam() to extract path parameters.
//
// Example:
//
//	req := testutil.NewRequestWithURLParams(
//	    http.MethodGet,
//	    "/api/instrument/123-456",
//	    map[string]string{"uuid": "123-456"},
//	)
func NewRequestWithURLParams(method, path string, params map[string]string) *http.Request {
	return newRequest(method, path, nil, params)
}

// NewJSONRequestWithURLParams is NewRequestWithURLParams with a JSON body.
//
// Example:
//
//	req := testutil.NewJSONRequestWithURLParams(
//	    http.MethodPut,
//	    "/api/transaction/7",
//	    `{"quantity": "2"}`,
//	    map[string]string{"id": "7"},
//	)
func NewJSONRequestWithURLParams(method, path, body string, params map[string]string) *http.Request {
	req := newRequest(method, path, strings.NewReader(body), params)
	req.Header.Set("Content-Type", "application/json")
	return req
}

func newRequest(method, path string, body io.Reader, params map[string]string) *http.Request {
	req := httptest.NewRequest(method, path, body)

	if len(params) > 0 {
		rctx := chi.NewRouteContext()
		for key, value := range params {
			rctx.URLParams.Add(key, value)
		}
		req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
	}

	return req
}
