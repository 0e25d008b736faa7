// Package transporttest builds requests for handler tests.
package transporttest

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/go-chi/chi"
)

// NewRequest builds a JSON request carrying chi URL params as key/value pairs.
func NewRequest(method, target, body string, params ...string) *http.Request {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")

	if len(params) > 0 {
		rctx := chi.NewRouteContext()
		for i := 0; i+1 < len(params); i += 2 {
			rctx.URLParams.Add(params[i], params[i+1])
		}
		req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
	}
	return req
}

// Serve runs h and decodes a JSON object body, if any.
func Serve(h http.HandlerFunc, req *http.Request) (*httptest.ResponseRecorder, map[string]any) {
	w := httptest.NewRecorder()
	h(w, req)

	var decoded map[string]any
	if strings.HasPrefix(strings.TrimSpace(w.Body.String()), "{") {
		_ = json.Unmarshal(w.Body.Bytes(), &decoded)
	}
	return w, decoded
}

// DecodeList decodes a JSON array body.
func DecodeList(w *httptest.ResponseRecorder) []map[string]any {
	var out []map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &out)
	return out
}
