package httpapi

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestRequireImportToken(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	tests := []struct {
		name    string
		token   string
		headers map[string]string
		want    int
	}{
		{"open when unset", "", nil, http.StatusNoContent},
		{"missing header", "s3cret", nil, http.StatusUnauthorized},
		{"wrong token", "s3cret", map[string]string{importTokenHeader: "nope"}, http.StatusUnauthorized},
		{"import header", "s3cret", map[string]string{importTokenHeader: " s3cret "}, http.StatusNoContent},
		{"bearer header", "s3cret", map[string]string{"Authorization": "bearer s3cret"}, http.StatusNoContent},
		{"basic scheme", "s3cret", map[string]string{"Authorization": "Basic s3cret"}, http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/v1/external-games", nil)
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			rec := httptest.NewRecorder()
			RequireImportToken(tt.token, next).ServeHTTP(rec, req)
			require.Equal(t, tt.want, rec.Code)
		})
	}
}

func TestLimitBody(t *testing.T) {
	var decodeErr error
	next := http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		var v map[string]any
		decodeErr = decodeJSON(r, &v, false)
	})

	body := `{"plays":"` + strings.Repeat("x", 64) + `"}`
	req := httptest.NewRequest(http.MethodPost, "/v1/standardize", strings.NewReader(body))
	LimitBody(16, next).ServeHTTP(httptest.NewRecorder(), req)

	require.Error(t, decodeErr)
	require.Equal(t, http.StatusBadRequest, mapError(decodeErr).HTTPStatus)
}

func TestCaptureRequestBody(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	tracer := provider.Tracer("test")

	var seen string
	next := http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		seen = string(raw)
	})
	handler := CaptureRequestBody(true, 8, next)

	body := `{"source":"espn"}`
	req := httptest.NewRequest(http.MethodPost, "/v1/external-games", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	ctx, span := tracer.Start(req.Context(), "request")
	handler.ServeHTTP(httptest.NewRecorder(), req.WithContext(ctx))
	span.End()

	require.Equal(t, body, seen, "handler must still see the full body")
	spans := recorder.Ended()
	require.Len(t, spans, 1)

	attrs := map[string]string{}
	for _, kv := range spans[0].Attributes() {
		attrs[string(kv.Key)] = kv.Value.Emit()
	}
	require.Equal(t, body[:8], attrs["http.request.body"])
	require.Equal(t, "true", attrs["http.request.body.truncated"])
}
