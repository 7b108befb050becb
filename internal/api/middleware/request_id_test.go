package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fitplan/fitplan/internal/api/middleware"
)

func TestRequestID(t *testing.T) {
	tests := []struct {
		name     string
		inbound  string
		wantSame bool
	}{
		{"generated", "", false},
		{"preserved", "existing_request_id", true},
		{"trace style", "4bf92f35-77b3.4a", true},
		{"too long", strings.Repeat("x", 200), false},
		{"control characters", "abc\r\nlevel=error", false},
		{"spaces", "hello world", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var seen string
			handler := middleware.RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				seen = middleware.GetRequestID(r.Context())
			}))

			req := httptest.NewRequest(http.MethodGet, "/", http.NoBody)
			if tt.inbound != "" {
				req.Header.Set("X-Request-Id", tt.inbound)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, seen, rec.Header().Get("X-Request-Id"))
			if tt.wantSame {
				assert.Equal(t, tt.inbound, seen)
			} else {
				assert.True(t, strings.HasPrefix(seen, "req_"))
			}
		})
	}
}

func TestWithRequestID(t *testing.T) {
	ctx := middleware.WithRequestID(context.Background(), "req_digest")
	assert.Equal(t, "req_digest", middleware.GetRequestID(ctx))
	assert.True(t, strings.HasPrefix(middleware.NewRequestID(), "req_"))
	assert.Len(t, middleware.NewRequestID(), 26)
}

func TestGetRequestID_Missing(t *testing.T) {
	assert.Empty(t, middleware.GetRequestID(httptest.NewRequest(http.MethodGet, "/", http.NoBody).Context()))
}
