package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRecoveryTurnsPanicInto500(t *testing.T) {
	h := Recovery(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/routes", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestLoggingKeepsStatus(t *testing.T) {
	h := Logging(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/zones", nil))
	assert.Equal(t, http.StatusTeapot, rec.Code)
}

func TestCorsMiddleware(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	t.Run("listed origin", func(t *testing.T) {
		h := CorsMiddleware([]string{"https://bridge.example.org"})(ok)
		req := httptest.NewRequest(http.MethodGet, "/zones", nil)
		req.Header.Set("Origin", "https://bridge.example.org")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Equal(t, "https://bridge.example.org", rec.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("unlisted origin", func(t *testing.T) {
		h := CorsMiddleware([]string{"https://bridge.example.org"})(ok)
		req := httptest.NewRequest(http.MethodGet, "/zones", nil)
		req.Header.Set("Origin", "https://elsewhere.example.org")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("any origin by default", func(t *testing.T) {
		h := CorsMiddleware(nil)(ok)
		req := httptest.NewRequest(http.MethodGet, "/zones", nil)
		req.Header.Set("Origin", "https://elsewhere.example.org")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	})
}
