package httputil

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGetTokenFromRequest(t *testing.T) {
	t.Run("bearer header", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.Header.Set("Authorization", "Bearer abc")
		token, err := GetTokenFromRequest(r)
		require.NoError(t, err)
		require.Equal(t, "abc", token)
	})

	t.Run("cookie", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.AddCookie(&http.Cookie{Name: AuthCookieName, Value: "from-cookie"})
		token, err := GetTokenFromRequest(r)
		require.NoError(t, err)
		require.Equal(t, "from-cookie", token)
	})

	t.Run("query parameter", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/ws?token=from-query", nil)
		token, err := GetTokenFromRequest(r)
		require.NoError(t, err)
		require.Equal(t, "from-query", token)
	})

	t.Run("missing", func(t *testing.T) {
		_, err := GetTokenFromRequest(httptest.NewRequest(http.MethodGet, "/", nil))
		require.Error(t, err)
	})
}
