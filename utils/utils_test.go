package utils

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndCheckPassword(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("S3cret!pass")
	require.NoError(t, err)
	require.NotEqual(t, "S3cret!pass", hash)

	assert.NoError(t, CheckPassword(hash, "S3cret!pass"))
	assert.Error(t, CheckPassword(hash, "wrong-password"))
}

func TestNormalizeEmail(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "already canonical", in: "ada@example.com", want: "ada@example.com"},
		{name: "mixed case and padding", in: "  Ada@Example.COM ", want: "ada@example.com"},
		{name: "decomposed accent", in: "rémy@example.com", want: "rémy@example.com"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeEmail(tt.in))
		})
	}
}

func cookieFrom(t *testing.T, w *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	return cookies[0]
}

func TestSetRefreshCookie(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	opts := CookieOptions{Domain: "example.com", Secure: true, MaxAge: 7 * 24 * time.Hour}
	SetRefreshCookie(c, opts, "some-refresh-token")

	ck := cookieFrom(t, w)
	assert.Equal(t, "refreshToken", ck.Name)
	assert.Equal(t, "some-refresh-token", ck.Value)
	assert.Equal(t, "/api/auth", ck.Path)
	assert.Equal(t, "example.com", ck.Domain)
	assert.Equal(t, int((7 * 24 * time.Hour).Seconds()), ck.MaxAge)
	assert.True(t, ck.HttpOnly)
	assert.True(t, ck.Secure)
	assert.Equal(t, http.SameSiteNoneMode, ck.SameSite)
}

func TestClearRefreshCookie(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	ClearRefreshCookie(c, CookieOptions{})

	ck := cookieFrom(t, w)
	assert.Equal(t, "refreshToken", ck.Name)
	assert.Empty(t, ck.Value)
	assert.Less(t, ck.MaxAge, 0)
}

func TestRefreshCookie(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Empty(t, RefreshCookie(c))

	c.Request.AddCookie(&http.Cookie{Name: "refreshToken", Value: "tok"})
	assert.Equal(t, "tok", RefreshCookie(c))
}
