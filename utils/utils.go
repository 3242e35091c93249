package utils

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/text/unicode/norm"
)

const refreshCookieName = "refreshToken"
const refreshCookiePath = "/api/auth"

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

func CheckPassword(hash string, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}

// NormalizeEmail canonicalizes an email for lookup and storage: trimmed,
// lowercased, NFC-normalized so visually identical Unicode addresses
// compare equal.
func NormalizeEmail(email string) string {
	return norm.NFC.String(strings.ToLower(strings.TrimSpace(email)))
}

// CookieOptions carries the transport settings for the refresh cookie.
type CookieOptions struct {
	Domain string
	Secure bool
	MaxAge time.Duration
}

// SetRefreshCookie attaches the refresh token as an HTTP-only cookie
// scoped to the auth routes. SameSite=None because the frontend is
// served from a different origin.
func SetRefreshCookie(c *gin.Context, opts CookieOptions, token string) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     refreshCookieName,
		Value:    token,
		Path:     refreshCookiePath,
		Domain:   opts.Domain,
		MaxAge:   int(opts.MaxAge.Seconds()),
		HttpOnly: true,
		Secure:   opts.Secure,
		SameSite: http.SameSiteNoneMode,
	})
}

func ClearRefreshCookie(c *gin.Context, opts CookieOptions) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     refreshCookieName,
		Value:    "",
		Path:     refreshCookiePath,
		Domain:   opts.Domain,
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   opts.Secure,
		SameSite: http.SameSiteNoneMode,
	})
}

// RefreshCookie reads the refresh token cookie, returning "" when absent.
func RefreshCookie(c *gin.Context) string {
	value, err := c.Cookie(refreshCookieName)
	if err != nil {
		return ""
	}
	return value
}
