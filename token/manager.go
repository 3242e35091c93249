// Package token implements the token lifecycle: issuing access/refresh
// pairs, verifying access tokens per request, renewing expired access
// tokens against the stored refresh token, and revoking on logout.
package token

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/etudify/etudify-backend/store"
)

type Claims struct {
	Email  string `json:"email"`
	UserID string `json:"id"`
	jwt.RegisteredClaims
}

// Manager mints, verifies, renews and revokes tokens. Access and refresh
// tokens are signed under distinct secrets so one can never pass
// verification as the other.
type Manager struct {
	users         store.UserStore
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

func NewManager(users store.UserStore, accessSecret, refreshSecret string, accessTTL, refreshTTL time.Duration) *Manager {
	return &Manager{
		users:         users,
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
	}
}

func (m *Manager) sign(id, email string, secret []byte, ttl time.Duration) (string, *Claims, error) {
	now := time.Now()
	claims := &Claims{
		Email:  email,
		UserID: id,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	if err != nil {
		return "", nil, err
	}
	return signed, claims, nil
}

func (m *Manager) parse(tokenStr string, secret []byte) (*Claims, error) {
	claims := &Claims{}
	tok, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return claims, err
	}
	if !tok.Valid {
		return claims, ErrInvalidToken
	}
	return claims, nil
}

// IssueTokenPair mints a short-lived access token and a long-lived
// refresh token for the identity, and persists the refresh token on the
// user record, overwriting any prior value. The overwrite is what
// invalidates earlier sessions.
func (m *Manager) IssueTokenPair(ctx context.Context, id, email string) (accessToken, refreshToken string, err error) {
	accessToken, _, err = m.sign(id, email, m.accessSecret, m.accessTTL)
	if err != nil {
		return "", "", fmt.Errorf("sign access token: %w", err)
	}

	refreshToken, _, err = m.sign(id, email, m.refreshSecret, m.refreshTTL)
	if err != nil {
		return "", "", fmt.Errorf("sign refresh token: %w", err)
	}

	if err := m.users.UpdateRefreshToken(ctx, id, &refreshToken); err != nil {
		return "", "", fmt.Errorf("persist refresh token: %w", err)
	}

	return accessToken, refreshToken, nil
}

// VerifyAccess validates a presented access token under the access
// secret. An expired-but-genuine token returns the decoded claims
// together with ErrAccessTokenExpired so the caller can attempt renewal.
func (m *Manager) VerifyAccess(tokenStr string) (*Claims, error) {
	if tokenStr == "" {
		return nil, ErrUnauthenticated
	}

	claims, err := m.parse(tokenStr, m.accessSecret)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return claims, ErrAccessTokenExpired
		}
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// Renew exchanges a refresh token for a brand-new access token. The
// refresh token must verify under the refresh secret, not be expired,
// and match byte-for-byte the value currently stored for the claimed
// user. The refresh token itself is not rotated.
func (m *Manager) Renew(ctx context.Context, refreshStr string) (string, *Claims, error) {
	if refreshStr == "" {
		return "", nil, ErrMissingToken
	}

	claims, err := m.parse(refreshStr, m.refreshSecret)
	if err != nil {
		return "", nil, ErrInvalidToken
	}

	user, err := m.users.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", nil, ErrInvalidToken
		}
		return "", nil, fmt.Errorf("look up user for renewal: %w", err)
	}

	if user.RefreshToken == nil || *user.RefreshToken != refreshStr {
		return "", nil, ErrInvalidToken
	}

	accessToken, accessClaims, err := m.sign(user.ID.Hex(), user.Email, m.accessSecret, m.accessTTL)
	if err != nil {
		return "", nil, fmt.Errorf("sign access token: %w", err)
	}
	return accessToken, accessClaims, nil
}

// Revoke clears the stored refresh token for whichever user currently
// holds the presented value. Calling with no token, or with a token that
// is no longer stored anywhere, is a successful no-op.
func (m *Manager) Revoke(ctx context.Context, refreshStr string) error {
	if refreshStr == "" {
		return nil
	}
	if err := m.users.ClearRefreshTokenByValue(ctx, refreshStr); err != nil {
		return fmt.Errorf("revoke refresh token: %w", err)
	}
	return nil
}
