// Package auth issues and verifies the signed session credential and manages
// the HTTP-only cookie it travels in.
package auth

import (
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/plantnet-dev/plantnet/config"
)

// CookieName is the session cookie the token is stored in.
const CookieName = "token"

// TokenTTL is the fixed validity window of an issued token.
const TokenTTL = 365 * 24 * time.Hour

// Claims holds the typed JWT payload: the identity claim is the email.
type Claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

func secret() []byte {
	return []byte(config.TokenSecret())
}

// GenerateToken signs a session token for the given email.
func GenerateToken(email string) (string, error) {
	claims := Claims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(TokenTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret())
}

// ValidateToken parses and validates a token string, returning its claims.
func ValidateToken(t string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(t, &Claims{}, func(tok *jwt.Token) (interface{}, error) {
		return secret(), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}

	return claims, nil
}

// cookieFlags returns the environment-dependent transport flags: browsers
// only allow SameSite=None together with Secure, so cross-site cookies are
// a production-only shape.
func cookieFlags() (secure bool, sameSite http.SameSite) {
	if config.Production() {
		return true, http.SameSiteNoneMode
	}
	return false, http.SameSiteStrictMode
}

// SetCookie writes the session cookie carrying token.
func SetCookie(w http.ResponseWriter, token string) {
	secure, sameSite := cookieFlags()
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   secure,
		SameSite: sameSite,
		MaxAge:   int(TokenTTL / time.Second),
	})
}

// ClearCookie expires the session cookie. This is the logout operation.
func ClearCookie(w http.ResponseWriter) {
	secure, sameSite := cookieFlags()
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   secure,
		SameSite: sameSite,
		MaxAge:   -1,
	})
}

// TokenFromRequest reads the raw token from the session cookie.
// Returns an empty string when the cookie is absent.
func TokenFromRequest(r *http.Request) string {
	c, err := r.Cookie(CookieName)
	if err != nil {
		return ""
	}
	return c.Value
}
