package sessions

import (
	"time"

	"github.com/go-jose/go-jose/v3/jwt"
)

// Claims are non-authoritative hints read from the bearer token's payload,
// for UI convenience only. The token is never verified here and trust
// decisions must never depend on these values; the authoritative profile is
// the one fetched from the backend.
type Claims struct {
	UserID    string
	Email     string
	ExpiresAt time.Time
}

// ParseClaims extracts best-effort claims from a raw bearer token. It returns
// ok=false on any failure; failure never affects authentication state.
func ParseClaims(rawToken string) (*Claims, bool) {
	if rawToken == "" {
		return nil, false
	}
	tok, err := jwt.ParseSigned(rawToken)
	if err != nil {
		return nil, false
	}

	var std jwt.Claims
	var custom struct {
		UserID flexString `json:"userId"`
		Email  string     `json:"email"`
	}
	if err := tok.UnsafeClaimsWithoutVerification(&std, &custom); err != nil {
		return nil, false
	}

	claims := &Claims{
		UserID: firstOf(std.Subject, string(custom.UserID)),
		Email:  custom.Email,
	}
	if std.Expiry != nil {
		claims.ExpiresAt = std.Expiry.Time()
	}
	return claims, true
}
