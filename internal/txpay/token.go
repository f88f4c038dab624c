package txpay

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenClaims are the access token claims the console reads.
type TokenClaims struct {
	Subject   string
	Email     string
	Role      string
	PartnerID string
	ExpiresAt time.Time // zero when the token has no exp claim
}

// ParseTokenClaims reads the claims of a JWT access token without verifying
// its signature. The API remains the only verifier; the console needs the
// expiry and role to size and label the session.
func ParseTokenClaims(token string) (TokenClaims, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return TokenClaims{}, err
	}

	var out TokenClaims
	out.Subject, _ = claims.GetSubject()
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		out.ExpiresAt = exp.Time
	}
	out.Email = stringClaim(claims, "email")
	out.Role = stringClaim(claims, "role")
	out.PartnerID = stringClaim(claims, "partnerId")
	return out, nil
}

func stringClaim(claims jwt.MapClaims, key string) string {
	if v, ok := claims[key].(string); ok {
		return v
	}
	return ""
}
