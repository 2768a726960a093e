package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Identity is the claim set carried by a session credential. Whatever
// attribute map the caller supplies at issuance is signed as-is; only the
// email attribute is interpreted by this service.
type Identity map[string]any

func (id Identity) Email() string {
	if v, ok := id["email"].(string); ok {
		return v
	}
	return ""
}

var ErrInvalidToken = errors.New("invalid token")

// Issue signs the supplied claims with HS256, adding iat and exp. The claim
// map is copied so the caller's map is never mutated.
func Issue(secret string, claims map[string]any, ttl time.Duration) (string, error) {
	now := time.Now()
	mc := jwt.MapClaims{}
	for k, v := range claims {
		mc[k] = v
	}
	mc["iat"] = jwt.NewNumericDate(now)
	mc["exp"] = jwt.NewNumericDate(now.Add(ttl))

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, mc)
	return token.SignedString([]byte(secret))
}

// Parse verifies signature and expiry and returns the embedded identity.
func Parse(secret, tokenString string) (Identity, error) {
	tok, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return nil, err
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok || !tok.Valid {
		return nil, ErrInvalidToken
	}
	return Identity(claims), nil
}
