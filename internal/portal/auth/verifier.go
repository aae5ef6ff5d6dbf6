package auth

import (
	"crypto/rsa"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/kitportal/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// Identity is who a token was issued to.
type Identity struct {
	Name  string
	Email string
}

// Claims are the login provider's token claims the portal reads.
type Claims struct {
	jwt.RegisteredClaims
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Verifier checks RS256 signatures and expiry.
type Verifier struct {
	key    *rsa.PublicKey
	parser *jwt.Parser
}

func NewVerifier(key *rsa.PublicKey) *Verifier {
	return &Verifier{
		key:    key,
		parser: jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()})),
	}
}

// NewVerifierFromPEM builds a Verifier from inline PEM or a key file path.
func NewVerifierFromPEM(s string) (*Verifier, error) {
	key, err := ParsePublicKey(s)
	if err != nil {
		return nil, err
	}
	return NewVerifier(key), nil
}

// Parse validates tokenString and returns its identity. Expired tokens
// yield common.ErrTokenExpired; every other failure common.ErrInvalidToken.
func (v *Verifier) Parse(tokenString string) (*Identity, error) {
	claims := &Claims{}

	token, err := v.parser.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return v.key, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, common.ErrTokenExpired
		}
		return nil, fmt.Errorf("%w: %v", common.ErrInvalidToken, err)
	}

	if !token.Valid {
		return nil, common.ErrInvalidToken
	}

	return &Identity{Name: claims.Name, Email: claims.Email}, nil
}
