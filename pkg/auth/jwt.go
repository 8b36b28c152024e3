package auth

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// Identity is the user snapshot embedded in every token.
type Identity struct {
	UserID  string `json:"id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Surname string `json:"surname"`
}

// Claims holds the typed JWT payload.
type Claims struct {
	Identity
	jwt.RegisteredClaims
}

// ErrInvalidToken is returned by Verify for any token that cannot be trusted.
var ErrInvalidToken = errors.New("auth: invalid token")

// Issuer signs and verifies HS256 tokens with a single shared secret.
type Issuer struct {
	secret []byte
}

// NewIssuer returns an Issuer bound to secret.
func NewIssuer(secret string) *Issuer {
	return &Issuer{secret: []byte(secret)}
}

// CreateToken signs a token for id that expires after expiresIn,
// a Go duration string such as "24h".
func (i *Issuer) CreateToken(id Identity, expiresIn string) (string, error) {
	ttl, err := time.ParseDuration(expiresIn)
	if err != nil {
		return "", fmt.Errorf("auth: token expiry %q: %w", expiresIn, err)
	}

	now := time.Now()
	claims := Claims{
		Identity: id,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   id.UserID,
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
}

// Verify parses t and checks its signature and expiry.
func (i *Issuer) Verify(t string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(t, &Claims{}, func(*jwt.Token) (interface{}, error) {
		return i.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.UserID == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// TokenFromRequest returns the raw token carried by the Authorization header.
// The header normally holds the bare token; a "Bearer " prefix is tolerated.
func TokenFromRequest(r *http.Request) string {
	v := strings.TrimSpace(r.Header.Get("Authorization"))
	if len(v) > 7 && strings.EqualFold(v[:7], "bearer ") {
		v = strings.TrimSpace(v[7:])
	}
	return v
}

// HashPassword returns a salted bcrypt hash of the plain-text password.
func HashPassword(plain string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	return string(bytes), err
}

// CheckPassword compares a bcrypt hash against the plain-text candidate.
func CheckPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
