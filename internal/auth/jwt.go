package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const issuer = "cinetick"

var ErrInvalidToken = errors.New("invalid or expired token")

// Claims is the identity a verified bearer token carries. There is no
// server-side session; the token is the whole authentication state.
type Claims struct {
	UserID int
	Role   string
}

type accessTokenClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// NewAccessToken signs an HS256 token encoding the user's id and role.
func NewAccessToken(secret []byte, userID int, role string, ttl time.Duration) (string, time.Time, error) {
	now := time.Now().UTC()
	expiry := now.Add(ttl)

	claims := accessTokenClaims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   strconv.Itoa(userID),
			ExpiresAt: jwt.NewNumericDate(expiry),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signed, err := token.SignedString(secret)
	if err != nil {
		return "", time.Time{}, err
	}

	return signed, expiry, nil
}

// ParseAccessToken verifies the signature, issuer and expiry, and returns the
// embedded identity. Any failure collapses into ErrInvalidToken; callers must
// not leak why verification failed.
func ParseAccessToken(secret []byte, tokenString string) (*Claims, error) {
	var claims accessTokenClaims

	_, err := jwt.ParseWithClaims(
		tokenString,
		&claims,
		func(t *jwt.Token) (any, error) { return secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, ErrInvalidToken
	}

	userID, err := strconv.Atoi(claims.Subject)
	if err != nil {
		return nil, fmt.Errorf("%w: malformed subject", ErrInvalidToken)
	}

	return &Claims{UserID: userID, Role: claims.Role}, nil
}
