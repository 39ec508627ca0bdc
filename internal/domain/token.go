package domain

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base32"
	"encoding/base64"
	"time"
)

const (
	UserActivationScope string = "user_activation"
	PasswordResetScope  string = "password_reset"

	tokenLength         int = 32
	retrievalCodeLength int = 10
)

// Token is an opaque single-purpose credential (activation, password reset).
// Only the SHA-256 hash is persisted.
type Token struct {
	Plaintext string
	Hash      []byte
	UserId    int64
	Expiry    time.Time
	Scope     string
}

func GenerateToken(userId int64, ttl time.Duration, scope string) (*Token, error) {
	randomBytes := make([]byte, tokenLength)
	_, err := rand.Read(randomBytes)
	if err != nil {
		return nil, err
	}

	plaintext := base64.RawURLEncoding.EncodeToString(randomBytes)

	hash := sha256.Sum256([]byte(plaintext))

	token := &Token{
		Plaintext: plaintext,
		Hash:      hash[:],
		UserId:    userId,
		Expiry:    time.Now().Add(ttl),
		Scope:     scope,
	}

	return token, nil
}

// GenerateRetrievalCode produces the short code handed to guest purchasers.
// Base32 keeps it typeable; the hash is what gets stored.
func GenerateRetrievalCode() (string, []byte, error) {
	randomBytes := make([]byte, retrievalCodeLength)
	_, err := rand.Read(randomBytes)
	if err != nil {
		return "", nil, err
	}

	code := base32.StdEncoding.WithPadding(base32.NoPadding).EncodeToString(randomBytes)
	hash := HashRetrievalCode(code)

	return code, hash, nil
}

func HashRetrievalCode(code string) []byte {
	hash := sha256.Sum256([]byte(code))
	return hash[:]
}

type TokenRepository interface {
	Create(context.Context, *Token) error
	DeleteAllForUser(ctx context.Context, tokenScope string, userID int) error
}
