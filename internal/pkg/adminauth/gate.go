package adminauth

import (
	"crypto/sha256"
	"crypto/subtle"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

var ErrEmptySecret = errors.New("admin secret cannot be empty")

const DefaultCost = bcrypt.DefaultCost

// Gate decides whether a presented credential grants admin rights.
type Gate interface {
	Authorize(credential string) bool
}

type secretGate struct {
	digest [sha256.Size]byte
	hash   []byte
}

// NewGate accepts either the plain shared secret or a bcrypt hash of it.
func NewGate(secret string) (Gate, error) {
	if secret == "" {
		return nil, ErrEmptySecret
	}
	if isBcryptHash(secret) {
		return &secretGate{hash: []byte(secret)}, nil
	}
	return &secretGate{digest: sha256.Sum256([]byte(secret))}, nil
}

func (g *secretGate) Authorize(credential string) bool {
	if credential == "" {
		return false
	}
	if g.hash != nil {
		return bcrypt.CompareHashAndPassword(g.hash, []byte(credential)) == nil
	}
	// Comparing fixed-size digests keeps the time independent of the input length.
	presented := sha256.Sum256([]byte(credential))
	return subtle.ConstantTimeCompare(presented[:], g.digest[:]) == 1
}

func HashSecret(secret string) (string, error) {
	if secret == "" {
		return "", ErrEmptySecret
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(secret), DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

func isBcryptHash(s string) bool {
	if _, err := bcrypt.Cost([]byte(s)); err != nil {
		return false
	}
	return strings.HasPrefix(s, "$2")
}
