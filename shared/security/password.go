package security

import (
	"errors"
	"fmt"
	"strings"

	"github.com/matthewhartstonge/argon2"
	"golang.org/x/crypto/bcrypt"
)

// Supported digest algorithms for new passwords.
const (
	AlgorithmArgon2id = "argon2id"
	AlgorithmBcrypt   = "bcrypt"
)

// DefaultBcryptCost matches the cost used for digests written by the
// previous deployment.
const DefaultBcryptCost = 10

var (
	ErrUnknownAlgorithm = errors.New("unknown password hashing algorithm")
	ErrUnknownDigest    = errors.New("unrecognized password digest format")
)

// Config selects how new digests are produced. Existing digests are always
// verified according to their own encoding.
type Config struct {
	Algorithm  string
	BcryptCost int
}

// Hasher hashes and verifies passwords.
type Hasher struct {
	algorithm  string
	bcryptCost int
	argon      argon2.Config
}

func NewHasher(cfg Config) (*Hasher, error) {
	algorithm := cfg.Algorithm
	if algorithm == "" {
		algorithm = AlgorithmArgon2id
	}
	if algorithm != AlgorithmArgon2id && algorithm != AlgorithmBcrypt {
		return nil, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, cfg.Algorithm)
	}

	cost := cfg.BcryptCost
	if cost == 0 {
		cost = DefaultBcryptCost
	}
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		return nil, fmt.Errorf("bcrypt cost %d out of range [%d, %d]", cost, bcrypt.MinCost, bcrypt.MaxCost)
	}

	return &Hasher{
		algorithm:  algorithm,
		bcryptCost: cost,
		argon:      argon2.DefaultConfig(),
	}, nil
}

// HashPassword returns an encoded digest of password.
func (h *Hasher) HashPassword(password string) (string, error) {
	switch h.algorithm {
	case AlgorithmBcrypt:
		digest, err := bcrypt.GenerateFromPassword([]byte(password), h.bcryptCost)
		if err != nil {
			return "", err
		}
		return string(digest), nil
	default:
		digest, err := h.argon.HashEncoded([]byte(password))
		if err != nil {
			return "", err
		}
		return string(digest), nil
	}
}

// VerifyPassword reports whether password matches digest. A mismatch is
// reported as false with a nil error.
func (h *Hasher) VerifyPassword(password, digest string) (bool, error) {
	switch {
	case strings.HasPrefix(digest, "$argon2"):
		return argon2.VerifyEncoded([]byte(password), []byte(digest))
	case isBcryptDigest(digest):
		err := bcrypt.CompareHashAndPassword([]byte(digest), []byte(password))
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return false, nil
		}
		if err != nil {
			return false, err
		}
		return true, nil
	default:
		return false, ErrUnknownDigest
	}
}

func isBcryptDigest(digest string) bool {
	for _, prefix := range []string{"$2a$", "$2b$", "$2y$"} {
		if strings.HasPrefix(digest, prefix) {
			return true
		}
	}
	return false
}
