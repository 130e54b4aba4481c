// Package verification issues and checks the single-use numeric codes that bind a buyer
// to a property transaction. Only bcrypt hashes of the codes are ever stored.
package verification

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"golang.org/x/crypto/bcrypt"
)

const (
	// CodeLength is the number of decimal digits in a code.
	CodeLength = 6
	// DefaultTTL is how long an issued code remains valid.
	DefaultTTL = 10 * time.Minute
	// DefaultMaxAttempts is the number of failed checks before a code is invalidated.
	DefaultMaxAttempts = 5
)

var codeSpace = big.NewInt(1_000_000)

// Issued is a freshly generated code. Code is the plaintext to deliver out of band and must not be persisted.
type Issued struct {
	Code      string
	Hash      string
	ExpiresAt time.Time
}

// Issuer generates and checks verification codes.
type Issuer struct {
	TTL         time.Duration
	MaxAttempts int
	Cost        int

	// Generate overrides the random source. Nil means crypto/rand.
	Generate func() (string, error)
}

// NewIssuer creates an Issuer with the default TTL, attempt limit and bcrypt cost.
func NewIssuer() *Issuer {
	return &Issuer{TTL: DefaultTTL, MaxAttempts: DefaultMaxAttempts, Cost: bcrypt.DefaultCost}
}

// Issue generates a new uniformly random code valid from now.
func (i *Issuer) Issue(now time.Time) (*Issued, error) {
	generate := i.Generate
	if generate == nil {
		generate = randomCode
	}
	code, err := generate()
	if err != nil {
		return nil, fmt.Errorf("failed to generate verification code: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(code), i.Cost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash verification code: %w", err)
	}

	return &Issued{Code: code, Hash: string(hash), ExpiresAt: now.Add(i.TTL)}, nil
}

func randomCode() (string, error) {
	n, err := rand.Int(rand.Reader, codeSpace)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%0*d", CodeLength, n.Int64()), nil
}

// Matches reports whether code hashes to hash.
func (i *Issuer) Matches(hash, code string) (bool, error) {
	if hash == "" || len(code) != CodeLength {
		return false, nil
	}
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(code))
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to compare verification code: %w", err)
	}
	return true, nil
}

// Exhausted reports whether attempts has reached the limit.
func (i *Issuer) Exhausted(attempts int) bool {
	return attempts >= i.MaxAttempts
}
