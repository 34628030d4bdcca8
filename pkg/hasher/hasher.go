// Package hasher stores and checks passwords with bcrypt. Digests embed a
// random salt, so hashing the same plaintext twice yields different digests.
package hasher

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Cost is the bcrypt work factor used for every new digest.
const Cost = bcrypt.DefaultCost

var ErrCorruptDigest = errors.New("corrupt password digest")

func Hash(plaintext string) (string, error) {
	const op = "hasher.Hash"

	digest, err := bcrypt.GenerateFromPassword([]byte(plaintext), Cost)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return string(digest), nil
}

// Verify reports whether plaintext matches digest. A mismatch is not an
// error; only a digest bcrypt cannot parse returns ErrCorruptDigest.
func Verify(plaintext, digest string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(digest), []byte(plaintext))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	default:
		return false, fmt.Errorf("%w: %v", ErrCorruptDigest, err)
	}
}
