package crypto

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

const argon2Prefix = "$argon2id$"

// OWASP-recommended argon2id parameters.
const (
	argon2Time    = 1
	argon2Memory  = 64 * 1024
	argon2Threads = 4
	argon2SaltLen = 16
	argon2KeyLen  = 32
)

var ErrInvalidArgon2Hash = errors.New("invalid argon2id hash")

type Argon2idHasher struct{}

func NewArgon2idHasher() *Argon2idHasher {
	return &Argon2idHasher{}
}

// Hash encodes the password as a PHC string:
// $argon2id$v=19$m=65536,t=1,p=4$<salt>$<hash>
func (h *Argon2idHasher) Hash(password string) (string, error) {
	salt := make([]byte, argon2SaltLen)

	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("error generating salt: %w", err)
	}

	hash := argon2.IDKey([]byte(password), salt, argon2Time, argon2Memory, argon2Threads, argon2KeyLen)

	return fmt.Sprintf(
		"$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version,
		argon2Memory,
		argon2Time,
		argon2Threads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(hash),
	), nil
}

func (h *Argon2idHasher) Compare(plaintext, encoded string) (bool, error) {
	parts := strings.Split(encoded, "$")

	if len(parts) != 6 || parts[1] != "argon2id" {
		return false, ErrInvalidArgon2Hash
	}

	var version int

	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil || version != argon2.Version {
		return false, ErrInvalidArgon2Hash
	}

	var memory, iterations uint32
	var threads uint8

	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &memory, &iterations, &threads); err != nil {
		return false, ErrInvalidArgon2Hash
	}

	// argon2.IDKey panics on zero cost parameters.
	if memory == 0 || iterations == 0 || threads == 0 {
		return false, ErrInvalidArgon2Hash
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])

	if err != nil {
		return false, ErrInvalidArgon2Hash
	}

	expected, err := base64.RawStdEncoding.DecodeString(parts[5])

	if err != nil || len(expected) == 0 {
		return false, ErrInvalidArgon2Hash
	}

	actual := argon2.IDKey([]byte(plaintext), salt, iterations, memory, threads, uint32(len(expected)))

	return subtle.ConstantTimeCompare(expected, actual) == 1, nil
}
