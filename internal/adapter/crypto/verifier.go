package crypto

import (
	"strings"

	"loginapp/internal/core/port"
)

// Verifier compares against bcrypt or argon2id hashes, picking the
// algorithm from the hash prefix so both kinds can live in the same table.
type Verifier struct {
	bcrypt *BcryptHasher
	argon2 *Argon2idHasher
}

func NewVerifier() *Verifier {
	return &Verifier{
		bcrypt: NewBcryptHasher(0),
		argon2: NewArgon2idHasher(),
	}
}

func (v *Verifier) Compare(plaintext, hash string) (bool, error) {
	if strings.HasPrefix(hash, argon2Prefix) {
		return v.argon2.Compare(plaintext, hash)
	}

	return v.bcrypt.Compare(plaintext, hash)
}

// NewHasher returns the hasher for the configured algorithm, bcrypt unless
// "argon2id" is asked for.
func NewHasher(algorithm string, bcryptCost int) port.PasswordHasher {
	if algorithm == "argon2id" {
		return NewArgon2idHasher()
	}

	return NewBcryptHasher(bcryptCost)
}
