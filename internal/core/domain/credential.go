package domain

import (
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"hash"
	"strconv"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/crypto/pbkdf2"
	"golang.org/x/crypto/scrypt"
)

// Credential is the authoritative secret of an account, resolved once when the
// account row is loaded. It is either Hashed or Plaintext.
type Credential interface {
	// Verify reports whether password matches. It never panics on malformed
	// stored data; a bad hash simply does not match.
	Verify(password string) bool
	credential()
}

// Hashed is a one-way password hash. New hashes are bcrypt; Werkzeug pbkdf2
// and scrypt hashes written by earlier deployments are still accepted.
type Hashed struct {
	Hash string
}

// Plaintext is a legacy secret stored without hashing.
type Plaintext struct {
	Secret string
}

func (Hashed) credential()    {}
func (Plaintext) credential() {}

// ResolveCredential picks the credential to trust for a row. A non-empty hash
// wins even when a plaintext value is also present. Nil means the row has no
// usable secret.
func ResolveCredential(hashValue, plainValue string) Credential {
	if h := strings.TrimSpace(hashValue); h != "" {
		return Hashed{Hash: h}
	}
	if p := strings.TrimSpace(plainValue); p != "" {
		return Plaintext{Secret: p}
	}
	return nil
}

// MaxPasswordBytes is the longest password bcrypt accepts.
const MaxPasswordBytes = 72

// HashPassword produces the hashed form written for new accounts.
func HashPassword(password string) (Hashed, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return Hashed{}, ErrPasswordTooLong
	}
	if err != nil {
		return Hashed{}, err
	}
	return Hashed{Hash: string(h)}, nil
}

// Verify compares against the stored secret verbatim.
func (p Plaintext) Verify(password string) bool {
	return p.Secret != "" && p.Secret == password
}

// Verify dispatches on the hash prefix.
func (h Hashed) Verify(password string) bool {
	switch {
	case strings.HasPrefix(h.Hash, "$2"):
		return bcrypt.CompareHashAndPassword([]byte(h.Hash), []byte(password)) == nil
	case strings.HasPrefix(h.Hash, "pbkdf2:"), strings.HasPrefix(h.Hash, "scrypt:"):
		return verifyWerkzeug(h.Hash, password)
	default:
		return false
	}
}

const werkzeugPBKDF2Iterations = 600000

// verifyWerkzeug checks "method$salt$hexdigest" hashes.
//
//	pbkdf2:<digest>[:<iterations>]$salt$hex
//	scrypt:<n>:<r>:<p>$salt$hex
func verifyWerkzeug(stored, password string) bool {
	parts := strings.Split(stored, "$")
	if len(parts) != 3 || parts[1] == "" || parts[2] == "" {
		return false
	}
	method, salt, want := parts[0], []byte(parts[1]), parts[2]

	args := strings.Split(method, ":")
	var derived []byte
	switch args[0] {
	case "pbkdf2":
		if len(args) < 2 || len(args) > 3 {
			return false
		}
		newHash, size := digest(args[1])
		if newHash == nil {
			return false
		}
		iterations := werkzeugPBKDF2Iterations
		if len(args) == 3 {
			n, err := strconv.Atoi(args[2])
			if err != nil || n <= 0 {
				return false
			}
			iterations = n
		}
		derived = pbkdf2.Key([]byte(password), salt, iterations, size, newHash)
	case "scrypt":
		if len(args) != 4 {
			return false
		}
		var params [3]int
		for i, a := range args[1:] {
			n, err := strconv.Atoi(a)
			if err != nil || n <= 0 {
				return false
			}
			params[i] = n
		}
		key, err := scrypt.Key([]byte(password), salt, params[0], params[1], params[2], 64)
		if err != nil {
			return false
		}
		derived = key
	default:
		return false
	}

	got := hex.EncodeToString(derived)
	return subtle.ConstantTimeCompare([]byte(got), []byte(strings.ToLower(want))) == 1
}

func digest(name string) (func() hash.Hash, int) {
	switch name {
	case "sha256":
		return sha256.New, sha256.Size
	case "sha512":
		return sha512.New, sha512.Size
	case "sha1":
		return sha1.New, sha1.Size
	default:
		return nil, 0
	}
}
