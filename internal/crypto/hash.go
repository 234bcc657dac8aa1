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

var (
	ErrInvalidHashFormat   = errors.New("invalid encoded hash format")
	ErrIncompatibleVersion = errors.New("incompatible argon2 version")
)

// HashParams configures the Argon2id hashing parameters.
type HashParams struct {
	Memory      uint32
	Iterations  uint32
	Parallelism uint8
	SaltLength  uint32
	KeyLength   uint32
}

// DefaultHashParams returns recommended Argon2id parameters for password hashing.
func DefaultHashParams() HashParams {
	return HashParams{
		Memory:      64 * 1024,
		Iterations:  3,
		Parallelism: 2,
		SaltLength:  16,
		KeyLength:   32,
	}
}

// Hasher derives Argon2id hashes of generated passwords so callers can
// provision them without storing the plaintext.
type Hasher struct {
	params HashParams
}

// NewHasher creates a Hasher; zero-valued params fall back to DefaultHashParams.
func NewHasher(params HashParams) *Hasher {
	if params == (HashParams{}) {
		params = DefaultHashParams()
	}
	return &Hasher{params: params}
}

// phc is a decoded $argon2id$v=..$m=..,t=..,p=..$salt$key string.
type phc struct {
	params HashParams
	salt   []byte
	key    []byte
}

func (p phc) String() string {
	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version,
		p.params.Memory,
		p.params.Iterations,
		p.params.Parallelism,
		base64.RawStdEncoding.EncodeToString(p.salt),
		base64.RawStdEncoding.EncodeToString(p.key),
	)
}

// Hash returns the PHC encoding of password's Argon2id key under a fresh salt.
func (h *Hasher) Hash(password string) (string, error) {
	salt := make([]byte, h.params.SaltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generating salt: %w", err)
	}

	p := phc{params: h.params, salt: salt}
	p.key = derive(password, p)
	return p.String(), nil
}

// Verify reports whether password matches encoded. Parameters are taken from
// the encoding, and rejected with ErrInvalidHashFormat when any of them
// exceeds the Hasher's own.
func (h *Hasher) Verify(password, encoded string) (bool, error) {
	p, err := parsePHC(encoded)
	if err != nil {
		return false, err
	}
	if !h.within(p.params) {
		return false, ErrInvalidHashFormat
	}
	return subtle.ConstantTimeCompare(p.key, derive(password, p)) == 1, nil
}

// within reports whether p costs no more to derive than h's parameters.
func (h *Hasher) within(p HashParams) bool {
	switch {
	case p.Iterations == 0 || p.Iterations > h.params.Iterations:
		return false
	case p.Parallelism == 0 || p.Parallelism > h.params.Parallelism:
		return false
	case p.Memory == 0 || p.Memory > h.params.Memory:
		return false
	case p.SaltLength > h.params.SaltLength:
		return false
	case p.KeyLength == 0 || p.KeyLength > h.params.KeyLength:
		return false
	}
	return true
}

func derive(password string, p phc) []byte {
	return argon2.IDKey([]byte(password), p.salt, p.params.Iterations, p.params.Memory, p.params.Parallelism, p.params.KeyLength)
}

func parsePHC(encoded string) (phc, error) {
	fields := strings.Split(encoded, "$")
	if len(fields) != 6 || fields[0] != "" || fields[1] != "argon2id" {
		return phc{}, ErrInvalidHashFormat
	}

	var version int
	if _, err := fmt.Sscanf(fields[2], "v=%d", &version); err != nil {
		return phc{}, ErrInvalidHashFormat
	}
	if version != argon2.Version {
		return phc{}, ErrIncompatibleVersion
	}

	var p phc
	if _, err := fmt.Sscanf(fields[3], "m=%d,t=%d,p=%d", &p.params.Memory, &p.params.Iterations, &p.params.Parallelism); err != nil {
		return phc{}, ErrInvalidHashFormat
	}

	var err error
	if p.salt, err = base64.RawStdEncoding.DecodeString(fields[4]); err != nil {
		return phc{}, ErrInvalidHashFormat
	}
	if p.key, err = base64.RawStdEncoding.DecodeString(fields[5]); err != nil || len(p.key) == 0 {
		return phc{}, ErrInvalidHashFormat
	}
	p.params.SaltLength = uint32(len(p.salt))
	p.params.KeyLength = uint32(len(p.key))

	return p, nil
}
