package crypto

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"
)

const (
	uppercaseChars = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	lowercaseChars = "abcdefghijklmnopqrstuvwxyz"
	numberChars    = "0123456789"
	symbolChars    = "!@#$%^&*()_+-=[]{}|;:,.<>?"
	similarChars   = "il1Lo0O"

	MinLength = 1
	MaxLength = 128
)

// ErrInvalidConfiguration is wrapped by every error Generate returns for bad options.
var ErrInvalidConfiguration = errors.New("invalid configuration")

var (
	ErrLengthTooShort     = fmt.Errorf("%w: password length must be at least 1", ErrInvalidConfiguration)
	ErrLengthTooLong      = fmt.Errorf("%w: password length must be at most 128", ErrInvalidConfiguration)
	ErrNoCharacterTypes   = fmt.Errorf("%w: at least one character type must be selected", ErrInvalidConfiguration)
	ErrEmptyCharset       = fmt.Errorf("%w: selected character types are empty after excluding similar characters", ErrInvalidConfiguration)
	ErrLengthInsufficient = fmt.Errorf("%w: password length must be at least equal to the number of selected character types", ErrInvalidConfiguration)
)

// Source supplies uniformly distributed integers in [0, n).
type Source interface {
	Intn(n int) (int, error)
}

type cryptoSource struct{}

func (cryptoSource) Intn(n int) (int, error) {
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		return 0, err
	}
	return int(v.Int64()), nil
}

// SecureSource is the crypto/rand backed Source used by Generate.
var SecureSource Source = cryptoSource{}

// GeneratorOptions configures the password generator.
type GeneratorOptions struct {
	Length         int
	Uppercase      bool
	Lowercase      bool
	Numbers        bool
	Symbols        bool
	ExcludeSimilar bool
}

// DefaultOptions returns sensible defaults: 16 characters with all types enabled.
func DefaultOptions() GeneratorOptions {
	return GeneratorOptions{
		Length:    16,
		Uppercase: true,
		Lowercase: true,
		Numbers:   true,
		Symbols:   true,
	}
}

// Charset returns the effective character pool for opts and the per-category
// alphabets in upper, lower, numbers, symbols order.
func (opts GeneratorOptions) Charset() (string, []string) {
	var pool strings.Builder
	var requiredSets []string

	add := func(enabled bool, chars string) {
		if !enabled {
			return
		}
		if opts.ExcludeSimilar {
			chars = stripSimilar(chars)
		}
		pool.WriteString(chars)
		requiredSets = append(requiredSets, chars)
	}

	add(opts.Uppercase, uppercaseChars)
	add(opts.Lowercase, lowercaseChars)
	add(opts.Numbers, numberChars)
	add(opts.Symbols, symbolChars)

	return pool.String(), requiredSets
}

// Generate creates a cryptographically secure random password based on the given options.
func Generate(opts GeneratorOptions) (string, error) {
	return GenerateWith(SecureSource, opts)
}

// GenerateWith is Generate drawing randomness from src.
func GenerateWith(src Source, opts GeneratorOptions) (string, error) {
	if opts.Length < MinLength {
		return "", ErrLengthTooShort
	}
	if opts.Length > MaxLength {
		return "", ErrLengthTooLong
	}

	pool, requiredSets := opts.Charset()

	if len(requiredSets) == 0 {
		return "", ErrNoCharacterTypes
	}
	for _, set := range requiredSets {
		if set == "" {
			return "", ErrEmptyCharset
		}
	}
	if opts.Length < len(requiredSets) {
		return "", ErrLengthInsufficient
	}

	result := make([]byte, opts.Length)

	// Guarantee at least one character from each selected type.
	for i, charset := range requiredSets {
		ch, err := randChar(src, charset)
		if err != nil {
			return "", err
		}
		result[i] = ch
	}

	// Fill the remaining positions from the full pool.
	for i := len(requiredSets); i < opts.Length; i++ {
		ch, err := randChar(src, pool)
		if err != nil {
			return "", err
		}
		result[i] = ch
	}

	if err := shuffle(src, result); err != nil {
		return "", err
	}

	return string(result), nil
}

func stripSimilar(chars string) string {
	return strings.Map(func(r rune) rune {
		if strings.ContainsRune(similarChars, r) {
			return -1
		}
		return r
	}, chars)
}

// randChar picks a random character from charset.
func randChar(src Source, charset string) (byte, error) {
	n, err := src.Intn(len(charset))
	if err != nil {
		return 0, err
	}
	return charset[n], nil
}

// shuffle performs a Fisher-Yates shuffle.
func shuffle(src Source, data []byte) error {
	for i := len(data) - 1; i > 0; i-- {
		j, err := src.Intn(i + 1)
		if err != nil {
			return err
		}
		data[i], data[j] = data[j], data[i]
	}
	return nil
}
