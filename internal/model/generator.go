package model

import (
	"time"

	"github.com/vaultpass/passfx-go/internal/crypto"
)

// GenerateRequest represents a password generation request.
// Pointer bools allow distinguishing between missing (nil -> default true) and explicit false.
type GenerateRequest struct {
	Length         int   `json:"length"`
	Uppercase      *bool `json:"uppercase"`
	Lowercase      *bool `json:"lowercase"`
	Numbers        *bool `json:"numbers"`
	Symbols        *bool `json:"symbols"`
	ExcludeSimilar bool  `json:"exclude_similar"`

	// Hash asks for the Argon2id PHC hash of the password alongside it.
	Hash bool `json:"hash"`
}

// GenerateResponse represents a password generation response.
type GenerateResponse struct {
	Password string          `json:"password"`
	Length   int             `json:"length"`
	Strength crypto.Strength `json:"strength"`
	Hash     string          `json:"hash,omitempty"`
}

// StrengthRequest carries a password to score.
type StrengthRequest struct {
	Password string `json:"password"`
}

// VerifyRequest checks a password against a hash returned by generate.
type VerifyRequest struct {
	Password string `json:"password"`
	Hash     string `json:"hash"`
}

// VerifyResponse reports whether the password matched.
type VerifyResponse struct {
	Match bool `json:"match"`
}

// GeneratedPassword is a password history item.
type GeneratedPassword struct {
	ID        string          `json:"id"`
	Password  string          `json:"password"`
	Strength  crypto.Strength `json:"strength"`
	Timestamp time.Time       `json:"timestamp"`
}
