package crypto

import (
	"unicode/utf8"

	passwordvalidator "github.com/wagslane/go-password-validator"
)

var (
	strengthLabels = [...]string{"Very Weak", "Weak", "Fair", "Strong", "Very Strong"}
	strengthColors = [...]string{"#EF4444", "#F97316", "#F59E0B", "#10B981", "#059669"}
)

// MaxStrengthScore is the highest normalized score Score can return.
const MaxStrengthScore = 4

const maxRawScore = 8

// Strength describes how hard a password is to guess.
type Strength struct {
	Score      int     `json:"score"`
	Label      string  `json:"label"`
	Color      string  `json:"color"`
	Percentage float64 `json:"percentage"`

	// EntropyBits is informational and does not affect Score.
	EntropyBits float64 `json:"entropy_bits"`
}

// Score rates a password from 0 (Very Weak) to 4 (Very Strong) based on its
// length and the character classes it uses.
func Score(password string) Strength {
	var hasLower, hasUpper, hasDigit, hasSpecial bool
	for _, r := range password {
		switch {
		case r >= 'a' && r <= 'z':
			hasLower = true
		case r >= 'A' && r <= 'Z':
			hasUpper = true
		case r >= '0' && r <= '9':
			hasDigit = true
		default:
			hasSpecial = true
		}
	}

	length := utf8.RuneCountInString(password)
	raw := 0
	for _, ok := range []bool{length >= 8, length >= 12, length >= 16, hasLower, hasUpper, hasDigit} {
		if ok {
			raw++
		}
	}
	if hasSpecial {
		raw += 2
	}

	score := min(MaxStrengthScore, raw*MaxStrengthScore/maxRawScore)

	return Strength{
		Score:      score,
		Label:      strengthLabels[score],
		Color:      strengthColors[score],
		Percentage: float64(score) / MaxStrengthScore * 100,

		EntropyBits: passwordvalidator.GetEntropy(password),
	}
}
