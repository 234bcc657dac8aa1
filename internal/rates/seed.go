package rates

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

var ErrInvalidSeed = errors.New("invalid rate seed")

// Seed lists the direct rates from the hub currency to every other currency.
type Seed struct {
	Hub   string             `yaml:"hub"`
	Rates map[string]float64 `yaml:"rates"`
}

// DefaultSeed returns the built-in USD table.
func DefaultSeed() Seed {
	return Seed{
		Hub: "USD",
		Rates: map[string]float64{
			"EUR": 0.85,
			"GBP": 0.73,
			"JPY": 110.0,
			"AUD": 1.35,
			"CAD": 1.25,
			"CHF": 0.92,
			"CNY": 6.45,
			"SEK": 8.75,
			"NZD": 1.42,
			"MXN": 20.15,
			"SGD": 1.35,
			"HKD": 7.85,
			"NOK": 8.65,
			"KRW": 1180.0,
			"TRY": 8.45,
			"RUB": 75.0,
			"INR": 74.5,
			"BRL": 5.25,
			"ZAR": 14.75,
			"PLN": 3.85,
			"ILS": 3.25,
			"DKK": 6.35,
			"CZK": 21.5,
			"HUF": 295.0,
			"BGN": 1.66,
			"RON": 4.15,
			"HRK": 6.42,
			"ISK": 125.0,
			"PHP": 50.5,
			"MYR": 4.15,
			"THB": 31.5,
			"IDR": 14250.0,
		},
	}
}

// LoadSeed reads a YAML seed file of the form:
//
//	hub: USD
//	rates:
//	  EUR: 0.85
func LoadSeed(path string) (Seed, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Seed{}, fmt.Errorf("reading rate seed: %w", err)
	}
	return ParseSeed(data)
}

// ParseSeed decodes a YAML seed document.
func ParseSeed(data []byte) (Seed, error) {
	var seed Seed
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return Seed{}, fmt.Errorf("%w: %v", ErrInvalidSeed, err)
	}
	if seed.Hub == "" {
		return Seed{}, fmt.Errorf("%w: hub is required", ErrInvalidSeed)
	}
	if len(seed.Rates) == 0 {
		return Seed{}, fmt.Errorf("%w: no rates", ErrInvalidSeed)
	}
	return seed, nil
}
