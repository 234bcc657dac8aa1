// Package rates holds the static exchange-rate table, the simulated rate
// provider on top of it, and the currency metadata used to present amounts.
package rates

import (
	"sort"
	"strings"
)

// Table maps ordered currency pairs to exchange rates. It is immutable after Build.
type Table struct {
	hub   string
	rates map[string]map[string]float64
}

// Build completes seed into a full table: hub rates are taken as given,
// inverse rates are 1/rate, and every other pair is crossed through the hub.
// Non-positive seed rates are skipped.
func Build(seed Seed) *Table {
	hub := strings.ToUpper(seed.Hub)
	t := &Table{
		hub:   hub,
		rates: map[string]map[string]float64{hub: {}},
	}

	for code, rate := range seed.Rates {
		code = strings.ToUpper(code)
		if code == hub || rate <= 0 {
			continue
		}
		t.rates[hub][code] = rate
		t.rates[code] = map[string]float64{hub: 1 / rate}
	}

	for from := range t.rates {
		if from == hub {
			continue
		}
		for to := range t.rates {
			if to == hub || to == from {
				continue
			}
			if _, ok := t.rates[from][to]; ok {
				continue
			}
			t.rates[from][to] = t.rates[from][hub] * t.rates[hub][to]
		}
	}

	return t
}

// Rate returns the base rate for converting one unit of from into to.
// A currency always converts to itself at exactly 1.
func (t *Table) Rate(from, to string) (float64, bool) {
	if from == to {
		return 1, true
	}
	rate, ok := t.rates[from][to]
	return rate, ok
}

// Codes returns every currency in the table, sorted.
func (t *Table) Codes() []string {
	codes := make([]string, 0, len(t.rates))
	for code := range t.rates {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}
