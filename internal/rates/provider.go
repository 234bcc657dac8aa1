package rates

import (
	"context"
	"log/slog"
	"math/rand"
	"time"
)

const (
	DefaultLatency = 500 * time.Millisecond
	DefaultSpread  = 0.01

	// MaxSpread keeps every quoted rate above half its base rate.
	MaxSpread = 0.5
)

// Jitter returns values uniformly distributed in [0, 1).
type Jitter interface {
	Float64() float64
}

type globalJitter struct{}

func (globalJitter) Float64() float64 { return rand.Float64() }

// ProviderOptions tunes a Provider. A nil Jitter or Logger falls back to
// the global ones. Spread is clamped to [0, MaxSpread].
type ProviderOptions struct {
	Latency time.Duration
	// Spread is the maximum relative fluctuation applied to each quote.
	Spread  float64
	Jitter  Jitter
	Logger  *slog.Logger
}

// Provider quotes rates from a Table the way a remote rates API would: after
// a delay, and with a small random fluctuation on every call.
type Provider struct {
	table   *Table
	latency time.Duration
	spread  float64
	jitter  Jitter
	logger  *slog.Logger
}

// NewProvider creates a Provider over table.
func NewProvider(table *Table, opts ProviderOptions) *Provider {
	p := &Provider{
		table:   table,
		latency: opts.Latency,
		spread:  opts.Spread,
		jitter:  opts.Jitter,
		logger:  opts.Logger,
	}
	if p.latency < 0 {
		p.latency = 0
	}
	p.spread = max(0, min(p.spread, MaxSpread))
	if p.jitter == nil {
		p.jitter = globalJitter{}
	}
	if p.logger == nil {
		p.logger = slog.Default()
	}
	return p
}

// Lookup returns the rate for converting from into to. Identical codes
// always yield exactly 1. Pairs missing from the table are quoted at a base
// rate of 1. Each call draws a fresh fluctuation, so repeated lookups of the
// same pair generally differ.
func (p *Provider) Lookup(ctx context.Context, from, to string) (float64, error) {
	if p.latency > 0 {
		timer := time.NewTimer(p.latency)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return 0, ctx.Err()
		case <-timer.C:
		}
	}

	if from == to {
		return 1, nil
	}

	base, ok := p.table.Rate(from, to)
	if !ok {
		p.logger.Warn("no rate for currency pair, quoting 1:1", "from", from, "to", to)
		base = 1
	}

	delta := (p.jitter.Float64()*2 - 1) * p.spread
	return base * (1 + delta), nil
}
