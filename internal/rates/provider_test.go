package rates

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"
)

type fixedJitter float64

func (f fixedJitter) Float64() float64 { return float64(f) }

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestProvider(jitter Jitter) *Provider {
	return NewProvider(
		Build(Seed{Hub: "USD", Rates: map[string]float64{"EUR": 0.85}}),
		ProviderOptions{Spread: DefaultSpread, Jitter: jitter, Logger: quietLogger()},
	)
}

func TestLookupFluctuationBounds(t *testing.T) {
	base := 1 / 0.85

	tests := []struct {
		name   string
		jitter float64
		want   float64
	}{
		{name: "lowest", jitter: 0, want: base * 0.99},
		{name: "midpoint", jitter: 0.5, want: base},
		{name: "near highest", jitter: 0.75, want: base * 1.005},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := newTestProvider(fixedJitter(tt.jitter)).Lookup(context.Background(), "EUR", "USD")
			if err != nil {
				t.Fatalf("Lookup() unexpected error: %v", err)
			}
			if !approxEqual(got, tt.want) {
				t.Errorf("Lookup() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLookupRandomStaysInRange(t *testing.T) {
	p := newTestProvider(nil)
	base := 1 / 0.85

	for i := 0; i < 200; i++ {
		got, err := p.Lookup(context.Background(), "EUR", "USD")
		if err != nil {
			t.Fatalf("Lookup() unexpected error: %v", err)
		}
		if got < base*0.99 || got > base*1.01 {
			t.Fatalf("Lookup() = %v, outside [%v, %v]", got, base*0.99, base*1.01)
		}
	}
}

func TestLookupSameCurrency(t *testing.T) {
	p := newTestProvider(fixedJitter(0))
	for _, code := range []string{"USD", "EUR", "XXX"} {
		got, err := p.Lookup(context.Background(), code, code)
		if err != nil {
			t.Fatalf("Lookup() unexpected error: %v", err)
		}
		if got != 1 {
			t.Errorf("Lookup(%s, %s) = %v, want exactly 1", code, code, got)
		}
	}
}

func TestLookupUnknownPairFallsBackToOne(t *testing.T) {
	got, err := newTestProvider(fixedJitter(0.5)).Lookup(context.Background(), "EUR", "XXX")
	if err != nil {
		t.Fatalf("Lookup() unexpected error: %v", err)
	}
	if !approxEqual(got, 1) {
		t.Errorf("Lookup(EUR, XXX) = %v, want 1", got)
	}
}

func TestLookupWaitsForLatency(t *testing.T) {
	p := NewProvider(Build(DefaultSeed()), ProviderOptions{Latency: 20 * time.Millisecond, Logger: quietLogger()})

	start := time.Now()
	if _, err := p.Lookup(context.Background(), "USD", "EUR"); err != nil {
		t.Fatalf("Lookup() unexpected error: %v", err)
	}
	if elapsed := time.Since(start); elapsed < 20*time.Millisecond {
		t.Errorf("Lookup() returned after %v, want at least 20ms", elapsed)
	}
}

func TestLookupCancelled(t *testing.T) {
	p := NewProvider(Build(DefaultSeed()), ProviderOptions{Latency: time.Hour, Logger: quietLogger()})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := p.Lookup(ctx, "USD", "EUR"); !errors.Is(err, context.Canceled) {
		t.Errorf("Lookup() error = %v, want %v", err, context.Canceled)
	}
}

func TestNewProviderClampsNegativeOptions(t *testing.T) {
	p := NewProvider(Build(DefaultSeed()), ProviderOptions{Latency: -time.Second, Spread: -1})
	if p.latency != 0 || p.spread != 0 {
		t.Errorf("NewProvider() latency = %v, spread = %v; want 0, 0", p.latency, p.spread)
	}
	if p.jitter == nil || p.logger == nil {
		t.Error("NewProvider() should default jitter and logger")
	}
}

func TestNewProviderClampsLargeSpread(t *testing.T) {
	for _, spread := range []float64{1, 2.5} {
		p := NewProvider(Build(DefaultSeed()), ProviderOptions{Spread: spread, Jitter: fixedJitter(0), Logger: quietLogger()})
		if p.spread != MaxSpread {
			t.Fatalf("NewProvider(spread %v).spread = %v, want %v", spread, p.spread, MaxSpread)
		}

		// The lowest possible draw still quotes a positive rate.
		got, err := p.Lookup(context.Background(), "USD", "EUR")
		if err != nil {
			t.Fatalf("Lookup() unexpected error: %v", err)
		}
		if got <= 0 {
			t.Errorf("Lookup() with spread %v = %v, want > 0", spread, got)
		}
	}
}
