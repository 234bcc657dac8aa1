package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/vaultpass/passfx-go/internal/crypto"
	"github.com/vaultpass/passfx-go/internal/model"
	"github.com/vaultpass/passfx-go/internal/rates"
	"github.com/vaultpass/passfx-go/internal/repository"
	"github.com/vaultpass/passfx-go/internal/service"
)

const testSecret = "test-secret"

type midJitter struct{}

func (midJitter) Float64() float64 { return 0.5 }

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	provider := rates.NewProvider(rates.Build(rates.DefaultSeed()), rates.ProviderOptions{
		Spread: rates.DefaultSpread,
		Jitter: midJitter{},
		Logger: logger,
	})
	history := repository.NewHistoryRepository()
	hasher := crypto.NewHasher(crypto.HashParams{Memory: 1024, Iterations: 1, Parallelism: 1, SaltLength: 8, KeyLength: 16})

	return NewRouter(ctx, RouterDeps{
		Logger:        logger,
		SessionSecret: testSecret,
		Generator:     NewGeneratorHandler(service.NewGeneratorService(history, hasher)),
		Converter:     NewConverterHandler(service.NewConverterService(provider, history)),
		Session:       NewSessionHandler(service.NewSessionService(testSecret, time.Hour)),
	})
}

func do(t *testing.T, h http.Handler, method, path, body, token string) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(rec.Body).Decode(&v); err != nil {
		t.Fatalf("decode response: %v (body %q)", err, rec.Body.String())
	}
	return v
}

func newSession(t *testing.T, h http.Handler) string {
	t.Helper()
	rec := do(t, h, http.MethodPost, "/api/v1/session", "", "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201 creating session, got %d", rec.Code)
	}
	return decode[model.SessionResponse](t, rec).Token
}

func TestHealth(t *testing.T) {
	rec := do(t, newTestRouter(t), http.MethodGet, "/health", "", "")
	if rec.Code != http.StatusOK || rec.Body.String() != "ok" {
		t.Fatalf("unexpected health response %d %q", rec.Code, rec.Body.String())
	}
}

func TestHandleGenerate(t *testing.T) {
	router := newTestRouter(t)

	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantLength int
	}{
		{name: "empty body uses defaults", body: "", wantStatus: http.StatusOK, wantLength: 16},
		{name: "custom length", body: `{"length":32}`, wantStatus: http.StatusOK, wantLength: 32},
		{name: "numbers only", body: `{"length":6,"uppercase":false,"lowercase":false,"symbols":false}`, wantStatus: http.StatusOK, wantLength: 6},
		{name: "too long", body: `{"length":129}`, wantStatus: http.StatusBadRequest},
		{name: "negative length", body: `{"length":-1}`, wantStatus: http.StatusBadRequest},
		{name: "no character types", body: `{"uppercase":false,"lowercase":false,"numbers":false,"symbols":false}`, wantStatus: http.StatusBadRequest},
		{name: "shorter than categories", body: `{"length":3}`, wantStatus: http.StatusBadRequest},
		{name: "malformed", body: `{"length":`, wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, router, http.MethodPost, "/api/v1/generate", tt.body, "")
			if rec.Code != tt.wantStatus {
				t.Fatalf("expected status %d, got %d (%s)", tt.wantStatus, rec.Code, rec.Body.String())
			}
			if tt.wantStatus != http.StatusOK {
				return
			}
			resp := decode[model.GenerateResponse](t, rec)
			if len(resp.Password) != tt.wantLength || resp.Length != tt.wantLength {
				t.Errorf("expected length %d, got %d (%q)", tt.wantLength, resp.Length, resp.Password)
			}
			if resp.Hash != "" {
				t.Error("expected no hash unless requested")
			}
		})
	}
}

func TestHandleGenerateWithHashVerifies(t *testing.T) {
	router := newTestRouter(t)

	rec := do(t, router, http.MethodPost, "/api/v1/generate", `{"hash":true}`, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	gen := decode[model.GenerateResponse](t, rec)
	if !strings.HasPrefix(gen.Hash, "$argon2id$") {
		t.Fatalf("expected argon2id hash, got %q", gen.Hash)
	}

	body, _ := json.Marshal(model.VerifyRequest{Password: gen.Password, Hash: gen.Hash})
	rec = do(t, router, http.MethodPost, "/api/v1/hash/verify", string(body), "")
	if rec.Code != http.StatusOK || !decode[model.VerifyResponse](t, rec).Match {
		t.Fatalf("expected match, got %d", rec.Code)
	}

	rec = do(t, router, http.MethodPost, "/api/v1/hash/verify", `{"password":"x","hash":"bogus"}`, "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for malformed hash, got %d", rec.Code)
	}
}

func TestHandleVerifyRejectsCostlyHash(t *testing.T) {
	const tail = "$c2FsdHNhbHQ$a2V5a2V5a2V5a2V5a2V5aw"

	tests := []struct {
		name   string
		params string
	}{
		{name: "zero parallelism", params: "m=1024,t=1,p=0"},
		{name: "zero iterations", params: "m=1024,t=0,p=1"},
		{name: "excessive iterations", params: "m=1024,t=200,p=1"},
		{name: "excessive memory", params: "m=4294967295,t=1,p=1"},
	}

	router := newTestRouter(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body, _ := json.Marshal(model.VerifyRequest{Password: "x", Hash: "$argon2id$v=19$" + tt.params + tail})
			rec := do(t, router, http.MethodPost, "/api/v1/hash/verify", string(body), "")
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d (%s)", rec.Code, rec.Body.String())
			}
		})
	}
}

func TestHandleVerifyRateLimited(t *testing.T) {
	router := newTestRouter(t)

	var limited bool
	for i := 0; i < 20; i++ {
		rec := do(t, router, http.MethodPost, "/api/v1/hash/verify", `{"password":"x","hash":"bogus"}`, "")
		if rec.Code == http.StatusTooManyRequests {
			limited = true
			break
		}
	}
	if !limited {
		t.Fatal("expected verify to be rate limited")
	}
}

func TestHandleStrength(t *testing.T) {
	router := newTestRouter(t)

	tests := []struct {
		password  string
		wantScore int
		wantLabel string
	}{
		{password: "", wantScore: 0, wantLabel: "Very Weak"},
		{password: "aaaaaaaaaaaaaaaa", wantScore: 2, wantLabel: "Fair"},
		{password: "Aa1!aaaaaaaaaaaa", wantScore: 4, wantLabel: "Very Strong"},
	}

	for _, tt := range tests {
		t.Run(tt.wantLabel, func(t *testing.T) {
			body, _ := json.Marshal(model.StrengthRequest{Password: tt.password})
			rec := do(t, router, http.MethodPost, "/api/v1/strength", string(body), "")
			if rec.Code != http.StatusOK {
				t.Fatalf("expected 200, got %d", rec.Code)
			}
			got := decode[crypto.Strength](t, rec)
			if got.Score != tt.wantScore || got.Label != tt.wantLabel {
				t.Errorf("expected %d/%s, got %d/%s", tt.wantScore, tt.wantLabel, got.Score, got.Label)
			}
		})
	}
}

func TestHandleRate(t *testing.T) {
	router := newTestRouter(t)

	rec := do(t, router, http.MethodGet, "/api/v1/rates/usd/eur", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	resp := decode[model.RateResponse](t, rec)
	if resp.From != "USD" || resp.To != "EUR" || resp.Rate != 0.85 {
		t.Errorf("unexpected rate response %+v", resp)
	}

	rec = do(t, router, http.MethodGet, "/api/v1/rates/JPY/JPY", "", "")
	if resp := decode[model.RateResponse](t, rec); resp.Rate != 1 {
		t.Errorf("expected identity rate 1, got %v", resp.Rate)
	}
}

func TestHandleConvert(t *testing.T) {
	router := newTestRouter(t)

	tests := []struct {
		name        string
		body        string
		wantStatus  int
		wantDisplay string
	}{
		{name: "usd to eur", body: `{"amount":"100","from":"USD","to":"EUR"}`, wantStatus: http.StatusOK, wantDisplay: "$100.00 = €85.00"},
		{name: "zero amount", body: `{"amount":"0","from":"USD","to":"EUR"}`, wantStatus: http.StatusBadRequest},
		{name: "not a number", body: `{"amount":"abc","from":"USD","to":"EUR"}`, wantStatus: http.StatusBadRequest},
		{name: "missing currency", body: `{"amount":"1","from":"USD"}`, wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, router, http.MethodPost, "/api/v1/convert", tt.body, "")
			if rec.Code != tt.wantStatus {
				t.Fatalf("expected status %d, got %d (%s)", tt.wantStatus, rec.Code, rec.Body.String())
			}
			if tt.wantStatus == http.StatusOK {
				if got := decode[model.ConversionResult](t, rec).Display; got != tt.wantDisplay {
					t.Errorf("expected display %q, got %q", tt.wantDisplay, got)
				}
			}
		})
	}
}

func TestHandleQuickAndCurrencies(t *testing.T) {
	router := newTestRouter(t)

	rec := do(t, router, http.MethodGet, "/api/v1/convert/quick?from=USD&to=EUR", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	quick := decode[model.QuickConversionsResponse](t, rec)
	if len(quick.Rows) != len(rates.QuickAmounts) {
		t.Errorf("expected %d rows, got %d", len(rates.QuickAmounts), len(quick.Rows))
	}

	rec = do(t, router, http.MethodGet, "/api/v1/currencies", "", "")
	if got := decode[[]rates.Currency](t, rec); len(got) != len(rates.Currencies()) {
		t.Errorf("expected %d currencies, got %d", len(rates.Currencies()), len(got))
	}
}

func TestHistoryRequiresSession(t *testing.T) {
	router := newTestRouter(t)

	for _, path := range []string{"/api/v1/history/passwords", "/api/v1/history/conversions"} {
		rec := do(t, router, http.MethodGet, path, "", "")
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("%s: expected 401 without session, got %d", path, rec.Code)
		}
	}
}

func TestSessionHistory(t *testing.T) {
	router := newTestRouter(t)
	token := newSession(t, router)
	other := newSession(t, router)

	for i := 0; i < 3; i++ {
		if rec := do(t, router, http.MethodPost, "/api/v1/generate", "", token); rec.Code != http.StatusOK {
			t.Fatalf("generate: expected 200, got %d", rec.Code)
		}
	}
	do(t, router, http.MethodPost, "/api/v1/convert", `{"amount":"5","from":"GBP","to":"JPY"}`, token)

	rec := do(t, router, http.MethodGet, "/api/v1/history/passwords", "", token)
	if got := decode[[]model.GeneratedPassword](t, rec); len(got) != 3 {
		t.Fatalf("expected 3 passwords, got %d", len(got))
	}
	rec = do(t, router, http.MethodGet, "/api/v1/history/conversions", "", token)
	if got := decode[[]model.ConversionHistoryItem](t, rec); len(got) != 1 {
		t.Fatalf("expected 1 conversion, got %d", len(got))
	}

	rec = do(t, router, http.MethodGet, "/api/v1/history/passwords", "", other)
	if got := decode[[]model.GeneratedPassword](t, rec); len(got) != 0 {
		t.Errorf("expected other session to be empty, got %d", len(got))
	}

	rec = do(t, router, http.MethodDelete, "/api/v1/history/passwords", "", token)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	rec = do(t, router, http.MethodGet, "/api/v1/history/passwords", "", token)
	if got := decode[[]model.GeneratedPassword](t, rec); len(got) != 0 {
		t.Errorf("expected cleared history, got %d", len(got))
	}
}

func TestDecodeJSONTooLarge(t *testing.T) {
	router := newTestRouter(t)
	body := `{"password":"` + string(bytes.Repeat([]byte("a"), maxBodyBytes)) + `"}`

	rec := do(t, router, http.MethodPost, "/api/v1/strength", body, "")
	if rec.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("expected 413, got %d", rec.Code)
	}
}
