package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/vaultpass/passfx-go/internal/model"
	"github.com/vaultpass/passfx-go/internal/rates"
	"github.com/vaultpass/passfx-go/internal/repository"
)

var (
	ErrInvalidAmount    = errors.New("amount must be a positive number")
	ErrCurrencyRequired = errors.New("from and to currencies are required")
)

// ConverterService handles currency conversion on top of the rate provider.
type ConverterService struct {
	provider *rates.Provider
	history  *repository.HistoryRepository
}

// NewConverterService creates a new ConverterService.
func NewConverterService(provider *rates.Provider, history *repository.HistoryRepository) *ConverterService {
	return &ConverterService{provider: provider, history: history}
}

// Currencies lists the currencies with built-in metadata.
func (s *ConverterService) Currencies() []rates.Currency {
	return rates.Currencies()
}

// Rate quotes a single rate.
func (s *ConverterService) Rate(ctx context.Context, from, to string) (model.RateResponse, error) {
	fromCur, toCur, err := resolvePair(from, to)
	if err != nil {
		return model.RateResponse{}, err
	}

	rate, err := s.provider.Lookup(ctx, fromCur.Code, toCur.Code)
	if err != nil {
		return model.RateResponse{}, err
	}

	return model.RateResponse{
		From:      fromCur.Code,
		To:        toCur.Code,
		Rate:      rate,
		Timestamp: time.Now().UTC(),
	}, nil
}

// Convert converts the requested amount. When sessionID is set the result is
// added to that session's history.
func (s *ConverterService) Convert(ctx context.Context, sessionID string, req model.ConvertRequest) (model.ConversionResult, error) {
	amount, err := parseAmount(req.Amount)
	if err != nil {
		return model.ConversionResult{}, err
	}

	fromCur, toCur, err := resolvePair(req.From, req.To)
	if err != nil {
		return model.ConversionResult{}, err
	}

	rate, err := s.provider.Lookup(ctx, fromCur.Code, toCur.Code)
	if err != nil {
		return model.ConversionResult{}, err
	}

	result := model.ConversionResult{
		FromAmount:   amount.InexactFloat64(),
		ToAmount:     amount.Mul(decimal.NewFromFloat(rate)).InexactFloat64(),
		FromCurrency: fromCur,
		ToCurrency:   toCur,
		Rate:         rate,
		Timestamp:    time.Now().UTC(),
	}
	result.Display = rates.FormatAmount(result.FromAmount, fromCur) + " = " + rates.FormatAmount(result.ToAmount, toCur)

	if sessionID != "" {
		item := model.ConversionHistoryItem{
			ID:         uuid.NewString(),
			Conversion: result,
			Timestamp:  result.Timestamp,
		}
		if err := s.history.AddConversion(ctx, sessionID, item); err != nil {
			slog.Warn("failed to record conversion history", "session_id", sessionID, "error", err)
		}
	}

	return result, nil
}

// Quick builds a quick conversion table for the standard amounts at one quoted rate.
func (s *ConverterService) Quick(ctx context.Context, from, to string) (model.QuickConversionsResponse, error) {
	fromCur, toCur, err := resolvePair(from, to)
	if err != nil {
		return model.QuickConversionsResponse{}, err
	}

	rate, err := s.provider.Lookup(ctx, fromCur.Code, toCur.Code)
	if err != nil {
		return model.QuickConversionsResponse{}, err
	}

	return QuickTable(fromCur, toCur, rate), nil
}

// QuickTable lays out rates.QuickAmounts converted at rate.
func QuickTable(from, to rates.Currency, rate float64) model.QuickConversionsResponse {
	rows := make([]model.QuickConversion, len(rates.QuickAmounts))
	for i, amount := range rates.QuickAmounts {
		converted := amount * rate
		rows[i] = model.QuickConversion{
			FromAmount:  amount,
			ToAmount:    converted,
			FromDisplay: rates.FormatAmount(amount, from),
			ToDisplay:   rates.FormatAmount(converted, to),
		}
	}

	return model.QuickConversionsResponse{
		FromCurrency: from,
		ToCurrency:   to,
		Rate:         rate,
		Rows:         rows,
	}
}

// History returns the session's conversions, newest first.
func (s *ConverterService) History(ctx context.Context, sessionID string) ([]model.ConversionHistoryItem, error) {
	return s.history.ListConversions(ctx, sessionID)
}

// ClearHistory forgets the session's conversions.
func (s *ConverterService) ClearHistory(ctx context.Context, sessionID string) error {
	return s.history.ClearConversions(ctx, sessionID)
}

func parseAmount(raw string) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil || !amount.IsPositive() {
		return decimal.Decimal{}, ErrInvalidAmount
	}
	return amount, nil
}

func resolvePair(from, to string) (rates.Currency, rates.Currency, error) {
	if strings.TrimSpace(from) == "" || strings.TrimSpace(to) == "" {
		return rates.Currency{}, rates.Currency{}, ErrCurrencyRequired
	}
	return currencyOrPlaceholder(from), currencyOrPlaceholder(to), nil
}

// currencyOrPlaceholder never fails: codes without metadata still convert,
// at the provider's 1:1 fallback rate.
func currencyOrPlaceholder(code string) rates.Currency {
	c, err := rates.CurrencyByCode(code)
	if err != nil {
		code = strings.ToUpper(strings.TrimSpace(code))
		slog.Debug("currency has no metadata", "code", code)
		return rates.Currency{Code: code, Name: code, Symbol: code + " "}
	}
	return c
}
