package model

import (
	"time"

	"github.com/vaultpass/passfx-go/internal/rates"
)

// ConvertRequest asks to convert Amount units of From into To. Amount is a
// decimal string so that user input is validated exactly.
type ConvertRequest struct {
	Amount string `json:"amount"`
	From   string `json:"from"`
	To     string `json:"to"`
}

// ConversionResult is the outcome of a single conversion.
type ConversionResult struct {
	FromAmount   float64        `json:"from_amount"`
	ToAmount     float64        `json:"to_amount"`
	FromCurrency rates.Currency `json:"from_currency"`
	ToCurrency   rates.Currency `json:"to_currency"`
	Rate         float64        `json:"rate"`
	Timestamp    time.Time      `json:"timestamp"`

	// Display is the formatted "amount = amount" line.
	Display string `json:"display"`
}

// ConversionHistoryItem is a conversion history item.
type ConversionHistoryItem struct {
	ID         string           `json:"id"`
	Conversion ConversionResult `json:"conversion"`
	Timestamp  time.Time        `json:"timestamp"`
}

// RateResponse is a single quoted rate.
type RateResponse struct {
	From      string    `json:"from"`
	To        string    `json:"to"`
	Rate      float64   `json:"rate"`
	Timestamp time.Time `json:"timestamp"`
}

// QuickConversion is one row of a quick conversion table.
type QuickConversion struct {
	FromAmount  float64 `json:"from_amount"`
	ToAmount    float64 `json:"to_amount"`
	FromDisplay string  `json:"from_display"`
	ToDisplay   string  `json:"to_display"`
}

// QuickConversionsResponse is a quick conversion table at a single rate.
type QuickConversionsResponse struct {
	FromCurrency rates.Currency    `json:"from_currency"`
	ToCurrency   rates.Currency    `json:"to_currency"`
	Rate         float64           `json:"rate"`
	Rows         []QuickConversion `json:"rows"`
}
