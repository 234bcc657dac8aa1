package rates

import (
	"errors"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var ErrUnknownCurrency = errors.New("unknown currency code")

// Currency is display metadata for a currency code.
type Currency struct {
	Code   string `json:"code"`
	Name   string `json:"name"`
	Symbol string `json:"symbol"`
	Flag   string `json:"flag"`
}

// QuickAmounts are the source amounts shown in a quick conversion table.
var QuickAmounts = []float64{1, 5, 10, 25, 50, 100, 500, 1000}

var currencies = []Currency{
	{Code: "USD", Name: "US Dollar", Symbol: "$", Flag: "🇺🇸"},
	{Code: "EUR", Name: "Euro", Symbol: "€", Flag: "🇪🇺"},
	{Code: "GBP", Name: "British Pound", Symbol: "£", Flag: "🇬🇧"},
	{Code: "JPY", Name: "Japanese Yen", Symbol: "¥", Flag: "🇯🇵"},
	{Code: "AUD", Name: "Australian Dollar", Symbol: "A$", Flag: "🇦🇺"},
	{Code: "CAD", Name: "Canadian Dollar", Symbol: "C$", Flag: "🇨🇦"},
	{Code: "CHF", Name: "Swiss Franc", Symbol: "CHF", Flag: "🇨🇭"},
	{Code: "CNY", Name: "Chinese Yuan", Symbol: "¥", Flag: "🇨🇳"},
	{Code: "SEK", Name: "Swedish Krona", Symbol: "kr", Flag: "🇸🇪"},
	{Code: "NZD", Name: "New Zealand Dollar", Symbol: "NZ$", Flag: "🇳🇿"},
	{Code: "MXN", Name: "Mexican Peso", Symbol: "$", Flag: "🇲🇽"},
	{Code: "SGD", Name: "Singapore Dollar", Symbol: "S$", Flag: "🇸🇬"},
	{Code: "HKD", Name: "Hong Kong Dollar", Symbol: "HK$", Flag: "🇭🇰"},
	{Code: "NOK", Name: "Norwegian Krone", Symbol: "kr", Flag: "🇳🇴"},
	{Code: "KRW", Name: "South Korean Won", Symbol: "₩", Flag: "🇰🇷"},
	{Code: "TRY", Name: "Turkish Lira", Symbol: "₺", Flag: "🇹🇷"},
	{Code: "RUB", Name: "Russian Ruble", Symbol: "₽", Flag: "🇷🇺"},
	{Code: "INR", Name: "Indian Rupee", Symbol: "₹", Flag: "🇮🇳"},
	{Code: "BRL", Name: "Brazilian Real", Symbol: "R$", Flag: "🇧🇷"},
	{Code: "ZAR", Name: "South African Rand", Symbol: "R", Flag: "🇿🇦"},
	{Code: "PLN", Name: "Polish Zloty", Symbol: "zł", Flag: "🇵🇱"},
	{Code: "ILS", Name: "Israeli Shekel", Symbol: "₪", Flag: "🇮🇱"},
	{Code: "DKK", Name: "Danish Krone", Symbol: "kr", Flag: "🇩🇰"},
	{Code: "CZK", Name: "Czech Koruna", Symbol: "Kč", Flag: "🇨🇿"},
	{Code: "HUF", Name: "Hungarian Forint", Symbol: "Ft", Flag: "🇭🇺"},
	{Code: "BGN", Name: "Bulgarian Lev", Symbol: "лв", Flag: "🇧🇬"},
	{Code: "RON", Name: "Romanian Leu", Symbol: "lei", Flag: "🇷🇴"},
	{Code: "HRK", Name: "Croatian Kuna", Symbol: "kn", Flag: "🇭🇷"},
	{Code: "ISK", Name: "Icelandic Krona", Symbol: "kr", Flag: "🇮🇸"},
	{Code: "PHP", Name: "Philippine Peso", Symbol: "₱", Flag: "🇵🇭"},
	{Code: "MYR", Name: "Malaysian Ringgit", Symbol: "RM", Flag: "🇲🇾"},
	{Code: "THB", Name: "Thai Baht", Symbol: "฿", Flag: "🇹🇭"},
	{Code: "IDR", Name: "Indonesian Rupiah", Symbol: "Rp", Flag: "🇮🇩"},
}

var printer = message.NewPrinter(language.AmericanEnglish)

// Currencies returns the metadata of every currency with a built-in entry.
func Currencies() []Currency {
	out := make([]Currency, len(currencies))
	copy(out, currencies)
	return out
}

// CurrencyByCode returns the metadata for code. ISO 4217 codes without a
// built-in entry are accepted with the code standing in for name and symbol.
func CurrencyByCode(code string) (Currency, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	for _, c := range currencies {
		if c.Code == code {
			return c, nil
		}
	}

	unit, err := currency.ParseISO(code)
	if err != nil {
		return Currency{}, ErrUnknownCurrency
	}
	iso := unit.String()
	return Currency{Code: iso, Name: iso, Symbol: iso + " "}, nil
}

// FormatNumber renders n with en-US grouping and 2 to 6 fraction digits.
func FormatNumber(n float64) string {
	return printer.Sprint(number.Decimal(n, number.MinFractionDigits(2), number.MaxFractionDigits(6)))
}

// FormatAmount renders amount with the en-US symbol for c's ISO code, so
// MXN reads MX$ and SEK reads "SEK 1.00". Codes unknown to ISO 4217 fall
// back to c.Symbol.
func FormatAmount(amount float64, c Currency) string {
	unit, err := currency.ParseISO(c.Code)
	if err != nil {
		return c.Symbol + FormatNumber(amount)
	}

	sym := printer.Sprint(currency.Symbol(unit))
	if r, _ := utf8.DecodeLastRuneInString(sym); unicode.IsLetter(r) {
		sym += " "
	}
	return sym + FormatNumber(amount)
}
