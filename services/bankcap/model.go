package bankcap

import (
	"strings"

	"github.com/shopspring/decimal"
)

const (
	SourceBankName  = "Bank name"
	SourceMarketCap = "Market cap (US$ billion)"
)

const (
	ColBankName = "Bank_Name"
	ColUSD      = "MC_USD_Billion"
	ColGBP      = "MC_GBP_Billion"
	ColEUR      = "MC_EUR_Billion"
	ColINR      = "MC_INR_Billion"
)

// Columns is the exact column set and order of every output.
var Columns = []string{ColBankName, ColUSD, ColGBP, ColEUR, ColINR}

// Currencies that market caps are converted into, in output order.
var Currencies = []string{"GBP", "EUR", "INR"}

// BankRecord is one row of the scraped table, the market cap is kept as
// the text found in the page.
type BankRecord struct {
	BankName     string
	MarketCapUSD string
}

// EnrichedRecord is a BankRecord with its market cap converted, an invalid
// value is stored as a decimal.NullDecimal with Valid set to false.
type EnrichedRecord struct {
	BankName     string
	MarketCapUSD decimal.NullDecimal
	MarketCapGBP decimal.NullDecimal
	MarketCapEUR decimal.NullDecimal
	MarketCapINR decimal.NullDecimal
}

func (r EnrichedRecord) amounts() []decimal.NullDecimal {
	return []decimal.NullDecimal{r.MarketCapUSD, r.MarketCapGBP, r.MarketCapEUR, r.MarketCapINR}
}

// Strings returns the record in Columns order, missing values are empty.
func (r EnrichedRecord) Strings() []string {
	out := []string{r.BankName}
	for _, a := range r.amounts() {
		out = append(out, FormatAmount(a))
	}
	return out
}

// Values returns the record in Columns order as sql arguments, missing
// values are nil.
func (r EnrichedRecord) Values() []any {
	out := []any{r.BankName}
	for _, a := range r.amounts() {
		if !a.Valid {
			out = append(out, nil)
			continue
		}
		out = append(out, a.Decimal.InexactFloat64())
	}
	return out
}

// ParseAmount coerces text into a number, anything that isn't one
// becomes missing. Thousands separators are ignored.
func ParseAmount(text string) decimal.NullDecimal {
	text = strings.TrimSpace(text)
	text = strings.ReplaceAll(text, ",", "")
	if text == "" {
		return decimal.NullDecimal{}
	}
	d, err := decimal.NewFromString(text)
	if err != nil {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: d, Valid: true}
}

func FormatAmount(a decimal.NullDecimal) string {
	if !a.Valid {
		return ""
	}
	return a.Decimal.String()
}
