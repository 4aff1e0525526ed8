package bankcap

import (
	"context"
	"errors"
	"fmt"
	"largestbanks/lib/csvutil"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var ErrInvalidRate = errors.New("invalid exchange rate")

// MissingRateError is returned when the rate file has no row for a
// currency that records are converted into.
type MissingRateError struct {
	Currency string
}

func (e *MissingRateError) Error() string {
	return fmt.Sprintf("no exchange rate for %s", e.Currency)
}

// Rates maps a currency code to the amount of it one US dollar buys.
type Rates map[string]decimal.Decimal

func (r Rates) Rate(currency string) (decimal.Decimal, error) {
	rate, ok := r[currency]
	if !ok {
		return decimal.Decimal{}, &MissingRateError{Currency: currency}
	}
	return rate, nil
}

func (r Rates) Codes() []string {
	out := make([]string, 0, len(r))
	for c := range r {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

// LoadRates reads a "Currency,Rate" csv file, every rate must be a
// positive number and each currency may appear once.
func LoadRates(ctx context.Context, path string) (Rates, error) {
	_, span := tracer.Start(ctx, "LoadRates")
	defer span.End()
	span.SetAttributes(attribute.String("path", path))

	rates := Rates{}
	err := csvutil.NewReader(path).ReadRows(
		[]string{"Currency", "Rate"},
		func(columns map[string]int, row []string) error {
			currency := strings.ToUpper(csvutil.Field(columns, row, "Currency"))
			if currency == "" {
				return nil
			}
			text := csvutil.Field(columns, row, "Rate")
			rate, err := decimal.NewFromString(text)
			if err != nil || !rate.IsPositive() {
				return fmt.Errorf("%w: %s=%q", ErrInvalidRate, currency, text)
			}
			if _, exists := rates[currency]; exists {
				return fmt.Errorf("%w: %s is listed more than once", ErrInvalidRate, currency)
			}
			rates[currency] = rate
			return nil
		},
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to read rates")
		return nil, fmt.Errorf("load exchange rates from %s: %w", path, err)
	}
	return rates, nil
}

// Convert multiplies a dollar amount by rate and rounds to 2 decimal
// places (half to even), a missing amount stays missing.
func Convert(usd decimal.NullDecimal, rate decimal.Decimal) decimal.NullDecimal {
	if !usd.Valid {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{
		Decimal: usd.Decimal.Mul(rate).RoundBank(2),
		Valid:   true,
	}
}

// Transform converts every record's market cap into GBP, EUR and INR.
// Records keep their order.
func Transform(ctx context.Context, records []BankRecord, rates Rates) ([]EnrichedRecord, error) {
	ctx, span := tracer.Start(ctx, "Transform")
	defer span.End()

	converted := make([]decimal.Decimal, len(Currencies))
	for i, c := range Currencies {
		rate, err := rates.Rate(c)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return nil, err
		}
		converted[i] = rate
	}

	out := make([]EnrichedRecord, 0, len(records))
	missing := 0
	for _, r := range records {
		usd := ParseAmount(r.MarketCapUSD)
		if !usd.Valid {
			missing++
		}
		out = append(out, EnrichedRecord{
			BankName:     r.BankName,
			MarketCapUSD: usd,
			MarketCapGBP: Convert(usd, converted[0]),
			MarketCapEUR: Convert(usd, converted[1]),
			MarketCapINR: Convert(usd, converted[2]),
		})
	}

	if missing > 0 {
		amountsMissing.Add(ctx, int64(missing))
	}
	span.SetAttributes(
		attribute.Int("records", len(out)),
		attribute.Int("missing", missing),
	)
	return out, nil
}
