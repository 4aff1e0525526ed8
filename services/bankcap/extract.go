package bankcap

import (
	"context"
	"errors"
	"fmt"
	"largestbanks/lib/htmlutil"
	"largestbanks/lib/textutil"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
)

var (
	ErrNoTables        = errors.New("page does not contain any tables")
	ErrTableIndex      = errors.New("table index out of range")
	ErrNoMatchingTable = errors.New("no table contains the required columns")
)

var requiredColumns = []string{SourceBankName, SourceMarketCap}

// MissingColumnError is returned when the selected table lacks one of the
// required columns after header normalization.
type MissingColumnError struct {
	Missing   []string
	Available []string
}

func (e *MissingColumnError) Error() string {
	var hints []string
	for _, m := range e.Missing {
		best, score := textutil.ClosestMatch(m, e.Available)
		if best != "" && score >= 0.8 {
			hints = append(hints, fmt.Sprintf("%q (did you mean %q?)", m, best))
			continue
		}
		hints = append(hints, fmt.Sprintf("%q", m))
	}
	return fmt.Sprintf(
		"columns not found: %s, available columns: %q",
		strings.Join(hints, ", "), e.Available,
	)
}

type ExtractOptions struct {
	// index of the table to read, 0 is the first table on the page
	TableIndex int `json:"table_index"`
	// ignore TableIndex and take the first table holding the required columns
	FindByHeader bool `json:"find_by_header"`
}

type Extraction struct {
	// normalized headers of the selected table
	Columns []string
	Records []BankRecord
}

func missingColumns(headers []string) []string {
	var missing []string
	for _, c := range requiredColumns {
		found := false
		for _, h := range headers {
			if h == c {
				found = true
				break
			}
		}
		if !found {
			missing = append(missing, c)
		}
	}
	return missing
}

func selectTable(tables []htmlutil.Table, opts ExtractOptions) (htmlutil.Table, error) {
	if len(tables) == 0 {
		return htmlutil.Table{}, ErrNoTables
	}
	if opts.FindByHeader {
		for _, t := range tables {
			if len(missingColumns(textutil.NormalizeHeaders(t.Header))) == 0 {
				return t, nil
			}
		}
		return htmlutil.Table{}, ErrNoMatchingTable
	}
	if opts.TableIndex < 0 || opts.TableIndex >= len(tables) {
		return htmlutil.Table{}, fmt.Errorf("%w: %d (page has %d tables)", ErrTableIndex, opts.TableIndex, len(tables))
	}
	return tables[opts.TableIndex], nil
}

// Extract reads the bank name and market cap columns out of a page, rows
// keep the order they have in the source table. Other columns are ignored.
func Extract(ctx context.Context, page string, opts ExtractOptions) (Extraction, error) {
	ctx, span := tracer.Start(ctx, "Extract")
	defer span.End()

	tables, err := htmlutil.ParseTables(ctx, strings.NewReader(page))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to parse tables")
		return Extraction{}, err
	}
	table, err := selectTable(tables, opts)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to select table")
		return Extraction{}, err
	}

	headers := textutil.NormalizeHeaders(table.Header)
	missing := missingColumns(headers)
	if len(missing) > 0 {
		err := &MissingColumnError{Missing: missing, Available: headers}
		span.RecordError(err)
		span.SetStatus(codes.Error, "missing columns")
		return Extraction{Columns: headers}, err
	}

	table.Header = headers
	nameIdx := table.Column(SourceBankName)
	capIdx := table.Column(SourceMarketCap)

	records := make([]BankRecord, 0, len(table.Rows))
	for _, row := range table.Rows {
		records = append(records, BankRecord{
			BankName:     row[nameIdx],
			MarketCapUSD: row[capIdx],
		})
	}

	recordsExtracted.Add(ctx, int64(len(records)), metric.WithAttributes(
		attribute.Int("table_index", opts.TableIndex),
	))
	span.SetAttributes(attribute.Int("records", len(records)))
	return Extraction{Columns: headers, Records: records}, nil
}
