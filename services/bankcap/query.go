package bankcap

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"largestbanks/lib/prettyutil"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

type QueryResult struct {
	Statement string
	Columns   []string
	// values are int64, float64, string, []byte or nil as returned by the driver
	Rows [][]any
}

type CannedQuery struct {
	Title     string
	Statement string
}

// CannedQueries are the read queries run after every load.
func CannedQueries(table string) []CannedQuery {
	return []CannedQuery{
		{Title: "Full table data:", Statement: fmt.Sprintf("SELECT * FROM %s", table)},
		{Title: "Average market cap in GBP:", Statement: fmt.Sprintf("SELECT AVG(%s) FROM %s", ColGBP, table)},
		{Title: "Top 5 bank names:", Statement: fmt.Sprintf("SELECT %s FROM %s LIMIT 5", ColBankName, table)},
	}
}

// Query executes a statement and reads back every row.
func Query(ctx context.Context, conn *sql.DB, statement string) (QueryResult, error) {
	ctx, span := tracer.Start(ctx, "Query")
	defer span.End()
	span.SetAttributes(attribute.String("statement", statement))

	result := QueryResult{Statement: statement}
	rows, err := conn.QueryContext(ctx, statement)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to execute query")
		return result, err
	}
	defer rows.Close()

	result.Columns, err = rows.Columns()
	if err != nil {
		return result, err
	}
	for rows.Next() {
		values := make([]any, len(result.Columns))
		pointers := make([]any, len(values))
		for i := range values {
			pointers[i] = &values[i]
		}
		err = rows.Scan(pointers...)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "failed to scan row")
			return result, err
		}
		result.Rows = append(result.Rows, values)
	}
	err = rows.Err()
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to read rows")
		return result, err
	}

	span.SetAttributes(attribute.Int("rows", len(result.Rows)))
	return result, nil
}

func formatValue(v any) string {
	switch v := v.(type) {
	case nil:
		return "NULL"
	case []byte:
		return string(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}

// Render prints the result as a table.
func (r QueryResult) Render(w io.Writer) {
	t := prettyutil.NewTable(w)
	header := make(table.Row, len(r.Columns))
	for i, c := range r.Columns {
		header[i] = c
	}
	t.AppendHeader(header)
	for _, row := range r.Rows {
		out := make(table.Row, len(row))
		for i, v := range row {
			out[i] = formatValue(v)
		}
		t.AppendRow(out)
	}
	t.Render()
}

// RunQuery executes the statement and prints it followed by its rows.
func RunQuery(ctx context.Context, conn *sql.DB, statement string, w io.Writer) (QueryResult, error) {
	result, err := Query(ctx, conn, statement)
	if err != nil {
		return result, err
	}
	fmt.Fprintf(w, "Query: %s\n", statement)
	result.Render(w)
	return result, nil
}

// RenderRecords prints records as a table in Columns order.
func RenderRecords(w io.Writer, records []EnrichedRecord) {
	t := prettyutil.NewTable(w)
	t.AppendHeader(prettyutil.Row(Columns))
	for _, r := range records {
		t.AppendRow(prettyutil.Row(r.Strings()))
	}
	t.Render()
}
