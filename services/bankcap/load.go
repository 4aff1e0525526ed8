package bankcap

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	configlibsql "largestbanks/lib/configutil/libsql"
	"largestbanks/lib/csvutil"
	"largestbanks/services/bankcap/db"
	"os"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
)

// WriteCSV writes records with a header row to path, replacing the file
// if it already exists.
func WriteCSV(ctx context.Context, path string, records []EnrichedRecord) error {
	ctx, span := tracer.Start(ctx, "WriteCSV")
	defer span.End()
	span.SetAttributes(attribute.String("path", path))

	f, err := os.Create(path)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to create csv file")
		return err
	}
	defer f.Close()

	err = writeCSV(f, records)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to write csv file")
		return err
	}
	err = f.Close()
	if err != nil {
		return err
	}

	rowsLoaded.Add(ctx, int64(len(records)), metric.WithAttributes(attribute.String("sink", "csv")))
	return nil
}

func writeCSV(w io.Writer, records []EnrichedRecord) error {
	writer := csv.NewWriter(w)
	err := writer.Write(Columns)
	if err != nil {
		return err
	}
	for _, r := range records {
		err = writer.Write(r.Strings())
		if err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

// ReadCSV reads a file produced by WriteCSV.
func ReadCSV(path string) ([]EnrichedRecord, error) {
	var records []EnrichedRecord
	err := csvutil.NewReader(path).ReadRows(Columns, func(columns map[string]int, row []string) error {
		records = append(records, EnrichedRecord{
			BankName:     csvutil.Field(columns, row, ColBankName),
			MarketCapUSD: ParseAmount(csvutil.Field(columns, row, ColUSD)),
			MarketCapGBP: ParseAmount(csvutil.Field(columns, row, ColGBP)),
			MarketCapEUR: ParseAmount(csvutil.Field(columns, row, ColEUR)),
			MarketCapINR: ParseAmount(csvutil.Field(columns, row, ColINR)),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return records, nil
}

// LoadDB replaces `table` with records in a single transaction. The
// connection is opened and closed within the call.
func LoadDB(ctx context.Context, database configlibsql.Struct, table string, records []EnrichedRecord) (err error) {
	ctx, span := tracer.Start(ctx, "LoadDB")
	defer span.End()
	span.SetAttributes(
		attribute.String("database", database.Location()),
		attribute.String("table", table),
	)
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
	}()

	schema, err := db.Schema(table)
	if err != nil {
		return err
	}

	conn, err := database.OpenDB()
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer func() {
		err = errors.Join(err, conn.Close())
	}()

	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, db.DropTable(table))
	if err != nil {
		return fmt.Errorf("drop table: %w", err)
	}
	_, err = tx.ExecContext(ctx, schema)
	if err != nil {
		return fmt.Errorf("create table: %w", err)
	}

	insert, err := tx.PrepareContext(ctx, db.InsertRow(table, Columns))
	if err != nil {
		return err
	}
	defer insert.Close()

	for _, r := range records {
		_, err = insert.ExecContext(ctx, r.Values()...)
		if err != nil {
			return fmt.Errorf("insert %q: %w", r.BankName, err)
		}
	}

	err = tx.Commit()
	if err != nil {
		return fmt.Errorf("commit: %w", err)
	}

	rowsLoaded.Add(ctx, int64(len(records)), metric.WithAttributes(attribute.String("sink", "db")))
	return nil
}
