package bankcap

import (
	"context"
	"errors"
	"fmt"
	"io"
	"largestbanks/lib/progresslog"
	"log/slog"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// Pipeline runs extract, transform and load once, in that order.
type Pipeline struct {
	Config   Config
	Fetcher  Fetcher
	Progress progresslog.Logger
	// console output, tables and query results are printed here
	Out io.Writer
}

func NewPipeline(cfg Config, out io.Writer) (Pipeline, error) {
	err := cfg.Validate()
	if err != nil {
		return Pipeline{}, err
	}
	fetcher, err := NewHttpFetcher(cfg.Fetch)
	if err != nil {
		return Pipeline{}, err
	}
	var progress progresslog.Logger = progresslog.Discard{}
	if cfg.LogFile != "" {
		progress = progresslog.NewFile(cfg.LogFile)
	}
	return Pipeline{
		Config:   cfg,
		Fetcher:  fetcher,
		Progress: progress,
		Out:      out,
	}, nil
}

// Report is what a run produced.
type Report struct {
	RunId   string
	Records []EnrichedRecord
	// set when the database could not be written and StrictDB is off
	DBError error
	Queries []QueryResult
}

func (p Pipeline) extract(ctx context.Context) ([]BankRecord, error) {
	p.Progress.Log(ctx, "Starting data extraction process")

	page, err := p.Fetcher.Fetch(ctx, p.Config.SourceUrl)
	if err != nil {
		return nil, err
	}

	extraction, err := Extract(ctx, page, p.Config.Extract)
	if extraction.Columns != nil {
		fmt.Fprintln(p.Out, "Extracted columns:", extraction.Columns)
	}
	var missing *MissingColumnError
	if errors.As(err, &missing) {
		p.Progress.Log(ctx, fmt.Sprintf("KeyError during extraction: %s", missing.Error()))
	}
	if err != nil {
		return nil, err
	}

	p.Progress.Log(ctx, "Data extraction complete")
	return extraction.Records, nil
}

func (p Pipeline) transform(ctx context.Context, records []BankRecord) ([]EnrichedRecord, error) {
	rates, err := LoadRates(ctx, p.Config.RatesFile)
	if err != nil {
		return nil, err
	}
	for _, code := range rates.Codes() {
		fmt.Fprintf(p.Out, "%s %s\n", code, rates[code].String())
	}

	enriched, err := Transform(ctx, records, rates)
	if err != nil {
		return nil, err
	}
	p.Progress.Log(ctx, "Data transformation complete")
	RenderRecords(p.Out, enriched)
	return enriched, nil
}

func (p Pipeline) loadCSV(ctx context.Context, records []EnrichedRecord) error {
	err := WriteCSV(ctx, p.Config.CsvFile, records)
	if err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	p.Progress.Log(ctx, fmt.Sprintf("Data saved to CSV file at %s", p.Config.CsvFile))
	return nil
}

func (p Pipeline) loadDB(ctx context.Context, records []EnrichedRecord) error {
	err := LoadDB(ctx, p.Config.Database, p.Config.Table, records)
	if err != nil {
		return err
	}
	p.Progress.Log(ctx, fmt.Sprintf(
		"Data saved to SQL database at %s, table %s",
		p.Config.Database.Location(), p.Config.Table,
	))
	return nil
}

// RunQueries runs the canned queries against the configured database and
// prints their results.
func (p Pipeline) RunQueries(ctx context.Context) ([]QueryResult, error) {
	conn, err := p.Config.Database.OpenDB()
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	defer conn.Close()

	var results []QueryResult
	for _, q := range CannedQueries(p.Config.Table) {
		fmt.Fprintf(p.Out, "\n%s\n", q.Title)
		res, err := RunQuery(ctx, conn, q.Statement, p.Out)
		if err != nil {
			return results, fmt.Errorf("query %q: %w", q.Statement, err)
		}
		results = append(results, res)
	}
	return results, nil
}

func (p Pipeline) Run(ctx context.Context) (report Report, err error) {
	report.RunId = uuid.NewString()

	ctx, span := tracer.Start(ctx, "Run")
	defer span.End()
	span.SetAttributes(
		attribute.String("run_id", report.RunId),
		attribute.String("source_url", p.Config.SourceUrl),
	)
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
	}()

	log := slog.With("run_id", report.RunId)
	p.Progress.Log(ctx, "Starting ETL process")

	records, err := p.extract(ctx)
	if err != nil {
		return report, err
	}
	log.InfoContext(ctx, "extracted records", "count", len(records))

	report.Records, err = p.transform(ctx, records)
	if err != nil {
		return report, err
	}

	err = p.loadCSV(ctx, report.Records)
	if err != nil {
		return report, err
	}
	log.InfoContext(ctx, "wrote csv", "path", p.Config.CsvFile)

	err = p.loadDB(ctx, report.Records)
	if err != nil {
		if p.Config.StrictDB {
			return report, fmt.Errorf("save to database: %w", err)
		}
		report.DBError = err
		fmt.Fprintf(p.Out, "Error saving data to SQL: %v\n", err)
		log.ErrorContext(ctx, "failed to save to database, continuing", "err", err)
	} else {
		log.InfoContext(ctx, "wrote database", "database", p.Config.Database.Location(), "table", p.Config.Table)
	}

	report.Queries, err = p.RunQueries(ctx)
	if err != nil {
		return report, err
	}

	p.Progress.Log(ctx, "ETL process complete")
	return report, nil
}
