package bankcap

import (
	"fmt"
	configlibsql "largestbanks/lib/configutil/libsql"
	"largestbanks/services/bankcap/db"
)

const DefaultSourceUrl = "https://web.archive.org/web/20230908091635/https://en.wikipedia.org/wiki/List_of_largest_banks"

type Config struct {
	SourceUrl string              `json:"source_url"`
	RatesFile string              `json:"rates_file"`
	CsvFile   string              `json:"csv_file"`
	Database  configlibsql.Struct `json:"database"`
	Table     string              `json:"table"`
	LogFile   string              `json:"log_file"`
	// when false, a failure to write the database is reported and the run
	// carries on to the queries.
	StrictDB bool           `json:"strict_db"`
	Extract  ExtractOptions `json:"extract"`
	Fetch    FetchOptions   `json:"fetch"`
}

func DefaultConfig() Config {
	return Config{
		SourceUrl: DefaultSourceUrl,
		RatesFile: "exchange_rate.csv",
		CsvFile:   "./Largest_banks_data.csv",
		Database:  configlibsql.Struct{File: "./Banks.db"},
		Table:     "Largest_banks",
		LogFile:   "code_log.txt",
	}
}

func (c Config) Validate() error {
	if c.SourceUrl == "" {
		return fmt.Errorf("source_url must be set")
	}
	if c.RatesFile == "" {
		return fmt.Errorf("rates_file must be set")
	}
	if c.CsvFile == "" {
		return fmt.Errorf("csv_file must be set")
	}
	if c.Database.File == "" && c.Database.Url == "" {
		return fmt.Errorf("database.file or database.url must be set")
	}
	return db.ValidateTableName(c.Table)
}
