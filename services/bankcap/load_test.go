package bankcap

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	configlibsql "largestbanks/lib/configutil/libsql"
	"largestbanks/lib/testutil"

	"github.com/stretchr/testify/require"
)

func sampleRecords() []EnrichedRecord {
	return []EnrichedRecord{
		{
			BankName:     "JPMorgan Chase",
			MarketCapUSD: amount("432.92"),
			MarketCapGBP: amount("346.34"),
			MarketCapEUR: amount("402.62"),
			MarketCapINR: amount("35910.71"),
		},
		{BankName: "Unknown, Ltd."},
		{
			BankName:     "Bank of America",
			MarketCapUSD: amount("231.52"),
			MarketCapGBP: amount("185.22"),
			MarketCapEUR: amount("215.31"),
			MarketCapINR: amount("19204.58"),
		},
	}
}

func TestCSVRoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "Largest_banks_data.csv")

	// an existing file is replaced, not appended to
	err := os.WriteFile(path, []byte("stale contents\nthat are longer than one line\n"), 0600)
	require.NoError(t, err)

	records := sampleRecords()
	err = WriteCSV(ctx, path, records)
	require.NoError(t, err)

	contents, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t,
		"Bank_Name,MC_USD_Billion,MC_GBP_Billion,MC_EUR_Billion,MC_INR_Billion\n"+
			"JPMorgan Chase,432.92,346.34,402.62,35910.71\n"+
			"\"Unknown, Ltd.\",,,,\n"+
			"Bank of America,231.52,185.22,215.31,19204.58\n",
		string(contents),
	)

	read, err := ReadCSV(path)
	require.NoError(t, err)
	requireRecords(t, records, read)
}

func countRows(t testing.TB, database configlibsql.Struct, table string) int {
	conn, err := database.OpenDB()
	require.NoError(t, err)
	defer conn.Close()

	res, err := Query(context.Background(), conn, "SELECT COUNT(*) FROM "+table)
	require.NoError(t, err)
	require.Len(t, res.Rows, 1)
	return int(res.Rows[0][0].(int64))
}

func TestLoadDBReplaces(t *testing.T) {
	ctx := context.Background()
	database := testutil.Database(t)

	err := LoadDB(ctx, database, "Largest_banks", sampleRecords())
	require.NoError(t, err)
	require.Equal(t, 3, countRows(t, database, "Largest_banks"))

	second := []EnrichedRecord{{
		BankName:     "HSBC",
		MarketCapUSD: amount("160.68"),
		MarketCapGBP: amount("128.54"),
		MarketCapEUR: amount("149.43"),
		MarketCapINR: amount("13328.41"),
	}}
	err = LoadDB(ctx, database, "Largest_banks", second)
	require.NoError(t, err)
	require.Equal(t, 1, countRows(t, database, "Largest_banks"))

	conn, err := database.OpenDB()
	require.NoError(t, err)
	defer conn.Close()
	res, err := Query(ctx, conn, "SELECT * FROM Largest_banks")
	require.NoError(t, err)
	require.Equal(t, Columns, res.Columns)
	require.Equal(t, []any{"HSBC", 160.68, 128.54, 149.43, 13328.41}, res.Rows[0])
}

func TestLoadDBStoresNull(t *testing.T) {
	ctx := context.Background()
	database := testutil.Database(t)

	err := LoadDB(ctx, database, "banks", sampleRecords())
	require.NoError(t, err)

	conn, err := database.OpenDB()
	require.NoError(t, err)
	defer conn.Close()
	res, err := Query(ctx, conn, "SELECT COUNT(*) FROM banks WHERE MC_GBP_Billion IS NULL")
	require.NoError(t, err)
	require.Equal(t, int64(1), res.Rows[0][0])
}

func TestLoadDBInvalidTable(t *testing.T) {
	database := testutil.Database(t)
	err := LoadDB(context.Background(), database, "bad name", sampleRecords())
	require.Error(t, err)
}
