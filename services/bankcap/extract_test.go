package bankcap

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExtract(t *testing.T) {
	extraction, err := Extract(context.Background(), fakePage, ExtractOptions{})
	require.NoError(t, err)
	require.Equal(t, []string{"Rank", "Bank name", "Market cap (US$ billion)"}, extraction.Columns)
	require.Equal(t, []BankRecord{
		{BankName: "JPMorgan Chase", MarketCapUSD: "432.92"},
		{BankName: "Bank of America", MarketCapUSD: "231.52"},
		{BankName: "Industrial and Commercial Bank of China", MarketCapUSD: "194.56"},
	}, extraction.Records)
}

func TestExtractRowspanShortRow(t *testing.T) {
	page := `<table>
<tr><th>Bank name</th><th>Rank</th><th>Market cap (US$ billion)</th></tr>
<tr><td>A</td><td>1</td><td rowspan="2">10</td></tr>
<tr><td>B</td></tr>
<tr><td>C</td><td>3</td><td>30</td></tr>
</table>`

	extraction, err := Extract(context.Background(), page, ExtractOptions{})
	require.NoError(t, err)
	require.Equal(t, []BankRecord{
		{BankName: "A", MarketCapUSD: "10"},
		{BankName: "B", MarketCapUSD: "10"},
		{BankName: "C", MarketCapUSD: "30"},
	}, extraction.Records)
}

func TestExtractMissingColumn(t *testing.T) {
	page := `<table>
<tr><th>Rank</th><th>Bank Name</th><th>Total assets</th></tr>
<tr><td>1</td><td>JPMorgan Chase</td><td>3,700</td></tr>
</table>`

	_, err := Extract(context.Background(), page, ExtractOptions{})
	var missing *MissingColumnError
	require.True(t, errors.As(err, &missing))
	require.Equal(t, []string{SourceBankName, SourceMarketCap}, missing.Missing)
	require.Equal(t, []string{"Rank", "Bank Name", "Total assets"}, missing.Available)
	require.Contains(t, err.Error(), `did you mean "Bank Name"?`)
}

func TestExtractTableSelection(t *testing.T) {
	ctx := context.Background()

	_, err := Extract(ctx, "<p>no tables</p>", ExtractOptions{})
	require.ErrorIs(t, err, ErrNoTables)

	_, err = Extract(ctx, fakePage, ExtractOptions{TableIndex: 2})
	require.ErrorIs(t, err, ErrTableIndex)

	// the second table lacks the market cap column
	_, err = Extract(ctx, fakePage, ExtractOptions{TableIndex: 1})
	var missing *MissingColumnError
	require.ErrorAs(t, err, &missing)
	require.Equal(t, []string{SourceMarketCap}, missing.Missing)

	page := `<table><tr><td>navigation</td></tr></table>` + fakePage
	_, err = Extract(ctx, page, ExtractOptions{})
	require.ErrorAs(t, err, &missing)

	extraction, err := Extract(ctx, page, ExtractOptions{FindByHeader: true})
	require.NoError(t, err)
	require.Len(t, extraction.Records, 3)

	_, err = Extract(ctx, `<table><tr><td>x</td></tr></table>`, ExtractOptions{FindByHeader: true})
	require.ErrorIs(t, err, ErrNoMatchingTable)
}

func TestExtractIgnoresExtraColumns(t *testing.T) {
	page := `<table>
<thead><tr><th>Market cap (US$ billion)</th><th>Country</th><th> Bank name </th><th>Notes</th></tr></thead>
<tbody>
<tr><td>n/a</td><td>US</td><td>Some Bank</td><td>delisted</td></tr>
<tr><td>12.5</td><td>UK</td><td>Other Bank</td><td></td></tr>
</tbody>
</table>`

	extraction, err := Extract(context.Background(), page, ExtractOptions{})
	require.NoError(t, err)
	require.Equal(t, []BankRecord{
		{BankName: "Some Bank", MarketCapUSD: "n/a"},
		{BankName: "Other Bank", MarketCapUSD: "12.5"},
	}, extraction.Records)
}
