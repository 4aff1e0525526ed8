package bankcap

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
)

const fakePage = `<html><body>
<table class="wikitable sortable">
<tbody>
<tr><th>Rank
</th><th>Bank name
</th><th>Market cap<br>(US$ billion)
</th></tr>
<tr><td>1</td><td><a href="/wiki/JPMorgan_Chase">JPMorgan Chase</a></td><td>432.92
</td></tr>
<tr><td>2</td><td><a href="/wiki/Bank_of_America">Bank of America</a></td><td>231.52
</td></tr>
<tr><td>3</td><td>Industrial and Commercial Bank of China</td><td>194.56
</td></tr>
</tbody>
</table>
<table><tr><th>Rank</th><th>Bank name</th><th>Total assets (US$ billion)</th></tr>
<tr><td>1</td><td>ICBC</td><td>5,742.86</td></tr>
</table>
</body></html>`

const fakeRates = "Currency,Rate\nEUR,0.93\nGBP,0.8\nINR,82.95\n"

func amount(s string) decimal.NullDecimal {
	return decimal.NullDecimal{Decimal: decimal.RequireFromString(s), Valid: true}
}

var decimalComparer = cmp.Comparer(func(a, b decimal.Decimal) bool {
	return a.Equal(b)
})

func requireRecords(t testing.TB, expected, got []EnrichedRecord) {
	t.Helper()
	diff := cmp.Diff(expected, got, decimalComparer)
	if diff != "" {
		t.Fatal(diff)
	}
}

type stubFetcher struct {
	page string
	err  error
	urls []string
}

func (f *stubFetcher) Fetch(_ context.Context, url string) (string, error) {
	f.urls = append(f.urls, url)
	return f.page, f.err
}
