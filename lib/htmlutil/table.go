package htmlutil

import (
	"context"
	"io"
	"sort"
	"strconv"

	"github.com/PuerkitoBio/goquery"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("largestbanks.lib.htmlutil")

// Table is a rectangular view of an html <table>, spanning cells are
// repeated into every position they cover.
type Table struct {
	Header []string
	Rows   [][]string
}

// Column returns the index of the column with the given header name, or -1.
func (t Table) Column(name string) int {
	for i, h := range t.Header {
		if h == name {
			return i
		}
	}
	return -1
}

type cell struct {
	text    string
	header  bool
	rowspan int
	colspan int
}

type rawRow struct {
	cells []cell
	thead bool
}

// ParseTables reads every <table> in the document in document order.
func ParseTables(ctx context.Context, r io.Reader) ([]Table, error) {
	_, span := tracer.Start(ctx, "ParseTables")
	defer span.End()

	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to parse html")
		return nil, err
	}

	var tables []Table
	doc.Find("table").Each(func(_ int, sel *goquery.Selection) {
		tables = append(tables, parseTable(sel))
	})
	span.SetAttributes(attribute.Int("tables", len(tables)))
	return tables, nil
}

func spanAttr(sel *goquery.Selection, name string) int {
	n, err := strconv.Atoi(sel.AttrOr(name, "1"))
	if err != nil || n < 1 {
		return 1
	}
	return n
}

func collectRows(table *goquery.Selection) []rawRow {
	var rows []rawRow
	readRow := func(tr *goquery.Selection, thead bool) {
		row := rawRow{thead: thead}
		tr.ChildrenFiltered("th, td").Each(func(_ int, td *goquery.Selection) {
			text := ""
			if len(td.Nodes) > 0 {
				text = CleanText(GetText(td.Nodes[0]))
			}
			row.cells = append(row.cells, cell{
				text:    text,
				header:  goquery.NodeName(td) == "th",
				rowspan: spanAttr(td, "rowspan"),
				colspan: spanAttr(td, "colspan"),
			})
		})
		rows = append(rows, row)
	}

	table.Children().Each(func(_ int, child *goquery.Selection) {
		switch goquery.NodeName(child) {
		case "tr":
			readRow(child, false)
		case "thead", "tbody", "tfoot":
			thead := goquery.NodeName(child) == "thead"
			child.ChildrenFiltered("tr").Each(func(_ int, tr *goquery.Selection) {
				readRow(tr, thead)
			})
		}
	})
	return rows
}

type pending struct {
	text      string
	remaining int
}

// expand lays out cells on a grid, honoring rowspan and colspan.
func expand(rows []rawRow) [][]string {
	grid := make([][]string, 0, len(rows))
	carry := map[int]pending{}

	for _, row := range rows {
		var out []string
		col := 0
		fillCarried := func() {
			for {
				p, ok := carry[col]
				if !ok {
					return
				}
				out = append(out, p.text)
				p.remaining--
				if p.remaining <= 0 {
					delete(carry, col)
				} else {
					carry[col] = p
				}
				col++
			}
		}

		for _, c := range row.cells {
			fillCarried()
			for i := 0; i < c.colspan; i++ {
				out = append(out, c.text)
				if c.rowspan > 1 {
					carry[col] = pending{text: c.text, remaining: c.rowspan - 1}
				}
				col++
			}
		}
		fillCarried()

		// carried cells past the end of a short row still belong to it
		var rest []int
		for k := range carry {
			if k >= col {
				rest = append(rest, k)
			}
		}
		sort.Ints(rest)
		for _, k := range rest {
			for col < k {
				out = append(out, "")
				col++
			}
			fillCarried()
		}
		grid = append(grid, out)
	}
	return grid
}

func isHeaderRow(r rawRow) bool {
	if r.thead {
		return true
	}
	if len(r.cells) == 0 {
		return false
	}
	for _, c := range r.cells {
		if !c.header {
			return false
		}
	}
	return true
}

func parseTable(sel *goquery.Selection) Table {
	raw := collectRows(sel)
	grid := expand(raw)

	headerRows := 0
	for headerRows < len(raw) && isHeaderRow(raw[headerRows]) {
		headerRows++
	}

	width := 0
	for _, r := range grid {
		if len(r) > width {
			width = len(r)
		}
	}

	var table Table
	if headerRows > 0 {
		// with stacked header rows the innermost one names the column
		table.Header = pad(grid[headerRows-1], width)
	} else {
		table.Header = make([]string, width)
		for i := range table.Header {
			table.Header[i] = strconv.Itoa(i)
		}
	}

	for _, r := range grid[headerRows:] {
		if len(r) == 0 {
			continue
		}
		table.Rows = append(table.Rows, pad(r, width))
	}
	return table
}

func pad(row []string, width int) []string {
	out := make([]string, width)
	copy(out, row)
	return out
}
