package csvutil

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// Reader reads a CSV file that starts with a header row.
type Reader struct {
	FilePath string
}

func NewReader(fp string) Reader {
	return Reader{FilePath: fp}
}

// ReadRows calls fn for every row after the header, `columns` maps each of
// the required column names to its index in the file.
func (r Reader) ReadRows(required []string, fn func(columns map[string]int, row []string) error) error {
	f, err := os.Open(r.FilePath)
	if err != nil {
		return fmt.Errorf("opening csv file: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return fmt.Errorf("reading csv header: %w", err)
	}
	columns, err := HeaderMap(header, required)
	if err != nil {
		return err
	}

	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("reading csv row: %w", err)
		}
		err = fn(columns, row)
		if err != nil {
			return err
		}
	}
}

const bom = "\ufeff"

// HeaderMap maps each expected column to its index in header, matching
// case insensitively and ignoring surrounding whitespace and a leading
// byte order mark.
func HeaderMap(header []string, expected []string) (map[string]int, error) {
	columns := make(map[string]int, len(expected))
	for _, column := range expected {
		found := false
		for i, field := range header {
			if i == 0 {
				field = strings.TrimPrefix(field, bom)
			}
			if strings.EqualFold(column, strings.TrimSpace(field)) {
				columns[column] = i
				found = true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("required field '%s' not found in csv header", column)
		}
	}
	return columns, nil
}

// Field returns the trimmed value of a mapped column, or "" if the row is short.
func Field(columns map[string]int, row []string, name string) string {
	idx, ok := columns[name]
	if !ok || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}
