package db

import (
	"bytes"
	_ "embed"
	"fmt"
	"regexp"
	"strings"
	"text/template"
)

//go:embed schema.sql
var schema string

var schemaTemplate = template.Must(template.New("schema").Parse(schema))

var identifier = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// ValidateTableName only accepts plain identifiers since the name is
// interpolated into statements.
func ValidateTableName(table string) error {
	if !identifier.MatchString(table) {
		return fmt.Errorf("invalid table name %q", table)
	}
	return nil
}

// Schema renders the CREATE TABLE statement for the given table.
func Schema(table string) (string, error) {
	err := ValidateTableName(table)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	err = schemaTemplate.Execute(&buf, struct{ Table string }{Table: table})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}

func DropTable(table string) string {
	return fmt.Sprintf(`DROP TABLE IF EXISTS "%s"`, table)
}

func InsertRow(table string, columns []string) string {
	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(columns)), ", ")
	return fmt.Sprintf(
		`INSERT INTO "%s" (%s) VALUES (%s)`,
		table, strings.Join(columns, ", "), placeholders,
	)
}
