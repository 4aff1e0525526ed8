package testutil

import (
	"os"
	"path/filepath"
	"testing"

	configlibsql "largestbanks/lib/configutil/libsql"
)

// WriteFile writes contents to a file named `name` in a fresh temp
// directory and returns its path.
func WriteFile(t testing.TB, name, contents string) string {
	path := filepath.Join(t.TempDir(), name)
	err := os.WriteFile(path, []byte(contents), 0600)
	if err != nil {
		t.Fatal(err)
	}
	return path
}

// Database returns a sqlite database file in a fresh temp directory,
// the file itself does not exist yet.
func Database(t testing.TB) configlibsql.Struct {
	return configlibsql.Struct{File: filepath.Join(t.TempDir(), "test.db")}
}
