package configlibsql

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDsn(t *testing.T) {
	driver, dsn, err := Struct{File: "Banks.db"}.dsn()
	require.NoError(t, err)
	require.Equal(t, "sqlite", driver)
	require.Equal(t, "Banks.db", dsn)

	driver, dsn, err = Struct{Url: "libsql://banks.turso.io", AuthToken: "secret"}.dsn()
	require.NoError(t, err)
	require.Equal(t, "libsql", driver)
	require.Equal(t, "libsql://banks.turso.io?authToken=secret", dsn)

	_, _, err = Struct{}.dsn()
	require.Error(t, err)
}

func TestLocationHidesToken(t *testing.T) {
	loc := Struct{Url: "libsql://banks.turso.io", AuthToken: "secret"}.Location()
	require.NotContains(t, loc, "secret")
	require.Equal(t, "Banks.db", Struct{File: "Banks.db"}.Location())
}

func TestOpenDB(t *testing.T) {
	db, err := Struct{File: filepath.Join(t.TempDir(), "test.db")}.OpenDB()
	require.NoError(t, err)
	defer db.Close()

	_, err = db.Exec("CREATE TABLE t (x INTEGER)")
	require.NoError(t, err)

	mem, err := Struct{File: ":memory:"}.OpenDB()
	require.NoError(t, err)
	require.NoError(t, mem.Ping())
	mem.Close()
}
