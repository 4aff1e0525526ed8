package configlibsql

import (
	"database/sql"
	"fmt"
	"net/url"

	_ "github.com/tursodatabase/libsql-client-go/libsql"
	_ "modernc.org/sqlite"
)

// Struct describes where a database lives, either a local sqlite file or
// a remote libsql server when Url is set.
type Struct struct {
	File      string `json:"file"`
	Url       string `json:"url"`
	AuthToken string `json:"auth_token"`
}

// Location is a human readable description of the database, it never
// contains the auth token.
func (config Struct) Location() string {
	if config.Url != "" {
		return config.Url
	}
	return config.File
}

func (config Struct) dsn() (driver string, dsn string, err error) {
	if config.Url == "" {
		if config.File == "" {
			return "", "", fmt.Errorf("a path was not specified")
		}
		return "sqlite", config.File, nil
	}

	u, err := url.Parse(config.Url)
	if err != nil {
		return "", "", fmt.Errorf("parse database url: %w", err)
	}
	if config.AuthToken != "" {
		q := u.Query()
		q.Set("authToken", config.AuthToken)
		u.RawQuery = q.Encode()
	}
	return "libsql", u.String(), nil
}

func (config Struct) OpenDB() (*sql.DB, error) {
	driver, dsn, err := config.dsn()
	if err != nil {
		return nil, err
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, err
	}
	if driver != "sqlite" {
		return db, nil
	}

	// see this stackoverflow post for information on why the following
	// lines exist: https://stackoverflow.com/questions/35804884/sqlite-concurrent-writing-performance
	db.SetMaxOpenConns(1)
	if config.File != ":memory:" {
		_, err = db.Exec("PRAGMA journal_mode=WAL")
		if err != nil {
			db.Close()
			return nil, err
		}
	}

	return db, nil
}
