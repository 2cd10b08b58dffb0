package cli

import (
	"bytes"
	"database/sql"
	"io"
	"os"
	"path/filepath"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"
)

// captureOutput captures stdout during fn execution and returns it as a string.
func captureOutput(t *testing.T, fn func()) string {
	t.Helper()
	old := os.Stdout
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stdout = w

	fn()

	w.Close()
	os.Stdout = old

	var buf bytes.Buffer
	_, _ = io.Copy(&buf, r)
	return buf.String()
}

// writeChromeDB creates a Chrome-shaped history database at path with one
// visit per (url, title, visit_time) triple.
func writeChromeDB(t *testing.T, path string, visits ...chromeVisit) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))

	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	defer db.Close()

	_, err = db.Exec(`CREATE TABLE urls (id INTEGER PRIMARY KEY, url LONGVARCHAR, title LONGVARCHAR)`)
	require.NoError(t, err)
	_, err = db.Exec(`CREATE TABLE visits (id INTEGER PRIMARY KEY, url INTEGER NOT NULL, visit_time INTEGER NOT NULL)`)
	require.NoError(t, err)

	for i, v := range visits {
		_, err = db.Exec(`INSERT INTO urls (id, url, title) VALUES (?, ?, ?)`, i+1, v.URL, v.Title)
		require.NoError(t, err)
		_, err = db.Exec(`INSERT INTO visits (url, visit_time) VALUES (?, ?)`, i+1, v.Time)
		require.NoError(t, err)
	}
}

type chromeVisit struct {
	URL   string
	Title string
	Time  int64
}

// writeFirefoxDB creates a Firefox-shaped places.sqlite at path.
func writeFirefoxDB(t *testing.T, path string, url string, visitDate int64) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))

	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	defer db.Close()

	stmts := []string{
		`CREATE TABLE moz_places (id INTEGER PRIMARY KEY, url LONGVARCHAR, title LONGVARCHAR)`,
		`CREATE TABLE moz_historyvisits (id INTEGER PRIMARY KEY, place_id INTEGER, visit_date INTEGER)`,
	}
	for _, stmt := range stmts {
		_, err := db.Exec(stmt)
		require.NoError(t, err)
	}
	_, err = db.Exec(`INSERT INTO moz_places (id, url, title) VALUES (1, ?, NULL)`, url)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO moz_historyvisits (place_id, visit_date) VALUES (1, ?)`, visitDate)
	require.NoError(t, err)
}

// writeSafariDB creates a Safari-shaped History.db at path.
func writeSafariDB(t *testing.T, path string, url string, visitTime float64) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))

	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	defer db.Close()

	stmts := []string{
		`CREATE TABLE history_items (id INTEGER PRIMARY KEY, url TEXT NOT NULL)`,
		`CREATE TABLE history_visits (id INTEGER PRIMARY KEY, history_item INTEGER NOT NULL, visit_time REAL NOT NULL, title TEXT)`,
	}
	for _, stmt := range stmts {
		_, err := db.Exec(stmt)
		require.NoError(t, err)
	}
	_, err = db.Exec(`INSERT INTO history_items (id, url) VALUES (1, ?)`, url)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO history_visits (history_item, visit_time, title) VALUES (1, ?, 'Safari Page')`, visitTime)
	require.NoError(t, err)
}
