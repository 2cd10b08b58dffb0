package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

// SourceError reports a failed read of one history database.
type SourceError struct {
	Browser Browser
	Path    string
	Err     error
}

func (e *SourceError) Error() string {
	return fmt.Sprintf("read %s history %s: %v", e.Browser, e.Path, e.Err)
}

func (e *SourceError) Unwrap() error { return e.Err }

// Reader extracts visits from browser history databases.
type Reader struct {
	// ScratchDir receives the temporary copies. Empty means os.TempDir().
	ScratchDir string
}

// NewReader creates a Reader that stages copies under scratchDir.
func NewReader(scratchDir string) *Reader {
	return &Reader{ScratchDir: scratchDir}
}

// Read returns every visit stored in the database at path. Any bad row fails
// the whole file; no partial result is returned alongside an error.
func (r *Reader) Read(ctx context.Context, b Browser, path string) ([]VisitRecord, error) {
	src, ok := SourceFor(b)
	if !ok {
		return nil, &SourceError{Browser: b, Path: path, Err: errors.New("unsupported browser")}
	}

	visits, err := r.read(ctx, src, path)
	if err != nil {
		return nil, &SourceError{Browser: b, Path: path, Err: err}
	}
	return visits, nil
}

func (r *Reader) read(ctx context.Context, src Source, path string) ([]VisitRecord, error) {
	scratch, cleanup, err := scratchCopy(path, r.ScratchDir, src.Browser)
	if err != nil {
		return nil, err
	}
	defer cleanup()

	db, err := sql.Open("sqlite3", readOnlyDSN(scratch))
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx, src.Query)
	if err != nil {
		return nil, fmt.Errorf("query visits: %w", err)
	}
	defer rows.Close()

	visits := []VisitRecord{}
	for rows.Next() {
		var (
			url   string
			title sql.NullString
			raw   any
		)
		if err := rows.Scan(&url, &title, &raw); err != nil {
			return nil, fmt.Errorf("scan visit %d: %w", len(visits)+1, err)
		}

		visitTime, err := src.Timestamp(raw)
		if err != nil {
			return nil, fmt.Errorf("visit %d (%s): %w", len(visits)+1, url, err)
		}

		t, err := src.title(url, title)
		if err != nil {
			return nil, fmt.Errorf("visit %d: %w", len(visits)+1, err)
		}

		visits = append(visits, VisitRecord{
			URL:        url,
			Title:      t,
			VisitTime:  visitTime,
			SourcePath: path,
			Browser:    src.Browser,
		})
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate visits: %w", err)
	}

	return visits, nil
}

// readOnlyDSN builds a SQLite URI for path with every reserved character
// escaped. immutable skips locking and the -shm file, so WAL-mode copies
// open without creating sidecars next to the scratch file.
func readOnlyDSN(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	u := url.URL{Scheme: "file", Path: filepath.ToSlash(path), RawQuery: "mode=ro&immutable=1"}
	return u.String()
}
