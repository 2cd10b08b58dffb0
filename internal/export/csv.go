package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/klauspost/compress/gzip"

	"github.com/runnerr0/histexport/internal/history"
)

// writeReport is replaceable so tests can force a mid-write failure.
var writeReport = WriteCSV

// Header is the fixed first row of every report.
var Header = []string{"Timestamp", "URL", "Title", "History File", "Browser"}

// CSVExporter writes visit reports to disk.
type CSVExporter struct {
	Gzip bool
}

// FileName returns the report name for a run started at now, formatted in
// now's location.
func FileName(now time.Time, gzipped bool) string {
	name := "browser_history_" + now.Format("2006-01-02_15-04-05") + ".csv"
	if gzipped {
		name += ".gz"
	}
	return name
}

// Export writes records to dest, creating or truncating it. A failed export
// removes dest rather than leave a partial report behind.
func (e *CSVExporter) Export(records []history.VisitRecord, dest string) (err error) {
	f, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("create report: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close report: %w", cerr)
		}
		if err != nil {
			_ = os.Remove(dest)
		}
	}()

	if !e.Gzip {
		return writeReport(f, records)
	}

	zw := gzip.NewWriter(f)
	if err := writeReport(zw, records); err != nil {
		return err
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("compress report: %w", err)
	}
	return nil
}

// WriteCSV writes the header and one row per record. Timestamps are RFC 3339
// in UTC.
func WriteCSV(w io.Writer, records []history.VisitRecord) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for _, r := range records {
		row := []string{
			r.VisitTime.UTC().Format(time.RFC3339),
			r.URL,
			r.Title,
			r.SourcePath,
			string(r.Browser),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush report: %w", err)
	}
	return nil
}
