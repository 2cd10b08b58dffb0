package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"github.com/runnerr0/histexport/internal/discovery"
	"github.com/runnerr0/histexport/internal/export"
	"github.com/runnerr0/histexport/internal/history"
)

// Finder lists candidate history databases for a browser.
type Finder interface {
	Candidates(b history.Browser) ([]string, error)
}

// Reader reads every visit from one history database.
type Reader interface {
	Read(ctx context.Context, b history.Browser, path string) ([]history.VisitRecord, error)
}

// Exporter writes the merged visits to dest.
type Exporter interface {
	Export(records []history.VisitRecord, dest string) error
}

const safariAccessHint = `Note: Reading Safari history requires Full Disk Access permission.
To grant access: System Settings -> Privacy & Security -> Full Disk Access`

// pipeline runs discovery, reading, aggregation and export once.
type pipeline struct {
	finder   Finder
	reader   Reader
	exporter Exporter

	browsers  []history.Browser
	outputDir string
	gzip      bool
	now       func() time.Time

	log    zerolog.Logger
	out    io.Writer
	errOut io.Writer
}

// run returns the report path, or "" when no history was found. Failures of
// a single database are logged and skipped; only timestamp overflow and
// export failures abort.
func (p *pipeline) run(ctx context.Context) (string, error) {
	var batches [][]history.VisitRecord

	for _, b := range p.browsers {
		visits, err := p.collect(ctx, b)
		if err != nil {
			return "", err
		}
		batches = append(batches, visits...)
	}

	merged := history.Aggregate(batches...)
	if len(merged) == 0 {
		fmt.Fprintln(p.out, "No browser history found!")
		return "", nil
	}

	dest := filepath.Join(p.outputDir, export.FileName(p.now(), p.gzip))
	if err := p.exporter.Export(merged, dest); err != nil {
		return "", fmt.Errorf("export report: %w", err)
	}

	fmt.Fprintf(p.out, "\nExported %d visits to %s\n", len(merged), dest)
	return dest, nil
}

// collect reads every database discovered for b.
func (p *pipeline) collect(ctx context.Context, b history.Browser) ([][]history.VisitRecord, error) {
	paths, err := p.finder.Candidates(b)
	if err != nil {
		if errors.Is(err, discovery.ErrNoAccess) {
			fmt.Fprintf(p.out, "\n%s history file not accessible. Skipping %s history.\n", b, b)
			fmt.Fprintln(p.out, safariAccessHint)
			return nil, nil
		}
		p.log.Error().Err(err).Str("browser", string(b)).Msg("discover history files")
		return nil, nil
	}

	p.log.Debug().Str("browser", string(b)).Int("files", len(paths)).Msg("discovered history files")
	if len(paths) == 0 && b == history.Safari {
		fmt.Fprintln(p.out, "\nSafari history file not found. Skipping Safari history.")
		return nil, nil
	}

	var batches [][]history.VisitRecord
	for _, path := range paths {
		fmt.Fprintf(p.out, "\nReading %s history from: %s\n", b, path)

		visits, err := p.reader.Read(ctx, b, path)
		if err != nil {
			if errors.Is(err, history.ErrTimestampOverflow) {
				return nil, err
			}
			p.log.Error().Err(err).Str("browser", string(b)).Str("path", path).Msg("read history")
			if b == history.Safari {
				fmt.Fprintln(p.errOut, safariAccessHint)
			}
			continue
		}

		fmt.Fprintf(p.out, "Found %d %s URLs\n", len(visits), b)
		batches = append(batches, visits)
	}
	return batches, nil
}
