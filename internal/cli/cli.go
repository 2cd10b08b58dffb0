package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	goflags "github.com/jessevdk/go-flags"

	"github.com/runnerr0/histexport/internal/config"
	"github.com/runnerr0/histexport/internal/discovery"
	"github.com/runnerr0/histexport/internal/export"
	"github.com/runnerr0/histexport/internal/history"
	"github.com/runnerr0/histexport/internal/logging"
)

// buildParser constructs the go-flags parser for the single export command.
func buildParser() (*goflags.Parser, *Options) {
	var opts Options

	parser := goflags.NewParser(&opts, goflags.Default)
	parser.Name = "histexport"
	parser.LongDescription = "Export Chrome, Firefox and Safari browsing history to a single CSV report."

	return parser, &opts
}

// Run is the main entry point for the histexport CLI using os.Args.
func Run(version string) error {
	return RunWithArgs(version, nil)
}

// RunWithArgs parses the given args (or os.Args if nil) and runs the export.
func RunWithArgs(version string, args []string) error {
	parser, opts := buildParser()

	var (
		rest []string
		err  error
	)
	if args != nil {
		rest, err = parser.ParseArgs(args)
	} else {
		rest, err = parser.Parse()
	}
	if err != nil {
		if flagsErr, ok := err.(*goflags.Error); ok {
			if flagsErr.Type == goflags.ErrHelp {
				return nil
			}
		}
		return err
	}

	if opts.Version {
		fmt.Printf("histexport %s\n", version)
		return nil
	}
	if len(rest) > 0 {
		return fmt.Errorf("unexpected arguments: %s", strings.Join(rest, " "))
	}

	p, err := newPipeline(opts)
	if err != nil {
		return err
	}
	_, err = p.run(context.Background())
	return err
}

// newPipeline resolves configuration once and wires the collaborators.
func newPipeline(opts *Options) (*pipeline, error) {
	cfg, err := config.LoadOrDefault(opts.Config)
	if err != nil {
		return nil, err
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolving home directory: %w", err)
	}

	browsers, err := selectBrowsers(opts.Browser)
	if err != nil {
		return nil, err
	}

	outputDir := cfg.Output.Dir
	if opts.OutputDir != "" {
		outputDir = opts.OutputDir
	}
	if outputDir, err = config.ExpandPath(outputDir); err != nil {
		return nil, err
	}
	scratchDir, err := config.ExpandPath(cfg.Scratch.Dir)
	if err != nil {
		return nil, err
	}

	level := cfg.Logging.Level
	if opts.Verbose {
		level = "debug"
	}
	gzip := cfg.Output.Gzip || opts.Gzip

	return &pipeline{
		finder:    discovery.NewFinder(cfg.Resolve(home)),
		reader:    history.NewReader(scratchDir),
		exporter:  &export.CSVExporter{Gzip: gzip},
		browsers:  browsers,
		outputDir: outputDir,
		gzip:      gzip,
		now:       time.Now,
		log:       logging.New(os.Stderr, level),
		out:       os.Stdout,
		errOut:    os.Stderr,
	}, nil
}

// selectBrowsers maps --browser values onto browsers, keeping the default
// collection order. No values selects every browser.
func selectBrowsers(names []string) ([]history.Browser, error) {
	if len(names) == 0 {
		return history.Browsers, nil
	}

	wanted := make(map[history.Browser]bool)
	for _, n := range names {
		b, err := history.ParseBrowser(n)
		if err != nil {
			return nil, err
		}
		wanted[b] = true
	}

	var selected []history.Browser
	for _, b := range history.Browsers {
		if wanted[b] {
			selected = append(selected, b)
		}
	}
	return selected, nil
}
