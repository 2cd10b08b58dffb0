package cli

// Options holds every command-line flag. All are optional; running with no
// arguments exports every browser found under the default profile roots.
type Options struct {
	Config    string   `long:"config" description:"Path to YAML config file" default:""`
	OutputDir string   `long:"output-dir" description:"Directory for the report (overrides config)"`
	Browser   []string `long:"browser" description:"Only read this browser: chrome, firefox or safari (repeatable)"`
	Gzip      bool     `long:"gzip" description:"Compress the report with gzip"`
	Verbose   bool     `long:"verbose" description:"Enable debug logging"`
	Version   bool     `long:"version" description:"Show version and exit"`
}
