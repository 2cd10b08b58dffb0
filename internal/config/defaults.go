package config

// DefaultConfig returns a Config populated with all default values.
func DefaultConfig() *Config {
	return &Config{
		Profiles: ProfilesConfig{
			Chrome:  "Library/Application Support/Google/Chrome",
			Firefox: "Library/Application Support/Firefox/Profiles",
			Safari:  "Library/Safari/History.db",
		},
		Output: OutputConfig{
			Dir:  ".",
			Gzip: false,
		},
		Scratch: ScratchConfig{
			Dir: "",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}
