package config

const (
	defaultOutputDir  = "~/.local/share/reelsift/out"
	defaultLogDir     = "~/.local/share/reelsift/logs"
	defaultDateFormat = "01/02/06"
	defaultLogFormat  = "console"
	defaultLogLevel   = "info"
	defaultListLimit  = 0
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			OutputDir: defaultOutputDir,
			LogDir:    defaultLogDir,
		},
		Input: Input{
			DateFormat: defaultDateFormat,
		},
		Review: Review{
			ListLimit: defaultListLimit,
			Journal:   true,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
