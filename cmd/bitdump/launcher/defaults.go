package launcher

// DefaultConfig returns the baseline configuration values the launcher uses
// before preset files and CLI flags override them.

func DefaultConfig() Config {
	return Config{
		Input: InputConfig{
			Path: "-",
		},
		Logging: LoggingConfig{
			Verbosity: 3,
			Format:    "text",
			Color:     false,
		},
	}
}
