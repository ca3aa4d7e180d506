package config

const (
	defaultBaseURL             = "http://localhost:5000/api"
	defaultRequestTimeout      = 30
	defaultUserAgent           = "Convertly-CLI/0.1.0"
	defaultDataDir             = "~/.local/share/convertly"
	defaultLogDir              = "~/.local/share/convertly/logs"
	defaultPollInterval        = 1
	defaultNtfyRequestTimeout  = 10
	defaultLogFormat           = "console"
	defaultLogLevel            = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		API: API{
			BaseURL:        defaultBaseURL,
			RequestTimeout: defaultRequestTimeout,
			UserAgent:      defaultUserAgent,
		},
		Paths: Paths{
			DataDir: defaultDataDir,
			LogDir:  defaultLogDir,
		},
		Workflow: Workflow{
			PollInterval: defaultPollInterval,
		},
		Notifications: Notifications{
			RequestTimeout: defaultNtfyRequestTimeout,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
