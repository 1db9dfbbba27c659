package config

import "github.com/katalvlaran/warpsync/dtw"

const (
	defaultMetric       = "cosine"
	defaultPattern      = "symmetric1"
	defaultWindow       = dtw.DefaultWindow
	defaultSlopePenalty = dtw.DefaultSlopePenalty
	defaultWorkers      = dtw.DefaultWorkers
	defaultLogLevel     = "info"
	defaultLogFormat    = "text"
	defaultOutputFormat = "auto"
	defaultConfigPath   = "~/.config/warpsync/config.toml"
	projectConfigName   = "warpsync.toml"
)

// Default returns a Config populated with default values.
func Default() Config {
	return Config{
		Alignment: Alignment{
			Metric:       defaultMetric,
			Pattern:      defaultPattern,
			Window:       defaultWindow,
			SlopePenalty: defaultSlopePenalty,
			Workers:      defaultWorkers,
		},
		Logging: Logging{
			Level:  defaultLogLevel,
			Format: defaultLogFormat,
		},
		Output: Output{
			Format: defaultOutputFormat,
		},
	}
}
