// Package config handles maskcut configuration loading and management.
package config

// Config holds all tool settings.
type Config struct {
	Logging LoggingConfig `yaml:"logging" toml:"logging"`
	Mask    MaskConfig    `yaml:"mask" toml:"mask"`
	Output  OutputConfig  `yaml:"output" toml:"output"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level" toml:"level"`
	LogFile string `yaml:"log_file" toml:"log_file"`
	JSON    bool   `yaml:"json" toml:"json"` // JSON lines in the log file
}

// MaskConfig controls how mask images become delete masks.
type MaskConfig struct {
	// BlackThreshold is the brightest channel value (0-255) still read as
	// black. 0 accepts pure black only.
	BlackThreshold uint8 `yaml:"black_threshold" toml:"black_threshold"`
	// ResizeToTexture scales a mask image to the texture size instead of
	// failing on a dimension mismatch.
	ResizeToTexture bool `yaml:"resize_to_texture" toml:"resize_to_texture"`
}

// OutputConfig controls where pruned scenes are written.
type OutputConfig struct {
	Suffix    string `yaml:"suffix" toml:"suffix"` // added before the extension when no output path is given
	Overwrite bool   `yaml:"overwrite" toml:"overwrite"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
		Mask: MaskConfig{
			BlackThreshold:  0,
			ResizeToTexture: false,
		},
		Output: OutputConfig{
			Suffix:    "_pruned",
			Overwrite: false,
		},
	}
}
