package config

import (
	"flag"
	"fmt"
)

var (
	flagConfig    = flag.String("config", "", "Path to config file (.yaml or .toml)")
	flagDebug     = flag.Bool("debug", false, "Enable debug logging")
	flagThreshold = flag.Int("threshold", -1, "Brightest channel value read as black (0-255)")
	flagResize    = flag.Bool("resize", false, "Resize mask images to the texture size")
	flagOverwrite = flag.Bool("overwrite", false, "Overwrite existing output files")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// Args returns the non-flag command-line arguments.
func Args() []string {
	return flag.Args()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) error {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagThreshold != -1 {
		if *flagThreshold < 0 || *flagThreshold > 255 {
			return fmt.Errorf("invalid -threshold %d: want 0-255", *flagThreshold)
		}
		cfg.Mask.BlackThreshold = uint8(*flagThreshold)
	}
	if *flagResize {
		cfg.Mask.ResizeToTexture = true
	}
	if *flagOverwrite {
		cfg.Output.Overwrite = true
	}
	return nil
}
