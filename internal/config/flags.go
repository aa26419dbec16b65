package config

import "flag"

var (
	flagConfig     = flag.String("config", "", "Path to config file (.yaml, .yml or .toml)")
	flagDebug      = flag.Bool("debug", false, "Enable debug logging")
	flagAssets     = flag.String("assets", "", "Asset directory, searched before the configured ones")
	flagLevel      = flag.String("level", "", "Level description file")
	flagWindowed   = flag.Bool("windowed", false, "Run in windowed mode")
	flagFullscreen = flag.Bool("fullscreen", false, "Run in fullscreen mode")
	flagWidth      = flag.Int("width", 0, "Window width")
	flagHeight     = flag.Int("height", 0, "Window height")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via -config.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagAssets != "" {
		cfg.Data.AssetDirs = append(cfg.Data.AssetDirs, *flagAssets)
	}
	if *flagLevel != "" {
		cfg.Data.Level = *flagLevel
	}
	if *flagWindowed {
		cfg.Graphics.Fullscreen = false
	}
	if *flagFullscreen {
		cfg.Graphics.Fullscreen = true
	}
	if *flagWidth > 0 {
		cfg.Graphics.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Graphics.Height = *flagHeight
	}
}
