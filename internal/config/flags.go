package config

import "flag"

var (
	flagConfig  = flag.String("config", "", "Path to config file")
	flagDebug   = flag.Bool("debug", false, "Enable debug logging")
	flagAddr    = flag.String("addr", "", "Listen address")
	flagCatalog = flag.String("catalog", "", "Products backend base URL")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagAddr != "" {
		cfg.Server.Addr = *flagAddr
	}
	if *flagCatalog != "" {
		cfg.Catalog.BaseURL = *flagCatalog
	}
}
