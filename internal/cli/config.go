package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"laygrid/pkg/layout"
)

// configFileName is the name of the optional configuration file.
const configFileName = "laygrid.toml"

// loadConfig loads layout configuration from a TOML file.
//
// When path is empty, the file is searched in the working directory and then
// in the XDG config directory (~/.config/laygrid/). A missing file is not an
// error; the defaults are returned.
func loadConfig(path string) (*layout.Config, error) {
	if path == "" {
		path = findConfigFile()
	}

	cfg := layout.DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("load config %s: %w", path, err)
	}
	return cfg, nil
}

// findConfigFile returns the first existing config file path, or "".
func findConfigFile() string {
	if _, err := os.Stat(configFileName); err == nil {
		return configFileName
	}

	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		dir = filepath.Join(home, ".config")
	}

	path := filepath.Join(dir, appName, configFileName)
	if _, err := os.Stat(path); err == nil {
		return path
	}
	return ""
}
