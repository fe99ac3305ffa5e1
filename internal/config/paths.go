package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// AppName names the XDG subdirectories
const AppName = "auto-penguin-setup"

// Configuration file names inside the config directory
const (
	PkgmapFile   = "pkgmap.ini"
	PackagesFile = "packages.ini"
	SettingsFile = "settings.ini"
)

// Paths locates the configuration and state directories
type Paths struct {
	ConfigDir string
	DataDir   string
}

// DefaultPaths resolves the XDG directories. APS_CONFIG_DIR and APS_DATA_DIR
// override them.
func DefaultPaths() Paths {
	homeDir, _ := os.UserHomeDir()

	configDir := os.Getenv("APS_CONFIG_DIR")
	if configDir == "" {
		base := os.Getenv("XDG_CONFIG_HOME")
		if base == "" {
			base = filepath.Join(homeDir, ".config")
		}
		configDir = filepath.Join(base, AppName)
	}

	dataDir := os.Getenv("APS_DATA_DIR")
	if dataDir == "" {
		base := os.Getenv("XDG_DATA_HOME")
		if base == "" {
			base = filepath.Join(homeDir, ".local", "share")
		}
		dataDir = filepath.Join(base, AppName)
	}

	return Paths{ConfigDir: configDir, DataDir: dataDir}
}

func (p Paths) Pkgmap() string   { return filepath.Join(p.ConfigDir, PkgmapFile) }
func (p Paths) Packages() string { return filepath.Join(p.ConfigDir, PackagesFile) }
func (p Paths) Settings() string { return filepath.Join(p.ConfigDir, SettingsFile) }

// EnsureDataDir creates the data directory
func (p Paths) EnsureDataDir() error {
	if err := os.MkdirAll(p.DataDir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", p.DataDir, err)
	}
	return nil
}
