package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/BurntSushi/toml"
	"github.com/aokege/aokege/home"
)

type ConfigGlobal struct {
	BaseDir      string `toml:"base_dir"`
	Host         string `toml:"host"`
	Quiet        bool   `toml:"quiet"`
	DownloadOnly bool   `toml:"download_only"`
	DisableSSL   bool   `toml:"disable_ssl"`
}

type ConfigPackage struct {
	File         string `toml:"file"`
	Host         string `toml:"host"`
	Only         string `toml:"only"`
	Quiet        bool   `toml:"quiet"`
	DownloadOnly bool   `toml:"download_only"`
	DisableSSL   bool   `toml:"disable_ssl"`
}

type Config struct {
	Meta struct {
		MetaData *toml.MetaData
	}
	Global   ConfigGlobal             `toml:"global"`
	Packages map[string]ConfigPackage `toml:"packages"`
}

func LoadConfigurationFile(path string) (Config, error) {
	var conf Config
	meta, err := toml.DecodeFile(path, &conf)
	if err != nil {
		return conf, err
	}
	conf.Meta.MetaData = &meta
	return conf, nil
}

// GetOSConfigPath returns the conventional per-user configuration file
// location: $XDG_CONFIG_HOME (or %LOCALAPPDATA% on Windows) with a fallback
// beneath the home directory.
func GetOSConfigPath(homePath string) string {
	var configDir string

	defaultConfig := map[string]string{
		"windows": "LocalAppData",
		"default": ".config",
	}

	var goos string
	switch runtime.GOOS {
	case "windows":
		configDir = os.Getenv("LOCALAPPDATA")
		goos = "windows"
	default:
		configDir = os.Getenv("XDG_CONFIG_HOME")
		goos = "default"
	}

	if configDir == "" {
		configDir = filepath.Join(homePath, defaultConfig[goos])
	}

	return filepath.Join(configDir, "aokege", "aokege.toml")
}

// InitializeConfig loads the first configuration file found, trying
// $AOKEGE_CONFIG, ~/.aokege.toml, ./aokege.toml and the OS config directory
// in that order. A missing file is not an error; defaults apply.
func InitializeConfig() (*Config, error) {
	var err error
	var config Config

	homePath, _ := os.UserHomeDir()

	if configFilePath, ok := os.LookupEnv("AOKEGE_CONFIG"); ok {
		if config, err = LoadConfigurationFile(configFilePath); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", configFilePath, err)
		}
	} else {
		configFilePath := filepath.Join(homePath, ".aokege.toml")
		if config, err = LoadConfigurationFile(configFilePath); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", configFilePath, err)
		}
	}

	if err != nil {
		configFilePath := "aokege.toml"
		if config, err = LoadConfigurationFile(configFilePath); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", configFilePath, err)
		}
	}

	if err != nil {
		configFallBackPath := GetOSConfigPath(homePath)
		if config, err = LoadConfigurationFile(configFallBackPath); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", configFallBackPath, err)
		}
	}

	if err != nil {
		config = Config{
			Global: ConfigGlobal{
				BaseDir: DefaultBase,
				Host:    DefaultHost,
			},
			Packages: make(map[string]ConfigPackage),
		}
		return &config, nil
	}

	if !config.Meta.MetaData.IsDefined("global", "base_dir") {
		config.Global.BaseDir = DefaultBase
	}
	if !config.Meta.MetaData.IsDefined("global", "host") {
		config.Global.Host = DefaultHost
	}
	if config.Packages == nil {
		config.Packages = make(map[string]ConfigPackage)
	}

	// unset per-package values inherit the global ones
	for name, pkg := range config.Packages {
		if !config.Meta.MetaData.IsDefined("packages", name, "host") {
			pkg.Host = config.Global.Host
		}
		if !config.Meta.MetaData.IsDefined("packages", name, "quiet") {
			pkg.Quiet = config.Global.Quiet
		}
		if !config.Meta.MetaData.IsDefined("packages", name, "download_only") {
			pkg.DownloadOnly = config.Global.DownloadOnly
		}
		if !config.Meta.MetaData.IsDefined("packages", name, "disable_ssl") {
			pkg.DisableSSL = config.Global.DisableSSL
		}
		config.Packages[name] = pkg
	}

	return &config, nil
}

func update[T any](config T, cli *T) T {
	if cli == nil {
		return config
	}
	return *cli
}

// SetOptionsFromConfig merges the loaded configuration file with the
// command-line flags into opts. Per-package sections override the global
// section; explicit command-line flags win over both.
func SetOptionsFromConfig(config *Config, opts *Flags, cli CliFlags, packageName string) error {
	base, err := home.Expand(config.Global.BaseDir)
	if err != nil {
		return err
	}
	opts.Base = update(base, cli.Base)
	opts.Host = update(config.Global.Host, cli.Host)
	opts.Quiet = update(config.Global.Quiet, cli.Quiet)
	opts.DLOnly = update(config.Global.DownloadOnly, cli.DLOnly)
	opts.DisableSSL = update(config.Global.DisableSSL, cli.DisableSSL)
	opts.File = update("", cli.File)
	opts.Only = update("", cli.Only)

	if pkg, ok := config.Packages[packageName]; ok {
		opts.File = update(pkg.File, cli.File)
		opts.Host = update(pkg.Host, cli.Host)
		opts.Only = update(pkg.Only, cli.Only)
		opts.Quiet = update(pkg.Quiet, cli.Quiet)
		opts.DLOnly = update(pkg.DownloadOnly, cli.DLOnly)
		opts.DisableSSL = update(pkg.DisableSSL, cli.DisableSSL)
	}
	return nil
}
