// Package cmd implements the command-line interface for deskctl.
package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override, e.g. DESKCTL_SHELL
const EnvPrefix = "DESKCTL"

// Config holds all application configuration
type Config struct {
	Verbose    bool
	ShowLogs   bool
	IgnoreCase bool
	Shell      string
	LogDir     string
	ConfigFile string // File the values were read from, if any
}

// NewConfig resolves configuration from, in decreasing precedence, command
// line flags, DESKCTL_* environment variables, and the config file.
func NewConfig(cmd *cobra.Command) (*Config, error) {
	v := viper.New()

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	for _, fs := range []*pflag.FlagSet{cmd.InheritedFlags(), cmd.Flags()} {
		if err := v.BindPFlags(fs); err != nil {
			return nil, fmt.Errorf("failed to bind flags: %w", err)
		}
	}

	if err := readConfigFile(v); err != nil {
		return nil, err
	}

	return &Config{
		Verbose:    v.GetBool("verbose"),
		ShowLogs:   v.GetBool("logs"),
		IgnoreCase: v.GetBool("ignore-case"),
		Shell:      v.GetString("shell"),
		LogDir:     v.GetString("log-dir"),
		ConfigFile: v.ConfigFileUsed(),
	}, nil
}

// readConfigFile loads --config when given, otherwise an optional
// config.{yaml,toml,json} from %APPDATA%\deskctl
func readConfigFile(v *viper.Viper) error {
	if path := v.GetString("config"); path != "" {
		v.SetConfigFile(path)

		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		return nil
	}

	v.SetConfigName("config")
	v.AddConfigPath(defaultConfigDir())

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}

		return fmt.Errorf("failed to read config file: %w", err)
	}

	return nil
}

func defaultConfigDir() string {
	appData := os.Getenv("APPDATA")
	if appData == "" {
		appData = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
	}

	return filepath.Join(appData, "deskctl")
}
