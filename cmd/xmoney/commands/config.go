package commands

import (
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/fivetwenty-io/xmoney-go/internal/constants"
	"github.com/fivetwenty-io/xmoney-go/pkg/xmoney"
)

// Config is the effective CLI configuration.
type Config struct {
	SecretKey          string `json:"secret-key,omitempty"           yaml:"secret-key,omitempty"`
	BaseURL            string `json:"base-url,omitempty"             yaml:"base-url,omitempty"`
	Timeout            string `json:"timeout,omitempty"              yaml:"timeout,omitempty"`
	Output             string `json:"output,omitempty"               yaml:"output,omitempty"`
	LogLevel           string `json:"log-level,omitempty"            yaml:"log-level,omitempty"`
	WebhookKeyMaterial string `json:"webhook-key-material,omitempty" yaml:"webhook-key-material,omitempty"`
	Verbose            bool   `json:"verbose"                        yaml:"verbose"`
	NoColor            bool   `json:"no-color"                       yaml:"no-color"`
}

// configKeys lists the keys accepted by config set and unset.
var configKeys = []string{
	"secret-key",
	"base-url",
	"timeout",
	"output",
	"log-level",
	"webhook-key-material",
	"verbose",
	"no-color",
}

var logLevels = []string{"trace", "debug", "info", "warn", "error", "fatal", "panic", "disabled"}

// NewConfigCommand creates the config command group.
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage CLI configuration",
		Long:  "Manage xMoney CLI configuration stored in $HOME/.xmoney/config.yml",
	}

	cmd.AddCommand(newConfigShowCommand())
	cmd.AddCommand(newConfigSetCommand())
	cmd.AddCommand(newConfigUnsetCommand())
	cmd.AddCommand(newConfigClearCommand())

	return cmd
}

func newConfigShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		Long:  "Display the effective configuration merged from flags, environment and the config file. The secret key is masked.",
		RunE: func(cmd *cobra.Command, args []string) error {
			config := loadConfig()

			return render(cmd.OutOrStdout(), config, propertyTable([][]string{
				{"Config File", orNotAvailable(viper.ConfigFileUsed())},
				{"Secret Key", orNotAvailable(config.SecretKey)},
				{"Base URL", orNotAvailable(config.BaseURL)},
				{"Timeout", orNotAvailable(config.Timeout)},
				{"Output", orNotAvailable(config.Output)},
				{"Log Level", orNotAvailable(config.LogLevel)},
				{"Webhook Key Material", orNotAvailable(config.WebhookKeyMaterial)},
				{"Verbose", yesNo(config.Verbose)},
				{"No Color", yesNo(config.NoColor)},
			}))
		},
	}
}

func newConfigSetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set KEY VALUE",
		Short: "Set a configuration value",
		Long:  "Set a configuration value. Keys: secret-key, base-url, timeout, output, log-level, webhook-key-material, verbose, no-color",
		Args:  cobra.ExactArgs(constants.MinimumArgumentCount),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, value := args[0], args[1]

			parsed, err := validateConfigValue(key, value)
			if err != nil {
				return err
			}

			err = updateConfigFile(func(values map[string]interface{}) {
				values[key] = parsed
			})
			if err != nil {
				return err
			}

			displayed := value
			if key == "secret-key" {
				displayed = xmoney.MaskSecretKey(value)
			}

			return outputConfigUpdateResult(cmd.OutOrStdout(), "Set", key, displayed)
		},
	}
}

func newConfigUnsetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "unset KEY",
		Short: "Unset a configuration value",
		Long:  "Remove a configuration value from the config file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := args[0]
			if !slices.Contains(configKeys, key) {
				return fmt.Errorf("%w: %s", constants.ErrUnknownConfigKey, key)
			}

			err := updateConfigFile(func(values map[string]interface{}) {
				delete(values, key)
			})
			if err != nil {
				return err
			}

			return outputConfigUpdateResult(cmd.OutOrStdout(), "Unset", key, "")
		},
	}
}

func newConfigClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Clear configuration",
		Long:  "Remove the config file",
		RunE: func(cmd *cobra.Command, args []string) error {
			configFile, err := configFilePath()
			if err != nil {
				return err
			}

			err = os.Remove(configFile)
			if err != nil && !errors.Is(err, os.ErrNotExist) {
				return fmt.Errorf("failed to remove config file: %w", err)
			}

			return outputConfigUpdateResult(cmd.OutOrStdout(), "Cleared", "all configuration", "")
		},
	}
}

func loadConfig() *Config {
	config := &Config{
		SecretKey:          viper.GetString("secret-key"),
		BaseURL:            viper.GetString("base-url"),
		Output:             viper.GetString("output"),
		LogLevel:           viper.GetString("log-level"),
		WebhookKeyMaterial: viper.GetString("webhook-key-material"),
		Verbose:            viper.GetBool("verbose"),
		NoColor:            viper.GetBool("no-color"),
	}

	if config.SecretKey != "" {
		config.SecretKey = xmoney.MaskSecretKey(config.SecretKey)
	}

	if timeout := viper.GetDuration("timeout"); timeout > 0 {
		config.Timeout = timeout.String()
	}

	return config
}

// validateConfigValue checks value for key and returns what is stored in the
// config file.
func validateConfigValue(key, value string) (interface{}, error) {
	invalid := func(cause error) error {
		return fmt.Errorf("%w for %s: %w", constants.ErrInvalidConfigValue, key, cause)
	}

	switch key {
	case "secret-key":
		_, err := xmoney.ParseSecretKey(value)
		if err != nil {
			return nil, invalid(err)
		}
	case "base-url":
		parsed, err := url.Parse(value)
		if err != nil {
			return nil, invalid(err)
		}

		if parsed.Scheme == "" || parsed.Host == "" {
			return nil, invalid(xmoney.ErrInvalidBaseURL)
		}
	case "timeout":
		timeout, err := time.ParseDuration(value)
		if err != nil {
			return nil, invalid(err)
		}

		if timeout < 0 {
			return nil, invalid(xmoney.ErrNegativeTimeout)
		}
	case "output":
		if value != constants.FormatJSON && value != constants.FormatYAML && value != constants.FormatTable {
			return nil, invalid(constants.ErrInvalidOutputFormat)
		}
	case "log-level":
		if !slices.Contains(logLevels, value) {
			return nil, invalid(fmt.Errorf("%q is not a log level", value))
		}
	case "webhook-key-material":
		_, err := xmoney.ParseKeyMaterial(value)
		if err != nil {
			return nil, invalid(err)
		}
	case "verbose", "no-color":
		flag, err := strconv.ParseBool(value)
		if err != nil {
			return nil, invalid(err)
		}

		return flag, nil
	default:
		return nil, fmt.Errorf("%w: %s", constants.ErrUnknownConfigKey, key)
	}

	return value, nil
}

// configFilePath returns the config file in use, or the default location
// under the home directory.
func configFilePath() (string, error) {
	if configFile := viper.ConfigFileUsed(); configFile != "" {
		return configFile, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}

	return filepath.Join(home, constants.ConfigDirName, constants.ConfigFileName+".yml"), nil
}

// updateConfigFile reads the config file, applies mutate and writes it back.
// Keys not managed by this command are preserved.
func updateConfigFile(mutate func(map[string]interface{})) error {
	configFile, err := configFilePath()
	if err != nil {
		return err
	}

	values := map[string]interface{}{}

	// #nosec G304 -- the path comes from --config or the home directory
	data, err := os.ReadFile(configFile)
	switch {
	case err == nil:
		err = yaml.Unmarshal(data, &values)
		if err != nil {
			return fmt.Errorf("failed to parse config file %s: %w", configFile, err)
		}

		if values == nil {
			values = map[string]interface{}{}
		}
	case !errors.Is(err, os.ErrNotExist):
		return fmt.Errorf("failed to read config file: %w", err)
	}

	mutate(values)

	err = os.MkdirAll(filepath.Dir(configFile), constants.ConfigDirPerm)
	if err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err = yaml.Marshal(values)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	err = os.WriteFile(configFile, data, constants.ConfigFilePerm)
	if err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

func outputConfigUpdateResult(out io.Writer, action, key, value string) error {
	result := map[string]string{
		"action": action,
		"key":    key,
	}

	if value != "" {
		result["value"] = value
	}

	rows := [][]string{
		{"Action", action},
		{"Key", key},
	}

	if value != "" {
		rows = append(rows, []string{"Value", value})
	}

	return render(out, result, propertyTable(rows))
}
