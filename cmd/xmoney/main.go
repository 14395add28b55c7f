package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/fivetwenty-io/xmoney-go/cmd/xmoney/commands"
	"github.com/fivetwenty-io/xmoney-go/internal/constants"
	"github.com/fivetwenty-io/xmoney-go/pkg/xmoney"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "xmoney",
	Short: "xMoney payments API CLI",
	Long: `A command-line interface for the xMoney payments API.

Manage orders, transactions, customers and saved cards, build signed hosted
checkout forms, and decrypt or receive webhook notifications. The secret key
selects the stage or live environment.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		output := viper.GetString("output")
		switch output {
		case constants.FormatJSON, constants.FormatYAML, constants.FormatTable:
		default:
			return fmt.Errorf("%w: %q", constants.ErrInvalidOutputFormat, output)
		}

		// A key passed on the command line is checked before anything else runs.
		if cmd.Flags().Changed("secret-key") {
			_, err := xmoney.ParseSecretKey(viper.GetString("secret-key"))
			if err != nil {
				return err
			}
		}

		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringP("config", "c", "", "config file (default is $HOME/.xmoney/config.yml)")
	rootCmd.PersistentFlags().StringP("secret-key", "k", "", "xMoney secret key (sk_test_... or sk_live_...)")
	rootCmd.PersistentFlags().String("base-url", "", "override the API base URL")
	rootCmd.PersistentFlags().Duration("timeout", 0, fmt.Sprintf("per-request timeout (default %s)", constants.DefaultHTTPTimeout))
	rootCmd.PersistentFlags().StringP("output", "o", constants.FormatJSON, "output format (table, json, yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "log HTTP requests and responses")
	rootCmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("webhook-key-material", "", "webhook key material (bearer-token or secret-key)")
	rootCmd.PersistentFlags().Bool("no-color", false, "disable colored output")

	// Bind flags to viper
	for _, name := range []string{
		"config", "secret-key", "base-url", "timeout", "output",
		"verbose", "log-level", "webhook-key-material", "no-color",
	} {
		_ = viper.BindPFlag(name, rootCmd.PersistentFlags().Lookup(name))
	}

	// Add commands
	rootCmd.AddCommand(commands.NewVersionCommand(version, commit, date))
	rootCmd.AddCommand(commands.NewConfigCommand())
	rootCmd.AddCommand(commands.NewOrdersCommand())
	rootCmd.AddCommand(commands.NewTransactionsCommand())
	rootCmd.AddCommand(commands.NewCustomersCommand())
	rootCmd.AddCommand(commands.NewCardsCommand())
	rootCmd.AddCommand(commands.NewCheckoutCommand())
	rootCmd.AddCommand(commands.NewWebhooksCommand())
}

func initConfig() {
	// A missing .env is not an error.
	_ = godotenv.Load()

	cfgFile := viper.GetString("config")

	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		// Search config in ~/.xmoney/config.yml
		viper.AddConfigPath(filepath.Join(home, constants.ConfigDirName))
		viper.SetConfigType("yml")
		viper.SetConfigName(constants.ConfigFileName)
	}

	// XMONEY_SECRET_KEY, XMONEY_BASE_URL, ...
	viper.SetEnvPrefix(constants.EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		if viper.GetBool("verbose") {
			fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
		}
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		commands.PrintError(os.Stderr, err)
		os.Exit(1)
	}
}
