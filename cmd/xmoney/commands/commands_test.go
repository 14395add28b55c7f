package commands

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

//nolint:funlen // Table-driven test
func TestCommandGroups(t *testing.T) {
	tests := []struct {
		name        string
		build       func() *cobra.Command
		use         string
		aliases     []string
		subcommands []string
	}{
		{
			name:        "orders",
			build:       NewOrdersCommand,
			use:         "orders",
			aliases:     []string{"order"},
			subcommands: []string{"list", "retrieve", "create", "rebill", "cancel"},
		},
		{
			name:        "transactions",
			build:       NewTransactionsCommand,
			use:         "transactions",
			aliases:     []string{"transaction", "tx"},
			subcommands: []string{"list", "retrieve", "capture", "refund"},
		},
		{
			name:        "customers",
			build:       NewCustomersCommand,
			use:         "customers",
			aliases:     []string{"customer"},
			subcommands: []string{"list", "retrieve", "create", "update", "delete"},
		},
		{
			name:        "cards",
			build:       NewCardsCommand,
			use:         "cards",
			aliases:     []string{"card"},
			subcommands: []string{"list", "retrieve", "delete"},
		},
		{
			name:        "checkout",
			build:       NewCheckoutCommand,
			use:         "checkout",
			subcommands: []string{"hosted"},
		},
		{
			name:        "webhooks",
			build:       NewWebhooksCommand,
			use:         "webhooks",
			aliases:     []string{"webhook"},
			subcommands: []string{"decrypt", "listen"},
		},
		{
			name:        "config",
			build:       NewConfigCommand,
			use:         "config",
			subcommands: []string{"show", "set", "unset", "clear"},
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			cmd := testCase.build()
			assert.Equal(t, testCase.use, cmd.Use)
			assert.NotEmpty(t, cmd.Short)
			assert.NotEmpty(t, cmd.Long)

			if testCase.aliases != nil {
				assert.Equal(t, testCase.aliases, cmd.Aliases)
			}

			assert.Len(t, cmd.Commands(), len(testCase.subcommands))

			for _, name := range testCase.subcommands {
				sub := findSubcommand(cmd, name)
				require.NotNil(t, sub, "subcommand %s should exist", name)
				assert.NotNil(t, sub.RunE, "subcommand %s should have RunE", name)
			}
		})
	}
}

func TestListCommandsHavePagingFlags(t *testing.T) {
	for _, cmd := range []*cobra.Command{
		newOrdersListCommand(),
		newTransactionsListCommand(),
		newCustomersListCommand(),
		newCardsListCommand(),
	} {
		for _, flagName := range []string{"page", "per-page", "reverse", "all"} {
			assert.NotNil(t, cmd.Flags().Lookup(flagName), "flag %s should exist", flagName)
		}

		assert.Equal(t, "20", cmd.Flags().Lookup("per-page").DefValue)
	}
}

func TestOrdersCreateCommand(t *testing.T) {
	cmd := newOrdersCreateCommand()
	assert.Equal(t, "create", cmd.Use)

	flags := []string{
		"customer-id", "amount", "currency", "type", "description", "external-order-id",
		"ip", "card-id", "transaction-method", "interval-type", "interval-value", "back-url", "save-card",
	}
	for _, flagName := range flags {
		assert.NotNil(t, cmd.Flags().Lookup(flagName), "Flag %s should exist", flagName)
	}

	assert.Equal(t, "EUR", cmd.Flags().Lookup("currency").DefValue)
	assert.Equal(t, "purchase", cmd.Flags().Lookup("type").DefValue)
}

func TestOrdersCreateCommand_RequiresAmount(t *testing.T) {
	setConfig(t, nil)

	_, err := execute(newOrdersCreateCommand(), "", "--customer-id", "5")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "amount")
}

func TestDeleteCommandsHaveForceFlag(t *testing.T) {
	for _, cmd := range []*cobra.Command{newCustomersDeleteCommand(), newCardsDeleteCommand()} {
		forceFlag := cmd.Flags().Lookup("force")
		require.NotNil(t, forceFlag)
		assert.Equal(t, "f", forceFlag.Shorthand)
		assert.Equal(t, "false", forceFlag.DefValue)
	}
}

func TestWebhooksListenCommand(t *testing.T) {
	cmd := newWebhooksListenCommand()
	assert.Equal(t, "listen", cmd.Use)
	assert.Equal(t, ":3000", cmd.Flags().Lookup("addr").DefValue)
	assert.Equal(t, "/webhook", cmd.Flags().Lookup("path").DefValue)
	assert.Equal(t, "xmoney.webhooks", cmd.Flags().Lookup("nats-subject").DefValue)
	assert.NotNil(t, cmd.Flags().Lookup("nats-url"))
	assert.NotNil(t, cmd.Flags().Lookup("key"))
}

func TestNewVersionCommand(t *testing.T) {
	setConfig(t, map[string]interface{}{"output": "json"})

	out, err := execute(NewVersionCommand("1.2.3", "abc123", "2026-01-01"), "")
	require.NoError(t, err)
	assert.Contains(t, out, `"version": "1.2.3"`)
	assert.Contains(t, out, `"commit": "abc123"`)
	assert.Contains(t, out, `"userAgent": "xmoney-go/1.0"`)
}
