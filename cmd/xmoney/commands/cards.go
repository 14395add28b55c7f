package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/xmoney-go/pkg/xmoney"
)

// NewCardsCommand creates the cards command group.
func NewCardsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "cards",
		Aliases: []string{"card"},
		Short:   "Manage stored cards",
		Long:    "List, view and delete cards stored for a customer",
	}

	cmd.AddCommand(newCardsListCommand())
	cmd.AddCommand(newCardsRetrieveCommand())
	cmd.AddCommand(newCardsDeleteCommand())

	return cmd
}

func newCardsListCommand() *cobra.Command {
	var (
		params xmoney.CardListParams
		all    bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stored cards",
		Long:  "List the cards stored for a customer",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			ctx := context.Background()

			return runList(cmd, all,
				func() (*xmoney.ListResponse[xmoney.Card], error) {
					return client.Cards().List(ctx, &params)
				},
				func() *xmoney.Iterator[xmoney.Card] {
					return client.Cards().ListAutoPaging(ctx, &params)
				},
				[]string{"ID", "Customer", "Type", "Number", "Expiry", "Status", "Token"},
				cardRow,
			)
		},
	}

	addListFlags(cmd, &params.ListOptions, &all)
	cmd.Flags().Int64Var(&params.CustomerID, "customer-id", 0, "customer id")
	cmd.Flags().Int64Var(&params.OrderID, "order-id", 0, "filter by order id")
	cmd.Flags().StringVar(&params.HasToken, "has-token", "", "filter by token presence (yes, no)")
	cmd.Flags().StringVar(&params.CardStatus, "status", "", "filter by status (all, deleted)")

	_ = cmd.MarkFlagRequired("customer-id")

	return cmd
}

func newCardsRetrieveCommand() *cobra.Command {
	var customerID int64

	cmd := &cobra.Command{
		Use:     "retrieve CARD_ID",
		Aliases: []string{"get"},
		Short:   "Retrieve a stored card",
		Long:    "Display a stored card of a customer",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			client, err := CreateClient()
			if err != nil {
				return err
			}

			card, err := client.Cards().Retrieve(context.Background(), id, customerID)
			if err != nil {
				return err
			}

			rows := [][]string{
				{"ID", formatInt(card.ID)},
				{"Customer ID", formatInt(card.CustomerID)},
				{"Type", orNotAvailable(card.Type)},
				{"Number", orNotAvailable(card.CardNumber)},
				{"Expiry", expiry(card)},
				{"Name on Card", orNotAvailable(card.NameOnCard)},
				{"Status", orNotAvailable(card.CardStatus)},
				{"Token", yesNo(card.HasToken)},
			}

			if card.BinInfo != nil {
				rows = append(rows,
					[]string{"BIN", card.BinInfo.Bin},
					[]string{"Brand", orNotAvailable(card.BinInfo.Brand)},
					[]string{"Bank", orNotAvailable(card.BinInfo.Bank)},
					[]string{"Issuer Country", orNotAvailable(card.BinInfo.CountryCode)},
				)
			}

			return render(cmd.OutOrStdout(), card, propertyTable(rows))
		},
	}

	cmd.Flags().Int64Var(&customerID, "customer-id", 0, "customer id")
	_ = cmd.MarkFlagRequired("customer-id")

	return cmd
}

func newCardsDeleteCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "delete CARD_ID",
		Short: "Delete a stored card",
		Long:  "Delete a stored card",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			if !force && !confirm(cmd, fmt.Sprintf("Really delete card %d? (y/N): ", id)) {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Cancelled")

				return nil
			}

			client, err := CreateClient()
			if err != nil {
				return err
			}

			err = client.Cards().Delete(context.Background(), id)
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Successfully deleted card %d\n", id)

			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "skip confirmation")

	return cmd
}

func cardRow(card xmoney.Card) []string {
	return []string{
		formatInt(card.ID),
		formatInt(card.CustomerID),
		orNotAvailable(card.Type),
		orNotAvailable(card.CardNumber),
		expiry(&card),
		orNotAvailable(card.CardStatus),
		yesNo(card.HasToken),
	}
}

func expiry(card *xmoney.Card) string {
	if card.ExpiryMonth == "" || card.ExpiryYear == "" {
		return NotAvailable
	}

	return card.ExpiryMonth + "/" + card.ExpiryYear
}
