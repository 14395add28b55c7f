package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/xmoney-go/pkg/xmoney"
)

// NewTransactionsCommand creates the transactions command group.
func NewTransactionsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "transactions",
		Aliases: []string{"transaction", "tx"},
		Short:   "Manage transactions",
		Long:    "List, capture and refund xMoney transactions",
	}

	cmd.AddCommand(newTransactionsListCommand())
	cmd.AddCommand(newTransactionsRetrieveCommand())
	cmd.AddCommand(newTransactionsCaptureCommand())
	cmd.AddCommand(newTransactionsRefundCommand())

	return cmd
}

func newTransactionsListCommand() *cobra.Command {
	var (
		params xmoney.TransactionListParams
		all    bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List transactions",
		Long:  "List transactions, optionally filtered by order, customer or status",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			ctx := context.Background()

			return runList(cmd, all,
				func() (*xmoney.ListResponse[xmoney.Transaction], error) {
					return client.Transactions().List(ctx, &params)
				},
				func() *xmoney.Iterator[xmoney.Transaction] {
					return client.Transactions().ListAutoPaging(ctx, &params)
				},
				[]string{"ID", "Order", "Customer", "Type", "Status", "Amount", "Created"},
				transactionRow,
			)
		},
	}

	addListFlags(cmd, &params.ListOptions, &all)
	cmd.Flags().Int64Var(&params.OrderID, "order-id", 0, "filter by order id")
	cmd.Flags().Int64Var(&params.CustomerID, "customer-id", 0, "filter by customer id")
	cmd.Flags().StringVar(&params.Email, "email", "", "filter by customer email")
	cmd.Flags().StringVar(&params.TransactionMethod, "method", "", "filter by method (card, wallet, transfer)")
	cmd.Flags().StringVar(&params.Currency, "currency", "", "filter by currency")
	cmd.Flags().StringSliceVar(&params.TransactionStatus, "status", nil, "filter by status (repeatable)")
	cmd.Flags().StringVar(&params.CreatedAtFrom, "created-from", "", "created at or after (YYYY-MM-DD)")
	cmd.Flags().StringVar(&params.CreatedAtTo, "created-to", "", "created at or before (YYYY-MM-DD)")

	return cmd
}

func newTransactionsRetrieveCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "retrieve TRANSACTION_ID",
		Aliases: []string{"get"},
		Short:   "Retrieve a transaction",
		Long:    "Display detailed information about a specific transaction",
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

			transaction, err := client.Transactions().Retrieve(context.Background(), id)
			if err != nil {
				return err
			}

			return render(cmd.OutOrStdout(), transaction, propertyTable([][]string{
				{"ID", formatInt(transaction.ID)},
				{"Order ID", formatInt(transaction.OrderID)},
				{"Customer ID", formatInt(transaction.CustomerID)},
				{"Card ID", formatInt(transaction.CardID)},
				{"Type", orNotAvailable(transaction.TransactionType)},
				{"Method", orNotAvailable(transaction.TransactionMethod)},
				{"Status", orNotAvailable(transaction.TransactionStatus)},
				{"Amount", formatAmount(transaction.Amount, transaction.Currency)},
				{"Description", orNotAvailable(transaction.Description)},
				{"Created", orNotAvailable(transaction.CreatedAt)},
			}))
		},
	}
}

func newTransactionsCaptureCommand() *cobra.Command {
	var request xmoney.TransactionCaptureRequest

	cmd := &cobra.Command{
		Use:   "capture TRANSACTION_ID",
		Short: "Capture an authorized transaction",
		Long:  "Capture all or part of a previously authorized transaction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			client, err := CreateClient()
			if err != nil {
				return err
			}

			err = client.Transactions().Capture(context.Background(), id, &request)
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Successfully captured %.2f on transaction %d\n", request.Amount, id)

			return nil
		},
	}

	cmd.Flags().Float64Var(&request.Amount, "amount", 0, "amount to capture")
	_ = cmd.MarkFlagRequired("amount")

	return cmd
}

func newTransactionsRefundCommand() *cobra.Command {
	var (
		request xmoney.TransactionRefundRequest
		reason  string
	)

	cmd := &cobra.Command{
		Use:   "refund TRANSACTION_ID",
		Short: "Refund a transaction",
		Long:  "Refund a transaction in full, or partially with --amount",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			client, err := CreateClient()
			if err != nil {
				return err
			}

			request.Reason = xmoney.RefundReason(reason)

			err = client.Transactions().Refund(context.Background(), id, &request)
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Successfully refunded transaction %d\n", id)

			return nil
		},
	}

	cmd.Flags().StringVar(&reason, "reason", "", "refund reason (fraud-confirm, highly-suspicious, duplicated-transaction, customer-demand, test-transaction, card-expired)")
	cmd.Flags().StringVar(&request.Message, "message", "", "refund message")
	cmd.Flags().Float64Var(&request.Amount, "amount", 0, "partial refund amount")

	return cmd
}

func transactionRow(transaction xmoney.Transaction) []string {
	return []string{
		formatInt(transaction.ID),
		formatInt(transaction.OrderID),
		formatInt(transaction.CustomerID),
		orNotAvailable(transaction.TransactionType),
		orNotAvailable(transaction.TransactionStatus),
		formatAmount(transaction.Amount, transaction.Currency),
		orNotAvailable(transaction.CreatedAt),
	}
}
