package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/xmoney-go/pkg/xmoney"
)

// NewOrdersCommand creates the orders command group.
func NewOrdersCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "orders",
		Aliases: []string{"order"},
		Short:   "Manage orders",
		Long:    "List, create, rebill and cancel xMoney orders",
	}

	cmd.AddCommand(newOrdersListCommand())
	cmd.AddCommand(newOrdersRetrieveCommand())
	cmd.AddCommand(newOrdersCreateCommand())
	cmd.AddCommand(newOrdersRebillCommand())
	cmd.AddCommand(newOrdersCancelCommand())

	return cmd
}

func newOrdersListCommand() *cobra.Command {
	var (
		params xmoney.OrderListParams
		all    bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List orders",
		Long:  "List orders, optionally filtered by customer, type or status",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			ctx := context.Background()

			return runList(cmd, all,
				func() (*xmoney.ListResponse[xmoney.Order], error) {
					return client.Orders().List(ctx, &params)
				},
				func() *xmoney.Iterator[xmoney.Order] {
					return client.Orders().ListAutoPaging(ctx, &params)
				},
				[]string{"ID", "Customer", "External ID", "Type", "Status", "Amount", "Created"},
				orderRow,
			)
		},
	}

	addListFlags(cmd, &params.ListOptions, &all)
	cmd.Flags().Int64Var(&params.CustomerID, "customer-id", 0, "filter by customer id")
	cmd.Flags().StringVar(&params.ExternalOrderID, "external-order-id", "", "filter by external order id")
	cmd.Flags().StringVar(&params.OrderType, "type", "", "filter by order type (purchase, recurring, managed, credit)")
	cmd.Flags().StringVar(&params.OrderStatus, "status", "", "filter by order status")
	cmd.Flags().StringVar(&params.CreatedAtFrom, "created-from", "", "created at or after (YYYY-MM-DD)")
	cmd.Flags().StringVar(&params.CreatedAtTo, "created-to", "", "created at or before (YYYY-MM-DD)")

	return cmd
}

func newOrdersRetrieveCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "retrieve ORDER_ID",
		Aliases: []string{"get"},
		Short:   "Retrieve an order",
		Long:    "Display detailed information about a specific order",
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

			order, err := client.Orders().Retrieve(context.Background(), id)
			if err != nil {
				return err
			}

			return renderOrder(cmd, order)
		},
	}
}

func newOrdersCreateCommand() *cobra.Command {
	var (
		request  xmoney.OrderCreateRequest
		saveCard bool
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an order",
		Long:  "Create an order for an existing customer, charging a stored card or a card id",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			request.OrderType = xmoney.OrderType(cmd.Flag("type").Value.String())
			if cmd.Flags().Changed("save-card") {
				request.SaveCard = &saveCard
			}

			order, err := client.Orders().Create(context.Background(), &request)
			if err != nil {
				return err
			}

			return renderOrder(cmd, order)
		},
	}

	cmd.Flags().Int64Var(&request.CustomerID, "customer-id", 0, "customer id")
	cmd.Flags().Float64Var(&request.Amount, "amount", 0, "order amount")
	cmd.Flags().StringVar(&request.Currency, "currency", "EUR", "ISO 4217 currency code")
	cmd.Flags().String("type", string(xmoney.OrderTypePurchase), "order type (purchase, recurring, managed, credit)")
	cmd.Flags().StringVar(&request.Description, "description", "", "order description")
	cmd.Flags().StringVar(&request.ExternalOrderID, "external-order-id", "", "merchant order reference")
	cmd.Flags().StringVar(&request.IP, "ip", "", "customer IP address")
	cmd.Flags().Int64Var(&request.CardID, "card-id", 0, "stored card id to charge")
	cmd.Flags().StringVar(&request.TransactionMethod, "transaction-method", "", "transaction method (card, wallet)")
	cmd.Flags().StringVar(&request.IntervalType, "interval-type", "", "recurring interval type (day, month)")
	cmd.Flags().IntVar(&request.IntervalValue, "interval-value", 0, "recurring interval value")
	cmd.Flags().StringVar(&request.BackURL, "back-url", "", "URL the customer returns to")
	cmd.Flags().BoolVar(&saveCard, "save-card", false, "store the card for later charges")

	_ = cmd.MarkFlagRequired("customer-id")
	_ = cmd.MarkFlagRequired("amount")

	return cmd
}

func newOrdersRebillCommand() *cobra.Command {
	var request xmoney.OrderRebillRequest

	cmd := &cobra.Command{
		Use:   "rebill ORDER_ID",
		Short: "Rebill a recurring order",
		Long:  "Charge a recurring order again for the given amount",
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

			order, err := client.Orders().Rebill(context.Background(), id, &request)
			if err != nil {
				return err
			}

			return renderOrder(cmd, order)
		},
	}

	cmd.Flags().Int64Var(&request.CustomerID, "customer-id", 0, "customer id")
	cmd.Flags().Float64Var(&request.Amount, "amount", 0, "amount to charge")
	cmd.Flags().StringVar(&request.TransactionOption, "transaction-option", "", "transaction option JSON")

	_ = cmd.MarkFlagRequired("customer-id")
	_ = cmd.MarkFlagRequired("amount")

	return cmd
}

func newOrdersCancelCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "cancel ORDER_ID",
		Short: "Cancel an order",
		Long:  "Cancel a recurring or managed order",
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

			err = client.Orders().Cancel(context.Background(), id)
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Successfully canceled order %d\n", id)

			return nil
		},
	}
}

func orderRow(order xmoney.Order) []string {
	return []string{
		formatInt(order.ID),
		formatInt(order.CustomerID),
		orNotAvailable(order.ExternalOrderID),
		string(order.OrderType),
		orNotAvailable(order.OrderStatus),
		formatAmount(order.Amount, order.Currency),
		orNotAvailable(order.Created),
	}
}

func renderOrder(cmd *cobra.Command, order *xmoney.Order) error {
	return render(cmd.OutOrStdout(), order, propertyTable([][]string{
		{"ID", formatInt(order.ID)},
		{"Site ID", formatInt(order.SiteID)},
		{"Customer ID", formatInt(order.CustomerID)},
		{"External Order ID", orNotAvailable(order.ExternalOrderID)},
		{"Type", string(order.OrderType)},
		{"Status", orNotAvailable(order.OrderStatus)},
		{"Amount", formatAmount(order.Amount, order.Currency)},
		{"Description", orNotAvailable(order.Description)},
		{"Interval", orNotAvailable(intervalString(order.IntervalType, order.IntervalValue))},
		{"Next Due", orNotAvailable(order.NextDueDate)},
		{"Created", orNotAvailable(order.Created)},
	}))
}

func intervalString(intervalType string, value int) string {
	if intervalType == "" {
		return ""
	}

	return fmt.Sprintf("every %d %s", value, intervalType)
}
