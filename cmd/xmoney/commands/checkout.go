package commands

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/xmoney-go/pkg/xmoney"
)

// NewCheckoutCommand creates the checkout command group.
func NewCheckoutCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "checkout",
		Short: "Build hosted checkout submissions",
		Long:  "Sign orders for the xMoney hosted checkout page without calling the API",
	}

	cmd.AddCommand(newCheckoutHostedCommand())

	return cmd
}

func newCheckoutHostedCommand() *cobra.Command {
	var (
		request     xmoney.OrderCreateRequest
		orderType   string
		saveCard    bool
		payloadOnly bool
	)

	cmd := &cobra.Command{
		Use:   "hosted",
		Short: "Print a hosted checkout form",
		Long: `Print the self-submitting HTML form that posts a signed order to the
secure checkout page of the secret key's environment. With --payload-only the
action URL, base64 jsonRequest and checksum are printed instead.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			request.OrderType = xmoney.OrderType(orderType)
			if request.ExternalOrderID == "" {
				request.ExternalOrderID = uuid.NewString()
			}

			if cmd.Flags().Changed("save-card") {
				request.SaveCard = &saveCard
			}

			if payloadOnly {
				payload, err := client.Checkout().CreateHostedPayload(&request)
				if err != nil {
					return err
				}

				return render(cmd.OutOrStdout(), payload, propertyTable([][]string{
					{"Action", payload.Action},
					{"JSON Request", payload.JSONRequest},
					{"Checksum", payload.Checksum},
				}))
			}

			form, err := client.Checkout().CreateHosted(&request)
			if err != nil {
				return err
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), form)

			return err
		},
	}

	cmd.Flags().Int64Var(&request.CustomerID, "customer-id", 0, "customer id")
	cmd.Flags().Float64Var(&request.Amount, "amount", 0, "order amount")
	cmd.Flags().StringVar(&request.Currency, "currency", "EUR", "ISO 4217 currency code")
	cmd.Flags().StringVar(&orderType, "type", string(xmoney.OrderTypePurchase), "order type (purchase, recurring, managed, credit)")
	cmd.Flags().StringVar(&request.Description, "description", "", "order description")
	cmd.Flags().StringVar(&request.ExternalOrderID, "external-order-id", "", "merchant order reference (default a random UUID)")
	cmd.Flags().StringVar(&request.BackURL, "back-url", "", "URL the customer returns to")
	cmd.Flags().StringVar(&request.IP, "ip", "", "customer IP address")
	cmd.Flags().StringVar(&request.InvoiceEmail, "invoice-email", "", "email receiving the invoice")
	cmd.Flags().BoolVar(&saveCard, "save-card", false, "store the card for later charges")
	cmd.Flags().BoolVar(&payloadOnly, "payload-only", false, "print the signed payload instead of the HTML form")

	_ = cmd.MarkFlagRequired("customer-id")
	_ = cmd.MarkFlagRequired("amount")

	return cmd
}
