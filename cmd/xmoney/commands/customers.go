package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/xmoney-go/pkg/xmoney"
)

// NewCustomersCommand creates the customers command group.
func NewCustomersCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "customers",
		Aliases: []string{"customer"},
		Short:   "Manage customers",
		Long:    "List, create, update and delete xMoney customers",
	}

	cmd.AddCommand(newCustomersListCommand())
	cmd.AddCommand(newCustomersRetrieveCommand())
	cmd.AddCommand(newCustomersCreateCommand())
	cmd.AddCommand(newCustomersUpdateCommand())
	cmd.AddCommand(newCustomersDeleteCommand())

	return cmd
}

func newCustomersListCommand() *cobra.Command {
	var (
		params xmoney.CustomerListParams
		all    bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List customers",
		Long:  "List customers, optionally filtered by identifier, email or country",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			ctx := context.Background()

			return runList(cmd, all,
				func() (*xmoney.ListResponse[xmoney.Customer], error) {
					return client.Customers().List(ctx, &params)
				},
				func() *xmoney.Iterator[xmoney.Customer] {
					return client.Customers().ListAutoPaging(ctx, &params)
				},
				[]string{"ID", "Identifier", "Email", "Name", "Country", "Created"},
				customerRow,
			)
		},
	}

	addListFlags(cmd, &params.ListOptions, &all)
	cmd.Flags().StringVar(&params.Identifier, "identifier", "", "filter by merchant identifier")
	cmd.Flags().StringVar(&params.Email, "email", "", "filter by email")
	cmd.Flags().StringVar(&params.Country, "country", "", "filter by country code")
	cmd.Flags().StringVar(&params.CreatedAtFrom, "created-from", "", "created at or after (YYYY-MM-DD)")
	cmd.Flags().StringVar(&params.CreatedAtTo, "created-to", "", "created at or before (YYYY-MM-DD)")

	return cmd
}

func newCustomersRetrieveCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "retrieve CUSTOMER_ID",
		Aliases: []string{"get"},
		Short:   "Retrieve a customer",
		Long:    "Display detailed information about a specific customer",
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

			customer, err := client.Customers().Retrieve(context.Background(), id)
			if err != nil {
				return err
			}

			return renderCustomer(cmd, customer)
		},
	}
}

func newCustomersCreateCommand() *cobra.Command {
	var request xmoney.CustomerCreateRequest

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a customer",
		Long:  "Create a customer identified by a merchant-side identifier",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			customer, err := client.Customers().Create(context.Background(), &request)
			if err != nil {
				return err
			}

			return renderCustomer(cmd, customer)
		},
	}

	cmd.Flags().StringVar(&request.Identifier, "identifier", "", "merchant-side customer identifier")
	cmd.Flags().StringVar(&request.Email, "email", "", "customer email")
	cmd.Flags().StringVar(&request.FirstName, "first-name", "", "first name")
	cmd.Flags().StringVar(&request.LastName, "last-name", "", "last name")
	cmd.Flags().StringVar(&request.Country, "country", "", "ISO 3166-1 alpha-2 country code")
	cmd.Flags().StringVar(&request.State, "state", "", "state")
	cmd.Flags().StringVar(&request.City, "city", "", "city")
	cmd.Flags().StringVar(&request.ZipCode, "zip-code", "", "postal code")
	cmd.Flags().StringVar(&request.Address, "address", "", "street address")
	cmd.Flags().StringVar(&request.Phone, "phone", "", "phone number")

	_ = cmd.MarkFlagRequired("identifier")
	_ = cmd.MarkFlagRequired("email")

	return cmd
}

func newCustomersUpdateCommand() *cobra.Command {
	var request xmoney.CustomerUpdateRequest

	cmd := &cobra.Command{
		Use:   "update CUSTOMER_ID",
		Short: "Update a customer",
		Long:  "Update the fields given as flags on an existing customer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			if cmd.Flags().NFlag() == 0 {
				return ErrNothingToUpdate
			}

			client, err := CreateClient()
			if err != nil {
				return err
			}

			customer, err := client.Customers().Update(context.Background(), id, &request)
			if err != nil {
				return err
			}

			return renderCustomer(cmd, customer)
		},
	}

	cmd.Flags().StringVar(&request.Identifier, "identifier", "", "merchant-side customer identifier")
	cmd.Flags().StringVar(&request.Email, "email", "", "customer email")
	cmd.Flags().StringVar(&request.FirstName, "first-name", "", "first name")
	cmd.Flags().StringVar(&request.LastName, "last-name", "", "last name")
	cmd.Flags().StringVar(&request.Country, "country", "", "ISO 3166-1 alpha-2 country code")
	cmd.Flags().StringVar(&request.State, "state", "", "state")
	cmd.Flags().StringVar(&request.City, "city", "", "city")
	cmd.Flags().StringVar(&request.ZipCode, "zip-code", "", "postal code")
	cmd.Flags().StringVar(&request.Address, "address", "", "street address")
	cmd.Flags().StringVar(&request.Phone, "phone", "", "phone number")

	return cmd
}

func newCustomersDeleteCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "delete CUSTOMER_ID",
		Short: "Delete a customer",
		Long:  "Delete a customer and its stored cards",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			if !force && !confirm(cmd, fmt.Sprintf("Really delete customer %d? (y/N): ", id)) {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Cancelled")

				return nil
			}

			client, err := CreateClient()
			if err != nil {
				return err
			}

			err = client.Customers().Delete(context.Background(), id)
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Successfully deleted customer %d\n", id)

			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "skip confirmation")

	return cmd
}

func customerRow(customer xmoney.Customer) []string {
	return []string{
		formatInt(customer.ID),
		customer.Identifier,
		customer.Email,
		orNotAvailable(fullName(customer.FirstName, customer.LastName)),
		orNotAvailable(customer.Country),
		orNotAvailable(customer.CreatedAt),
	}
}

func renderCustomer(cmd *cobra.Command, customer *xmoney.Customer) error {
	return render(cmd.OutOrStdout(), customer, propertyTable([][]string{
		{"ID", formatInt(customer.ID)},
		{"Identifier", customer.Identifier},
		{"Email", customer.Email},
		{"Name", orNotAvailable(fullName(customer.FirstName, customer.LastName))},
		{"Country", orNotAvailable(customer.Country)},
		{"City", orNotAvailable(customer.City)},
		{"Address", orNotAvailable(customer.Address)},
		{"Phone", orNotAvailable(customer.Phone)},
		{"Created", orNotAvailable(customer.CreatedAt)},
	}))
}

func fullName(first, last string) string {
	switch {
	case first == "":
		return last
	case last == "":
		return first
	default:
		return first + " " + last
	}
}
