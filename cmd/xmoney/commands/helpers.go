package commands

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"

	"github.com/fivetwenty-io/xmoney-go/internal/constants"
	"github.com/fivetwenty-io/xmoney-go/internal/logging"
	"github.com/fivetwenty-io/xmoney-go/pkg/xmoney"
	"github.com/fivetwenty-io/xmoney-go/pkg/xmoneyclient"
)

// Common string constants used throughout the commands package.
const (
	NotAvailable = "N/A"
	Yes          = "yes"
	No           = "no"
)

// Common static errors used throughout the commands package.
var (
	ErrInvalidID        = errors.New("invalid id")
	ErrNothingToUpdate  = errors.New("no fields to update, pass at least one flag")
	ErrNoWebhookPayload = errors.New("no webhook payload given")
)

// CreateClient builds an API client from the merged flag, environment and
// file configuration.
func CreateClient() (xmoney.Client, error) {
	secretKey := viper.GetString("secret-key")
	if secretKey == "" {
		return nil, xmoney.WrapError(xmoney.KindConfiguration, constants.ErrSecretKeyNotConfigured.Error(), constants.ErrSecretKeyNotConfigured)
	}

	config := &xmoney.Config{
		SecretKey:          secretKey,
		BaseURL:            viper.GetString("base-url"),
		Timeout:            viper.GetDuration("timeout"),
		WebhookKeyMaterial: xmoney.KeyMaterial(viper.GetString("webhook-key-material")),
	}

	if viper.GetBool("verbose") {
		config.Logger = logging.NewStderr("debug")
		config.Debug = true
	}

	return xmoneyclient.New(config)
}

// newLogger returns the CLI logger honoring --log-level and --verbose.
func newLogger() *logging.Logger {
	level := viper.GetString("log-level")
	if viper.GetBool("verbose") {
		level = "debug"
	}

	return logging.NewStderr(level)
}

// parseID parses a positional resource id.
func parseID(value string) (int64, error) {
	id, err := strconv.ParseInt(value, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidID, value)
	}

	return id, nil
}

// outputFormat returns the validated --output value.
func outputFormat() (string, error) {
	format := viper.GetString("output")
	switch format {
	case "":
		return constants.FormatJSON, nil
	case constants.FormatJSON, constants.FormatYAML, constants.FormatTable:
		return format, nil
	default:
		return "", fmt.Errorf("%w: %q", constants.ErrInvalidOutputFormat, format)
	}
}

// render writes data as JSON or YAML, or calls table for table output.
func render(out io.Writer, data interface{}, table func(*tablewriter.Table) error) error {
	format, err := outputFormat()
	if err != nil {
		return err
	}

	switch format {
	case constants.FormatJSON:
		return writeJSON(out, data)
	case constants.FormatYAML:
		encoder := yaml.NewEncoder(out)

		err := encoder.Encode(data)
		if err != nil {
			return fmt.Errorf("failed to encode YAML: %w", err)
		}

		return encoder.Close()
	default:
		t := tablewriter.NewWriter(out)

		err := table(t)
		if err != nil {
			return err
		}

		err = t.Render()
		if err != nil {
			return fmt.Errorf("failed to render table: %w", err)
		}

		return nil
	}
}

// propertyTable renders label/value pairs as a two column table.
func propertyTable(rows [][]string) func(*tablewriter.Table) error {
	return func(table *tablewriter.Table) error {
		table.Header("Property", "Value")

		for _, row := range rows {
			err := table.Append(row)
			if err != nil {
				return fmt.Errorf("failed to append table row: %w", err)
			}
		}

		return nil
	}
}

// writeJSON pretty-prints data, colored when out is a terminal.
func writeJSON(out io.Writer, data interface{}) error {
	encoded, err := json.MarshalIndent(data, "", constants.JSONIndent)
	if err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}

	if useColor(out) {
		_, err = color.New(color.FgCyan).Fprintln(out, string(encoded))
	} else {
		_, err = fmt.Fprintln(out, string(encoded))
	}

	return err
}

func useColor(out io.Writer) bool {
	if viper.GetBool("no-color") {
		return false
	}

	file, ok := out.(*os.File)

	return ok && term.IsTerminal(int(file.Fd()))
}

// errorOutput is the JSON shape of a failed command.
type errorOutput struct {
	Kind       xmoney.ErrorKind     `json:"kind"`
	Message    string               `json:"message"`
	StatusCode int                  `json:"statusCode,omitempty"`
	Details    []xmoney.ErrorDetail `json:"details,omitempty"`
	Context    string               `json:"context,omitempty"`
}

// FormatError converts err to its JSON output form. Errors that are not an
// *xmoney.Error are reported with an empty kind.
func FormatError(err error) ([]byte, error) {
	output := errorOutput{Message: err.Error()}

	var xErr *xmoney.Error
	if errors.As(err, &xErr) {
		output.Kind = xErr.Kind
		output.Message = xErr.Message
		output.StatusCode = xErr.StatusCode
		output.Details = xErr.Details

		if wrapped := err.Error(); wrapped != xErr.Error() {
			output.Context = wrapped
		}
	}

	return json.MarshalIndent(output, "", constants.JSONIndent)
}

// PrintError writes err as JSON to out, in red on a terminal.
func PrintError(out io.Writer, err error) {
	encoded, fmtErr := FormatError(err)
	if fmtErr != nil {
		_, _ = fmt.Fprintln(out, err)

		return
	}

	if useColor(out) {
		_, _ = color.New(color.FgRed).Fprintln(out, string(encoded))

		return
	}

	_, _ = fmt.Fprintln(out, string(encoded))
}

// addListFlags registers the paging flags shared by list commands.
func addListFlags(cmd *cobra.Command, options *xmoney.ListOptions, all *bool) {
	cmd.Flags().IntVar(&options.Page, "page", 0, "page number")
	cmd.Flags().IntVar(&options.PerPage, "per-page", constants.DefaultPerPage, "items per page")
	cmd.Flags().BoolVar(&options.ReverseSorting, "reverse", false, "reverse the sort order")
	cmd.Flags().BoolVar(all, "all", false, "fetch all pages")
}

// listOutput is rendered for list commands.
type listOutput[T any] struct {
	Data       []T                `json:"data"                 yaml:"data"`
	Pagination *xmoney.Pagination `json:"pagination,omitempty" yaml:"pagination,omitempty"`
}

// runList fetches one page, or every page when all is set, and renders the
// items with columns/row for table output.
func runList[T any](
	cmd *cobra.Command,
	all bool,
	page func() (*xmoney.ListResponse[T], error),
	iterator func() *xmoney.Iterator[T],
	columns []string,
	row func(T) []string,
) error {
	var result listOutput[T]

	if all {
		items, err := iterator().All()
		if err != nil {
			return err
		}

		result.Data = items
	} else {
		resp, err := page()
		if err != nil {
			return err
		}

		result.Data = resp.Data
		result.Pagination = &resp.Pagination
	}

	if result.Data == nil {
		result.Data = []T{}
	}

	out := cmd.OutOrStdout()

	err := render(out, result, func(table *tablewriter.Table) error {
		headers := make([]any, len(columns))
		for i, column := range columns {
			headers[i] = column
		}

		table.Header(headers...)

		for _, item := range result.Data {
			err := table.Append(row(item))
			if err != nil {
				return fmt.Errorf("failed to append table row: %w", err)
			}
		}

		return nil
	})
	if err != nil {
		return err
	}

	format, _ := outputFormat()
	if format == constants.FormatTable && result.Pagination != nil {
		_, _ = fmt.Fprintf(out, "Page %d of %d (%d total). Use --all to fetch every page.\n",
			result.Pagination.CurrentPageNumber, result.Pagination.PageCount, result.Pagination.TotalItemCount)
	}

	return nil
}

func formatInt(value int64) string {
	if value == 0 {
		return NotAvailable
	}

	return strconv.FormatInt(value, 10)
}

func formatAmount(amount float64, currency string) string {
	return strconv.FormatFloat(amount, 'f', 2, 64) + " " + currency
}

func orNotAvailable(value string) string {
	if value == "" {
		return NotAvailable
	}

	return value
}

func yesNo(value bool) string {
	if value {
		return Yes
	}

	return No
}

// confirm prompts on stdout and reads a y/N answer from stdin.
func confirm(cmd *cobra.Command, prompt string) bool {
	_, _ = fmt.Fprint(cmd.OutOrStdout(), prompt)

	answer, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	answer = strings.TrimSpace(answer)

	return answer == "y" || answer == "Y"
}
