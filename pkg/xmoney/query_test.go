package xmoney_test

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fivetwenty-io/xmoney-go/pkg/xmoney"
)

func TestListParams_ToValues(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		params   xmoney.QueryEncoder
		expected url.Values
	}{
		{
			name:     "nil order params",
			params:   (*xmoney.OrderListParams)(nil),
			expected: url.Values{},
		},
		{
			name:     "zero values are skipped",
			params:   &xmoney.CustomerListParams{},
			expected: url.Values{},
		},
		{
			name: "order params",
			params: &xmoney.OrderListParams{
				ListOptions: xmoney.ListOptions{Page: 2, PerPage: 25, ReverseSorting: true},
				CustomerID:  9,
				OrderType:   "purchase",
			},
			expected: url.Values{
				"page":           {"2"},
				"perPage":        {"25"},
				"reverseSorting": {"true"},
				"customerId":     {"9"},
				"orderType":      {"purchase"},
			},
		},
		{
			name: "slice filters repeat with brackets",
			params: &xmoney.TransactionListParams{
				TransactionStatus: []string{"complete-ok", "refund-ok"},
				Source:            []string{"api"},
				AmountTo:          99.95,
			},
			expected: url.Values{
				"transactionStatus[]": {"complete-ok", "refund-ok"},
				"source[]":            {"api"},
				"amountTo":            {"99.95"},
			},
		},
		{
			name:   "card params",
			params: &xmoney.CardListParams{CustomerID: 4, HasToken: "yes"},
			expected: url.Values{
				"customerId": {"4"},
				"hasToken":   {"yes"},
			},
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, testCase.expected, testCase.params.ToValues())
		})
	}
}

func TestTransactionListParams_Encode(t *testing.T) {
	t.Parallel()

	params := &xmoney.TransactionListParams{TransactionStatus: []string{"complete-ok", "refund-ok"}}

	assert.Equal(t,
		"transactionStatus%5B%5D=complete-ok&transactionStatus%5B%5D=refund-ok",
		params.ToValues().Encode(),
	)
}
