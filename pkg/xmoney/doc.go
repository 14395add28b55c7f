// Package xmoney provides types, interfaces, and helpers for working with the
// xMoney payment API.
//
// # Overview
//
// The xmoney package defines the domain types (Order, Transaction, Customer,
// Card, WebhookEvent), the response envelope and pagination model, the error
// taxonomy, and the interfaces for resource-oriented clients (OrdersClient,
// TransactionsClient, ...). A concrete implementation is provided by the
// xmoneyclient package, which wires key classification, transport, and
// resource clients. Most consumers should import xmoneyclient to construct a
// client and then interact with the resource client interfaces exposed here.
//
// Getting a client
//
//	import (
//	  "context"
//	  "log"
//
//	  "github.com/fivetwenty-io/xmoney-go/pkg/xmoney"
//	  "github.com/fivetwenty-io/xmoney-go/pkg/xmoneyclient"
//	)
//
//	func example() {
//	  ctx := context.Background()
//	  cli, err := xmoneyclient.New(&xmoney.Config{SecretKey: "sk_test_..."})
//	  if err != nil { log.Fatal(err) }
//
//	  order, err := cli.Orders().Retrieve(ctx, 42)
//	  if err != nil { log.Fatal(err) }
//	  _ = order
//	}
//
// # Secret keys
//
// A secret key has the form sk_test_<token> or sk_live_<token>. ParseSecretKey
// classifies it: the environment selects the API and secure checkout base URLs
// and the token is sent as the bearer credential. Construction fails with a
// KindConfiguration error before any transport is built when the key is
// malformed.
//
// # Pagination
//
// List endpoints return a page of items plus a Pagination block. The
// Iterator type walks the pages lazily, one request per page:
//
//	it := cli.Orders().ListAutoPaging(ctx, &xmoney.OrderListParams{ListOptions: xmoney.ListOptions{PerPage: 50}})
//	for order, err := range it.Seq() {
//	  if err != nil { break }
//	  _ = order
//	}
//
// An Iterator is single-pass and must not be shared between goroutines.
//
// # Errors
//
// Every failure surfaced by the client is an *Error carrying an ErrorKind.
// Helpers such as IsInvalidRequest and IsAuthentication branch on the kind and
// see through fmt.Errorf wrapping.
package xmoney
