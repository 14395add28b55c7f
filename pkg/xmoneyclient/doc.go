// Package xmoneyclient provides the primary entry point for constructing an
// xMoney API client that implements the xmoney.Client interface.
//
// It classifies the secret key, builds the HTTP transport and wires the
// resource clients defined in the xmoney package. Most applications should
// import xmoneyclient to build a client, then use the returned xmoney.Client
// to access resource-specific clients such as Orders(), Transactions() or
// Checkout().
//
// Quick start
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
//
//	  // Minimal: just a secret key. The environment follows the key prefix.
//	  cli, err := xmoneyclient.NewWithSecretKey("sk_test_...")
//	  if err != nil { log.Fatal(err) }
//
//	  // Or with a full configuration:
//	  cli, err = xmoneyclient.New(&xmoney.Config{
//	    SecretKey: "sk_live_...",
//	    Timeout:   5 * time.Second,
//	  })
//	  if err != nil { log.Fatal(err) }
//
//	  customers, err := cli.Customers().List(ctx, &xmoney.CustomerListParams{})
//	  if err != nil { log.Fatal(err) }
//	  _ = customers
//	}
//
// # Webhooks and hosted checkout
//
// Checkout() and Webhooks() never touch the network. The hosted checkout form
// is signed with the full secret key; webhook notifications are decrypted with
// the key selected by Config.WebhookKeyMaterial.
package xmoneyclient
