// Package sfclient provides the primary entry point for constructing a
// storefront backend client that implements the storefront.Client interface.
//
// It layers configuration, HTTP transport and session handling on top of the
// resource interfaces and generic hooks defined in the storefront package.
// Most applications import sfclient to build a client, then either use the
// typed resource clients or feed Transport() and Session() to the hooks.
//
// Quick start
//
//	import (
//	  "context"
//	  "log"
//
//	  "github.com/fivetwenty-io/storefront/pkg/sfclient"
//	  "github.com/fivetwenty-io/storefront/pkg/storefront"
//	)
//
//	func example() {
//	  ctx := context.Background()
//
//	  // Minimal: just an API endpoint, enough for the public catalog.
//	  cli, err := sfclient.NewWithEndpoint(ctx, "https://api.example.com")
//	  if err != nil { log.Fatal(err) }
//
//	  // Or log in with email and password; the token lands in Session().
//	  cli, err = sfclient.NewWithPassword(ctx, "https://api.example.com", "ada@example.com", "secret")
//	  if err != nil { log.Fatal(err) }
//
//	  products, err := cli.Products().List(ctx, storefront.NewQueryParams().WithLimit(10))
//	  if err != nil { log.Fatal(err) }
//	  _ = products
//	}
//
// # Helpers
//
// NewWithEndpoint, NewWithToken and NewWithPassword cover the common
// construction paths; New accepts a full storefront.Config.
package sfclient
