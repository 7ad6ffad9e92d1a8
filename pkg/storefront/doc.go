// Package storefront provides types, interfaces, and hooks for reading and
// mutating resources of a multi-brand storefront and booking backend.
//
// # Overview
//
// The package defines the domain types (Product, Brand, Category, Service,
// Course, Booking) and the interfaces for resource-oriented clients. A
// concrete implementation is provided by the sfclient package, which wires
// configuration, transport, and the session store. Most consumers import
// sfclient to construct a client and then use either the typed resource
// clients or the generic hooks below.
//
// Getting a client
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
//	  cli, err := sfclient.New(ctx, &storefront.Config{APIEndpoint: "https://api.example.com/v1"})
//	  if err != nil { log.Fatal(err) }
//
//	  products, err := cli.Products().List(ctx, storefront.NewQueryParams().WithLimit(50))
//	  if err != nil { log.Fatal(err) }
//	  _ = products
//	}
//
// # Hooks
//
// Fetcher issues a GET on construction and again whenever its path, query,
// auth flag or session token changes. Its state is observable through State
// and Subscribe:
//
//	products, err := storefront.NewFetcher[storefront.ProductList](ctx, cli.Transport(), "/products")
//	if err != nil { return err }
//	defer products.Close()
//
//	cancel := products.Subscribe(func(s storefront.FetchState[storefront.ProductList]) {
//	  if s.Loading { return }
//	  log.Printf("%d products, err=%v", len(s.Data.Products), s.Err)
//	})
//	defer cancel()
//
// Creator, Updater and Deleter issue POST, PATCH and DELETE requests on
// Execute. They never retry and never update fetchers optimistically; pass
// WithInvalidates to refetch dependants after success.
//
// # Errors
//
// Every failure surfaced by a hook or client is an *Error tagged with a Kind
// (network, http, decode, canceled, invalid). Helpers such as IsNotFound,
// IsUnauthorized and StatusCode branch on common cases.
//
// # Interceptors and caching
//
// Request and response interceptors (logging, headers, metrics) run around
// every transport call. A pluggable Cache with memory, NATS key-value and
// no-op backends can be enabled for unauthenticated GETs; it is off by
// default.
package storefront
