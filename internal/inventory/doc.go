// Package inventory turns raw AWS API output into the normalized records of
// package model.
//
// Every fetcher is read-only and performs no filtering beyond the native name
// selection of the load balancer APIs. Any API failure is returned wrapped in
// ErrUpstreamUnavailable; nothing is retried.
package inventory
