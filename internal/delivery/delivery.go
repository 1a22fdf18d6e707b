// Package delivery defines the contract every transport entry point obeys.
package delivery

import "context"

// Delivery is a long-running transport (HTTP server, worker loop) started by
// the application runner.
type Delivery interface {
	// Serve blocks until the delivery stops or fails.
	Serve(ctx context.Context) error
}
