// Package delivery defines the contract every transport (HTTP, workers)
// fulfils so they can be started uniformly from main.
package delivery

import "context"

// Delivery is a long-running transport. Serve blocks until the transport
// stops or fails; shutdown is driven through the fx lifecycle.
type Delivery interface {
	Serve(ctx context.Context) error
}
