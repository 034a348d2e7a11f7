// Package delivery defines the contract implemented by every transport-facing
// server in the application.
package delivery

import "context"

// Delivery is a long-running server started by main and stopped through the
// fx lifecycle.
type Delivery interface {
	Serve(ctx context.Context) error
}
