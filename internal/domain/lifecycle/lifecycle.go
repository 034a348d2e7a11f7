// Package lifecycle holds shared constants for application start/stop hooks.
package lifecycle

import "time"

// DefaultTimeout bounds startup probes and graceful-shutdown waits.
const DefaultTimeout = 10 * time.Second
