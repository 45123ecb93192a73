package interfaces

import "context"

// Pinger is anything whose reachability can be checked.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthChecker reports whether the service dependencies are reachable.
type HealthChecker interface {
	Check(ctx context.Context) error
}
