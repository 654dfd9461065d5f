package ports

import "context"

// HealthChecker reports the health of one dependency.
type HealthChecker interface {
	Name() string
	Healthy(ctx context.Context) error
}
