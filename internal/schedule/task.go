package schedule

import "context"

// Task is a unit of repeatable work driven by a Runner or invoked once.
type Task interface {
	Run(ctx context.Context) error
	Name() string
}
