package schedule

import (
	"context"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron"
)

// Runner executes tasks on a fixed interval. SingletonMode keeps one
// run of a task at a time, so a slow cycle delays the next instead of
// overlapping it.
type Runner struct {
	scheduler *gocron.Scheduler
}

func NewRunner() *Runner {
	return &Runner{
		scheduler: gocron.NewScheduler(time.UTC),
	}
}

func (r *Runner) Every(interval time.Duration, task Task) error {
	_, err := r.scheduler.Every(interval).SingletonMode().Do(func() {
		if err := task.Run(context.Background()); err != nil {
			slog.Error("scheduled task failed", "task", task.Name(), "error", err)
		}
	})
	return err
}

func (r *Runner) Start() {
	r.scheduler.StartAsync()
}

// StartBlocking runs the scheduler on the calling goroutine.
func (r *Runner) StartBlocking() {
	r.scheduler.StartBlocking()
}

func (r *Runner) Stop() {
	r.scheduler.Stop()
}
