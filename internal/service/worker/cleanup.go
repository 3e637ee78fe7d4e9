package worker

import (
	"context"
	"log/slog"
	"time"

	"github.com/Ahmet872/Alarm-System/internal/entity"
	"github.com/Ahmet872/Alarm-System/internal/repo"
	"github.com/Ahmet872/Alarm-System/internal/schedule"
)

const DefaultCleanupAge = 30 * 24 * time.Hour

// CleanupTask purges stale triggered/failed alarms left behind for
// operator inspection.
type CleanupTask struct {
	repo repo.AlarmRepo
	age  time.Duration
}

func NewCleanupTask(alarmRepo repo.AlarmRepo, age time.Duration) schedule.Task {
	if age <= 0 {
		age = DefaultCleanupAge
	}
	return &CleanupTask{
		repo: alarmRepo,
		age:  age,
	}
}

func (t *CleanupTask) Run(ctx context.Context) error {
	removed, err := t.repo.CleanupOld(ctx, time.Now().Add(-t.age),
		[]entity.AlarmStatus{entity.AlarmStatusTriggered, entity.AlarmStatusFailed})
	if err != nil {
		return err
	}
	if removed > 0 {
		slog.Info("cleaned up old alarms", "removed", removed)
	}
	return nil
}

func (t *CleanupTask) Name() string {
	return "alarm cleanup task"
}
