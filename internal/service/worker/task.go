package worker

import (
	"context"

	"github.com/Ahmet872/Alarm-System/internal/schedule"
)

type ScanTask struct {
	processor *Processor
}

func NewScanTask(processor *Processor) schedule.Task {
	return &ScanTask{processor: processor}
}

func (t *ScanTask) Run(ctx context.Context) error {
	_, err := t.processor.Scan(ctx)
	return err
}

func (t *ScanTask) Name() string {
	return "alarm scan task"
}
