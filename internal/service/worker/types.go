package worker

import (
	"github.com/Ahmet872/Alarm-System/internal/entity"
)

// Outcome 单个报警在本轮扫描中的结果
type Outcome struct {
	AlarmId   int64
	Symbol    string
	Status    entity.AlarmStatus
	Triggered bool
	Skipped   bool
	Err       string
}

// CycleResult summarizes one scan cycle for the invoking process.
type CycleResult struct {
	Scanned   int
	Triggered int
	Pending   int
	Failed    int
	Skipped   int
	Outcomes  []Outcome
}
