package worker

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/Ahmet872/Alarm-System/internal/entity"
	"github.com/Ahmet872/Alarm-System/internal/repo"
	"github.com/Ahmet872/Alarm-System/internal/service/evaluator"
	"github.com/Ahmet872/Alarm-System/internal/service/marketdata"
	"github.com/Ahmet872/Alarm-System/internal/service/notification"
	"github.com/samber/lo"
)

const (
	DefaultConcurrency = 8
	maxErrorLen        = 500 // last_error column width
)

// Processor drives pending alarms through one scan cycle:
// claim -> fetch -> evaluate -> notify -> transition.
//
// Transitions are idempotent compare-and-set writes, so overlapping cycles
// are tolerated: whoever claims the row does the work, everyone else skips.
// Delivery is at-most-once per alarm: a notified alarm is deleted, and if
// the delete itself fails the row is parked as failed rather than left
// where a later cycle could email again.
type Processor struct {
	repo   repo.AlarmRepo
	source marketdata.Source
	eval   *evaluator.Evaluator
	mailer notification.EmailService

	concurrency  int
	cycleTimeout time.Duration
	retryFailed  bool
}

type Option func(p *Processor)

// WithConcurrency bounds the fan-out within a cycle.
func WithConcurrency(n int) Option {
	return func(p *Processor) {
		if n > 0 {
			p.concurrency = n
		}
	}
}

// WithCycleTimeout bounds the total duration of one scan cycle.
func WithCycleTimeout(d time.Duration) Option {
	return func(p *Processor) {
		p.cycleTimeout = d
	}
}

// WithRetryFailed re-claims failed alarms on each scan instead of leaving
// them for operator inspection.
func WithRetryFailed(retry bool) Option {
	return func(p *Processor) {
		p.retryFailed = retry
	}
}

func NewProcessor(alarmRepo repo.AlarmRepo, source marketdata.Source, eval *evaluator.Evaluator,
	mailer notification.EmailService, opts ...Option) *Processor {
	p := &Processor{
		repo:        alarmRepo,
		source:      source,
		eval:        eval,
		mailer:      mailer,
		concurrency: DefaultConcurrency,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Scan runs one cycle over a snapshot of pending alarms. Alarms created
// mid-cycle wait for the next scan. One alarm's failure never aborts the
// batch; the returned error only covers not being able to list alarms.
func (p *Processor) Scan(ctx context.Context) (CycleResult, error) {
	if p.cycleTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.cycleTimeout)
		defer cancel()
	}
	defer p.source.EndCycle()

	alarms, err := p.repo.FindByStatus(ctx, entity.AlarmStatusPending)
	if err != nil {
		return CycleResult{}, fmt.Errorf("list pending alarms: %w", err)
	}
	if p.retryFailed {
		failed, err := p.repo.FindByStatus(ctx, entity.AlarmStatusFailed)
		if err != nil {
			slog.Error("failed to list failed alarms for retry", "error", err)
		} else {
			alarms = append(alarms, failed...)
		}
	}

	if len(alarms) == 0 {
		slog.Info("scan cycle: no pending alarms")
		return CycleResult{}, nil
	}
	slog.Info("scan cycle started", "alarms", len(alarms), "concurrency", p.concurrency)

	outcomes := make([]Outcome, len(alarms))
	sem := make(chan struct{}, p.concurrency)
	var wg sync.WaitGroup
	for i, alarm := range alarms {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int, alarm entity.Alarm) {
			defer wg.Done()
			defer func() { <-sem }()
			outcomes[i] = p.processAlarm(ctx, alarm)
		}(i, alarm)
	}
	wg.Wait()

	result := CycleResult{
		Scanned:  len(alarms),
		Outcomes: outcomes,
		Triggered: lo.CountBy(outcomes, func(o Outcome) bool {
			return o.Triggered
		}),
		Pending: lo.CountBy(outcomes, func(o Outcome) bool {
			return !o.Skipped && !o.Triggered && o.Status == entity.AlarmStatusPending
		}),
		Failed: lo.CountBy(outcomes, func(o Outcome) bool {
			return !o.Triggered && o.Status == entity.AlarmStatusFailed
		}),
		Skipped: lo.CountBy(outcomes, func(o Outcome) bool {
			return o.Skipped
		}),
	}
	slog.Info("scan cycle finished",
		"scanned", result.Scanned,
		"triggered", result.Triggered,
		"pending", result.Pending,
		"failed", result.Failed,
		"skipped", result.Skipped)
	return result, nil
}

func (p *Processor) processAlarm(ctx context.Context, alarm entity.Alarm) (out Outcome) {
	// Status bookkeeping must outlive the cycle deadline: when the timeout
	// itself is what failed the alarm, writing "failed" with the expired ctx
	// would orphan the row in processing forever.
	storeCtx := context.WithoutCancel(ctx)

	defer func() {
		if r := recover(); r != nil {
			slog.Error("panic while processing alarm", "alarm", alarm.Id, "panic", r)
			out = p.fail(storeCtx, alarm, fmt.Sprintf("internal error: %v", r))
		}
	}()

	claimed, err := p.repo.ClaimProcessing(ctx, alarm.Id, alarm.Status)
	if err != nil {
		slog.Error("failed to claim alarm", "alarm", alarm.Id, "error", err)
		return Outcome{AlarmId: alarm.Id, Symbol: alarm.AssetSymbol, Status: alarm.Status, Skipped: true, Err: err.Error()}
	}
	if !claimed {
		// another worker won the row, nothing to do
		return Outcome{AlarmId: alarm.Id, Symbol: alarm.AssetSymbol, Status: alarm.Status, Skipped: true}
	}

	price, err := p.source.CurrentPrice(ctx, alarm.AssetClass, alarm.AssetSymbol)
	if err != nil {
		return p.fail(storeCtx, alarm, err.Error())
	}

	fetch := func(ctx context.Context, minPoints int) (marketdata.Series, error) {
		return p.source.HistoricalSeries(ctx, alarm.AssetClass, alarm.AssetSymbol, minPoints)
	}
	res, err := p.eval.Evaluate(ctx, alarm, price, fetch)
	if err != nil {
		return p.fail(storeCtx, alarm, err.Error())
	}

	if !res.Triggered {
		if err = p.repo.UpdateStatus(storeCtx, alarm.Id, entity.AlarmStatusPending, ""); err != nil {
			slog.Error("failed to return alarm to pending", "alarm", alarm.Id, "error", err)
			return Outcome{AlarmId: alarm.Id, Symbol: alarm.AssetSymbol, Status: entity.AlarmStatusProcessing, Err: err.Error()}
		}
		return Outcome{AlarmId: alarm.Id, Symbol: alarm.AssetSymbol, Status: entity.AlarmStatusPending}
	}

	subject, body := buildMessage(alarm, res)
	if err = p.mailer.SendText(ctx, alarm.Email, subject, body); err != nil {
		return p.fail(storeCtx, alarm, err.Error())
	}
	slog.Info("alarm triggered, notification sent", "alarm", alarm.Id, "symbol", alarm.AssetSymbol, "to", alarm.Email)

	if err = p.repo.Delete(storeCtx, alarm.Id); err != nil {
		// the email is already out; park the row so no later cycle sends again
		slog.Error("failed to delete triggered alarm", "alarm", alarm.Id, "error", err)
		if updErr := p.repo.UpdateStatus(storeCtx, alarm.Id, entity.AlarmStatusFailed,
			truncate("notified but cleanup failed: "+err.Error())); updErr != nil {
			slog.Error("failed to park notified alarm", "alarm", alarm.Id, "error", updErr)
		}
		return Outcome{AlarmId: alarm.Id, Symbol: alarm.AssetSymbol, Status: entity.AlarmStatusFailed, Triggered: true, Err: err.Error()}
	}

	return Outcome{AlarmId: alarm.Id, Symbol: alarm.AssetSymbol, Status: entity.AlarmStatusTriggered, Triggered: true}
}

func (p *Processor) fail(ctx context.Context, alarm entity.Alarm, reason string) Outcome {
	reason = truncate(reason)
	slog.Error("alarm processing failed", "alarm", alarm.Id, "symbol", alarm.AssetSymbol, "reason", reason)
	if err := p.repo.UpdateStatus(ctx, alarm.Id, entity.AlarmStatusFailed, reason); err != nil {
		// can't even record the failure, hard cycle-level anomaly
		slog.Error("failed to record alarm failure", "alarm", alarm.Id, "error", err)
	}
	return Outcome{AlarmId: alarm.Id, Symbol: alarm.AssetSymbol, Status: entity.AlarmStatusFailed, Err: reason}
}

func truncate(s string) string {
	if len(s) > maxErrorLen {
		return s[:maxErrorLen]
	}
	return s
}
