// Package scheduler manages background jobs using gocron v2. Every job runs
// in singleton mode so an overlapping run can never double-process its
// window.
package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"

	"fitout/internal/shared/biztime"
	"fitout/internal/shared/logger"
)

// InboundPoller drains the operations mailbox once per run.
type InboundPoller interface {
	Poll(ctx context.Context) error
}

// ReminderProcessor notifies operators about drafts stuck in approval.
type ReminderProcessor interface {
	ProcessPendingApprovalReminders(ctx context.Context) error
}

// DeliverySweeper flags deliveries past their scheduled date and returns how
// many it flagged.
type DeliverySweeper interface {
	SweepOverdueDeliveries(ctx context.Context) (int, error)
}

type Manager struct {
	scheduler gocron.Scheduler
	logger    logger.Interface

	started   bool
	startedMu sync.RWMutex
}

func NewManager(log logger.Interface) (*Manager, error) {
	scheduler, err := gocron.NewScheduler(
		gocron.WithLocation(biztime.Location()),
	)
	if err != nil {
		return nil, err
	}

	return &Manager{
		scheduler: scheduler,
		logger:    log.Named("scheduler"),
	}, nil
}

// RegisterInboundMailJob polls the mailbox at the configured interval. The
// per-run timeout is twice the interval so a slow IMAP server cannot pile
// up overlapping fetches behind the singleton gate forever.
func (m *Manager) RegisterInboundMailJob(poller InboundPoller, interval time.Duration) error {
	_, err := m.scheduler.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(func() {
			ctx, cancel := context.WithTimeout(context.Background(), 2*interval)
			defer cancel()
			m.runInboundPoll(ctx, poller)
		}),
		gocron.WithStartAt(gocron.WithStartImmediately()),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithTags("issues", "inbound-mail"),
		gocron.WithName("inbound-mail-poll"),
	)
	if err != nil {
		return err
	}

	m.logger.Infow("registered inbound mail job", "interval", interval)
	return nil
}

func (m *Manager) runInboundPoll(ctx context.Context, poller InboundPoller) {
	start := biztime.NowUTC()

	if err := poller.Poll(ctx); err != nil {
		if ctx.Err() != nil {
			return
		}
		m.logger.Errorw("inbound mail poll failed",
			"error", err,
			"duration", time.Since(start),
		)
		return
	}

	m.logger.Debugw("inbound mail poll completed", "duration", time.Since(start))
}

// RegisterPendingApprovalReminderJob nags operators about stale drafts every
// 6 hours.
func (m *Manager) RegisterPendingApprovalReminderJob(processor ReminderProcessor) error {
	_, err := m.scheduler.NewJob(
		gocron.DurationJob(6*time.Hour),
		gocron.NewTask(func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
			defer cancel()
			m.runPendingApprovalReminders(ctx, processor)
		}),
		gocron.WithStartAt(gocron.WithStartImmediately()),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithTags("issues", "approval-reminder"),
		gocron.WithName("pending-approval-reminder"),
	)
	if err != nil {
		return err
	}

	m.logger.Infow("registered pending approval reminder job", "interval", "6h")
	return nil
}

func (m *Manager) runPendingApprovalReminders(ctx context.Context, processor ReminderProcessor) {
	if err := processor.ProcessPendingApprovalReminders(ctx); err != nil {
		if ctx.Err() != nil {
			return
		}
		m.logger.Errorw("failed to process pending approval reminders", "error", err)
		return
	}

	m.logger.Debugw("pending approval reminders processed")
}

// RegisterDeliverySweepJob checks for overdue deliveries every hour.
func (m *Manager) RegisterDeliverySweepJob(sweeper DeliverySweeper) error {
	_, err := m.scheduler.NewJob(
		gocron.DurationJob(time.Hour),
		gocron.NewTask(func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
			defer cancel()
			m.runDeliverySweep(ctx, sweeper)
		}),
		gocron.WithStartAt(gocron.WithStartImmediately()),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithTags("deliveries", "overdue-sweep"),
		gocron.WithName("delivery-overdue-sweep"),
	)
	if err != nil {
		return err
	}

	m.logger.Infow("registered delivery sweep job", "interval", "1h")
	return nil
}

func (m *Manager) runDeliverySweep(ctx context.Context, sweeper DeliverySweeper) {
	start := biztime.NowUTC()

	count, err := sweeper.SweepOverdueDeliveries(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		m.logger.Errorw("delivery sweep failed",
			"error", err,
			"duration", time.Since(start),
		)
		return
	}

	if count > 0 {
		m.logger.Infow("overdue deliveries flagged",
			"count", count,
			"duration", time.Since(start),
		)
	}
}

// Start starts the scheduler and all registered jobs.
func (m *Manager) Start() {
	m.startedMu.Lock()
	defer m.startedMu.Unlock()

	if m.started {
		return
	}

	m.scheduler.Start()
	m.started = true
	m.logger.Infow("scheduler started", "job_count", len(m.scheduler.Jobs()))
}

// Stop gracefully stops the scheduler, waiting for running jobs.
func (m *Manager) Stop() error {
	m.startedMu.Lock()
	defer m.startedMu.Unlock()

	if !m.started {
		return nil
	}

	err := m.scheduler.Shutdown()
	m.started = false

	if err != nil {
		m.logger.Errorw("scheduler shutdown with error", "error", err)
		return err
	}

	m.logger.Infow("scheduler stopped")
	return nil
}

func (m *Manager) IsStarted() bool {
	m.startedMu.RLock()
	defer m.startedMu.RUnlock()
	return m.started
}

func (m *Manager) Jobs() []gocron.Job {
	return m.scheduler.Jobs()
}
