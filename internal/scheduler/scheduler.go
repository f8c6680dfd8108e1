// Package scheduler drives the daily pipeline: one run at process start,
// then one run per day at the configured time.
package scheduler

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/coreos/go-systemd/v22/daemon"
	"github.com/robfig/cron/v3"

	"trendwatch/pkg/logx"
)

type Config struct {
	// Time is the daily trigger, "HH:MM" in Timezone.
	Time     string
	Timezone string // default UTC
	// PollInterval is the fixed sleep of the trigger-check loop. Default 1m.
	PollInterval time.Duration
	// LivenessInterval paces the observational "alive" log line (and the
	// systemd watchdog ping). Default 15m.
	LivenessInterval time.Duration
}

// Job is one full pipeline invocation. Returned errors are logged here;
// escalation (alerting) is the job's own responsibility. A panic escaping
// the job is deliberately not recovered at this level: the pipeline treats
// it as fatal after alerting, and the process manager restarts us.
type Job func(ctx context.Context) error

// Service is a cooperative single-threaded loop: sleep a fixed interval,
// check whether the daily trigger is due, run the job synchronously.
// At most one invocation is ever in flight.
type Service struct {
	cfg   Config
	log   logx.Logger
	job   Job
	sched cron.Schedule
	loc   *time.Location

	now func() time.Time // stubbed in tests
}

func New(cfg Config, job Job, log logx.Logger) (*Service, error) {
	hour, minute, err := ParseTimeOfDay(cfg.Time)
	if err != nil {
		return nil, err
	}

	tz := strings.TrimSpace(cfg.Timezone)
	if tz == "" {
		tz = "UTC"
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("scheduler: invalid timezone %q: %w", cfg.Timezone, err)
	}

	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)
	sched, err := parser.Parse(fmt.Sprintf("%d %d * * *", minute, hour))
	if err != nil {
		return nil, fmt.Errorf("scheduler: build schedule: %w", err)
	}

	if cfg.PollInterval <= 0 {
		cfg.PollInterval = time.Minute
	}
	if cfg.LivenessInterval <= 0 {
		cfg.LivenessInterval = 15 * time.Minute
	}
	if log.IsZero() {
		log = logx.Nop()
	}
	return &Service{cfg: cfg, log: log, job: job, sched: sched, loc: loc, now: time.Now}, nil
}

// NextRun returns the next daily trigger strictly after t.
func (s *Service) NextRun(t time.Time) time.Time {
	return s.sched.Next(t.In(s.loc))
}

// Run blocks until ctx is cancelled. The job runs once immediately
// (startup check, confirms the whole chain right after deployment),
// then at every daily trigger.
func (s *Service) Run(ctx context.Context) error {
	s.log.Info("startup check: running pipeline once")
	s.runOnce(ctx)

	next := s.NextRun(s.now())
	s.log.Info("scheduler started",
		logx.String("daily_at", s.cfg.Time),
		logx.String("tz", s.loc.String()),
		logx.Time("next_run", next))
	sdNotify(daemon.SdNotifyReady)

	poll := time.NewTicker(s.cfg.PollInterval)
	defer poll.Stop()
	liveness := time.NewTicker(s.cfg.LivenessInterval)
	defer liveness.Stop()

	for {
		select {
		case <-ctx.Done():
			s.log.Info("scheduler stopping", logx.Err(ctx.Err()))
			return ctx.Err()
		case <-liveness.C:
			s.log.Info("alive", logx.Time("next_run", next))
			sdNotify(daemon.SdNotifyWatchdog)
		case <-poll.C:
			if s.now().In(s.loc).Before(next) {
				continue
			}
			s.runOnce(ctx)
			next = s.NextRun(s.now())
			s.log.Info("next run scheduled", logx.Time("next_run", next))
		}
	}
}

func (s *Service) runOnce(ctx context.Context) {
	start := s.now()
	if err := s.job(ctx); err != nil {
		// The job has already escalated; record the outcome and keep the
		// daily loop alive.
		s.log.Error("pipeline run failed", logx.Err(err), logx.Duration("dur", time.Since(start)))
		return
	}
	s.log.Info("pipeline run completed", logx.Duration("dur", time.Since(start)))
}

// sdNotify is best-effort: a no-op outside systemd.
func sdNotify(state string) {
	_, _ = daemon.SdNotify(false, state)
}

func ParseTimeOfDay(s string) (hour, minute int, err error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid time %q, expected HH:MM", s)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, 0, fmt.Errorf("invalid hour in %q", s)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, 0, fmt.Errorf("invalid minute in %q", s)
	}
	return h, m, nil
}
