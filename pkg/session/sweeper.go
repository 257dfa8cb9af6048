package session

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/dmitrymomot/ghkeeper/pkg/logger"
)

// DefaultSweepSchedule removes expired sessions every ten minutes.
const DefaultSweepSchedule = "*/10 * * * *"

// ErrInvalidSchedule is returned for a sweep schedule cron cannot parse.
var ErrInvalidSchedule = errors.New("session: invalid sweep schedule")

// Expirer is a store that can delete expired sessions in bulk.
// PostgresStore and BoltStore implement it; cache backends expire on their own.
type Expirer interface {
	DeleteExpired(ctx context.Context) (int64, error)
}

// Sweeper periodically removes expired sessions from an Expirer.
//
//	sw, err := session.NewSweeper(store, session.DefaultSweepSchedule, log)
//	app.Run(addr, internal.StartupHook(sw.Start), internal.ShutdownHook(sw.Stop))
type Sweeper struct {
	cron    *cron.Cron
	store   Expirer
	logger  *slog.Logger
	timeout time.Duration
}

// NewSweeper parses schedule (five cron fields or a descriptor such as
// "@every 5m") and registers the sweep. It does not start running until Start.
func NewSweeper(store Expirer, schedule string, log *slog.Logger) (*Sweeper, error) {
	if log == nil {
		log = logger.NewNope()
	}

	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)
	sched, err := parser.Parse(schedule)
	if err != nil {
		return nil, errors.Join(ErrInvalidSchedule, err)
	}

	s := &Sweeper{
		cron:    cron.New(cron.WithParser(parser)),
		store:   store,
		logger:  log,
		timeout: time.Minute,
	}
	s.cron.Schedule(sched, cron.FuncJob(func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
		defer cancel()
		_, _ = s.Sweep(ctx)
	}))
	return s, nil
}

// Sweep runs one pass and logs the outcome.
func (s *Sweeper) Sweep(ctx context.Context) (int64, error) {
	n, err := s.store.DeleteExpired(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "session sweep failed", slog.String("error", err.Error()))
		return 0, err
	}
	if n > 0 {
		s.logger.InfoContext(ctx, "expired sessions removed", slog.Int64("count", n))
	}
	return n, nil
}

// Start begins the schedule. Its signature matches a startup hook.
func (s *Sweeper) Start(context.Context) error {
	s.cron.Start()
	return nil
}

// Stop halts the schedule and waits for a running sweep or ctx, whichever ends first.
func (s *Sweeper) Stop(ctx context.Context) error {
	done := s.cron.Stop()
	select {
	case <-done.Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
