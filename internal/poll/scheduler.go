package poll

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/XZCh722aris/localchat/internal/metrics"
)

const DefaultInterval = time.Second

// Scheduler drives all registered pollers from a single goroutine on a fixed
// tick. Running every poller on one goroutine confines store access to a
// single writer, so pollers need no locking among themselves. A failing or
// panicking poller is logged and skipped; the others still run, and the bad
// one is retried on the next tick.
type Scheduler struct {
	interval time.Duration
	timeout  time.Duration
	log      zerolog.Logger

	mu      sync.Mutex
	pollers []Poller
}

func NewScheduler(interval time.Duration, log zerolog.Logger) *Scheduler {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Scheduler{
		interval: interval,
		// A tick that cannot finish within one interval is overrunning;
		// cut it off and surface the overrun as a tick failure.
		timeout: interval,
		log:     log,
	}
}

func (s *Scheduler) Add(p Poller) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pollers = append(s.pollers, p)
	metrics.ActivePollers.Inc()
}

func (s *Scheduler) Remove(p Poller) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, existing := range s.pollers {
		if existing == p {
			s.pollers = append(s.pollers[:i], s.pollers[i+1:]...)
			metrics.ActivePollers.Dec()
			return
		}
	}
}

// Run blocks, firing all pollers once per interval, until ctx is cancelled.
func (s *Scheduler) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.log.Debug().Msg("scheduler stopping")
			return
		case <-ticker.C:
			s.TickAll(ctx)
		}
	}
}

// TickAll runs a single pass over the registered pollers.
func (s *Scheduler) TickAll(ctx context.Context) {
	s.mu.Lock()
	snapshot := make([]Poller, len(s.pollers))
	copy(snapshot, s.pollers)
	s.mu.Unlock()

	for _, p := range snapshot {
		if ctx.Err() != nil {
			return
		}
		s.tickOne(ctx, p)
	}
}

func (s *Scheduler) tickOne(ctx context.Context, p Poller) {
	tickCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	metrics.TicksTotal.WithLabelValues(p.Name()).Inc()
	if err := s.protectedTick(tickCtx, p); err != nil {
		metrics.TickFailures.WithLabelValues(p.Name()).Inc()
		s.log.Error().Err(err).Str("poller", p.Name()).Msg("tick failed")
	}
}

func (s *Scheduler) protectedTick(ctx context.Context, p Poller) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("poller panic: %v", r)
		}
	}()
	return p.Tick(ctx)
}
