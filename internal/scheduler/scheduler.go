package scheduler

import (
	"context"
	"log"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/pulsecrm-dev/pulsecrm/internal/deadline"
)

// Sweeper drives the notification engine on a fixed interval. Each run gets
// its own timeout context; a run cut short self-heals on the next tick because
// the engine is idempotent over the dedup window.
type Sweeper struct {
	engine   *deadline.Engine
	interval time.Duration
	timeout  time.Duration
	ctx      context.Context
	cancel   context.CancelFunc
	wg       sync.WaitGroup
}

func NewSweeper(engine *deadline.Engine, interval, timeout time.Duration) *Sweeper {
	ctx, cancel := context.WithCancel(context.Background())

	return &Sweeper{
		engine:   engine,
		interval: interval,
		timeout:  timeout,
		ctx:      ctx,
		cancel:   cancel,
	}
}

// Start launches the sweep loop with an immediate first run.
func (s *Sweeper) Start() {
	log.Printf("Starting deadline sweeper (interval %v, timeout %v)", s.interval, s.timeout)

	s.wg.Add(1)

	go func() {
		defer s.wg.Done()

		s.runOnce()

		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			select {
			case <-s.ctx.Done():
				return
			case <-ticker.C:
				s.runOnce()
			}
		}
	}()
}

// Stop cancels the loop and waits for an in-flight sweep to wind down.
func (s *Sweeper) Stop() {
	log.Println("Stopping deadline sweeper...")
	s.cancel()
	s.wg.Wait()
	log.Println("Deadline sweeper stopped")
}

func (s *Sweeper) runOnce() {
	runCtx, cancel := context.WithTimeout(s.ctx, s.timeout)
	defer cancel()

	start := time.Now()
	report, err := s.engine.RunSweep(runCtx, start)

	if err != nil {
		log.Printf("Sweep finished with errors in %v: %v (report: %+v)", time.Since(start), err, report)
		return
	}

	log.Printf("Sweep finished in %v: %+v", time.Since(start), report)
}

// Global sweeper instance
var globalSweeper *Sweeper

// Initialize creates and starts the global sweeper with env-tunable timing.
func Initialize(engine *deadline.Engine) {
	interval := envDuration("SWEEP_INTERVAL_MINUTES", time.Minute, 60*time.Minute)
	timeout := envDuration("SWEEP_TIMEOUT_MINUTES", time.Minute, 5*time.Minute)

	globalSweeper = NewSweeper(engine, interval, timeout)
	globalSweeper.Start()
}

// Shutdown stops the global sweeper
func Shutdown() {
	if globalSweeper != nil {
		globalSweeper.Stop()
	}
}

func envDuration(key string, unit, fallback time.Duration) time.Duration {
	value := os.Getenv(key)

	if value == "" {
		return fallback
	}

	n, err := strconv.Atoi(value)

	if err != nil || n <= 0 {
		log.Printf("Invalid %s value %q, using default", key, value)
		return fallback
	}

	return time.Duration(n) * unit
}
