// Package server runs the encounter daemon's long-lived components: the gRPC
// listener and its periodic maintenance tasks, started together and torn down
// in reverse order on signal, cancellation or failure.
package server

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
)

// DefaultStopTimeout bounds how long one service may take to stop.
const DefaultStopTimeout = 10 * time.Second

// Service is a long-running component. Start blocks until Stop is called or
// the component fails.
type Service interface {
	Start() error
	Stop()
}

// FuncService adapts a start/stop function pair into the Service interface.
type FuncService struct {
	StartFn func() error
	StopFn  func()
}

// Start calls the underlying start function.
func (f *FuncService) Start() error { return f.StartFn() }

// Stop calls the underlying stop function.
func (f *FuncService) Stop() { f.StopFn() }

// TickerService calls Tick every Interval until stopped, then calls OnStop.
type TickerService struct {
	Interval time.Duration
	Tick     func()
	OnStop   func()

	done chan struct{}
}

// NewTickerService returns a TickerService. onStop may be nil.
//
// Precondition: interval > 0; tick must be non-nil.
func NewTickerService(interval time.Duration, tick, onStop func()) *TickerService {
	return &TickerService{Interval: interval, Tick: tick, OnStop: onStop, done: make(chan struct{})}
}

// Start ticks until Stop.
func (t *TickerService) Start() error {
	ticker := time.NewTicker(t.Interval)
	defer ticker.Stop()
	for {
		select {
		case <-t.done:
			return nil
		case <-ticker.C:
			t.Tick()
		}
	}
}

// Stop ends the ticking loop and runs OnStop.
//
// Precondition: Stop is called at most once.
func (t *TickerService) Stop() {
	close(t.done)
	if t.OnStop != nil {
		t.OnStop()
	}
}

// Lifecycle starts services in registration order and stops them in reverse.
type Lifecycle struct {
	logger      *zap.Logger
	services    []namedService
	stopTimeout time.Duration
}

type namedService struct {
	name    string
	service Service
}

// LifecycleOption configures a Lifecycle.
type LifecycleOption func(*Lifecycle)

// WithStopTimeout overrides DefaultStopTimeout.
func WithStopTimeout(d time.Duration) LifecycleOption {
	return func(l *Lifecycle) { l.stopTimeout = d }
}

// NewLifecycle creates a Lifecycle.
//
// Precondition: logger must be non-nil.
func NewLifecycle(logger *zap.Logger, opts ...LifecycleOption) *Lifecycle {
	l := &Lifecycle{logger: logger, stopTimeout: DefaultStopTimeout}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Add registers a named service. Add must not be called once Run has begun.
//
// Precondition: name must be non-empty; svc must be non-nil.
func (l *Lifecycle) Add(name string, svc Service) {
	l.services = append(l.services, namedService{name: name, service: svc})
}

// Run starts all services and blocks until SIGINT or SIGTERM arrives, ctx is
// cancelled, or a service fails.
//
// Postcondition: Every service has been asked to stop. The error of the first
// failed service is returned.
func (l *Lifecycle) Run(ctx context.Context) error {
	start := time.Now()

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, len(l.services))
	for _, ns := range l.services {
		go func() {
			l.logger.Info("starting service", zap.String("service", ns.name))
			svcStart := time.Now()
			if err := ns.service.Start(); err != nil {
				l.logger.Error("service failed",
					zap.String("service", ns.name),
					zap.Error(err),
					zap.Duration("uptime", time.Since(svcStart)),
				)
				errCh <- fmt.Errorf("service %s: %w", ns.name, err)
			}
		}()
	}
	l.logger.Info("all services started", zap.Int("count", len(l.services)))

	var runErr error
	select {
	case runErr = <-errCh:
	case <-ctx.Done():
		select {
		case runErr = <-errCh:
		default:
		}
	}
	if runErr != nil {
		l.logger.Error("service error, shutting down", zap.Error(runErr))
	} else {
		l.logger.Info("shutting down", zap.NamedError("cause", context.Cause(ctx)))
	}

	l.shutdown()
	l.logger.Info("shutdown complete", zap.Duration("total_uptime", time.Since(start)))
	return runErr
}

func (l *Lifecycle) shutdown() {
	for i := len(l.services) - 1; i >= 0; i-- {
		ns := l.services[i]
		svcStart := time.Now()
		stopped := make(chan struct{})
		go func() {
			ns.service.Stop()
			close(stopped)
		}()
		select {
		case <-stopped:
			l.logger.Info("service stopped",
				zap.String("service", ns.name),
				zap.Duration("elapsed", time.Since(svcStart)),
			)
		case <-time.After(l.stopTimeout):
			l.logger.Warn("service did not stop in time, abandoning",
				zap.String("service", ns.name),
				zap.Duration("timeout", l.stopTimeout),
			)
		}
	}
}
