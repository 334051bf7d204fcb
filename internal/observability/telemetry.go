// Package observability starts the process-wide telemetry: OpenTelemetry export to Uptrace,
// continuous profiling with Pyroscope and an optional pprof listener.
package observability

import (
	"context"
	"errors"
	"net/http"

	"github.com/L3Technosmith/pkmnFoundations/internal/config"
	"github.com/L3Technosmith/pkmnFoundations/internal/platform/logging"
)

// Telemetry holds whatever Start turned on. The zero value and nil are valid and stop nothing.
type Telemetry struct {
	logger        *logging.Logger
	stopTracing   func(context.Context) error
	stopProfiling func() error
	pprof         *http.Server
}

// Start brings up each part that cfg enables. A part that fails to start stops the ones before it.
func Start(cfg config.Config, logger *logging.Logger) (*Telemetry, error) {
	if logger == nil {
		logger = logging.Default()
	}
	t := &Telemetry{logger: logger}

	var err error
	if t.stopTracing, err = startTracing(cfg, logger); err != nil {
		return nil, err
	}
	if t.stopProfiling, err = startProfiling(cfg, logger); err != nil {
		_ = t.Shutdown(context.Background())
		return nil, err
	}
	if t.pprof, err = startPprof(cfg, logger); err != nil {
		_ = t.Shutdown(context.Background())
		return nil, err
	}
	return t, nil
}

// Shutdown stops pprof, then the profiler, then flushes traces and logs, so the last
// records describe the shutdown itself.
func (t *Telemetry) Shutdown(ctx context.Context) error {
	if t == nil {
		return nil
	}

	var errs []error
	if t.pprof != nil {
		if err := t.pprof.Shutdown(ctx); err != nil {
			errs = append(errs, err)
		} else {
			t.logger.Info("pprof server stopped")
		}
		t.pprof = nil
	}
	if t.stopProfiling != nil {
		errs = append(errs, t.stopProfiling())
		t.stopProfiling = nil
	}
	if t.stopTracing != nil {
		errs = append(errs, t.stopTracing(ctx))
		t.stopTracing = nil
	}
	return errors.Join(errs...)
}
