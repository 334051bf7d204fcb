package main

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/sourcegraph/conc/pool"
	"github.com/spf13/cobra"

	"github.com/L3Technosmith/pkmnFoundations/internal/config"
	"github.com/L3Technosmith/pkmnFoundations/internal/infrastructure/archive"
	"github.com/L3Technosmith/pkmnFoundations/internal/infrastructure/checkpoint"
	idgen "github.com/L3Technosmith/pkmnFoundations/internal/platform/id"
	"github.com/L3Technosmith/pkmnFoundations/internal/platform/resilience"
	"github.com/L3Technosmith/pkmnFoundations/internal/usecase"
)

// restoreReport is one line of restore output. Error is set when the source stopped early;
// Result then holds what was done before it stopped.
type restoreReport struct {
	Location string                `json:"location"`
	Result   usecase.RestoreResult `json:"result"`
	Error    string                `json:"error,omitempty"`
}

func (c *cli) restoreCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "restore <location>...",
		Short: "Replay archived uploads into the configured store",
		Long: `Replay JSON-lines dumps of archived uploads. A location is a local path,
a file://, http(s):// URL or s3://bucket/key. Lines already applied by an earlier
run against the same location are skipped.

Examples:
  pkmnctl restore ./dumps/gen4-battlevideos.jsonl
  pkmnctl restore --workers 16 s3://pkmn-archive/2014/boxes.jsonl
  PKMN_S3_ACCESS_KEY_ID=... PKMN_S3_SECRET_ACCESS_KEY=... pkmnctl restore s3://bucket/key`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return c.runRestore(ctx, args)
		},
	}

	flags := cmd.Flags()
	flags.Int("workers", 0, "lines applied concurrently per source (default RESTORE_WORKERS)")
	flags.Int("parallel", 1, "sources restored at the same time")
	flags.String("checkpoint-dir", "", "pebble directory for the restore journal (default RESTORE_CHECKPOINT_DIR)")
	flags.Bool("reset", false, "forget journaled progress for the given locations first")
	flags.String("s3-access-key-id", "", "static S3 access key; empty uses the default AWS chain")
	flags.String("s3-secret-access-key", "", "static S3 secret key")
	return cmd
}

func (c *cli) runRestore(ctx context.Context, locations []string) error {
	if c.cfg.StorageDriver == config.StorageMemory {
		c.logger.Warn("restoring into the memory store; nothing outlives this process")
	}

	workers := c.v.GetInt("workers")
	if workers < 1 {
		workers = c.cfg.RestoreWorkers
	}
	parallel := max(c.v.GetInt("parallel"), 1)
	checkpointDir := c.v.GetString("checkpoint-dir")
	if checkpointDir == "" {
		checkpointDir = c.cfg.RestoreCheckpointDir
	}

	sources, err := c.openSources(ctx, locations)
	if err != nil {
		return err
	}

	svc, err := c.services(ctx)
	if err != nil {
		return err
	}
	defer c.closeServices(svc)

	journal, err := checkpoint.Open(checkpointDir)
	if err != nil {
		return err
	}
	defer func() {
		if err := journal.Close(); err != nil {
			c.logger.Warn("close checkpoint", "error", err)
		}
	}()

	if c.v.GetBool("reset") {
		for _, src := range sources {
			if err := journal.Reset(src.Name()); err != nil {
				return err
			}
		}
	}

	restorer := usecase.NewRestoreService(svc.Content, svc.Leaderboards, journal, idgen.NewKSUIDGenerator(), workers, c.logger)

	p := pool.NewWithResults[restoreReport]().WithMaxGoroutines(parallel)
	for _, src := range sources {
		p.Go(func() restoreReport {
			report := restoreReport{Location: src.Name()}
			result, err := restorer.Restore(ctx, src)
			report.Result = result
			if err != nil {
				report.Error = err.Error()
			}
			return report
		})
	}
	reports := p.Wait()

	var errs []error
	for _, report := range orderReports(reports, sources) {
		if err := c.printJSON(report); err != nil {
			return err
		}
		if report.Error != "" {
			errs = append(errs, fmt.Errorf("%s: %s", report.Location, report.Error))
		}
	}
	return errors.Join(errs...)
}

// openSources resolves every location before anything is replayed, so a typo fails fast.
func (c *cli) openSources(ctx context.Context, locations []string) ([]*archive.Source, error) {
	opts := archive.Options{
		Timeout: c.cfg.ArchiveTimeout,
		Breaker: resilience.NewCircuitBreaker("archive", resilience.CircuitBreakerConfig{
			Enabled:          c.cfg.ArchiveCircuitEnabled,
			FailureThreshold: c.cfg.ArchiveCircuitFailureCount,
			OpenTimeout:      c.cfg.ArchiveCircuitOpenTimeout,
			HalfOpenMaxReq:   c.cfg.ArchiveCircuitHalfOpenMaxReq,
			OnStateChange: func(name string, from, to resilience.CircuitState) {
				c.logger.Warn("circuit breaker changed state", "breaker", name, "from", from, "to", to)
			},
		}),
		S3Region:   c.cfg.S3Region,
		S3Endpoint: c.cfg.S3Endpoint,
		S3Credentials: archive.S3Credentials{
			AccessKeyID:     c.v.GetString("s3-access-key-id"),
			SecretAccessKey: c.v.GetString("s3-secret-access-key"),
		},
		Logger: c.logger,
	}

	sources := make([]*archive.Source, 0, len(locations))
	for _, location := range locations {
		src, err := archive.Open(ctx, location, opts)
		if err != nil {
			return nil, err
		}
		sources = append(sources, src)
	}
	return sources, nil
}

// orderReports puts reports back in argument order; the pool finishes sources in any order.
func orderReports(reports []restoreReport, sources []*archive.Source) []restoreReport {
	byLocation := make(map[string][]restoreReport, len(reports))
	for _, report := range reports {
		byLocation[report.Location] = append(byLocation[report.Location], report)
	}

	ordered := make([]restoreReport, 0, len(reports))
	for _, src := range sources {
		pending := byLocation[src.Name()]
		if len(pending) == 0 {
			continue
		}
		ordered = append(ordered, pending[0])
		byLocation[src.Name()] = pending[1:]
	}
	return ordered
}
