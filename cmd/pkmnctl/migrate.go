package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/spf13/cobra"

	"github.com/L3Technosmith/pkmnFoundations/internal/app"
	"github.com/L3Technosmith/pkmnFoundations/internal/platform/logging"
	"github.com/L3Technosmith/pkmnFoundations/internal/usecase"
)

var defaultMigrationDirs = []string{"./db/migrations", "/app/db/migrations"}

type schemaVersion struct {
	Version *uint `json:"version"`
	Dirty   bool  `json:"dirty"`
}

func (c *cli) migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply, roll back or inspect the postgres schema migrations",
	}
	cmd.PersistentFlags().String("migrations-dir", "", "directory of *.sql migrations (default ./db/migrations, then /app/db/migrations)")

	up := &cobra.Command{
		Use:   "up",
		Short: "Apply every pending migration",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			return c.withMigrator(func(m *migrate.Migrate) error { return m.Up() })
		},
	}
	down := &cobra.Command{
		Use:   "down [steps]",
		Short: "Roll back the last migrations, one by default",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			steps := 1
			if len(args) == 1 {
				n, err := parsePositive(args[0])
				if err != nil {
					return err
				}
				steps = n
			}
			return c.withMigrator(func(m *migrate.Migrate) error { return m.Steps(-steps) })
		},
	}
	gotoCmd := &cobra.Command{
		Use:     "goto <version>",
		Aliases: []string{"to"},
		Short:   "Migrate up or down to a version",
		Example: "  pkmnctl migrate goto 3",
		Args:    cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			target, err := strconv.ParseUint(strings.TrimSpace(args[0]), 10, 0)
			if err != nil {
				return fmt.Errorf("%w: target version %q: %v", usecase.ErrInvalidInput, args[0], err)
			}
			return c.withMigrator(func(m *migrate.Migrate) error { return m.Migrate(uint(target)) })
		},
	}
	// a leading dash reads as a flag, so -1 goes after the terminator
	force := &cobra.Command{
		Use:     "force <version>",
		Short:   "Record a version as applied and clear the dirty flag, without running anything",
		Example: "  pkmnctl migrate force 4\n  pkmnctl migrate force -- -1",
		Args:    cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			version, err := strconv.Atoi(strings.TrimSpace(args[0]))
			if err != nil || version < -1 {
				return fmt.Errorf("%w: force version must be an integer >= -1, got %q", usecase.ErrInvalidInput, args[0])
			}
			return c.withMigrator(func(m *migrate.Migrate) error { return m.Force(version) })
		},
	}
	version := &cobra.Command{
		Use:   "version",
		Short: "Print the applied schema version",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			var out schemaVersion
			err := c.withMigrator(func(m *migrate.Migrate) error {
				v, dirty, err := m.Version()
				if errors.Is(err, migrate.ErrNilVersion) {
					return nil
				}
				out = schemaVersion{Version: &v, Dirty: dirty}
				return err
			})
			if err != nil {
				return err
			}
			return c.printJSON(out)
		},
	}

	cmd.AddCommand(up, down, gotoCmd, force, version)
	return cmd
}

// withMigrator opens a migrator over DB_URL and the migrations directory, runs fn and closes it.
// ErrNoChange is not a failure.
func (c *cli) withMigrator(fn func(*migrate.Migrate) error) error {
	if strings.TrimSpace(c.cfg.DBURL) == "" {
		return fmt.Errorf("%w: DB_URL is required to migrate", usecase.ErrInvalidInput)
	}
	dir, err := migrationsDir(c.v.GetString("migrations-dir"))
	if err != nil {
		return err
	}

	dbURL := app.NormalizeDBURL(c.cfg.DBURL, app.DSNOptions{
		ApplicationName:             "pkmn-migration",
		DisablePreparedBinaryResult: c.cfg.DBDisablePreparedBinary,
	})
	source := "file://" + filepath.ToSlash(dir)
	m, err := migrate.New(source, dbURL)
	if err != nil {
		return fmt.Errorf("open migrator: %w", err)
	}
	m.Log = migrateLogger{logger: c.logger, verbose: c.v.GetBool("verbose")}
	defer func() {
		srcErr, dbErr := m.Close()
		if err := errors.Join(srcErr, dbErr); err != nil {
			c.logger.Warn("close migrator", "error", err)
		}
	}()

	err = fn(m)
	if errors.Is(err, migrate.ErrNoChange) {
		c.logger.Info("schema already current", "source", source)
		return nil
	}
	if err != nil {
		return err
	}
	c.logger.Info("migration finished", "source", source)
	return nil
}

// migrationsDir returns the absolute path of explicit, or of the first default that exists.
func migrationsDir(explicit string) (string, error) {
	candidates := defaultMigrationDirs
	if explicit = strings.TrimSpace(explicit); explicit != "" {
		candidates = []string{explicit}
	}
	for _, dir := range candidates {
		abs, err := filepath.Abs(dir)
		if err != nil {
			continue
		}
		if info, err := os.Stat(abs); err == nil && info.IsDir() {
			return abs, nil
		}
	}
	return "", fmt.Errorf("%w: no migrations directory among %s", usecase.ErrInvalidInput, strings.Join(candidates, ", "))
}

func parsePositive(raw string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("%w: steps must be a positive integer, got %q", usecase.ErrInvalidInput, raw)
	}
	return n, nil
}

// migrateLogger feeds golang-migrate's progress lines into the structured logger.
type migrateLogger struct {
	logger  *logging.Logger
	verbose bool
}

func (l migrateLogger) Printf(format string, v ...any) {
	l.logger.Info(strings.TrimSpace(fmt.Sprintf(format, v...)))
}

func (l migrateLogger) Verbose() bool {
	return l.verbose
}
