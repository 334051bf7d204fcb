package main

import (
	"context"
	"io"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/L3Technosmith/pkmnFoundations/internal/app"
	"github.com/L3Technosmith/pkmnFoundations/internal/config"
	"github.com/L3Technosmith/pkmnFoundations/internal/observability"
	"github.com/L3Technosmith/pkmnFoundations/internal/platform/logging"
)

// cli carries what every subcommand needs once the root has parsed flags and loaded config.
type cli struct {
	v          *viper.Viper
	out        io.Writer
	errOut     io.Writer
	loadConfig func() (config.Config, error)

	cfg       config.Config
	logger    *logging.Logger
	telemetry *observability.Telemetry
}

const telemetryFlushTimeout = 5 * time.Second

func newCLI(loadConfig func() (config.Config, error), out, errOut io.Writer) *cli {
	return &cli{
		v:          newViper(),
		out:        out,
		errOut:     errOut,
		loadConfig: loadConfig,
	}
}

func (c *cli) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "pkmnctl",
		Short:        "Operator tasks for the pkmnFoundations services",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return c.setup(cmd)
		},
	}
	root.SetOut(c.out)
	root.SetErr(c.errOut)
	root.PersistentFlags().BoolP("verbose", "v", false, "log at debug level")

	root.AddCommand(c.restoreCmd(), c.pokedexCmd(), c.statsCmd(), c.migrateCmd())
	return root
}

// newViper resolves flags first, then PKMN_* variables, then the flag defaults.
// A flag named checkpoint-dir reads PKMN_CHECKPOINT_DIR.
func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix("PKMN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	return v
}

func (c *cli) setup(cmd *cobra.Command) error {
	if err := c.v.BindPFlags(cmd.Flags()); err != nil {
		return err
	}

	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	c.cfg = cfg

	level := cfg.LogLevel
	if c.v.GetBool("verbose") {
		level = logging.LevelDebug
	}
	// results go to out as JSON, so logs stay on errOut in console form
	c.logger = logging.New(logging.Options{Level: level, Format: logging.FormatConsole, Output: c.errOut}).
		With("command", cmd.Name(), "env", cfg.AppEnv)

	// restores can run for hours, so their spans and profiles are worth shipping; pprof is for the api
	cfg.PprofEnabled = false
	c.telemetry, err = observability.Start(cfg, c.logger)
	return err
}

// close flushes telemetry and logs. It runs after Execute whether or not the command failed.
func (c *cli) close() {
	ctx, cancel := context.WithTimeout(context.Background(), telemetryFlushTimeout)
	defer cancel()

	if err := c.telemetry.Shutdown(ctx); err != nil && c.logger != nil {
		c.logger.Warn("stop telemetry", "error", err)
	}
	if c.logger != nil {
		_ = c.logger.Sync()
	}
}

func (c *cli) services(ctx context.Context) (*app.Services, error) {
	return app.NewServices(ctx, c.cfg, c.logger)
}

func (c *cli) closeServices(svc *app.Services) {
	if err := svc.Close(); err != nil {
		c.logger.Warn("close services", "error", err)
	}
}

func (c *cli) printJSON(v any) error {
	raw, err := sonic.Marshal(v)
	if err != nil {
		return err
	}
	_, err = c.out.Write(append(raw, '\n'))
	return err
}
