// Package cli implements the kanso command line client. It talks to a local
// SQLite store directly instead of going through the HTTP API.
package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/comitanigiacomo/kanso-streak-engine/internal/adapters/repository"
	"github.com/comitanigiacomo/kanso-streak-engine/internal/config"
	"github.com/comitanigiacomo/kanso-streak-engine/internal/core/services"
	"github.com/comitanigiacomo/kanso-streak-engine/internal/logger"
)

const (
	Version = "0.1.0"
	appName = "kanso"
)

// Options are the seams tests use; zero values mean the real clock and
// environment.
type Options struct {
	Now    func() time.Time
	Getenv func(string) string
}

type globalFlags struct {
	dbPath   string
	ownerID  int64
	output   string
	logLevel string
}

type env struct {
	opts  Options
	flags *globalFlags
	cfg   *config.Config
}

func NewRootCmd(opts Options) *cobra.Command {
	e := &env{opts: opts, flags: &globalFlags{}}

	cmd := &cobra.Command{
		Use:           appName,
		Short:         "Kanso habit tracker",
		Long:          "kanso tracks daily and weekly habits with streaks, stored in a local SQLite database.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return e.load()
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&e.flags.dbPath, "db", "", "SQLite database path (default $SQLITE_PATH or the user config dir)")
	pf.Int64Var(&e.flags.ownerID, "owner", 1, "Owner id the habits belong to")
	pf.StringVarP(&e.flags.output, "output", "o", outputText, "Output format (text, yaml)")
	pf.StringVar(&e.flags.logLevel, "log-level", "", "Log level (debug, info, warn, error)")

	cmd.AddCommand(newHabitCmd(e))
	cmd.AddCommand(newTokenCmd(e))
	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s version %s\n", appName, Version)
		},
	})

	return cmd
}

func (e *env) load() error {
	getenv := e.opts.Getenv
	if getenv == nil {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		e.cfg = cfg
	} else {
		cfg, err := config.FromEnv(getenv)
		if err != nil {
			return err
		}
		e.cfg = cfg
	}

	if e.flags.output != outputText && e.flags.output != outputYAML {
		return fmt.Errorf("unknown output format %q (use text or yaml)", e.flags.output)
	}
	if e.flags.ownerID <= 0 {
		return fmt.Errorf("owner id must be positive")
	}
	return nil
}

func (e *env) logger(w io.Writer) (*log.Logger, error) {
	level := e.flags.logLevel
	if level == "" {
		level = "warn"
	}
	return logger.NewWithWriter(w, logger.Config{Level: level, Prefix: appName})
}

// withService opens the SQLite store, runs fn and closes the store again.
func (e *env) withService(cmd *cobra.Command, fn func(ctx context.Context, svc *services.HabitService) error) error {
	path := e.flags.dbPath
	if path == "" {
		path = e.cfg.SQLitePath
	}

	l, err := e.logger(cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	db, err := repository.OpenDatabase(ctx, repository.DatabaseConfig{Driver: repository.DriverSQLite, DSN: path})
	if err != nil {
		return err
	}
	defer db.Close()

	opts := []services.Option{
		services.WithLocation(e.cfg.Location),
		services.WithLogger(l),
	}
	if e.opts.Now != nil {
		opts = append(opts, services.WithClock(e.opts.Now))
	}

	l.Debug("store opened", "path", path)
	return fn(ctx, services.NewHabitService(repository.NewSQLHabitRepository(db), opts...))
}
