// Package cli wires config, logging, storage and the service behind the
// daybook command tree.
package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sandeepkv93/daybook/internal/config"
	"github.com/sandeepkv93/daybook/internal/logging"
	"github.com/sandeepkv93/daybook/internal/metrics"
	"github.com/sandeepkv93/daybook/internal/model"
	"github.com/sandeepkv93/daybook/internal/service"
	"github.com/sandeepkv93/daybook/internal/storage"
)

var Version = "dev"

type RootOptions struct {
	ConfigPath string
	DBPath     string
	LogLevel   string
}

// App is built once per invocation by the root pre-run hook.
type App struct {
	Config config.Config
	Logger *zap.Logger
	Now    func() time.Time

	repo *storage.SQLiteRepository
}

type appContextKey struct{}

func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}
	app := &App{Now: time.Now}

	cmd := &cobra.Command{
		Use:     "daybook",
		Short:   "Tasks, bookmarks, notes and recurring reminders",
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := app.init(cmd, opts); err != nil {
				return err
			}
			cmd.SetContext(context.WithValue(cmd.Context(), appContextKey{}, app))
			return nil
		},
		PersistentPostRunE: func(*cobra.Command, []string) error {
			return app.Close()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := cmd.PersistentFlags()
	pf.StringVarP(&opts.ConfigPath, "config", "c", "", "config file (default: ./daybook.yaml or $HOME/.daybook/daybook.yaml)")
	pf.StringVar(&opts.DBPath, "db", "", "sqlite database path (overrides db_path)")
	pf.StringVar(&opts.LogLevel, "log-level", "", "log level: debug, info, warn, error")

	cmd.AddCommand(
		newServeCmd(),
		newDashboardCmd(),
		newStatsCmd(),
		newRemindersCmd(),
		newDoCmd(),
		newMigrateCmd(),
	)
	return cmd
}

// Execute runs the command tree with ctx and returns the first error.
func Execute(ctx context.Context, args []string) error {
	cmd := NewRootCommand()
	cmd.SetArgs(args)
	return cmd.ExecuteContext(ctx)
}

func (a *App) init(cmd *cobra.Command, opts *RootOptions) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return err
	}
	if opts.DBPath != "" {
		cfg.DBPath = opts.DBPath
	}
	if opts.LogLevel != "" {
		cfg.Log.Level = opts.LogLevel
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	a.Config = cfg

	// The dashboard owns the terminal, so it logs to a file instead.
	if cmd.Name() == "dashboard" {
		a.Logger, err = logging.NewFile(cfg.Log.Level, cfg.Log.File)
	} else {
		a.Logger, err = logging.New(cfg.Log.Level, cfg.Log.Format)
	}
	if err != nil {
		return err
	}
	return nil
}

func appFrom(cmd *cobra.Command) (*App, error) {
	app, ok := cmd.Context().Value(appContextKey{}).(*App)
	if !ok || app == nil {
		return nil, errors.New("cli: app not initialized")
	}
	return app, nil
}

// Service opens the database, migrating it if needed, and returns a service
// bound to it. The repository is closed by the root post-run hook.
func (a *App) Service(m *metrics.Metrics) (*service.Service, error) {
	if a.repo == nil {
		repo, err := storage.OpenSQLite(a.Config.DBPath)
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", a.Config.DBPath, err)
		}
		a.repo = repo
		a.Logger.Debug("database opened", zap.String("path", a.Config.DBPath))
	}
	return service.New(a.repo,
		service.WithLogger(a.Logger),
		service.WithMetrics(m),
		service.WithCloseThreshold(a.Config.Reminders.CloseThreshold),
	), nil
}

func (a *App) Close() error {
	var err error
	if a.repo != nil {
		err = a.repo.Close()
		a.repo = nil
	}
	if a.Logger != nil {
		_ = a.Logger.Sync()
	}
	return err
}

// today resolves a --today flag value, defaulting to the local calendar day.
func (a *App) today(raw string) (model.Date, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return model.DateOf(a.Now()), nil
	}
	return model.ParseDate(raw)
}
