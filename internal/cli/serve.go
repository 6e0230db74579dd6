package cli

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sandeepkv93/daybook/internal/httpapi"
	"github.com/sandeepkv93/daybook/internal/metrics"
	"github.com/sandeepkv93/daybook/internal/model"
	"github.com/sandeepkv93/daybook/internal/scheduler"
	"github.com/sandeepkv93/daybook/internal/stats"
)

func newServeCmd() *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the JSON API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := appFrom(cmd)
			if err != nil {
				return err
			}
			if addr != "" {
				app.Config.HTTP.Addr = addr
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return app.serve(ctx)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides http.addr)")
	return cmd
}

func (a *App) serve(ctx context.Context) error {
	m := metrics.New()
	svc, err := a.Service(m)
	if err != nil {
		return err
	}

	gin.SetMode(gin.ReleaseMode)
	router := httpapi.NewRouter(httpapi.Config{
		Service:      svc,
		Logger:       a.Logger.Named("http"),
		Metrics:      m,
		Now:          a.Now,
		PreviewCount: a.Config.Reminders.PreviewCount,
	})
	srv := &http.Server{
		Addr:              a.Config.HTTP.Addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		a.Logger.Info("http server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		return scheduler.Rollover(gctx, a.Now, onDayStart(a.Logger, svc, m))
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.Config.HTTP.ShutdownTimeout)
		defer cancel()
		a.Logger.Info("http server shutting down")
		return srv.Shutdown(shutdownCtx)
	})
	if err := g.Wait(); err != nil {
		return err
	}
	a.Logger.Info("http server stopped")
	return nil
}

type dashboarder interface {
	Dashboard(ctx context.Context, now model.Date) (stats.Snapshot, error)
}

// onDayStart recomputes the dashboard for the day that began at the given
// instant. A successful snapshot refreshes the close reminders gauge; a
// failed one leaves it NaN.
func onDayStart(log *zap.Logger, svc dashboarder, m *metrics.Metrics) func(context.Context, time.Time) {
	return func(ctx context.Context, at time.Time) {
		today := model.DateOf(at)
		snap, err := svc.Dashboard(ctx, today)
		if err != nil {
			m.MarkCloseRemindersStale()
			log.Error("day rollover failed, close reminders gauge is stale",
				zap.Stringer("today", today),
				zap.Error(err),
			)
			return
		}
		log.Info("day started",
			zap.Stringer("today", today),
			zap.Int("close_reminders", len(snap.CloseReminders)),
			zap.Int("open_tasks", snap.OpenTasks),
		)
	}
}
