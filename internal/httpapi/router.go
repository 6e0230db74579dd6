// Package httpapi exposes the daybook service as a JSON API over gin.
package httpapi

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/sandeepkv93/daybook/internal/metrics"
	"github.com/sandeepkv93/daybook/internal/model"
	"github.com/sandeepkv93/daybook/internal/service"
)

type Config struct {
	Service *service.Service
	Logger  *zap.Logger
	Metrics *metrics.Metrics
	// Now supplies the wall clock when a request does not pin ?today=.
	Now          func() time.Time
	PreviewCount int
}

type Handler struct {
	svc          *service.Service
	log          *zap.Logger
	now          func() time.Time
	previewCount int
}

func NewRouter(cfg Config) *gin.Engine {
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}
	h := &Handler{
		svc:          cfg.Service,
		log:          log,
		now:          cfg.Now,
		previewCount: cfg.PreviewCount,
	}
	if h.now == nil {
		h.now = time.Now
	}
	if h.previewCount <= 0 {
		h.previewCount = 5
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestLogger(log, "/healthz", "/metrics"))
	if cfg.Metrics != nil {
		r.Use(Instrument(cfg.Metrics))
		r.GET("/metrics", gin.WrapH(cfg.Metrics.Handler()))
	}
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		api.GET("/stats", h.stats)

		tasks := api.Group("/tasks")
		tasks.GET("", h.listTasks)
		tasks.POST("", h.createTask)
		tasks.PUT("/:id", h.updateTask)
		tasks.DELETE("/:id", h.deleteTask)
		tasks.POST("/:id/done", h.completeTask)
		tasks.POST("/:id/undone", h.reopenTask)

		bookmarks := api.Group("/bookmarks")
		bookmarks.GET("", h.listBookmarks)
		bookmarks.POST("", h.createBookmark)
		bookmarks.PUT("/:id", h.updateBookmark)
		bookmarks.DELETE("/:id", h.deleteBookmark)

		notes := api.Group("/notes")
		notes.GET("", h.listNotes)
		notes.POST("", h.createNote)
		notes.GET("/:id", h.getNote)
		notes.PUT("/:id", h.updateNote)
		notes.DELETE("/:id", h.deleteNote)

		reminders := api.Group("/reminders")
		reminders.GET("", h.listReminders)
		reminders.POST("", h.createReminder)
		reminders.GET("/close", h.closeReminders)
		reminders.PUT("/:id", h.updateReminder)
		reminders.DELETE("/:id", h.deleteReminder)
		reminders.POST("/:id/advance", h.advanceReminder)
		reminders.GET("/:id/preview", h.previewReminder)
	}
	return r
}

// today reads ?today= or falls back to the wall clock's local calendar day.
func (h *Handler) today(c *gin.Context) (model.Date, bool) {
	raw := strings.TrimSpace(c.Query("today"))
	if raw == "" {
		return model.DateOf(h.now()), true
	}
	d, err := model.ParseDate(raw)
	if err != nil {
		badRequest(c, CodeInvalidDateFormat, err.Error())
		return model.Date{}, false
	}
	return d, true
}

// intQuery reads an integer query parameter within [min, max]. A negative
// max means no upper bound.
func intQuery(c *gin.Context, key string, def, min, max int) (int, bool) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return def, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < min {
		badRequest(c, CodeInvalidArgument, key+" must be an integer >= "+strconv.Itoa(min))
		return 0, false
	}
	if max >= 0 && n > max {
		badRequest(c, CodeInvalidArgument, key+" must be <= "+strconv.Itoa(max))
		return 0, false
	}
	return n, true
}

func (h *Handler) stats(c *gin.Context) {
	now, ok := h.today(c)
	if !ok {
		return
	}
	snap, err := h.svc.Dashboard(c.Request.Context(), now)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"today":              snap.Today,
		"open_tasks":         snap.OpenTasks,
		"completed_tasks":    snap.CompletedTasks,
		"completion_ratio":   snap.CompletionRatio,
		"completion_percent": snap.CompletionPercent(),
		"reminders":          snap.Reminders,
		"bookmarks":          snap.Bookmarks,
		"notes":              snap.Notes,
		"close_threshold":    snap.CloseThreshold,
		"close_reminders":    snap.CloseReminders,
		"errors":             snap.ReminderErrors,
	})
}
