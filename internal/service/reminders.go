package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/sandeepkv93/daybook/internal/model"
	"github.com/sandeepkv93/daybook/internal/storage"
	"github.com/sandeepkv93/daybook/internal/urgency"
)

type ReminderInput struct {
	Content    string `json:"content"`
	Cycle      string `json:"cycle"`
	TargetDate string `json:"target_date"`
}

// An empty cycle means once, matching reminders created before cycles existed.
func (in ReminderInput) apply(r model.Reminder) (model.Reminder, error) {
	cycle := model.CycleOnce
	if strings.TrimSpace(in.Cycle) != "" {
		parsed, err := model.ParseCycle(in.Cycle)
		if err != nil {
			return model.Reminder{}, err
		}
		cycle = parsed
	}
	target, err := model.ParseDate(strings.TrimSpace(in.TargetDate))
	if err != nil {
		return model.Reminder{}, err
	}
	r.Content = strings.TrimSpace(in.Content)
	r.Cycle = cycle
	r.TargetDate = target.String()
	return r, nil
}

func (s *Service) CreateReminder(ctx context.Context, in ReminderInput) (model.Reminder, error) {
	rem, err := in.apply(model.Reminder{ID: s.newID(), CreatedAt: s.clock().UTC()})
	if err != nil {
		return model.Reminder{}, invalid(err)
	}
	if err := rem.Validate(); err != nil {
		return model.Reminder{}, invalid(err)
	}
	if err := s.repo.CreateReminder(ctx, rem); err != nil {
		return model.Reminder{}, fmt.Errorf("create reminder: %w", err)
	}
	s.log.Debug("reminder created",
		zap.String("reminder_id", rem.ID),
		zap.String("cycle", string(rem.Cycle)),
		zap.String("target_date", rem.TargetDate),
	)
	return rem, nil
}

func (s *Service) GetReminder(ctx context.Context, id string) (model.Reminder, error) {
	return s.repo.GetReminder(ctx, id)
}

func (s *Service) UpdateReminder(ctx context.Context, id string, in ReminderInput) (model.Reminder, error) {
	current, err := s.repo.GetReminder(ctx, id)
	if err != nil {
		return model.Reminder{}, err
	}
	rem, err := in.apply(current)
	if err != nil {
		return model.Reminder{}, invalid(err)
	}
	if err := rem.Validate(); err != nil {
		return model.Reminder{}, invalid(err)
	}
	if err := s.repo.UpdateReminder(ctx, rem); err != nil {
		return model.Reminder{}, fmt.Errorf("update reminder: %w", err)
	}
	return rem, nil
}

func (s *Service) DeleteReminder(ctx context.Context, id string) error {
	return s.repo.DeleteReminder(ctx, id)
}

// ListReminders returns every reminder most urgent first. Storage failures
// are the only error; unparseable targets are in Result.Errors.
func (s *Service) ListReminders(ctx context.Context, now model.Date) (urgency.Result, error) {
	all, err := s.repo.ListReminders(ctx, storage.ReminderListFilter{})
	if err != nil {
		return urgency.Result{}, fmt.Errorf("list reminders: %w", err)
	}
	res := urgency.OrderByUrgency(all, now)
	s.reportItemErrors(res.Errors)
	return res, nil
}

func (s *Service) CloseReminders(ctx context.Context, now model.Date, threshold int) (urgency.Result, error) {
	if threshold < 0 {
		return urgency.Result{}, fmt.Errorf("%w: threshold must be >= 0, got %d", ErrInvalidInput, threshold)
	}
	all, err := s.repo.ListReminders(ctx, storage.ReminderListFilter{})
	if err != nil {
		return urgency.Result{}, fmt.Errorf("list reminders: %w", err)
	}
	res := urgency.CloseReminders(all, now, threshold)
	s.reportItemErrors(res.Errors)
	return res, nil
}

// AdvanceReminder moves a recurring reminder to its next occurrence and
// persists it. The write only lands if nobody advanced the reminder since it
// was read; otherwise storage.ErrConflict is returned.
func (s *Service) AdvanceReminder(ctx context.Context, id string) (model.Reminder, error) {
	rem, err := s.repo.GetReminder(ctx, id)
	if err != nil {
		return model.Reminder{}, err
	}
	target, err := rem.Target()
	if err != nil {
		s.metrics.ObserveAdvance(string(rem.Cycle), "invalid_date")
		return model.Reminder{}, err
	}
	next, err := rem.Cycle.Next(target)
	if err != nil {
		outcome := "unknown_cycle"
		switch {
		case errors.Is(err, model.ErrNonRecurring):
			outcome = "not_recurring"
		case errors.Is(err, model.ErrDateOutOfRange):
			outcome = "out_of_range"
		}
		s.metrics.ObserveAdvance(string(rem.Cycle), outcome)
		return model.Reminder{}, err
	}

	if err := s.repo.AdvanceReminderTarget(ctx, rem.ID, rem.TargetDate, next.String()); err != nil {
		if errors.Is(err, storage.ErrConflict) {
			s.metrics.ObserveAdvance(string(rem.Cycle), "conflict")
		}
		return model.Reminder{}, err
	}
	s.metrics.ObserveAdvance(string(rem.Cycle), "ok")
	s.log.Info("reminder advanced",
		zap.String("reminder_id", rem.ID),
		zap.String("cycle", string(rem.Cycle)),
		zap.String("from", rem.TargetDate),
		zap.String("to", next.String()),
	)
	rem.TargetDate = next.String()
	return rem, nil
}

func (s *Service) PreviewReminder(ctx context.Context, id string, count int) ([]model.Date, error) {
	rem, err := s.repo.GetReminder(ctx, id)
	if err != nil {
		return nil, err
	}
	target, err := rem.Target()
	if err != nil {
		return nil, err
	}
	dates, err := rem.Cycle.Preview(target, count)
	if errors.Is(err, model.ErrPreviewTooLong) {
		return nil, invalid(err)
	}
	return dates, err
}

func (s *Service) reportItemErrors(errs []*urgency.ItemError) {
	if len(errs) == 0 {
		return
	}
	s.metrics.AddInvalidTargets(len(errs))
	for _, e := range errs {
		s.log.Warn("reminder skipped",
			zap.String("reminder_id", e.ReminderID),
			zap.String("target_date", e.Value),
			zap.Error(e.Err),
		)
	}
}
