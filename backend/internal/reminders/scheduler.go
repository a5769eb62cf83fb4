package reminders

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/daddyparodz/nametag/backend/internal/store"
	"github.com/daddyparodz/nametag/backend/pkg/errors"
	"github.com/daddyparodz/nametag/backend/pkg/logger"
)

// Ledger is the slice of the store the scheduler needs.
type Ledger interface {
	ReminderCandidates(ctx context.Context) ([]store.ReminderCandidate, error)
	MarkReminderSent(ctx context.Context, dateID string, sentAt time.Time) error
}

// Scheduler periodically scans reminder candidates and delivers the due
// ones.
type Scheduler struct {
	ledger   Ledger
	notifier Notifier
	interval time.Duration
	logger   *zap.Logger
	now      func() time.Time
}

// NewScheduler creates a scheduler scanning at the given interval.
func NewScheduler(ledger Ledger, notifier Notifier, interval time.Duration) *Scheduler {
	return &Scheduler{
		ledger:   ledger,
		notifier: notifier,
		interval: interval,
		logger:   logger.Get(),
		now:      time.Now,
	}
}

// Run scans once immediately and then on every tick until the context is
// cancelled.
func (s *Scheduler) Run(ctx context.Context) error {
	s.logger.Info("Reminder scheduler started",
		zap.Duration("interval", s.interval),
	)

	if err := s.RunOnce(ctx); err != nil {
		s.logger.Error("Reminder scan failed", zap.Error(err))
	}

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("Reminder scheduler stopped")
			return ctx.Err()
		case <-ticker.C:
			if err := s.RunOnce(ctx); err != nil {
				s.logger.Error("Reminder scan failed", zap.Error(err))
			}
		}
	}
}

// RunOnce performs a single scan-and-deliver pass. Delivery failures are
// logged and skipped; the date is only stamped after successful delivery so
// a failed reminder is retried on the next pass.
func (s *Scheduler) RunOnce(ctx context.Context) error {
	candidates, err := s.ledger.ReminderCandidates(ctx)
	if err != nil {
		return fmt.Errorf("failed to scan reminder candidates: %w", err)
	}

	now := s.now()
	sent := 0
	for _, c := range candidates {
		if !Due(c, now) {
			continue
		}
		if c.UserDiscordID == "" {
			s.logger.Warn("Skipping reminder without delivery channel",
				zap.String("date_id", c.DateID),
				zap.Error(errors.NewNoDeliveryChannel(c.UserID)),
			)
			continue
		}

		message := formatMessage(c)
		if err := s.notifier.Notify(ctx, c.UserDiscordID, message); err != nil {
			s.logger.Warn("Failed to deliver reminder",
				zap.String("date_id", c.DateID),
				zap.String("user_id", c.UserID),
				zap.Error(err),
			)
			continue
		}
		if err := s.ledger.MarkReminderSent(ctx, c.DateID, now); err != nil {
			s.logger.Error("Failed to mark reminder sent",
				zap.String("date_id", c.DateID),
				zap.Error(err),
			)
			continue
		}
		sent++
	}

	s.logger.Info("Reminder scan complete",
		zap.Int("candidates", len(candidates)),
		zap.Int("sent", sent),
	)
	return nil
}

func formatMessage(c store.ReminderCandidate) string {
	return fmt.Sprintf("📅 Reminder: %s for %s (%s)", c.Title, c.PersonName, c.Date.Format("January 2"))
}
