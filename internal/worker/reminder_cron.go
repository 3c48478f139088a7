package worker

// reminder_cron.go
// Background goroutine that periodically scans for orders stuck in "pending"
// longer than the configured window and emails the shop admin a digest.
// Goes through the SMTP circuit breaker so a downed relay is not hammered.

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/AbyssT34/Ecommerce-Shop/internal/infra"
	"github.com/AbyssT34/Ecommerce-Shop/internal/repository"

	"github.com/rs/zerolog/log"
)

const reminderTickInterval = 1 * time.Hour

// ReminderCronConfig holds all dependencies for the reminder goroutine.
type ReminderCronConfig struct {
	OrderRepo    repository.OrderRepository
	Mailer       *infra.Mailer
	CB           *infra.CircuitBreaker
	AdminEmail   string
	PendingHours int
}

// StartReminderCron launches a background goroutine that ticks hourly,
// queries stale pending orders, and mails the admin a digest.
// It respects the context for graceful shutdown.
func StartReminderCron(ctx context.Context, cfg ReminderCronConfig) {
	go func() {
		ticker := time.NewTicker(reminderTickInterval)
		defer ticker.Stop()

		log.Info().Msg("reminder_cron: started")

		for {
			select {
			case <-ctx.Done():
				log.Info().Msg("reminder_cron: shutting down")
				return
			case <-ticker.C:
				processReminders(ctx, cfg)
			}
		}
	}()
}

func processReminders(ctx context.Context, cfg ReminderCronConfig) {
	if cfg.AdminEmail == "" {
		return
	}
	// If CB is open, skip entirely — don't hammer a downed relay
	if cfg.CB.State() == infra.CBOpen {
		log.Debug().Msg("reminder_cron: circuit breaker is open, skipping tick")
		return
	}

	cutoff := time.Now().Add(-time.Duration(cfg.PendingHours) * time.Hour)
	orders, err := cfg.OrderRepo.FindPendingOlderThan(ctx, cutoff)
	if err != nil {
		log.Error().Err(err).Msg("reminder_cron: failed to query stale pending orders")
		return
	}
	if len(orders) == 0 {
		return
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%d order(s) have been pending for more than %d hours:\n\n", len(orders), cfg.PendingHours)
	for i := range orders {
		o := &orders[i]
		fmt.Fprintf(&b, "- %s  total $%s  placed %s\n",
			o.ID, o.TotalAmount.StringFixed(2), o.CreatedAt.Format("02 Jan 2006 15:04"))
	}
	b.WriteString("\nPlease review them in the admin panel.")

	subject := fmt.Sprintf("Reminder: %d pending order(s) need review", len(orders))
	cbErr := cfg.CB.Execute(func() error {
		return cfg.Mailer.Send(cfg.AdminEmail, subject, b.String(), "")
	})
	if cbErr != nil {
		log.Warn().Err(cbErr).Msg("reminder_cron: failed to send admin digest")
		return
	}
	log.Info().Int("count", len(orders)).Msg("reminder_cron: admin digest sent")
}
