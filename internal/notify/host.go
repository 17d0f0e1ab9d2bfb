package notify

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// Notification is one reminder handed to the host notification service.
type Notification struct {
	ID     string    `json:"id"`
	Title  string    `json:"title"`
	Body   string    `json:"body"`
	FireAt time.Time `json:"fireAt"`
}

// Host is the OS notification collaborator. The planner is the sole
// producer of the reminder list and never reads scheduled state back:
// reconciliation is cancel-all followed by schedule-all.
type Host interface {
	RequestPermission(ctx context.Context) (bool, error)
	CancelAll(ctx context.Context) error
	ScheduleAll(ctx context.Context, notifications []Notification) error
}

// LogHost is the default local adapter. It always grants permission and
// records the schedule in the log, which is all a headless deployment can
// do with OS-level reminders.
type LogHost struct {
	logger zerolog.Logger
}

func NewLogHost(logger zerolog.Logger) *LogHost {
	return &LogHost{logger: logger}
}

func (h *LogHost) RequestPermission(_ context.Context) (bool, error) {
	return true, nil
}

func (h *LogHost) CancelAll(_ context.Context) error {
	h.logger.Debug().Msg("cancelled all scheduled reminders")
	return nil
}

func (h *LogHost) ScheduleAll(_ context.Context, notifications []Notification) error {
	for _, notification := range notifications {
		h.logger.Info().
			Str("id", notification.ID).
			Str("title", notification.Title).
			Time("fire_at", notification.FireAt).
			Msg("scheduled reminder")
	}
	return nil
}
