package tasks

import (
	"context"
	"time"
)

// newAnnouncementBroadcastTask creates the scheduled task that fans out every
// stored announcement to every registered user, one send per pair. A failed
// send is logged and never aborts the remaining fan-out; announcements are
// not deduplicated across schedule firings.
func newAnnouncementBroadcastTask(deps TaskDeps) ScheduledTaskFunc {
	log := deps.Logger.With("task", "announcement_broadcast")

	return func(ctx context.Context) error {
		log.InfoContext(ctx, "Starting announcement broadcast...")
		startTime := time.Now()

		announcements, err := deps.Store.GetAllAnnouncements(ctx)
		if err != nil {
			log.ErrorContext(ctx, "Failed to load announcements", "error", err)
			return err
		}
		users, err := deps.Store.GetAllUsers(ctx)
		if err != nil {
			log.ErrorContext(ctx, "Failed to load users", "error", err)
			return err
		}

		if len(announcements) == 0 || len(users) == 0 {
			log.InfoContext(ctx, "Nothing to broadcast",
				"announcements", len(announcements), "users", len(users))
			return nil
		}

		sent := 0
		failed := 0
		for _, announcement := range announcements {
			for _, user := range users {
				log.DebugContext(ctx, "Sending announcement",
					"announcement_id", announcement.ID, "chat_id", user.ChatID)

				if _, err := deps.Gateway.SendText(ctx, user.ChatID, announcement.Text, nil); err != nil {
					log.ErrorContext(ctx, "Failed to send announcement",
						"error", err, "announcement_id", announcement.ID, "chat_id", user.ChatID)
					failed++
					continue
				}
				sent++
			}
		}

		log.InfoContext(ctx, "Announcement broadcast finished",
			"announcements", len(announcements), "users", len(users),
			"sent", sent, "failed", failed, "duration", time.Since(startTime))
		return nil
	}
}
