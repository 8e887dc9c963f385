package bot

import (
	"context"
	"fmt"
	"log"

	"github.com/robfig/cron/v3"
)

// Midnight on the first of every month; each invocation archives the
// month that just ended.
const monthlySchedule = "0 0 1 * *"

// startScheduler starts the monthly cron job.
func (b *Bot) startScheduler() error {
	log.Println("Initializing scheduler...")
	c := cron.New()
	_, err := c.AddFunc(monthlySchedule, func() {
		log.Println("Running scheduled monthly archive...")
		b.RunArchive(context.Background(), false)
	})
	if err != nil {
		return fmt.Errorf("could not set up cron job: %w", err)
	}
	c.Start()
	b.cron = c
	log.Println("Cron job scheduled for midnight on the first of each month.")

	// Perform an archive run on startup based on config.
	if b.Config.RunAtStartup {
		go func() {
			log.Println("Performing archive run on startup...")
			b.RunArchive(context.Background(), false)
		}()
	} else {
		log.Println("Skipping startup run as per configuration.")
	}
	return nil
}

// stopScheduler stops the cron jobs.
func (b *Bot) stopScheduler() {
	if b.cron != nil {
		b.cron.Stop()
		log.Println("Scheduler stopped.")
	}
}
