package jobs

import (
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// InitCronJobs registers the backup on schedule and starts c.
func InitCronJobs(c *cron.Cron, schedule string, backup *BackupService, log *zerolog.Logger) error {
	if backup != nil {
		if _, err := c.AddFunc(schedule, backup.Run); err != nil {
			return err
		}
		log.Info().Str("schedule", schedule).Msg("backup job scheduled")
	}
	c.Start()
	return nil
}
