package schemas

import "time"

// JobRun reports one pass of a scheduled job over the configured users.
type JobRun struct {
	Job       string    `json:"job"`
	StartedAt time.Time `json:"started_at"`
	Users     int       `json:"users"`
	Synced    int       `json:"synced,omitempty"`
	Reminders int       `json:"reminders,omitempty"`
	Failures  []string  `json:"failures,omitempty"`
}

// ScheduledJob describes a registered cron job.
type ScheduledJob struct {
	Name    string    `json:"name"`
	NextRun time.Time `json:"next_run"`
}
