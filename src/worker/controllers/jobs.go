package controllers

import (
	"context"
	"fmt"
	"sort"
	"time"

	"famwealth/src/config"
	"famwealth/src/scheduler"
	"famwealth/src/schemas"
	"famwealth/src/utils"
)

// jobTimeout bounds one scheduled pass over every user.
const jobTimeout = 10 * time.Minute

// SyncAllUsers runs an orchestrated broker sync for every configured user.
// A failing user does not stop the others.
func (c *Controller) SyncAllUsers(ctx context.Context) (*schemas.JobRun, error) {
	run := &schemas.JobRun{Job: JobSyncAll, StartedAt: c.now(), Users: len(c.UserIDs)}
	for _, userID := range c.UserIDs {
		responses, err := c.Brokers.SyncAll(ctx, userID)
		for _, resp := range responses {
			run.Synced += len(resp.Results)
		}
		if err != nil {
			run.Failures = append(run.Failures, fmt.Sprintf("%s: %v", userID, err))
		}
		if ctx.Err() != nil {
			return run, ctx.Err()
		}
	}
	return run, nil
}

// RegenerateAllReminders rebuilds the automatic reminders of every configured user.
func (c *Controller) RegenerateAllReminders(ctx context.Context) (*schemas.JobRun, error) {
	run := &schemas.JobRun{Job: JobReminders, StartedAt: c.now(), Users: len(c.UserIDs)}
	for _, userID := range c.UserIDs {
		reminders, err := c.Reminders.RegenerateAutomaticReminders(ctx, userID, run.StartedAt)
		if err != nil {
			run.Failures = append(run.Failures, fmt.Sprintf("%s: %v", userID, err))
			continue
		}
		run.Reminders += len(reminders)
		if ctx.Err() != nil {
			return run, ctx.Err()
		}
	}
	return run, nil
}

// ScheduleJob registers taskFunc under name, replacing a job already
// scheduled with that name.
func (c *Controller) ScheduleJob(name, cronSpec string, taskFunc func(context.Context) (*schemas.JobRun, error)) error {
	c.SchedulerMutex.Lock()
	if existingTask, exists := c.Schedulers[name]; exists {
		existingTask.Cancel()
		delete(c.Schedulers, name)
	}
	c.SchedulerMutex.Unlock()

	newTask, err := scheduler.NewScheduledTask(name, cronSpec, c.Logger, func() {
		ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
		defer cancel()

		logger := c.Logger.WithField("job", name)
		ctx = utils.WithLogger(ctx, logger)
		run, err := taskFunc(ctx)
		if err != nil {
			logger.WithError(err).Error("scheduled job failed")
			return
		}
		if run != nil && len(run.Failures) > 0 {
			logger.WithField("failures", run.Failures).Warn("scheduled job finished with failures")
			return
		}
		logger.Info("scheduled job finished")
	})
	if err != nil {
		return utils.NewValidationError("cron", fmt.Sprintf("%q: %v", cronSpec, err))
	}

	c.SchedulerMutex.Lock()
	c.Schedulers[name] = newTask
	c.SchedulerMutex.Unlock()

	return nil
}

// LoadSchedules registers the cron jobs named in cfg. Empty expressions
// leave the job unscheduled.
func (c *Controller) LoadSchedules(cfg config.SchedulerConfig) error {
	if cfg.SyncCron != "" {
		if err := c.ScheduleJob(JobSyncAll, cfg.SyncCron, c.SyncAllUsers); err != nil {
			return err
		}
	}
	if cfg.ReminderCron != "" {
		if err := c.ScheduleJob(JobReminders, cfg.ReminderCron, c.RegenerateAllReminders); err != nil {
			return err
		}
	}
	return nil
}

// ListJobs returns the registered jobs ordered by name.
func (c *Controller) ListJobs() []schemas.ScheduledJob {
	tasks := c.GetSchedulers()
	jobs := make([]schemas.ScheduledJob, 0, len(tasks))
	for name, task := range tasks {
		jobs = append(jobs, schemas.ScheduledJob{Name: name, NextRun: task.Next()})
	}
	sort.Slice(jobs, func(i, j int) bool { return jobs[i].Name < jobs[j].Name })
	return jobs
}
