package controllers

import (
	"sync"
	"time"

	"famwealth/src/scheduler"
	"famwealth/src/services"

	"github.com/sirupsen/logrus"
)

const (
	JobSyncAll   = "sync-all"
	JobReminders = "reminders"
)

type Controller struct {
	Brokers        services.BrokerSyncServiceI
	Reminders      services.ReminderServiceI
	UserIDs        []string
	Logger         *logrus.Logger
	SchedulerMutex sync.Mutex
	Schedulers     map[string]*scheduler.ScheduledTask
	now            func() time.Time
}

func NewController(brokers services.BrokerSyncServiceI, reminders services.ReminderServiceI, userIDs []string, logger *logrus.Logger) *Controller {
	return &Controller{
		Brokers:    brokers,
		Reminders:  reminders,
		UserIDs:    userIDs,
		Logger:     logger,
		Schedulers: map[string]*scheduler.ScheduledTask{},
		now:        time.Now,
	}
}

func (c *Controller) GetSchedulers() map[string]*scheduler.ScheduledTask {
	c.SchedulerMutex.Lock()
	defer c.SchedulerMutex.Unlock()

	out := make(map[string]*scheduler.ScheduledTask, len(c.Schedulers))
	for name, task := range c.Schedulers {
		out[name] = task
	}
	return out
}

// Stop cancels every scheduled task.
func (c *Controller) Stop() {
	c.SchedulerMutex.Lock()
	defer c.SchedulerMutex.Unlock()

	for name, task := range c.Schedulers {
		task.Cancel()
		delete(c.Schedulers, name)
	}
}
