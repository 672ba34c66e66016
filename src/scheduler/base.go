package scheduler

import (
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// IST is the timezone every schedule is evaluated in; broker sessions and
// market hours follow it.
var IST = time.FixedZone("IST", 5*3600+1800)

type ScheduledTask struct {
	Name   string
	cronID cron.EntryID
	cron   *cron.Cron
	cancel chan struct{}
}

// NewScheduledTask starts running taskFunc on cronSpec. A run that is still
// going when the next one is due makes the next one skip. Panics are
// recovered inside the skip guard so a panicking run still frees the slot.
func NewScheduledTask(name, cronSpec string, logger *logrus.Logger, taskFunc func()) (*ScheduledTask, error) {
	c := cron.New(
		cron.WithLocation(IST),
		cron.WithChain(cron.SkipIfStillRunning(cronLogger{logger}), cron.Recover(cronLogger{logger})),
	)
	cancel := make(chan struct{})
	task := &ScheduledTask{
		Name:   name,
		cron:   c,
		cancel: cancel,
	}

	id, err := c.AddFunc(cronSpec, func() {
		select {
		case <-cancel:
			return
		default:
			taskFunc()
		}
	})
	if err != nil {
		return nil, err
	}

	task.cronID = id
	c.Start()
	return task, nil
}

// Next is when the task runs next.
func (s *ScheduledTask) Next() time.Time {
	return s.cron.Entry(s.cronID).Next
}

func (s *ScheduledTask) Cancel() {
	s.cron.Remove(s.cronID)
	close(s.cancel)
	s.cron.Stop()
}

// cronLogger adapts logrus to cron.Logger.
type cronLogger struct {
	logger *logrus.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.WithFields(toFields(keysAndValues)).Debug(msg)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.logger.WithFields(toFields(keysAndValues)).WithError(err).Error(msg)
}

func toFields(keysAndValues []interface{}) logrus.Fields {
	fields := logrus.Fields{}
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		if key, ok := keysAndValues[i].(string); ok {
			fields[key] = keysAndValues[i+1]
		}
	}
	return fields
}
