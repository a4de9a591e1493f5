package scheduler

import (
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

type ScheduledTask struct {
	cronID cron.EntryID
	cron   *cron.Cron
	cancel chan struct{}
}

// NewScheduledTask runs taskFunc on the given cron schedule. A panicking
// task is recovered and logged so one bad run cannot kill the scheduler
// goroutine.
func NewScheduledTask(cronSpec string, logger *logrus.Logger, taskFunc func()) (*ScheduledTask, error) {
	c := cron.New()
	cancel := make(chan struct{})
	task := &ScheduledTask{
		cron:   c,
		cancel: cancel,
	}

	id, err := c.AddFunc(cronSpec, func() {
		select {
		case <-cancel:
			return
		default:
		}
		defer func() {
			if r := recover(); r != nil {
				logger.Errorf("Scheduled task panicked: %v", r)
			}
		}()
		taskFunc()
	})
	if err != nil {
		return nil, err
	}

	task.cronID = id
	c.Start()
	return task, nil
}

func (s *ScheduledTask) Cancel() {
	s.cron.Remove(s.cronID)
	close(s.cancel)
}
