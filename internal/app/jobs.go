package app

import (
	"context"
	"fmt"
	"time"

	"github.com/durendeer/petcare/internal/booking"
	"github.com/durendeer/petcare/internal/domain"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

var cronParser = cron.NewParser(
	cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

func (a *Application) initJob() {
	loc, _ := time.LoadLocation(a.appConfig.System.Location)
	a.sched = cron.New(cron.WithLocation(loc), cron.WithParser(cronParser))

	var err error
	_, err = a.sched.AddFunc("@hourly", func() {
		a.SchedAppointmentReminderTask()
	})
	if err != nil {
		zap.S().Errorf("init job error %s", err.Error())
	}

	_, err = a.sched.AddFunc("@daily", func() {
		a.gormDB.
			Where("opt_time < ? ", time.Now().
				Add(-time.Hour*24*365)).Delete(domain.SysOprLog{})
	})
	if err != nil {
		zap.S().Errorf("init job error %s", err.Error())
	}

	a.sched.Start()
}

// SchedAppointmentReminderTask emails owners of confirmed appointments in
// the next 24 hours.
func (a *Application) SchedAppointmentReminderTask() {
	defer func() {
		if err := recover(); err != nil {
			zap.S().Error(err)
		}
	}()

	repo := booking.NewGormAppointmentRepository(a.gormDB)
	upcoming, err := repo.FindUpcoming(context.Background(), 24*time.Hour)
	if err != nil {
		zap.L().Error("appointment reminder query failed", zap.Error(err))
		return
	}

	for _, appt := range upcoming {
		if appt.User == nil || appt.User.Email == "" {
			continue
		}
		a.dispatcher.Dispatch("email", appt.User.Email,
			"Appointment Reminder",
			fmt.Sprintf("Reminder: your appointment is scheduled for %s.",
				appt.ScheduledAt.Format(time.RFC1123)))
	}

	if len(upcoming) > 0 {
		zap.L().Info("appointment reminders dispatched", zap.Int("count", len(upcoming)))
	}
}
