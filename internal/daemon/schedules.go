package daemon

import (
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"

	"github.com/hoangitsk2/musicschool/internal/models"
	"github.com/hoangitsk2/musicschool/internal/schedule"
)

// fireSchedules starts a session for every enabled schedule whose day set
// contains today and whose start time equals the current minute. LastFiredAt
// is stamped whether or not the start succeeded, so an empty playlist does
// not cause thrashing re-attempts within the same minute.
func (d *Daemon) fireSchedules(tx *gorm.DB, now time.Time) error {
	minute := now.Format("15:04")
	today := schedule.WeekdayIndex(now.Weekday())

	var schedules []models.Schedule
	if err := tx.Where("enabled = ?", true).Find(&schedules).Error; err != nil {
		return err
	}

	for i := range schedules {
		sched := &schedules[i]
		if sched.StartTime != minute {
			continue
		}
		days, err := schedule.ParseDayString(sched.Days)
		if err != nil {
			log.Printf("⚠️ Schedule %d has invalid day set %q: %v", sched.ID, sched.Days, err)
			continue
		}
		if !containsDay(days, today) {
			continue
		}
		if sched.LastFiredAt != nil && now.Sub(*sched.LastFiredAt) < debounceWindow {
			continue
		}
		if sched.PlaylistID == nil {
			// Inert schedule: matches but never fires.
			continue
		}

		minutes := sched.SessionMinutes
		if minutes < 1 {
			minutes = d.cfg.Daemon.SessionDefaultMinutes
		}
		reason := fmt.Sprintf("schedule:%d", sched.ID)
		if err := d.startSession(tx, *sched.PlaylistID, minutes, reason, now); err != nil {
			return err
		}

		if err := tx.Model(&models.Schedule{}).Where("id = ?", sched.ID).
			Update("last_fired_at", now).Error; err != nil {
			return err
		}
	}
	return nil
}

func containsDay(days []int, day int) bool {
	for _, d := range days {
		if d == day {
			return true
		}
	}
	return false
}
