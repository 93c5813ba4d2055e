package utils

import (
	"fmt"
	"time"

	"github.com/skillbridge/api/db"
	"github.com/skillbridge/api/models"
)

// NoAvailabilityError means the tutor has no slot at all on the requested weekday.
type NoAvailabilityError struct {
	Day string
}

func (e *NoAvailabilityError) Error() string {
	return fmt.Sprintf("Tutor is not available on %s. Available days: Check tutor schedule.", e.Day)
}

// OutsideWindowError means the requested time falls outside the slot for that weekday.
type OutsideWindowError struct {
	Start time.Time
	End   time.Time
}

func (e *OutsideWindowError) Error() string {
	return fmt.Sprintf("Session time must be between %s and %s",
		e.Start.UTC().Format("3:04 PM"), e.End.UTC().Format("3:04 PM"))
}

// minutesOfDay extracts the time-of-day component in minutes, in UTC.
func minutesOfDay(t time.Time) int {
	t = t.UTC()
	return t.Hour()*60 + t.Minute()
}

// MatchAvailability checks a session timestamp against a tutor's weekly slots.
// The weekday is derived in UTC and only the time-of-day component of the
// stored start/end is compared; the stored date part is a placeholder and one
// weekly slot matches any future date falling on that weekday. Boundary times
// are accepted.
func MatchAvailability(slots []models.Availability, sessionTime time.Time) error {
	day := sessionTime.UTC().Weekday().String()

	var slotForDay *models.Availability
	for i := range slots {
		if slots[i].DayOfWeek == day {
			slotForDay = &slots[i]
			break
		}
	}
	if slotForDay == nil {
		return &NoAvailabilityError{Day: day}
	}

	session := minutesOfDay(sessionTime)
	if session < minutesOfDay(slotForDay.StartTime) || session > minutesOfDay(slotForDay.EndTime) {
		return &OutsideWindowError{Start: slotForDay.StartTime, End: slotForDay.EndTime}
	}

	return nil
}

// CheckTutorAvailability loads the tutor's weekly slots and matches the
// session timestamp against them.
func CheckTutorAvailability(tutorProfileID uint, sessionTime time.Time) error {
	var slots []models.Availability
	if err := db.DB.Where("tutor_id = ?", tutorProfileID).Find(&slots).Error; err != nil {
		return fmt.Errorf("failed to load tutor availability: %v", err)
	}
	return MatchAvailability(slots, sessionTime)
}
