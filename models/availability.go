package models

import (
	"time"

	"gorm.io/gorm"
)

// Availability is a weekly recurring window during which a tutor accepts
// bookings. StartTime and EndTime are stored as full timestamps but only
// their time-of-day component is meaningful; the date part is a placeholder.
// One row per (tutor, weekday), enforced by the unique index and the upsert
// in the availability endpoint.
type Availability struct {
	gorm.Model
	TutorID   uint         `json:"tutor_id" gorm:"uniqueIndex:idx_tutor_day"`
	Tutor     TutorProfile `json:"tutor,omitempty" gorm:"foreignKey:TutorID"`
	DayOfWeek string       `json:"day_of_week" gorm:"uniqueIndex:idx_tutor_day"` // weekday name, e.g. "Tuesday"
	StartTime time.Time    `json:"start_time"`
	EndTime   time.Time    `json:"end_time"`
}
