package models

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

type BookingStatus string

const (
	StatusPending   BookingStatus = "PENDING"
	StatusCompleted BookingStatus = "COMPLETED"
	StatusCancelled BookingStatus = "CANCELLED"
)

// ValidBookingStatus reports whether s is one of the three known statuses.
func ValidBookingStatus(s BookingStatus) bool {
	switch s {
	case StatusPending, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

type Booking struct {
	gorm.Model
	StudentID   uint          `json:"student_id"`
	Student     User          `json:"student,omitempty" gorm:"foreignKey:StudentID"`
	TutorID     uint          `json:"tutor_id"` // references TutorProfile.ID, never User.ID
	Tutor       TutorProfile  `json:"tutor,omitempty" gorm:"foreignKey:TutorID"`
	SessionDate time.Time     `json:"session_date"`
	SessionLink string        `json:"session_link"`
	Status      BookingStatus `json:"status"`
}

func (b *Booking) BeforeCreate(tx *gorm.DB) error {
	if b.Status == "" {
		b.Status = StatusPending
	}
	return nil
}

// UpdateStatus applies the booking state machine: a PENDING booking may move
// to COMPLETED or CANCELLED, terminal states accept no further transitions.
// Review submission does not go through here; it marks the booking COMPLETED
// directly whatever its prior status.
func (b *Booking) UpdateStatus(tx *gorm.DB, newStatus BookingStatus) error {
	if !ValidBookingStatus(newStatus) {
		return fmt.Errorf("invalid status. Must be one of: %s, %s, %s", StatusPending, StatusCompleted, StatusCancelled)
	}

	switch b.Status {
	case StatusPending:
		if newStatus != StatusCompleted && newStatus != StatusCancelled {
			return fmt.Errorf("invalid transition from %s to %s", b.Status, newStatus)
		}
	case StatusCompleted, StatusCancelled:
		return fmt.Errorf("no transitions allowed from %s", b.Status)
	}

	b.Status = newStatus
	return tx.Model(b).Update("status", newStatus).Error
}
