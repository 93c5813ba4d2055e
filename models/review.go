package models

import (
	"time"

	"gorm.io/gorm"
)

// Review rates a completed (or about-to-be-completed) booking. Rating is a
// string-encoded integer "1".."5", matching what the directory's average
// computation parses.
type Review struct {
	gorm.Model
	StudentID  uint         `json:"student_id"`
	Student    User         `json:"student,omitempty" gorm:"foreignKey:StudentID"`
	TutorID    uint         `json:"tutor_id"`
	Tutor      TutorProfile `json:"tutor,omitempty" gorm:"foreignKey:TutorID"`
	BookingID  uint         `json:"booking_id"`
	Rating     string       `json:"rating" gorm:"not null"`
	Comment    string       `json:"comment"`
	ReviewDate time.Time    `json:"review_date"`
}

func (r *Review) BeforeCreate(tx *gorm.DB) error {
	if r.ReviewDate.IsZero() {
		r.ReviewDate = time.Now()
	}
	return nil
}

// HasExistingReview checks whether the booking has already been reviewed.
func (r *Review) HasExistingReview(tx *gorm.DB) (bool, error) {
	var count int64
	err := tx.Model(&Review{}).
		Where("booking_id = ? AND deleted_at IS NULL", r.BookingID).
		Count(&count).Error

	return count > 0, err
}
