package models

import (
	"gorm.io/gorm"
)

type TutorProfile struct {
	gorm.Model
	UserID         uint           `json:"user_id" gorm:"uniqueIndex"`
	User           User           `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Biography      string         `json:"biography"`
	Qualifications string         `json:"qualifications"`
	ProfileImage   string         `json:"profile_image"`
	Categories     []Category     `json:"categories,omitempty" gorm:"many2many:tutor_categories;"`
	Availability   []Availability `json:"availability,omitempty" gorm:"foreignKey:TutorID"`
	Bookings       []Booking      `json:"bookings,omitempty" gorm:"foreignKey:TutorID"`
	Reviews        []Review       `json:"reviews,omitempty" gorm:"foreignKey:TutorID"`
}
