package models

import (
	"gorm.io/gorm"
)

// Category is a subject tag tutors attach to their profiles, e.g. "Mathematics".
type Category struct {
	gorm.Model
	Name        string         `json:"name" gorm:"unique;not null"`
	Description string         `json:"description"`
	Tutors      []TutorProfile `json:"tutors,omitempty" gorm:"many2many:tutor_categories;"`
}
