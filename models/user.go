package models

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

type Role string

const (
	RoleUser    Role = "USER"
	RoleStudent Role = "STUDENT"
	RoleTutor   Role = "TUTOR"
	RoleAdmin   Role = "ADMIN"
)

// ValidRole reports whether r is one of the four known roles.
func ValidRole(r Role) bool {
	switch r {
	case RoleUser, RoleStudent, RoleTutor, RoleAdmin:
		return true
	}
	return false
}

type User struct {
	ID            uint          `json:"id" gorm:"primaryKey"`
	Name          string        `json:"name"`
	Email         string        `json:"email" gorm:"unique"`
	Image         string        `json:"image"`
	EmailVerified bool          `json:"email_verified"`
	Role          Role          `json:"role" gorm:"default:USER"`
	TutorProfile  *TutorProfile `json:"tutor_profile,omitempty" gorm:"foreignKey:UserID"`
	Bookings      []Booking     `json:"bookings,omitempty" gorm:"foreignKey:StudentID"`
	Reviews       []Review      `json:"reviews,omitempty" gorm:"foreignKey:StudentID"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

// PromoteToTutor switches the user to the TUTOR role and guarantees an empty
// tutor profile exists. Safe to call on users that already have a profile.
func (u *User) PromoteToTutor(tx *gorm.DB) error {
	var profile TutorProfile
	err := tx.Where("user_id = ?", u.ID).First(&profile).Error
	if err != nil {
		if err != gorm.ErrRecordNotFound {
			return err
		}
		profile = TutorProfile{UserID: u.ID}
		if err := tx.Create(&profile).Error; err != nil {
			return fmt.Errorf("failed to create tutor profile: %v", err)
		}
	}

	u.Role = RoleTutor
	if err := tx.Model(u).Update("role", RoleTutor).Error; err != nil {
		return err
	}
	u.TutorProfile = &profile
	return nil
}
