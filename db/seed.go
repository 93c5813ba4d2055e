package db

import (
	"fmt"
	"log"
	"time"

	"github.com/skillbridge/api/models"
)

// slotTime builds the placeholder-dated timestamps availability rows carry.
// Only the time-of-day component is ever compared.
func slotTime(hour, minute int) time.Time {
	return time.Date(2024, 1, 1, hour, minute, 0, 0, time.UTC)
}

// Seed populates demo data for local development. Safe to run repeatedly.
func Seed() {
	Migrate()

	log.Println("🌱 Starting database seeding...")

	categories := []models.Category{
		{Name: "Mathematics", Description: "Algebra, Calculus, Geometry, Statistics"},
		{Name: "Programming", Description: "Python, JavaScript, Go, Web Development"},
		{Name: "Languages", Description: "English, Spanish, French, German"},
		{Name: "Science", Description: "Physics, Chemistry, Biology"},
		{Name: "Music", Description: "Piano, Guitar, Music Theory"},
	}
	for i, category := range categories {
		var existing models.Category
		if DB.Where("name = ?", category.Name).First(&existing).RowsAffected == 0 {
			DB.Create(&categories[i])
		} else {
			categories[i] = existing
		}
	}

	users := []models.User{
		{Name: "Admin User", Email: "admin@skillbridge.com", EmailVerified: true, Role: models.RoleAdmin, Image: "https://i.pravatar.cc/150?img=1"},
		{Name: "John Smith", Email: "john.tutor@skillbridge.com", EmailVerified: true, Role: models.RoleTutor, Image: "https://i.pravatar.cc/150?img=12"},
		{Name: "Sarah Johnson", Email: "sarah.tutor@skillbridge.com", EmailVerified: true, Role: models.RoleTutor, Image: "https://i.pravatar.cc/150?img=5"},
		{Name: "Michael Chen", Email: "michael.tutor@skillbridge.com", EmailVerified: true, Role: models.RoleTutor, Image: "https://i.pravatar.cc/150?img=8"},
		{Name: "Emily Davis", Email: "emily.tutor@skillbridge.com", EmailVerified: true, Role: models.RoleTutor, Image: "https://i.pravatar.cc/150?img=9"},
		{Name: "Alice Brown", Email: "alice.student@skillbridge.com", EmailVerified: true, Role: models.RoleStudent, Image: "https://i.pravatar.cc/150?img=20"},
		{Name: "Bob Wilson", Email: "bob.student@skillbridge.com", EmailVerified: true, Role: models.RoleStudent, Image: "https://i.pravatar.cc/150?img=33"},
	}
	for i, user := range users {
		var existing models.User
		if DB.Where("email = ?", user.Email).First(&existing).RowsAffected == 0 {
			DB.Create(&users[i])
		} else {
			users[i] = existing
		}
	}

	tutorBios := map[string]struct {
		biography      string
		qualifications string
		categories     []models.Category
	}{
		"john.tutor@skillbridge.com": {
			biography:      "Experienced math tutor with 10 years of teaching at university level.",
			qualifications: "PhD in Mathematics, Stanford University",
			categories:     []models.Category{categories[0], categories[3]},
		},
		"sarah.tutor@skillbridge.com": {
			biography:      "Software engineer turned educator, passionate about making code approachable.",
			qualifications: "MSc Computer Science, 8 years industry experience",
			categories:     []models.Category{categories[1]},
		},
		"michael.tutor@skillbridge.com": {
			biography:      "Polyglot language coach for conversational fluency and exam prep.",
			qualifications: "CELTA certified, fluent in 5 languages",
			categories:     []models.Category{categories[2]},
		},
		"emily.tutor@skillbridge.com": {
			biography:      "Conservatory-trained pianist teaching all ages and levels.",
			qualifications: "BMus Piano Performance, Juilliard",
			categories:     []models.Category{categories[4]},
		},
	}

	weekdays := []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday"}
	for _, user := range users {
		seedData, ok := tutorBios[user.Email]
		if !ok {
			continue
		}

		var profile models.TutorProfile
		if DB.Where("user_id = ?", user.ID).First(&profile).RowsAffected == 0 {
			profile = models.TutorProfile{
				UserID:         user.ID,
				Biography:      seedData.biography,
				Qualifications: seedData.qualifications,
			}
			DB.Create(&profile)
			DB.Model(&profile).Association("Categories").Append(seedData.categories)
		}

		for _, day := range weekdays {
			var slot models.Availability
			if DB.Where("tutor_id = ? AND day_of_week = ?", profile.ID, day).First(&slot).RowsAffected == 0 {
				DB.Create(&models.Availability{
					TutorID:   profile.ID,
					DayOfWeek: day,
					StartTime: slotTime(9, 0),
					EndTime:   slotTime(17, 0),
				})
			}
		}
	}

	fmt.Println("✅ Database seeded successfully!")
}
