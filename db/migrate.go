package db

import (
	"fmt"
	"log"

	"github.com/skillbridge/api/models"
)

func Migrate() {
	// Initialize DB connection
	Init()

	// Run AutoMigrate only when explicitly called
	err := DB.AutoMigrate(
		&models.User{},
		&models.TutorProfile{},
		&models.Category{},
		&models.Availability{},
		&models.Booking{},
		&models.Review{},
	)
	if err != nil {
		log.Fatal("Failed to run migrations: ", err)
	}

	fmt.Println("✅ Migrations applied successfully!")
}
