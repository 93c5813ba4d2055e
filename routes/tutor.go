package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/skillbridge/api/controllers"
	"github.com/skillbridge/api/middleware"
	"github.com/skillbridge/api/models"
)

// SetupTutorRoutes configures the tutor directory, profile, availability and
// category routes
func SetupTutorRoutes(app *fiber.App) {
	tutor := app.Group("/tutors")

	// Public directory
	tutor.Get("/", controllers.GetAllTutors)
	tutor.Get("/:id<int>", controllers.GetTutor)
	tutor.Get("/:id<int>/availability", controllers.GetTutorAvailability)

	// Tutor self-service
	tutor.Post("/profile", middleware.Protected(), middleware.RequireRole(models.RoleTutor, models.RoleAdmin), controllers.CreateTutorProfile)
	tutor.Patch("/profile", middleware.Protected(), middleware.RequireRole(models.RoleTutor, models.RoleAdmin), controllers.UpdateTutorProfile)
	tutor.Post("/availability", middleware.Protected(), middleware.RequireRole(models.RoleTutor, models.RoleAdmin), controllers.SetAvailability)

	// Categories
	category := app.Group("/categories")
	category.Get("/", controllers.GetAllCategories)
	category.Post("/", middleware.Protected(), middleware.RequireRole(models.RoleAdmin), controllers.CreateCategory)
	category.Patch("/:id", middleware.Protected(), middleware.RequireRole(models.RoleAdmin), controllers.UpdateCategory)
	category.Delete("/:id", middleware.Protected(), middleware.RequireRole(models.RoleAdmin), controllers.DeleteCategory)
}
