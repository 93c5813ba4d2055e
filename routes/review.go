package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/skillbridge/api/controllers"
	"github.com/skillbridge/api/middleware"
	"github.com/skillbridge/api/models"
)

// SetupReviewRoutes configures all review related routes
func SetupReviewRoutes(app *fiber.App) {
	review := app.Group("/reviews")
	review.Get("/", controllers.GetAllReviews)
	review.Get("/tutor/:id", controllers.GetTutorReviews)
	review.Get("/student/:id", controllers.GetStudentReviews)
	review.Get("/:id", controllers.GetReview)
	review.Post("/", middleware.Protected(), middleware.RequireRole(models.RoleStudent, models.RoleAdmin), controllers.CreateReview)
}
