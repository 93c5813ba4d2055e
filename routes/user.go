package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/skillbridge/api/controllers"
	"github.com/skillbridge/api/middleware"
)

// SetupUserRoutes configures the authenticated-user routes
func SetupUserRoutes(app *fiber.App) {
	user := app.Group("/users", middleware.Protected())
	user.Get("/me", controllers.GetMe)
	user.Get("/me/dashboard", controllers.GetMyDashboard)
	user.Patch("/me", controllers.UpdateMyProfile)
	user.Patch("/me/role", controllers.UpdateMyRole)
	user.Post("/me/picture", controllers.UploadProfilePicture)
	user.Get("/:id", controllers.GetUserByID)
}
