package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/skillbridge/api/controllers"
	"github.com/skillbridge/api/middleware"
	"github.com/skillbridge/api/models"
)

// SetupAdminRoutes configures the admin panel routes
func SetupAdminRoutes(app *fiber.App) {
	admin := app.Group("/admin", middleware.Protected(), middleware.RequireRole(models.RoleAdmin))
	admin.Get("/users", controllers.GetAllUsers)
	admin.Patch("/users/:id", controllers.UpdateUserStatus)
	admin.Delete("/users/:id", controllers.DeleteUser)
	admin.Get("/bookings", controllers.GetAdminBookings)
	admin.Get("/stats", controllers.GetAdminStats)
}
