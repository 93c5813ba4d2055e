package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/skillbridge/api/controllers"
	"github.com/skillbridge/api/middleware"
	"github.com/skillbridge/api/models"
)

// SetupBookingRoutes configures all booking related routes
func SetupBookingRoutes(app *fiber.App) {
	booking := app.Group("/bookings", middleware.Protected())
	booking.Get("/", controllers.GetUserBookings)
	booking.Get("/:id", controllers.GetBooking)
	booking.Post("/", middleware.RequireRole(models.RoleStudent, models.RoleAdmin), controllers.CreateBooking)
	booking.Patch("/:id", middleware.RequireRole(models.RoleTutor, models.RoleAdmin), controllers.UpdateBookingStatus)
}
