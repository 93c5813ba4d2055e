package main

import (
	"log"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"

	"github.com/skillbridge/api/cron"
	"github.com/skillbridge/api/db"
	"github.com/skillbridge/api/redis"
	"github.com/skillbridge/api/routes"
)

func main() {
	app := fiber.New()
	db.Init()
	db.Migrate()

	if os.Getenv("SEED") == "true" {
		db.Seed()
	}

	if os.Getenv("REDIS_ADDR") != "" {
		redis.InitRedis()
	}

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
	}))

	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("SkillBridge API")
	})
	routes.SetupTutorRoutes(app)
	routes.SetupBookingRoutes(app)
	routes.SetupReviewRoutes(app)
	routes.SetupUserRoutes(app)
	routes.SetupAdminRoutes(app)

	cron.StartCronJobs()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8000"
	}
	log.Fatal(app.Listen(":" + port))
}
