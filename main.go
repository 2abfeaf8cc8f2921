package main

import (
	"hub/config"
	"hub/database"
	authRoutes "hub/routers/authRoutes"
	donationRoutes "hub/routers/donationRoutes"
	forumRoutes "hub/routers/forumRoutes"
	moderationRoutes "hub/routers/moderationRoutes"
	serverRoutes "hub/routers/serverRoutes"
	ticketRoutes "hub/routers/ticketRoutes"
	"hub/utils"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func main() {
	config.LoadConfig()
	database.ConnectDb()

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE",
		AllowHeaders: "Content-Type,Authorization,X-Cron-Secret",
	}))

	// Enable the built-in logger middleware to log all requests
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${ip} ${method} ${path} ${status} ${latency}\n",
	}))

	authRoutes.SetupAuthRoutes(app)
	ticketRoutes.SetupTicketRoutes(app)
	donationRoutes.SetupDonationRoutes(app)
	forumRoutes.SetupForumRoutes(app)
	moderationRoutes.SetupModerationRoutes(app)
	serverRoutes.SetupServerRoutes(app)

	utils.InitializeUptimeScheduler()
	utils.InitializeRankScheduler()

	log.Printf("Server is running on port %s", config.AppConfig.Port)
	log.Fatal(app.Listen(":" + config.AppConfig.Port))
}
