package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"

	"bookapi/aggregator"
	"bookapi/config"
	bookController "bookapi/controllers/book"
	reviewController "bookapi/controllers/review"
	userController "bookapi/controllers/user"
	"bookapi/database"
	"bookapi/middleware"
	"bookapi/routers/bookRoutes"
	"bookapi/routers/reviewRoutes"
	"bookapi/routers/userRoutes"
	"bookapi/utils"
)

func main() {
	cfg := config.Load()

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	agg := aggregator.New(db)

	app := fiber.New(fiber.Config{
		ErrorHandler: middleware.ErrorHandler,
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE",
		AllowHeaders: "Content-Type,Authorization",
	}))

	// Enable the built-in logger middleware to log all requests
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${ip} ${method} ${path} ${status} ${latency}\n",
	}))

	userRoutes.SetupUserRoutes(app, userController.New(db, cfg.JWTKey, cfg.SaltRound), cfg.JWTKey)
	bookRoutes.SetupBookRoutes(app, bookController.New(db), cfg.JWTKey)
	reviewRoutes.SetupReviewRoutes(app, reviewController.New(db, agg), cfg.JWTKey)

	app.Use(middleware.NotFound)

	reconciler := utils.StartReconciler(agg)

	// Graceful teardown: stop accepting requests, stop the reconciler,
	// close the store handle.
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit

		log.Println("Shutting down...")
		if err := app.Shutdown(); err != nil {
			log.Printf("Error shutting down server: %v", err)
		}
	}()

	log.Printf("Server is running on port %s", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Printf("Server stopped: %v", err)
	}

	reconciler.Stop()
	if err := database.Close(db); err != nil {
		log.Printf("Error closing database: %v", err)
	}
}
