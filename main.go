package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"hotel-booking-backend/config"
	"hotel-booking-backend/controllers"
	"hotel-booking-backend/routes"
	"hotel-booking-backend/services"
	"hotel-booking-backend/storage"
)

func main() {
	// Load .env (optional)
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  .env not found or couldn't load it; continuing with environment variables")
	}

	// Connect database (config.ConnectDatabase should set config.DB)
	if err := config.ConnectDatabase(); err != nil {
		log.Fatalf("❌ Database connect failed: %v", err)
	}
	db := config.DB
	if db == nil {
		log.Fatal("❌ config.DB is nil after ConnectDatabase()")
	}
	log.Println("✅ Database connection established and migrations applied.")

	blobs := storage.FromEnv()

	// Notifier is shared by the room service (publisher) and the event
	// stream endpoint (subscribers).
	notifier := services.NewChangeNotifier()

	// Initialize services
	adminService := services.NewAdminService(db)
	hotelService := services.NewHotelService(db)
	roomService := services.NewRoomService(db, hotelService, notifier)
	bookingService := services.NewBookingService(db)
	availabilityService := services.NewAvailabilityService(db)
	revenueService := services.NewRevenueService(db)

	// Initialize controllers
	adminController := controllers.NewAdminController(adminService)
	hotelController := controllers.NewHotelController(hotelService, blobs)
	roomController := controllers.NewRoomController(roomService, availabilityService, hotelService, notifier, blobs)
	bookingController := controllers.NewBookingController(bookingService, revenueService, hotelService, adminService, blobs)

	// Build router
	router := routes.SetupRouter(adminController, hotelController, roomController, bookingController)

	// Port from env (prefer), fallback to 8080
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	addr := ":" + port

	srv := &http.Server{
		Addr:    addr,
		Handler: router,
		// WriteTimeout stays 0 so the room event stream can run
		// long-lived responses.
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Printf("🚀 Server starting on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("❌ ListenAndServe(): %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server with timeout
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	log.Println("⚠️  Shutdown signal received, shutting down server...")

	// Create context with timeout for shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("❌ Server forced to shutdown: %v", err)
	}

	log.Println("✅ Server stopped gracefully")
}
