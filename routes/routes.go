package routes

import (
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"hotel-booking-backend/controllers"
	"hotel-booking-backend/middleware"
)

func parseCorsOrigins() []string {
	raw := strings.TrimSpace(os.Getenv("CORS_ORIGINS"))
	if raw == "" {
		return []string{"*"}
	}

	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, part := range parts {
		origin := strings.TrimSpace(part)
		if origin != "" {
			origins = append(origins, origin)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}

// SetupRouter wires controller instances onto the public route surface.
func SetupRouter(
	ac *controllers.AdminController,
	hc *controllers.HotelController,
	rc *controllers.RoomController,
	bc *controllers.BookingController,
) *gin.Engine {
	r := gin.Default()
	r.Use(middleware.Logger())
	r.Static("/uploads", "./uploads")

	origins := parseCorsOrigins()
	allowCredentials := true
	for _, origin := range origins {
		if origin == "*" {
			allowCredentials = false
			break
		}
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: allowCredentials,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		admin := api.Group("/admin")
		{
			admin.POST("/register", ac.Register)
			admin.POST("/login", ac.Login)
		}

		hotel := api.Group("/hotel")
		{
			hotel.POST("/create", middleware.Protect(), hc.CreateHotel)
			hotel.GET("/my-hotel", middleware.Protect(), hc.GetMyHotel)
			hotel.PUT("/update", middleware.Protect(), hc.UpdateHotel)
			hotel.DELETE("/delete", middleware.Protect(), hc.DeleteHotel)
			hotel.GET("/:id", hc.GetHotelByID)
		}

		rooms := api.Group("/rooms")
		{
			rooms.POST("/create", middleware.Protect(), rc.CreateRoom)
			rooms.GET("/my-rooms", middleware.Protect(), rc.GetMyRooms)
			rooms.GET("/stats", middleware.Protect(), rc.GetRoomStats)
			rooms.GET("/events", middleware.Protect(), rc.StreamRoomEvents)
			rooms.GET("/hotel/:hotelId", rc.GetRoomsByHotelID)
			rooms.PUT("/update/:id", middleware.Protect(), rc.UpdateRoom)
			rooms.DELETE("/delete/:id", middleware.Protect(), rc.DeleteRoom)
		}

		bookings := api.Group("/bookings")
		{
			bookings.POST("", bc.CreateBooking)
			bookings.GET("", middleware.Protect(), bc.GetAllBookings)

			bookings.GET("/my-hotel", middleware.Protect(), bc.GetMyHotelBookings)
			bookings.GET("/revenue", middleware.Protect(), bc.GetRevenue)
			bookings.GET("/revenue/pdf", middleware.Protect(), bc.GetRevenuePDF)
			bookings.GET("/hotel/:hotelId", bc.GetBookingsByHotelID)

			bookings.GET("/:id", bc.GetBookingByID)
			bookings.PUT("/:id", middleware.Protect(), bc.UpdateBooking)
			bookings.DELETE("/:id", middleware.Protect(), bc.DeleteBooking)
		}
	}

	return r
}
