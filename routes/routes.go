package routes

import (
	"net/http"
	"time"

	"hotel-desk/controllers"
	"hotel-desk/middleware"
	"hotel-desk/models"
	"hotel-desk/services"
	"hotel-desk/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

// Controllers bundles every handler set the router mounts.
type Controllers struct {
	Auth       *controllers.AuthController
	Rooms      *controllers.RoomController
	Categories *controllers.RoomCategoryController
	Guests     *controllers.GuestController
	Services   *controllers.ServiceController
	Bookings   *controllers.BookingController
	Reports    *controllers.ReportController
	Users      *controllers.UserController
}

type Deps struct {
	Tokens       *utils.TokenIssuer
	Sessions     services.SessionStore
	LoginLimiter *middleware.IPRateLimiter
	Origins      []string
	Log          *zerolog.Logger
}

func corsConfig(origins []string) cors.Config {
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	allowCredentials := true
	for _, origin := range origins {
		if origin == "*" {
			allowCredentials = false
			break
		}
	}
	return cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With", middleware.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition", middleware.RequestIDHeader},
		AllowCredentials: allowCredentials,
		MaxAge:           12 * time.Hour,
	}
}

func SetupRouter(ctl Controllers, deps Deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.Logger(deps.Log))
	r.Use(cors.New(corsConfig(deps.Origins)))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")

	auth := api.Group("/auth")
	{
		limited := []gin.HandlerFunc{}
		if deps.LoginLimiter != nil {
			limited = append(limited, middleware.RateLimit(deps.LoginLimiter))
		}
		auth.POST("/login", append(limited, ctl.Auth.Login)...)
	}

	secured := api.Group("", middleware.AuthMiddleware(deps.Tokens, deps.Sessions, deps.Log))
	{
		secured.POST("/auth/logout", ctl.Auth.Logout)
		secured.GET("/auth/me", ctl.Auth.Me)

		rooms := secured.Group("/rooms")
		{
			rooms.GET("", ctl.Rooms.GetRooms)
			// must stay before /:id
			rooms.GET("/available", ctl.Rooms.GetAvailableRooms)
			rooms.GET("/:id", ctl.Rooms.GetRoom)
			rooms.POST("", ctl.Rooms.CreateRoom)
			rooms.PUT("/:id", ctl.Rooms.UpdateRoom)
			rooms.PATCH("/:id/status", ctl.Rooms.UpdateRoomStatus)
			rooms.DELETE("/:id", ctl.Rooms.DeleteRoom)
		}

		categories := secured.Group("/room-categories")
		{
			categories.GET("", ctl.Categories.GetCategories)
			categories.GET("/:id", ctl.Categories.GetCategory)
			categories.POST("", ctl.Categories.CreateCategory)
			categories.PUT("/:id", ctl.Categories.UpdateCategory)
			categories.DELETE("/:id", ctl.Categories.DeleteCategory)
		}

		guests := secured.Group("/guests")
		{
			guests.GET("", ctl.Guests.GetGuests)
			guests.GET("/:id", ctl.Guests.GetGuest)
			guests.POST("", ctl.Guests.CreateGuest)
			guests.PUT("/:id", ctl.Guests.UpdateGuest)
			guests.DELETE("/:id", ctl.Guests.DeleteGuest)
		}

		extras := secured.Group("/services")
		{
			extras.GET("", ctl.Services.GetServices)
			extras.GET("/:id", ctl.Services.GetService)
			extras.POST("", ctl.Services.CreateService)
			extras.PUT("/:id", ctl.Services.UpdateService)
			extras.DELETE("/:id", ctl.Services.DeleteService)
		}

		bookings := secured.Group("/bookings")
		{
			bookings.GET("", ctl.Bookings.GetBookings)
			bookings.GET("/:id", ctl.Bookings.GetBooking)
			bookings.POST("", ctl.Bookings.CreateBooking)
			bookings.PUT("/:id", ctl.Bookings.UpdateBooking)
			bookings.DELETE("/:id", ctl.Bookings.DeleteBooking)

			bookings.POST("/:id/check-in", ctl.Bookings.CheckIn)
			bookings.POST("/:id/check-out", ctl.Bookings.CheckOut)
			bookings.POST("/:id/cancel", ctl.Bookings.Cancel)

			bookings.GET("/:id/bill", ctl.Bookings.GetBill)
			bookings.GET("/:id/history", ctl.Bookings.GetHistory)
			bookings.GET("/:id/services", ctl.Bookings.GetBookedServices)
			bookings.POST("/:id/services", ctl.Bookings.AddBookedService)
		}

		booked := secured.Group("/booked-services")
		{
			booked.PUT("/:id", ctl.Bookings.UpdateBookedService)
			booked.DELETE("/:id", ctl.Bookings.DeleteBookedService)
		}

		secured.GET("/reports/bookings.xlsx", ctl.Reports.BookingsReport)

		users := secured.Group("/users", middleware.RoleMiddleware(models.RoleAdministrator))
		{
			users.GET("", ctl.Users.GetUsers)
			users.GET("/:id", ctl.Users.GetUser)
			users.POST("", ctl.Users.CreateUser)
			users.PUT("/:id", ctl.Users.UpdateUser)
			users.PUT("/:id/password", ctl.Users.UpdatePassword)
			users.DELETE("/:id", ctl.Users.DeleteUser)
		}
	}

	return r
}
