package http

import (
	"net/http"

	"logistics/internal/core/domain/model/user"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// NewEcho builds the echo instance with middleware, error handling and every route.
func (s *Server) NewEcho() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = s.HandleError
	e.Validator = newRequestValidator()

	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(requestLogger(s.logger))

	s.Register(e)
	return e
}

// Register mounts the API routes on e.
func (s *Server) Register(e *echo.Echo) {
	e.GET("/health", func(c echo.Context) error {
		return s.respond(c, http.StatusOK, "Healthy", nil)
	})

	api := e.Group("/api")

	auth := api.Group("/auth")
	auth.POST("/login", s.Login, s.limitLogin)
	auth.POST("/logout", s.Logout)
	auth.GET("/validate", s.ValidateToken)
	auth.POST("/refresh", s.RefreshToken)

	staff := requireRole(user.Admin, user.Operator)
	anyone := requireRole(user.Admin, user.Operator, user.Customer)
	admin := requireRole(user.Admin)

	shipments := api.Group("/shipments", s.authenticate)
	shipments.GET("", s.ListShipments, anyone)
	shipments.POST("", s.CreateShipment, staff)
	shipments.GET("/stats/status", s.StatusCounts, staff)
	shipments.GET("/code/:code", s.GetShipmentByCode, anyone)
	shipments.GET("/customer/:customerId", s.ListShipmentsByCustomer, anyone)
	shipments.GET("/status/:status", s.ListShipmentsByStatus, anyone)
	shipments.GET("/:id", s.GetShipment, anyone)
	shipments.PUT("/:id", s.UpdateShipment, staff)
	shipments.PATCH("/:id/status", s.ChangeShipmentStatus, staff)
	shipments.DELETE("/:id", s.DeleteShipment, admin)
	shipments.POST("/:id/packages", s.AddPackage, staff)
	shipments.GET("/:id/packages", s.ListPackages, anyone)

	trackingGroup := api.Group("/tracking", s.authenticate)
	trackingGroup.GET("/shipment/:id", s.ListTrackingEvents, anyone)
	trackingGroup.GET("/shipment/:id/latest", s.LatestTrackingEvent, anyone)
	trackingGroup.POST("", s.AppendTrackingEvent, staff)

	api.POST("/branches", s.CreateBranch, s.authenticate, admin)
	api.GET("/branches", s.ListBranches, s.authenticate, admin)
	api.POST("/users", s.RegisterUser, s.authenticate, admin)
}
