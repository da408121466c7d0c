// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"nimbus/internal/delivery/http/middleware"
	"nimbus/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	AccountHandler *handler.AccountHandler
	AuthMiddleware *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	accountHandler *handler.AccountHandler
	authMiddleware *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		accountHandler: params.AccountHandler,
		authMiddleware: params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// Public routes
	e.POST("/register", r.accountHandler.Register)
	e.POST("/login", r.accountHandler.Login)

	// Routes that require a valid access token
	authGroup := e.Group("")
	authGroup.Use(r.authMiddleware.Authenticate)
	{
		authGroup.PUT("/changepass", r.accountHandler.ChangePassword)
		authGroup.GET("/favourites", r.accountHandler.ListFavourites)
		authGroup.PUT("/favourites/add", r.accountHandler.AddFavourite)
		authGroup.PUT("/favourites/remove", r.accountHandler.RemoveFavourite)
	}
}
