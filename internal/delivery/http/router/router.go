// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"ratehub/internal/delivery/http/middleware"
	"ratehub/internal/delivery/http/router/handler"
	"ratehub/internal/domain/entity"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// RouterParams holds the handlers and middleware injected by Fx.
type RouterParams struct {
	fx.In

	AuthHandler    *handler.AuthHandler
	UserHandler    *handler.UserHandler
	StoreHandler   *handler.StoreHandler
	RatingHandler  *handler.RatingHandler
	AuthMiddleware *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	authHandler    *handler.AuthHandler
	userHandler    *handler.UserHandler
	storeHandler   *handler.StoreHandler
	ratingHandler  *handler.RatingHandler
	authMiddleware *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		authHandler:    params.AuthHandler,
		userHandler:    params.UserHandler,
		storeHandler:   params.StoreHandler,
		ratingHandler:  params.RatingHandler,
		authMiddleware: params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	auth := r.authMiddleware

	// Auth routes
	authGroup := e.Group("/auth")
	{
		authGroup.POST("/register", r.authHandler.Register)
		authGroup.POST("/login", r.authHandler.Login)
		authGroup.GET("/profile", r.authHandler.GetProfile, auth.Authenticate)
		authGroup.PUT("/password", r.authHandler.UpdatePassword, auth.Authenticate)
	}

	// Store directory: reads are public with optional viewer context, writes
	// and the raters listing require roles.
	storeGroup := e.Group("/stores")
	{
		storeGroup.GET("", r.storeHandler.ListStores, auth.OptionalAuthenticate)
		storeGroup.GET("/:id", r.storeHandler.GetStore, auth.OptionalAuthenticate)
		storeGroup.GET("/:id/ratings", r.storeHandler.GetStoreRatings,
			auth.Authenticate, auth.RequireRoles(entity.RoleAdmin, entity.RoleStoreOwner))
		storeGroup.POST("", r.storeHandler.CreateStore,
			auth.Authenticate, auth.RequireRoles(entity.RoleAdmin))
		storeGroup.PUT("/:id", r.storeHandler.UpdateStore, auth.Authenticate)
		storeGroup.DELETE("/:id", r.storeHandler.DeleteStore,
			auth.Authenticate, auth.RequireRoles(entity.RoleAdmin))
	}

	// Ratings: submission is for regular users, the wide listing for admins,
	// deletion is owner-or-admin inside the usecase.
	ratingGroup := e.Group("/ratings")
	{
		ratingGroup.POST("", r.ratingHandler.SubmitRating,
			auth.Authenticate, auth.RequireRoles(entity.RoleUser))
		ratingGroup.GET("/my-ratings", r.ratingHandler.ListMyRatings,
			auth.Authenticate, auth.RequireRoles(entity.RoleUser))
		ratingGroup.GET("", r.ratingHandler.ListAllRatings,
			auth.Authenticate, auth.RequireRoles(entity.RoleAdmin))
		ratingGroup.DELETE("/:id", r.ratingHandler.DeleteRating, auth.Authenticate)
	}

	// User directory: admin management plus self-readable detail.
	userGroup := e.Group("/users")
	userGroup.Use(auth.Authenticate)
	{
		userGroup.GET("", r.userHandler.ListUsers, auth.RequireRoles(entity.RoleAdmin))
		userGroup.GET("/dashboard-stats", r.userHandler.DashboardStats, auth.RequireRoles(entity.RoleAdmin))
		userGroup.GET("/:id", r.userHandler.GetUser)
		userGroup.POST("", r.userHandler.CreateUser, auth.RequireRoles(entity.RoleAdmin))
		userGroup.PUT("/:id", r.userHandler.UpdateUser)
		userGroup.DELETE("/:id", r.userHandler.DeleteUser, auth.RequireRoles(entity.RoleAdmin))
	}
}
