package router

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/asclegal/crm-api/internal/auth"
	"github.com/asclegal/crm-api/internal/handlers"
	"github.com/asclegal/crm-api/internal/logger"
	"github.com/asclegal/crm-api/internal/middleware"
)

// New wires the HTTP routes. The same engine serves production traffic
// and the handler tests.
func New(h *handlers.Handler, verifier *auth.TokenIssuer, log *logger.Logger, corsOrigins []string) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logging(log))

	if len(corsOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     corsOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
			AllowCredentials: true,
		}))
	}

	authRoutes := r.Group("/auth")
	{
		authRoutes.POST("/register", h.RegisterUser)
		authRoutes.POST("/login", h.Login)
		authRoutes.POST("/refresh", h.RefreshToken)
	}

	userRoutes := r.Group("/users")
	userRoutes.Use(middleware.Auth(verifier))
	{
		userRoutes.GET("/profile", h.GetProfile)
	}

	customerRoutes := r.Group("/customers")
	customerRoutes.Use(middleware.Auth(verifier))
	{
		customerRoutes.GET("", h.ListCustomers)
		customerRoutes.GET("/:id", h.GetCustomer)
		customerRoutes.GET("/:id/history", h.GetCustomerHistory)
	}

	return r
}
