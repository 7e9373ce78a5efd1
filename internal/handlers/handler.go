package handlers

import (
	"github.com/asclegal/crm-api/internal/logger"
	"github.com/asclegal/crm-api/internal/services"
)

// Handler carries the services the HTTP endpoints are built on.
type Handler struct {
	Auth      *services.Auth
	Customers *services.Customers
	Log       *logger.Logger
}

func NewHandler(authSvc *services.Auth, customers *services.Customers, log *logger.Logger) *Handler {
	return &Handler{
		Auth:      authSvc,
		Customers: customers,
		Log:       log,
	}
}
