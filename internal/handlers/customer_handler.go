package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/asclegal/crm-api/internal/store"
)

// ListCustomers returns the customer directory, newest account first.
func (h *Handler) ListCustomers(c *gin.Context) {
	customers, err := h.Customers.List(c.Request.Context())
	if err != nil {
		h.Log.Error("listing customers failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load customers"})
		return
	}

	c.JSON(http.StatusOK, customers)
}

// GetCustomer returns one customer with its agreement details.
func (h *Handler) GetCustomer(c *gin.Context) {
	customer, err := h.Customers.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Customer not found"})
			return
		}
		h.Log.Error("customer lookup failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load customer"})
		return
	}

	c.JSON(http.StatusOK, customer)
}

// GetCustomerHistory returns the customer's history timeline.
func (h *Handler) GetCustomerHistory(c *gin.Context) {
	events, err := h.Customers.History(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Customer not found"})
			return
		}
		h.Log.Error("customer history lookup failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load customer history"})
		return
	}

	c.JSON(http.StatusOK, events)
}
