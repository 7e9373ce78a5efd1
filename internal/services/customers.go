package services

import (
	"context"

	"github.com/asclegal/crm-api/internal/models"
	"github.com/asclegal/crm-api/internal/store"
)

// Customers serves the customer directory: the CRM view over the same
// user collection the authentication flow writes to.
type Customers struct {
	users store.UserStore
}

func NewCustomers(users store.UserStore) *Customers {
	return &Customers{users: users}
}

// List returns all customer rows, newest first.
func (s *Customers) List(ctx context.Context) ([]models.Customer, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, err
	}

	customers := make([]models.Customer, 0, len(users))
	for i := range users {
		customers = append(customers, *users[i].AsCustomer())
	}
	return customers, nil
}

// Get returns one customer by identifier.
func (s *Customers) Get(ctx context.Context, id string) (*models.Customer, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return user.AsCustomer(), nil
}

// History returns the customer's history timeline, most recent first.
func (s *Customers) History(ctx context.Context, id string) ([]models.HistoryEvent, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	events := make([]models.HistoryEvent, len(user.History))
	copy(events, user.History)
	for i, j := 0, len(events)-1; i < j; i, j = i+1, j-1 {
		events[i], events[j] = events[j], events[i]
	}
	return events, nil
}
