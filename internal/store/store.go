// Package store persists user records. The Mongo implementation is the
// production store; the in-memory implementation backs tests.
package store

import (
	"context"
	"errors"

	"github.com/asclegal/crm-api/internal/models"
)

var (
	ErrNotFound       = errors.New("not found")
	ErrDuplicateEmail = errors.New("email already registered")
)

// UserStore is the credential store: one collection of user records with
// email uniqueness enforced by the store itself.
type UserStore interface {
	// Insert persists a new user. The password field must already be a
	// digest. Returns ErrDuplicateEmail if the email is taken.
	Insert(ctx context.Context, user *models.User) error

	// FindByEmail returns the user with the given login handle.
	FindByEmail(ctx context.Context, email string) (*models.User, error)

	// FindByID returns the user with the given hex identifier.
	FindByID(ctx context.Context, id string) (*models.User, error)

	// List returns all users, newest first.
	List(ctx context.Context) ([]models.User, error)

	// AppendHistory adds an event to the user's history timeline.
	AppendHistory(ctx context.Context, id string, event models.HistoryEvent) error
}
