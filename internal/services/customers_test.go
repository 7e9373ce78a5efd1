package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/asclegal/crm-api/internal/models"
	"github.com/asclegal/crm-api/internal/store"
)

func TestCustomers(t *testing.T) {
	users := store.NewMemoryUserStore()
	svc := NewCustomers(users)
	ctx := context.Background()

	agreement := &models.Agreement{
		Name:   "Retainer 2024",
		Number: "AG-1042",
		Start:  time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		End:    time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC),
		Status: models.AgreementActive,
	}
	user := &models.User{
		Name:      "A",
		Email:     "a@x.com",
		Role:      models.RoleUser,
		Agreement: agreement,
	}
	require.NoError(t, users.Insert(ctx, user))

	rows, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "a@x.com", rows[0].Email)
	assert.Equal(t, "AG-1042", rows[0].Agreement.Number)

	got, err := svc.Get(ctx, user.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, "A", got.Name)

	_, err = svc.Get(ctx, "ffffffffffffffffffffffff")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestCustomers_History(t *testing.T) {
	users := store.NewMemoryUserStore()
	svc := NewCustomers(users)
	ctx := context.Background()

	user := &models.User{Name: "A", Email: "a@x.com", Role: models.RoleUser}
	require.NoError(t, users.Insert(ctx, user))

	first := models.HistoryEvent{
		Date:        time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
		Action:      "Contact Updated",
		Description: "Updated phone number and email address",
		Type:        "info",
	}
	second := models.HistoryEvent{
		Date:        time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
		Action:      "Agreement Renewed",
		Description: "Customer renewed their agreement for another year",
		Type:        "success",
	}
	require.NoError(t, users.AppendHistory(ctx, user.ID.Hex(), first))
	require.NoError(t, users.AppendHistory(ctx, user.ID.Hex(), second))

	events, err := svc.History(ctx, user.ID.Hex())
	require.NoError(t, err)
	require.Len(t, events, 2)

	// Most recent first.
	assert.Equal(t, "Agreement Renewed", events[0].Action)
	assert.Equal(t, "Contact Updated", events[1].Action)
}
