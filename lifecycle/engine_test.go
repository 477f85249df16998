package lifecycle

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/IjehJoel987/Tekegram/domain"
	"github.com/IjehJoel987/Tekegram/registry"
	"github.com/IjehJoel987/Tekegram/store"
)

func TestTransitionApplies(t *testing.T) {
	reg := registry.New(1, store.NewSnapshot())
	id := reg.CreateOrder(domain.Order{UserID: 42, Status: domain.OrderPendingConfirmation})

	persists := 0
	var notified []Change
	eng := NewEngine(reg,
		func(context.Context) { persists++ },
		func(_ context.Context, userID int64, c Change) {
			assert.Equal(t, int64(42), userID)
			assert.Equal(t, persists, 1, "persist runs before the notification")
			notified = append(notified, c)
		})

	change, err := eng.Transition(context.Background(), id, domain.OrderConfirmed)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderPendingConfirmation, change.From)
	assert.Equal(t, domain.OrderConfirmed, change.To)
	require.Len(t, notified, 1)

	got, _ := reg.RequestStatus(id)
	assert.Equal(t, domain.OrderConfirmed, got)
}

func TestTransitionReapplySameStatus(t *testing.T) {
	reg := registry.New(1, store.NewSnapshot())
	id := reg.CreateIssue(domain.Issue{UserID: 2, Status: domain.IssueReported})

	persists, notifies := 0, 0
	eng := NewEngine(reg,
		func(context.Context) { persists++ },
		func(context.Context, int64, Change) { notifies++ })

	change, err := eng.Transition(context.Background(), id, domain.IssueReported)
	require.NoError(t, err)
	assert.Equal(t, domain.IssueReported, change.From)
	assert.Equal(t, domain.IssueReported, change.To)
	assert.Equal(t, 1, persists, "re-apply still persists")
	assert.Equal(t, 1, notifies, "re-apply still notifies")

	got, _ := reg.RequestStatus(id)
	assert.Equal(t, domain.IssueReported, got)
}

func TestTransitionRejectsForeignStatus(t *testing.T) {
	reg := registry.New(1, store.NewSnapshot())
	id := reg.CreateCallback(domain.CallbackRequest{UserID: 3, Status: domain.CallbackPending})

	eng := NewEngine(reg, nil, nil)
	_, err := eng.Transition(context.Background(), id, domain.OrderShipped)
	var invalid *domain.InvalidStatusError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, domain.KindCallback, invalid.Kind)

	got, _ := reg.RequestStatus(id)
	assert.Equal(t, domain.CallbackPending, got, "rejected transition leaves status untouched")
}

func TestTransitionUnknownRequest(t *testing.T) {
	reg := registry.New(1, store.NewSnapshot())
	eng := NewEngine(reg, nil, nil)

	_, err := eng.Transition(context.Background(), "XYZ1234", domain.OrderConfirmed)
	require.ErrorIs(t, err, ErrNotFound)

	_, err = eng.Transition(context.Background(), "ORD0009", domain.OrderConfirmed)
	require.ErrorIs(t, err, ErrNotFound)
}
