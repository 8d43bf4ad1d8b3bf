package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/MuhamadAgungGumelar/storefront-be/internal/core/email"
	"github.com/MuhamadAgungGumelar/storefront-be/internal/core/notification"
	"github.com/MuhamadAgungGumelar/storefront-be/internal/modules/store/models"
	"github.com/MuhamadAgungGumelar/storefront-be/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type outbox struct {
	mu   sync.Mutex
	sent []email.Message
	err  error
}

func (o *outbox) Send(ctx context.Context, msg email.Message) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.err != nil {
		return o.err
	}
	o.sent = append(o.sent, msg)
	return nil
}

func TestCleanupAbandoned(t *testing.T) {
	orders := testutil.NewOrderStore()
	svc := NewMaintenanceService(orders, nil, 72*time.Hour)
	svc.now = func() time.Time { return fixedNow }

	stale := &models.Order{TrackingCode: "STALEPENDING001", Status: models.StatusPending, CreatedAt: fixedNow.Add(-8 * 24 * time.Hour)}
	fresh := &models.Order{TrackingCode: "FRESHPENDING001", Status: models.StatusPending, CreatedAt: fixedNow.Add(-2 * 24 * time.Hour)}
	paid := &models.Order{TrackingCode: "OLDCONFIRMED001", Status: models.StatusConfirmed, CreatedAt: fixedNow.Add(-30 * 24 * time.Hour)}
	for _, o := range []*models.Order{stale, fresh, paid} {
		orders.Put(o)
	}

	require.NoError(t, svc.CleanupAbandoned(context.Background()))

	left := map[string]bool{}
	for _, o := range orders.All() {
		left[o.TrackingCode] = true
	}
	assert.Equal(t, map[string]bool{"FRESHPENDING001": true, "OLDCONFIRMED001": true}, left)
}

func TestSendPromoFollowups(t *testing.T) {
	orders := testutil.NewOrderStore()
	box := &outbox{}
	dispatcher := notification.NewDispatcher(box, orders, notification.Options{StoreURL: "https://shop.example"})
	svc := NewMaintenanceService(orders, dispatcher, 72*time.Hour)
	svc.now = func() time.Time { return fixedNow }

	due := &models.Order{TrackingCode: "DUEFORPROMO0001", Email: "ada@example.com"}
	due.AppendStatus(models.StatusDelivered, fixedNow.Add(-96*time.Hour), "")
	recent := &models.Order{TrackingCode: "RECENTDELIVERY1", Email: "bo@example.com"}
	recent.AppendStatus(models.StatusDelivered, fixedNow.Add(-24*time.Hour), "")
	noEmail := &models.Order{TrackingCode: "NOEMAILDELIVERY"}
	noEmail.AppendStatus(models.StatusDelivered, fixedNow.Add(-96*time.Hour), "")
	for _, o := range []*models.Order{due, recent, noEmail} {
		orders.Put(o)
	}

	require.NoError(t, svc.SendPromoFollowups(context.Background()))
	require.Len(t, box.sent, 1)
	assert.Equal(t, "ada@example.com", box.sent[0].To)

	stored, err := orders.GetByTrackingCode(context.Background(), "DUEFORPROMO0001")
	require.NoError(t, err)
	assert.True(t, stored.PromoSent)

	// second run finds nothing left to send
	require.NoError(t, svc.SendPromoFollowups(context.Background()))
	assert.Len(t, box.sent, 1)
}

func TestSendPromoFollowups_FailureKeepsOrderEligible(t *testing.T) {
	orders := testutil.NewOrderStore()
	box := &outbox{err: errors.New("provider down")}
	dispatcher := notification.NewDispatcher(box, orders, notification.Options{})
	svc := NewMaintenanceService(orders, dispatcher, 72*time.Hour)
	svc.now = func() time.Time { return fixedNow }

	due := &models.Order{TrackingCode: "DUEFORPROMO0002", Email: "ada@example.com"}
	due.AppendStatus(models.StatusDelivered, fixedNow.Add(-96*time.Hour), "")
	orders.Put(due)

	require.NoError(t, svc.SendPromoFollowups(context.Background()))

	stored, err := orders.GetByTrackingCode(context.Background(), "DUEFORPROMO0002")
	require.NoError(t, err)
	assert.False(t, stored.PromoSent)
}
