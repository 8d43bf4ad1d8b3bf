package services

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/MuhamadAgungGumelar/storefront-be/internal/shared/errs"
	"github.com/MuhamadAgungGumelar/storefront-be/internal/shared/utils"
	"github.com/MuhamadAgungGumelar/storefront-be/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionService(t *testing.T) {
	svc := NewSessionService(testutil.NewSessionStore(), utils.NewRequestValidator())
	ctx := context.Background()
	device := "device_0123456789"

	_, err := svc.Get(ctx, device)
	assert.ErrorIs(t, err, errs.ErrNotFound)

	_, err = svc.Save(ctx, device, &SessionPayload{Cart: json.RawMessage(`[{"name":"Basket","quantity":1}]`)})
	require.NoError(t, err)

	// last write wins
	_, err = svc.Save(ctx, device, &SessionPayload{Cart: json.RawMessage(`[]`), Favorites: json.RawMessage(`["Basket"]`)})
	require.NoError(t, err)

	session, err := svc.Get(ctx, device)
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(session.Cart))
	assert.JSONEq(t, `["Basket"]`, string(session.Favorites))

	require.NoError(t, svc.Delete(ctx, device))
	_, err = svc.Get(ctx, device)
	assert.ErrorIs(t, err, errs.ErrNotFound)
}

func TestSessionService_Validation(t *testing.T) {
	svc := NewSessionService(testutil.NewSessionStore(), utils.NewRequestValidator())
	ctx := context.Background()

	_, err := svc.Get(ctx, "short")
	assert.ErrorIs(t, err, errs.ErrValidation)

	_, err = svc.Save(ctx, "device/../../etc", &SessionPayload{})
	assert.ErrorIs(t, err, errs.ErrValidation)

	_, err = svc.Save(ctx, "device_0123456789", &SessionPayload{Cart: json.RawMessage(`{not json`)})
	assert.ErrorIs(t, err, errs.ErrValidation)
}
