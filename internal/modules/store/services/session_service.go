package services

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/MuhamadAgungGumelar/storefront-be/internal/modules/store/models"
	"github.com/MuhamadAgungGumelar/storefront-be/internal/modules/store/repositories"
	"github.com/MuhamadAgungGumelar/storefront-be/internal/shared/errs"
	"github.com/MuhamadAgungGumelar/storefront-be/internal/shared/utils"
)

// SessionPayload is the client-owned state stored for a device
type SessionPayload struct {
	Cart      json.RawMessage `json:"cart" swaggertype:"object"`
	Favorites json.RawMessage `json:"favorites" swaggertype:"object"`
}

// SessionService mirrors cart and favorites per device. The server never
// merges; the latest write wins.
type SessionService struct {
	sessions  repositories.SessionRepo
	validator *utils.RequestValidator
	now       func() time.Time
}

func NewSessionService(sessions repositories.SessionRepo, validator *utils.RequestValidator) *SessionService {
	return &SessionService{
		sessions:  sessions,
		validator: validator,
		now:       time.Now,
	}
}

func (s *SessionService) Get(ctx context.Context, deviceID string) (*models.Session, error) {
	if err := s.validator.Var("device", deviceID, "required,devicetoken"); err != nil {
		return nil, err
	}
	session, err := s.sessions.Get(ctx, deviceID)
	if errors.Is(err, errs.ErrNotFound) {
		return nil, err
	}
	if err != nil {
		return nil, errs.Persistence("failed to load session", err)
	}
	return session, nil
}

func (s *SessionService) Save(ctx context.Context, deviceID string, payload *SessionPayload) (*models.Session, error) {
	if err := s.validator.Var("device", deviceID, "required,devicetoken"); err != nil {
		return nil, err
	}
	for name, raw := range map[string]json.RawMessage{"cart": payload.Cart, "favorites": payload.Favorites} {
		if len(raw) > 0 && !json.Valid(raw) {
			return nil, errs.Validation(name + " must be valid JSON")
		}
	}

	session := &models.Session{
		DeviceID:  deviceID,
		Cart:      payload.Cart,
		Favorites: payload.Favorites,
		UpdatedAt: s.now().UTC(),
	}
	if len(session.Cart) == 0 {
		session.Cart = json.RawMessage("[]")
	}
	if len(session.Favorites) == 0 {
		session.Favorites = json.RawMessage("[]")
	}

	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, errs.Persistence("failed to save session", err)
	}
	return session, nil
}

func (s *SessionService) Delete(ctx context.Context, deviceID string) error {
	if err := s.validator.Var("device", deviceID, "required,devicetoken"); err != nil {
		return err
	}
	if err := s.sessions.Delete(ctx, deviceID); err != nil {
		return errs.Persistence("failed to delete session", err)
	}
	return nil
}
