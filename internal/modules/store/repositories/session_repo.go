package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/MuhamadAgungGumelar/storefront-be/internal/modules/store/models"
	"github.com/MuhamadAgungGumelar/storefront-be/internal/shared/errs"
	"github.com/redis/go-redis/v9"
)

var ErrSessionNotFound = errs.NotFound("session not found")

type SessionRepo interface {
	Get(ctx context.Context, deviceID string) (*models.Session, error)
	Save(ctx context.Context, session *models.Session) error
	Delete(ctx context.Context, deviceID string) error
}

type sessionRepo struct {
	client redis.Cmdable
	ttl    time.Duration
}

func NewSessionRepo(client redis.Cmdable, ttl time.Duration) SessionRepo {
	return &sessionRepo{
		client: client,
		ttl:    ttl,
	}
}

func (r *sessionRepo) key(deviceID string) string {
	return fmt.Sprintf("session:device:%s", deviceID)
}

func (r *sessionRepo) Get(ctx context.Context, deviceID string) (*models.Session, error) {
	data, err := r.client.Get(ctx, r.key(deviceID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}

	var session models.Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

// Save overwrites whatever is stored for the device and refreshes the TTL
func (r *sessionRepo) Save(ctx context.Context, session *models.Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, r.key(session.DeviceID), data, r.ttl).Err()
}

func (r *sessionRepo) Delete(ctx context.Context, deviceID string) error {
	return r.client.Del(ctx, r.key(deviceID)).Err()
}
