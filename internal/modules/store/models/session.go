package models

import (
	"encoding/json"
	"time"
)

// Session is client-owned cart and favorites state mirrored per device
type Session struct {
	DeviceID  string          `json:"device_id"`
	Cart      json.RawMessage `json:"cart"`
	Favorites json.RawMessage `json:"favorites"`
	UpdatedAt time.Time       `json:"updated_at"`
}
