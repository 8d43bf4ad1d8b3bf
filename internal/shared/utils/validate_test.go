package utils

import (
	"errors"
	"testing"

	"github.com/MuhamadAgungGumelar/storefront-be/internal/shared/errs"
	"github.com/stretchr/testify/assert"
)

type sampleRequest struct {
	Email  string       `json:"email" validate:"required,email"`
	Device string       `json:"device_id" validate:"required,devicetoken"`
	Type   string       `json:"discount_type" validate:"oneof=percent fixed"`
	Items  []sampleItem `json:"items" validate:"required,min=1,dive"`
}

type sampleItem struct {
	Name     string `json:"name" validate:"required"`
	Quantity int    `json:"quantity" validate:"min=1"`
}

func TestStruct_Valid(t *testing.T) {
	v := NewRequestValidator()

	err := v.Struct(sampleRequest{
		Email:  "ada@example.com",
		Device: "dev_0123-abcd",
		Type:   "fixed",
		Items:  []sampleItem{{Name: "Tote", Quantity: 1}},
	})

	assert.NoError(t, err)
}

func TestStruct_ReportsJSONFieldNames(t *testing.T) {
	v := NewRequestValidator()

	err := v.Struct(sampleRequest{
		Email:  "not-an-email",
		Device: "../../etc",
		Type:   "bogus",
		Items:  []sampleItem{{Name: "", Quantity: 0}},
	})

	assert.True(t, errors.Is(err, errs.ErrValidation))
	msg := err.Error()
	assert.Contains(t, msg, "email must be a valid email")
	assert.Contains(t, msg, "device_id failed devicetoken validation")
	assert.Contains(t, msg, "discount_type must be one of [percent fixed]")
	assert.Contains(t, msg, "items[0].name is required")
	assert.Contains(t, msg, "items[0].quantity must be at least 1")
}
