// Package notification renders and sends the store's transactional emails.
package notification

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/MuhamadAgungGumelar/storefront-be/internal/core/email"
	"github.com/MuhamadAgungGumelar/storefront-be/internal/modules/store/models"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Kind selects the template and subject of a notification
type Kind string

const (
	KindOrderConfirmed Kind = "order-confirmed"
	KindStatusChanged  Kind = "status-changed"
	KindPromoFollowup  Kind = "promo-followup"
	KindNewOrderAlert  Kind = "new-order-alert"
	KindReceipt        Kind = "receipt"
)

// Data is the template input for every kind
type Data struct {
	To             string
	Order          *models.Order
	PreviousStatus models.Status
	Note           string
}

// Sender sends one notification synchronously
type Sender interface {
	Send(ctx context.Context, kind Kind, data Data) error
}

// EmailSender is the part of email.Service the dispatcher needs
type EmailSender interface {
	Send(ctx context.Context, msg email.Message) error
}

// PromoLedger records that an order's promo follow-up went out
type PromoLedger interface {
	MarkPromoSent(ctx context.Context, id uuid.UUID) error
}

// Options holds the store identity used in templates
type Options struct {
	StoreName  string
	StoreURL   string
	AdminEmail string
}

// Dispatcher renders templates and hands them to the email provider
type Dispatcher struct {
	email  EmailSender
	ledger PromoLedger
	opts   Options
}

func NewDispatcher(emailSender EmailSender, ledger PromoLedger, opts Options) *Dispatcher {
	if opts.StoreName == "" {
		opts.StoreName = "Handmade Store"
	}
	opts.StoreURL = strings.TrimRight(opts.StoreURL, "/")
	return &Dispatcher{
		email:  emailSender,
		ledger: ledger,
		opts:   opts,
	}
}

var (
	ErrNoRecipient = errors.New("notification has no recipient")
	ErrNoOrder     = errors.New("notification has no order")
)

// Send renders kind for data and delivers it. Provider failures are returned.
func (d *Dispatcher) Send(ctx context.Context, kind Kind, data Data) error {
	if data.Order == nil {
		return ErrNoOrder
	}
	to := data.To
	if to == "" && kind == KindNewOrderAlert {
		to = d.opts.AdminEmail
	}
	if to == "" {
		return ErrNoRecipient
	}

	subject, html, err := d.Render(kind, data)
	if err != nil {
		return err
	}

	if err := d.email.Send(ctx, email.Message{To: to, Subject: subject, HTML: html}); err != nil {
		return fmt.Errorf("send %s email for %s: %w", kind, data.Order.TrackingCode, err)
	}

	log.Info().
		Str("kind", string(kind)).
		Str("tracking_code", data.Order.TrackingCode).
		Str("to", to).
		Msg("notification sent")
	return nil
}

// Render returns the subject and HTML body for kind
func (d *Dispatcher) Render(kind Kind, data Data) (string, string, error) {
	subject, ok := d.subject(kind, data.Order)
	if !ok {
		return "", "", fmt.Errorf("unknown notification kind %q", kind)
	}

	view := templateView{
		Data:      data,
		StoreName: d.opts.StoreName,
		StoreURL:  d.opts.StoreURL,
		TrackURL:  d.opts.StoreURL + "/track/" + data.Order.TrackingCode,
		Subject:   subject,
	}

	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, string(kind), view); err != nil {
		return "", "", fmt.Errorf("render %s: %w", kind, err)
	}
	return subject, buf.String(), nil
}

func (d *Dispatcher) subject(kind Kind, order *models.Order) (string, bool) {
	switch kind {
	case KindOrderConfirmed:
		return fmt.Sprintf("Order confirmed: %s", order.TrackingCode), true
	case KindStatusChanged:
		return fmt.Sprintf("Your order %s is now %s", order.TrackingCode, order.Status.Label()), true
	case KindPromoFollowup:
		return fmt.Sprintf("Thank you for shopping with %s", d.opts.StoreName), true
	case KindNewOrderAlert:
		return fmt.Sprintf("New order %s: %s", order.TrackingCode, formatMoney(order.Total)), true
	case KindReceipt:
		return fmt.Sprintf("Receipt for order %s", order.TrackingCode), true
	}
	return "", false
}

// SendPromoFollowup sends the promo email at most once per order. The flag is
// recorded only after the provider accepted the message.
func (d *Dispatcher) SendPromoFollowup(ctx context.Context, order *models.Order) (bool, error) {
	if order.PromoSent {
		return false, nil
	}
	if d.ledger == nil {
		return false, errors.New("promo ledger not configured")
	}

	if err := d.Send(ctx, KindPromoFollowup, Data{To: order.Email, Order: order}); err != nil {
		return false, err
	}
	if err := d.ledger.MarkPromoSent(ctx, order.ID); err != nil {
		return true, fmt.Errorf("failed to mark promo sent: %w", err)
	}
	order.PromoSent = true
	return true, nil
}
