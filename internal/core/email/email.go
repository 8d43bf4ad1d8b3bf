package email

import (
	"context"
	"errors"
	"strings"
)

// ErrNoProvider is returned when sending without a configured provider
var ErrNoProvider = errors.New("no email provider configured")

// Message is one outgoing transactional email
type Message struct {
	To      string
	Subject string
	HTML    string
}

// Provider defines the interface for email providers
type Provider interface {
	Send(ctx context.Context, msg Message) error
	GetProviderName() string
}

// Service wraps the email provider
type Service struct {
	provider Provider
}

// NewService creates a new email service with the specified provider
func NewService(provider Provider) *Service {
	return &Service{
		provider: provider,
	}
}

// NewProvider picks a provider by name; it returns nil when the provider
// is unknown or its API key is missing.
func NewProvider(name, resendKey, brevoKey, fromEmail, fromName string) Provider {
	switch strings.ToLower(name) {
	case "brevo":
		if brevoKey == "" {
			return nil
		}
		return NewBrevoProvider(brevoKey, fromEmail, fromName)
	case "resend", "":
		if resendKey == "" {
			return nil
		}
		return NewResendProvider(resendKey, fromEmail, fromName)
	}
	return nil
}

// Send delivers msg through the configured provider
func (s *Service) Send(ctx context.Context, msg Message) error {
	if s == nil || s.provider == nil {
		return ErrNoProvider
	}
	return s.provider.Send(ctx, msg)
}

// GetProviderName returns the name of the current provider
func (s *Service) GetProviderName() string {
	if s == nil || s.provider == nil {
		return "none"
	}
	return s.provider.GetProviderName()
}
