package payment

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/MuhamadAgungGumelar/storefront-be/internal/shared/errs"
	"github.com/rs/zerolog/log"
)

// PaystackGateway talks to the Paystack transaction API
type PaystackGateway struct {
	secretKey   string
	baseURL     string
	callbackURL string
	client      *http.Client
}

// NewPaystackGateway creates a new Paystack payment gateway
func NewPaystackGateway(secretKey, baseURL, callbackURL string) *PaystackGateway {
	if baseURL == "" {
		baseURL = "https://api.paystack.co"
	}
	return &PaystackGateway{
		secretKey:   secretKey,
		baseURL:     strings.TrimRight(baseURL, "/"),
		callbackURL: callbackURL,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// paystackEnvelope is the wrapper around every Paystack response
type paystackEnvelope struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// Initialize creates a transaction and returns the hosted checkout URL
func (g *PaystackGateway) Initialize(ctx context.Context, req InitializeRequest) (*InitializeResult, error) {
	if g.secretKey == "" {
		return nil, errs.Configuration("payment provider secret key is not configured")
	}
	if strings.TrimSpace(req.Email) == "" || req.AmountMinor <= 0 || strings.TrimSpace(req.Reference) == "" {
		return nil, errs.Validation("email, amount and reference are required")
	}

	payload := map[string]interface{}{
		"email":        req.Email,
		"amount":       req.AmountMinor,
		"reference":    req.Reference,
		"callback_url": g.callbackURL,
		"metadata":     req.Metadata,
	}

	body, err := g.do(ctx, http.MethodPost, "/transaction/initialize", payload)
	if err != nil {
		return nil, err
	}

	var result InitializeResult
	if err := json.Unmarshal(body.Data, &result); err != nil {
		return nil, fmt.Errorf("failed to parse initialize response: %w", err)
	}
	if result.Reference == "" {
		result.Reference = req.Reference
	}

	log.Info().
		Str("reference", result.Reference).
		Int64("amount", req.AmountMinor).
		Msg("payment initialized")

	return &result, nil
}

// Verify fetches the transaction outcome for reference
func (g *PaystackGateway) Verify(ctx context.Context, reference string) (*Transaction, error) {
	if g.secretKey == "" {
		return nil, errs.Configuration("payment provider secret key is not configured")
	}
	if strings.TrimSpace(reference) == "" {
		return nil, errs.Validation("reference is required")
	}

	body, err := g.do(ctx, http.MethodGet, "/transaction/verify/"+url.PathEscape(reference), nil)
	if err != nil {
		return nil, err
	}

	return ParseTransaction(body.Data)
}

// VerifySignature checks the x-paystack-signature header: a hex HMAC-SHA512
// of the raw body keyed by the secret key.
func (g *PaystackGateway) VerifySignature(body []byte, signature string) bool {
	if g.secretKey == "" || signature == "" {
		return false
	}
	mac := hmac.New(sha512.New, []byte(g.secretKey))
	mac.Write(body)
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(strings.ToLower(signature)))
}

// Name returns the gateway provider name
func (g *PaystackGateway) Name() string {
	return "paystack"
}

func (g *PaystackGateway) do(ctx context.Context, method, path string, payload interface{}) (*paystackEnvelope, error) {
	var reader io.Reader
	if payload != nil {
		jsonData, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, g.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+g.secretKey)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, errs.Gateway("payment provider unreachable", 0, "", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errs.Gateway("failed to read payment provider response", resp.StatusCode, "", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, errs.Gateway(
			fmt.Sprintf("paystack API error (status %d)", resp.StatusCode),
			resp.StatusCode, string(raw), nil)
	}

	var envelope paystackEnvelope
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, errs.Gateway("invalid payment provider response", resp.StatusCode, string(raw), err)
	}
	if !envelope.Status {
		return nil, errs.Gateway("paystack API error: "+envelope.Message, resp.StatusCode, string(raw), nil)
	}

	return &envelope, nil
}

// ParseTransaction decodes a transaction object as returned by verify and
// carried in webhook events.
func ParseTransaction(data []byte) (*Transaction, error) {
	var tx Transaction
	if err := json.Unmarshal(data, &tx); err != nil {
		return nil, fmt.Errorf("failed to parse transaction: %w", err)
	}
	tx.Raw = append(json.RawMessage(nil), data...)
	return &tx, nil
}

// Event is a webhook delivery
type Event struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// ParseEvent decodes a webhook body
func ParseEvent(body []byte) (*Event, error) {
	var event Event
	if err := json.Unmarshal(body, &event); err != nil {
		return nil, fmt.Errorf("failed to parse webhook event: %w", err)
	}
	return &event, nil
}
