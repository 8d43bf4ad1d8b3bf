package payment_test

import (
	"context"
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/MuhamadAgungGumelar/storefront-be/internal/core/payment"
	"github.com/MuhamadAgungGumelar/storefront-be/internal/modules/store/models"
	"github.com/MuhamadAgungGumelar/storefront-be/internal/shared/errs"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "sk_test_secret"

func TestInitialize_Success(t *testing.T) {
	var got map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/transaction/initialize", r.URL.Path)
		assert.Equal(t, "Bearer "+testSecret, r.Header.Get("Authorization"))

		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &got))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":true,"message":"Authorization URL created","data":{"authorization_url":"https://checkout.paystack.com/abc","access_code":"abc","reference":"MHTESTREF000012"}}`))
	}))
	defer srv.Close()

	gw := payment.NewPaystackGateway(testSecret, srv.URL, "https://shop.example/callback")
	res, err := gw.Initialize(context.Background(), payment.InitializeRequest{
		Email:       "ada@example.com",
		AmountMinor: 2000000,
		Reference:   "MHTESTREF000012",
		Metadata: payment.CheckoutMetadata{
			CustomerName: "Ada",
			Items:        []models.OrderItem{{Name: "Tote", Price: decimal.NewFromInt(20000), Quantity: 1}},
			Total:        decimal.NewFromInt(20000),
		},
	})

	require.NoError(t, err)
	assert.Equal(t, "https://checkout.paystack.com/abc", res.AuthorizationURL)
	assert.Equal(t, "abc", res.AccessCode)
	assert.Equal(t, "ada@example.com", got["email"])
	assert.Equal(t, float64(2000000), got["amount"])
	assert.Equal(t, "https://shop.example/callback", got["callback_url"])
	meta, ok := got["metadata"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "Ada", meta["customer_name"])
}

func TestInitialize_MissingSecret(t *testing.T) {
	gw := payment.NewPaystackGateway("", "http://unused", "")

	_, err := gw.Initialize(context.Background(), payment.InitializeRequest{Email: "a@b.c", AmountMinor: 100, Reference: "r"})

	assert.True(t, errors.Is(err, errs.ErrConfiguration))
}

func TestInitialize_MissingFields(t *testing.T) {
	gw := payment.NewPaystackGateway(testSecret, "http://unused", "")

	_, err := gw.Initialize(context.Background(), payment.InitializeRequest{Email: "a@b.c", AmountMinor: 0, Reference: "r"})

	assert.True(t, errors.Is(err, errs.ErrValidation))
}

func TestInitialize_ProviderError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"status":false,"message":"Invalid key"}`))
	}))
	defer srv.Close()

	gw := payment.NewPaystackGateway(testSecret, srv.URL, "")
	_, err := gw.Initialize(context.Background(), payment.InitializeRequest{Email: "a@b.c", AmountMinor: 100, Reference: "r"})

	require.Error(t, err)
	appErr := errs.From(err)
	assert.Equal(t, errs.KindGateway, appErr.Kind)
	assert.Equal(t, http.StatusUnauthorized, appErr.StatusCode)
	assert.Contains(t, appErr.Body, "Invalid key")
}

func TestVerify_MetadataAsObject(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/transaction/verify/MHTESTREF00001", r.URL.Path)
		_, _ = w.Write([]byte(`{"status":true,"message":"Verification successful","data":{
			"status":"success","reference":"MHTESTREF00001","amount":2000000,"currency":"NGN","channel":"card",
			"paid_at":"2026-01-15T12:34:56.000Z",
			"metadata":{"customer_name":"Ada","email":"ada@example.com","total":20000,
				"items":[{"name":"Tote","price":20000,"quantity":1}]}}}`))
	}))
	defer srv.Close()

	gw := payment.NewPaystackGateway(testSecret, srv.URL, "")
	tx, err := gw.Verify(context.Background(), "MHTESTREF00001")

	require.NoError(t, err)
	assert.True(t, tx.Successful())
	assert.Equal(t, int64(2000000), tx.Amount)
	require.NotNil(t, tx.PaidAt)
	assert.Equal(t, "Ada", tx.Metadata.CustomerName)
	assert.True(t, tx.Metadata.Total.Equal(decimal.NewFromInt(20000)))
	require.Len(t, tx.Metadata.Items, 1)
	assert.NotEmpty(t, tx.Raw)
}

func TestVerify_MetadataAsString(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status":true,"message":"ok","data":{"status":"abandoned","reference":"R1","amount":500,
			"metadata":"{\"customer_name\":\"Bola\",\"total\":\"5\"}"}}`))
	}))
	defer srv.Close()

	gw := payment.NewPaystackGateway(testSecret, srv.URL, "")
	tx, err := gw.Verify(context.Background(), "R1")

	require.NoError(t, err)
	assert.False(t, tx.Successful())
	assert.Equal(t, "Bola", tx.Metadata.CustomerName)
	assert.True(t, tx.Metadata.Total.Equal(decimal.NewFromInt(5)))
}

func TestVerify_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"status":false,"message":"Transaction reference not found"}`))
	}))
	defer srv.Close()

	gw := payment.NewPaystackGateway(testSecret, srv.URL, "")
	_, err := gw.Verify(context.Background(), "nope")

	assert.True(t, errors.Is(err, errs.ErrGateway))
}

func TestVerifySignature(t *testing.T) {
	gw := payment.NewPaystackGateway(testSecret, "", "")
	body := []byte(`{"event":"charge.success","data":{"reference":"R1"}}`)

	mac := hmac.New(sha512.New, []byte(testSecret))
	mac.Write(body)
	sig := hex.EncodeToString(mac.Sum(nil))

	assert.True(t, gw.VerifySignature(body, sig))
	assert.False(t, gw.VerifySignature(body, "deadbeef"))
	assert.False(t, gw.VerifySignature(append(body, ' '), sig))
	assert.False(t, payment.NewPaystackGateway("", "", "").VerifySignature(body, sig))
}

func TestToMinor(t *testing.T) {
	assert.Equal(t, int64(2000000), payment.ToMinor(decimal.NewFromInt(20000)))
	assert.Equal(t, int64(1050), payment.ToMinor(decimal.RequireFromString("10.495")))
	assert.True(t, payment.FromMinor(2000000).Equal(decimal.NewFromInt(20000)))
}
