package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"storefront-be/internal/dto"
	"storefront-be/internal/pkg/serverutils"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeEnvelope(t *testing.T, w http.ResponseWriter, status int, body interface{}) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	require.NoError(t, json.NewEncoder(w).Encode(body))
}

func TestAPIClient_SendsSessionHeaderAndDecodesData(t *testing.T) {
	sessionId := uuid.New()
	itemId := uuid.New()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/cart/v1", r.URL.Path)
		assert.Equal(t, sessionId.String(), r.Header.Get(serverutils.SessionHeader))
		writeEnvelope(t, w, http.StatusOK, serverutils.SuccessResponse("ok", dto.CartResponse{
			Items:     []*dto.CartItemResponse{{Id: itemId, Quantity: 2, LineTotal: decimal.RequireFromString("20.00")}},
			ItemCount: 2,
			Total:     decimal.RequireFromString("20.00"),
		}))
	}))
	defer srv.Close()

	cart, err := newAPIClient(srv.URL+"/api/", sessionId).Cart()

	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, itemId, cart.Items[0].Id)
	assert.Equal(t, 2, cart.ItemCount)
	assert.True(t, cart.Total.Equal(decimal.RequireFromString("20")))
}

func TestAPIClient_ErrorEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		res := serverutils.ErrorResponse(http.StatusBadRequest, "Validation failed")
		res.Errors = map[string]string{"customer_email": "must be a valid email"}
		writeEnvelope(t, w, http.StatusBadRequest, res)
	}))
	defer srv.Close()

	_, err := newAPIClient(srv.URL, uuid.New()).PlaceOrder(dto.PlaceOrderRequest{})

	var apiErr *apiError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.Code)
	assert.Contains(t, apiErr.Error(), "customer_email must be a valid email")
}

func TestSessionClient_CreatesAndStoresSession(t *testing.T) {
	issued := uuid.New()
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Empty(t, r.Header.Get(serverutils.SessionHeader))
		writeEnvelope(t, w, http.StatusCreated, serverutils.CreatedResponse("created", dto.CreateSessionResponse{SessionId: issued}))
	}))
	defer srv.Close()

	path := filepath.Join(t.TempDir(), "nested", "session")

	first, err := sessionClient(srv.URL, path)
	require.NoError(t, err)
	assert.Equal(t, issued, first.sessionId)

	second, err := sessionClient(srv.URL, path)
	require.NoError(t, err)
	assert.Equal(t, issued, second.sessionId)
	assert.Equal(t, 1, calls, "stored session must be reused")
}

func TestLoadSession_Invalid(t *testing.T) {
	dir := t.TempDir()
	assert.Equal(t, uuid.Nil, loadSession(filepath.Join(dir, "missing")))

	assert.Error(t, saveSession(filepath.Join(dir, "s"), uuid.Nil))
}

func TestResolveCartItem(t *testing.T) {
	first, second := uuid.New(), uuid.New()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(t, w, http.StatusOK, serverutils.SuccessResponse("ok", dto.CartResponse{
			Items: []*dto.CartItemResponse{{Id: first}, {Id: second}},
		}))
	}))
	defer srv.Close()
	client := newAPIClient(srv.URL, uuid.New())

	tests := []struct {
		ref     string
		want    uuid.UUID
		wantErr bool
	}{
		{ref: "1", want: first},
		{ref: "2", want: second},
		{ref: second.String(), want: second},
		{ref: "0", wantErr: true},
		{ref: "3", wantErr: true},
		{ref: "abc", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.ref, func(t *testing.T) {
			got, err := resolveCartItem(client, tt.ref)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
