package restapi_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rentbooks/rentbooks/internal/adapters/restapi"
	"github.com/rentbooks/rentbooks/internal/apperrors"
	"github.com/rentbooks/rentbooks/internal/core/domain"
	"github.com/rentbooks/rentbooks/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordedRequest struct {
	method string
	path   string
	query  string
	auth   string
	body   []byte
}

// newRecordingServer answers every request with status and responseBody and
// records what arrived.
func newRecordingServer(t *testing.T, status int, responseBody string) (*httptest.Server, *recordedRequest) {
	t.Helper()
	rec := &recordedRequest{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec.method = r.Method
		rec.path = r.URL.Path
		rec.query = r.URL.RawQuery
		rec.auth = r.Header.Get("Authorization")
		rec.body, _ = io.ReadAll(r.Body)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(responseBody))
	}))
	t.Cleanup(srv.Close)
	return srv, rec
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestAccountListBuildsScopedURL(t *testing.T) {
	srv, rec := newRecordingServer(t, http.StatusOK, `[{"id":1,"name":"Checking"}]`)
	remote := restapi.NewAccountRemote(restapi.NewClient(srv.URL, discardLogger()))

	accounts, err := remote.List(context.Background(), "tok-1", 42)

	require.NoError(t, err)
	require.Len(t, accounts, 1)
	assert.Equal(t, http.MethodGet, rec.method)
	assert.Equal(t, "/api/accounts/", rec.path)
	assert.Equal(t, "property_id=42", rec.query)
	assert.Equal(t, "Bearer tok-1", rec.auth)
}

func TestAccountUpdateUsesItemEndpoint(t *testing.T) {
	srv, rec := newRecordingServer(t, http.StatusOK, `{"id":7,"name":"Renamed"}`)
	remote := restapi.NewAccountRemote(restapi.NewClient(srv.URL, discardLogger()))

	updated, err := remote.Update(context.Background(), "tok-1", 7, dto.AccountPayload{Name: "Renamed", Type: domain.Asset})

	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Name)
	assert.Equal(t, http.MethodPut, rec.method)
	assert.Equal(t, "/api/accounts/7/", rec.path)
}

func TestSoftDeleteSendsIsDeletedBody(t *testing.T) {
	srv, rec := newRecordingServer(t, http.StatusOK, `{}`)
	remote := restapi.NewAccountRemote(restapi.NewClient(srv.URL, discardLogger()))

	require.NoError(t, remote.SoftDelete(context.Background(), "tok-1", 3))

	assert.Equal(t, http.MethodPut, rec.method)
	assert.Equal(t, "/api/accounts/3/", rec.path)
	var body map[string]bool
	require.NoError(t, json.Unmarshal(rec.body, &body))
	assert.True(t, body["is_deleted"])
}

func TestTransactionListFilterByAccount(t *testing.T) {
	srv, rec := newRecordingServer(t, http.StatusOK, `[]`)
	remote := restapi.NewTransactionRemote(restapi.NewClient(srv.URL, discardLogger()))

	scope := domain.TransactionScope{
		Scope:     domain.Scope{Authed: true, PropertyID: 1},
		Filter:    domain.FilterByAccount,
		AccountID: 5,
	}
	_, err := remote.List(context.Background(), "tok-1", scope)

	require.NoError(t, err)
	assert.Contains(t, rec.query, "property_id=1")
	assert.Contains(t, rec.query, "account_id=5")
	assert.NotContains(t, rec.query, "entity_id")
}

func TestTransactionListFilterByEntity(t *testing.T) {
	srv, rec := newRecordingServer(t, http.StatusOK, `[]`)
	remote := restapi.NewTransactionRemote(restapi.NewClient(srv.URL, discardLogger()))

	scope := domain.TransactionScope{
		Scope:    domain.Scope{Authed: true, PropertyID: 1},
		Filter:   domain.FilterByEntity,
		EntityID: 9,
	}
	_, err := remote.List(context.Background(), "tok-1", scope)

	require.NoError(t, err)
	assert.Contains(t, rec.query, "entity_id=9")
	assert.NotContains(t, rec.query, "account_id")
}

func TestTransactionCreateFlattenedBody(t *testing.T) {
	srv, rec := newRecordingServer(t, http.StatusCreated, `{"id":11}`)
	remote := restapi.NewTransactionRemote(restapi.NewClient(srv.URL, discardLogger()))

	payload := dto.TransactionPayload{
		Date:      domain.NewDate(2026, 8, 1),
		AccountID: 5,
		EntityID:  9,
		Type:      domain.Debit,
		Amount:    decimal.RequireFromString("1200.00"),
	}
	created, err := remote.Create(context.Background(), "tok-1", 1, payload)

	require.NoError(t, err)
	require.Len(t, created, 1)
	assert.Equal(t, int64(11), created[0].ID)
	body := string(rec.body)
	assert.Contains(t, body, `"account_id":5`)
	assert.Contains(t, body, `"entity_id":9`)
	assert.NotContains(t, body, `"account":{`)
}

func TestTransactionCreateDecodesArrayResponse(t *testing.T) {
	srv, _ := newRecordingServer(t, http.StatusCreated, `[{"id":11},{"id":12}]`)
	remote := restapi.NewTransactionRemote(restapi.NewClient(srv.URL, discardLogger()))

	payload := dto.TransactionPayload{
		Date:      domain.NewDate(2026, 8, 1),
		AccountID: 5,
		Type:      domain.Debit,
		Amount:    decimal.RequireFromString("1200.00"),
	}
	created, err := remote.Create(context.Background(), "tok-1", 1, payload)

	require.NoError(t, err)
	require.Len(t, created, 2)
	assert.Equal(t, int64(11), created[0].ID)
	assert.Equal(t, int64(12), created[1].ID)
}

func TestTransactionCreateBulkPostsArrayBody(t *testing.T) {
	srv, rec := newRecordingServer(t, http.StatusCreated, `[{"id":21},{"id":22}]`)
	remote := restapi.NewTransactionRemote(restapi.NewClient(srv.URL, discardLogger()))

	payloads := []dto.TransactionPayload{
		{Date: domain.NewDate(2026, 8, 1), AccountID: 5, Type: domain.Debit, Amount: decimal.RequireFromString("600.00")},
		{Date: domain.NewDate(2026, 8, 1), AccountID: 6, Type: domain.Credit, Amount: decimal.RequireFromString("600.00")},
	}
	created, err := remote.CreateBulk(context.Background(), "tok-1", 1, payloads)

	require.NoError(t, err)
	require.Len(t, created, 2)
	assert.Equal(t, http.MethodPost, rec.method)
	assert.Equal(t, "/api/transactions/", rec.path)
	assert.Equal(t, byte('['), rec.body[0])

	var sent []map[string]any
	require.NoError(t, json.Unmarshal(rec.body, &sent))
	require.Len(t, sent, 2)
}

func TestRentPaymentListPeriodFilter(t *testing.T) {
	srv, rec := newRecordingServer(t, http.StatusOK, `[]`)
	remote := restapi.NewRentPaymentRemote(restapi.NewClient(srv.URL, discardLogger()))

	scope := domain.PaymentScope{Scope: domain.Scope{Authed: true, PropertyID: 2}, Year: 2026, Month: 8}
	_, err := remote.List(context.Background(), "tok-1", scope)

	require.NoError(t, err)
	assert.Equal(t, "/api/rent-payments/", rec.path)
	assert.Contains(t, rec.query, "year=2026")
	assert.Contains(t, rec.query, "month=8")
}

func TestNonSuccessStatusBecomesRemoteError(t *testing.T) {
	srv, _ := newRecordingServer(t, http.StatusBadRequest, `{"error":"nope"}`)
	remote := restapi.NewAccountRemote(restapi.NewClient(srv.URL, discardLogger()))

	_, err := remote.List(context.Background(), "tok-1", 1)

	require.Error(t, err)
	re, ok := apperrors.IsRemote(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, re.Status)
}

func TestTransportFailureIsNotRemoteError(t *testing.T) {
	srv, _ := newRecordingServer(t, http.StatusOK, `[]`)
	srv.Close() // force a connection error
	remote := restapi.NewAccountRemote(restapi.NewClient(srv.URL, discardLogger()))

	_, err := remote.List(context.Background(), "tok-1", 1)

	require.Error(t, err)
	_, ok := apperrors.IsRemote(err)
	assert.False(t, ok)
}

func TestLoginPostsToJWTCreate(t *testing.T) {
	srv, rec := newRecordingServer(t, http.StatusOK, `{"access":"a","refresh":"r"}`)
	remote := restapi.NewAuthRemote(restapi.NewClient(srv.URL, discardLogger()))

	pair, err := remote.Login(context.Background(), dto.LoginRequest{Email: "u@example.com", Password: "pw"})

	require.NoError(t, err)
	assert.Equal(t, "a", pair.Access)
	assert.Equal(t, "/api/auth/jwt/create/", rec.path)
	assert.Empty(t, rec.auth)
}

func TestActivateAccepts204(t *testing.T) {
	srv, rec := newRecordingServer(t, http.StatusNoContent, ``)
	remote := restapi.NewAuthRemote(restapi.NewClient(srv.URL, discardLogger()))

	err := remote.Activate(context.Background(), dto.ActivationRequest{UID: "u1", Token: "t1"})

	require.NoError(t, err)
	assert.Equal(t, "/api/auth/users/activation/", rec.path)
}
