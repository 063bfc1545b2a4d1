package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/diego1198/inventory-frontend/internal/application/session"
	"github.com/diego1198/inventory-frontend/internal/domain"
	"github.com/diego1198/inventory-frontend/internal/domain/entity"
)

type recorded struct {
	method string
	status int
}

type fakeRecorder struct {
	mu    sync.Mutex
	calls []recorded
}

func (r *fakeRecorder) UpstreamRequest(method string, status int, _ time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, recorded{method, status})
}

func withSession(token string) context.Context {
	return session.WithContext(context.Background(), entity.Session{Token: token})
}

func TestDo_InyectaBearerYDesenvuelveData(t *testing.T) {
	var gotAuth, gotReqID, gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotReqID = r.Header.Get("X-Request-ID")
		gotQuery = r.URL.RawQuery
		assert.Equal(t, "/api/products", r.URL.Path)
		_, _ = w.Write([]byte(`{"data":[{"id":"p1","name":"Café","salePrice":"2.50","stock":3}],"timestamp":"x","success":true}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL+"/api/", 5*time.Second)
	var out []entity.Product
	err := c.Do(withSession("tok-123"), http.MethodGet, "/products", url.Values{"category": {"bebidas"}}, nil, &out)
	require.NoError(t, err)

	assert.Equal(t, "Bearer tok-123", gotAuth)
	assert.NotEmpty(t, gotReqID)
	assert.Equal(t, "category=bebidas", gotQuery)
	require.Len(t, out, 1)
	assert.Equal(t, "Café", out[0].Name)
	assert.True(t, decimal.RequireFromString("2.5").Equal(out[0].SalePrice))
}

func TestDo_SinSobreUsaCuerpoCompleto(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`[{"id":"m1","type":"IN","quantity":10}]`))
	}))
	defer srv.Close()

	var out []entity.InventoryMovement
	err := NewClient(srv.URL, time.Second).Do(context.Background(), http.MethodGet, "/inventory/movements", nil, nil, &out)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, entity.MovementTypeIN, out[0].Type)
}

func TestDo_ObjetoSinDataSeDecodificaEntero(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"id":"c1","name":"Ana","documentNumber":"0912"}`))
	}))
	defer srv.Close()

	var out entity.Customer
	require.NoError(t, NewClient(srv.URL, time.Second).Do(context.Background(), http.MethodGet, "/customers/c1", nil, nil, &out))
	assert.Equal(t, "Ana", out.Name)
}

func TestDo_RespuestaDemasiadoGrande(t *testing.T) {
	body := `{"data":"` + strings.Repeat("x", maxBodyBytes) + `"}`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(body))
	}))
	defer srv.Close()

	var out string
	err := NewClient(srv.URL, 5*time.Second).Do(context.Background(), http.MethodGet, "/reports", nil, nil, &out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "respuesta demasiado grande")
	assert.Empty(t, out)
}

func TestDo_RespuestaEnElLimiteSeDecodifica(t *testing.T) {
	payload := strings.Repeat("x", maxBodyBytes-2)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`"` + payload + `"`))
	}))
	defer srv.Close()

	var out string
	require.NoError(t, NewClient(srv.URL, 5*time.Second).Do(context.Background(), http.MethodGet, "/reports", nil, nil, &out))
	assert.Len(t, out, maxBodyBytes-2)
}

func TestDo_SinSesionNoEnviaAuthorization(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	assert.NoError(t, NewClient(srv.URL, time.Second).Do(context.Background(), http.MethodDelete, "/x", nil, nil, nil))
}

func TestDo_EnviaCuerpoJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		var in map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		assert.Equal(t, "Bebidas", in["name"])
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"data":{"id":"cat1","name":"Bebidas"}}`))
	}))
	defer srv.Close()

	var out entity.Category
	err := NewClient(srv.URL, time.Second).Do(withSession("t"), http.MethodPost, "/categories", nil, map[string]string{"name": "Bebidas"}, &out)
	require.NoError(t, err)
	assert.Equal(t, "cat1", out.ID)
}

func TestDo_ErrorValidacionConArregloDeMensajes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"statusCode":400,"message":["name should not be empty","salePrice must be a number"],"error":"Bad Request"}`))
	}))
	defer srv.Close()

	err := NewClient(srv.URL, time.Second).Do(withSession("t"), http.MethodPost, "/products", nil, map[string]string{}, nil)
	require.Error(t, err)

	var apiErr *Error
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.Equal(t, []string{"name should not be empty", "salePrice must be a number"}, apiErr.UserMessages())
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestDo_TaxonomiaDeErrores(t *testing.T) {
	cases := []struct {
		status int
		want   error
	}{
		{http.StatusUnauthorized, domain.ErrUnauthorized},
		{http.StatusForbidden, domain.ErrForbidden},
		{http.StatusNotFound, domain.ErrNotFound},
		{http.StatusConflict, domain.ErrConflict},
		{http.StatusUnprocessableEntity, domain.ErrValidation},
	}
	for _, tc := range cases {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(tc.status)
			_, _ = w.Write([]byte(`{"message":"fallo"}`))
		}))
		err := NewClient(srv.URL, time.Second).Do(context.Background(), http.MethodGet, "/x", nil, nil, nil)
		srv.Close()
		assert.ErrorIs(t, err, tc.want, "status %d", tc.status)
	}
}

func TestDo_ErrorSinCuerpoUsaTextoDeStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	err := NewClient(srv.URL, time.Second).Do(context.Background(), http.MethodGet, "/x", nil, nil, nil)
	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, []string{"Internal Server Error"}, apiErr.Messages)
	assert.Nil(t, apiErr.Unwrap())
}

func TestDo_FalloDeRedEsErrNetwork(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	addr := srv.URL
	srv.Close()

	rec := &fakeRecorder{}
	err := NewClient(addr, time.Second, WithRecorder(rec)).Do(context.Background(), http.MethodGet, "/x", nil, nil, nil)
	assert.ErrorIs(t, err, domain.ErrNetwork)
	require.Len(t, rec.calls, 1)
	assert.Equal(t, recorded{http.MethodGet, 0}, rec.calls[0])
}

func TestDo_RegistraMetricaConStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	rec := &fakeRecorder{}
	_ = NewClient(srv.URL, time.Second, WithRecorder(rec)).Do(context.Background(), http.MethodGet, "/x", nil, nil, nil)
	assert.Equal(t, []recorded{{http.MethodGet, http.StatusNotFound}}, rec.calls)
}
