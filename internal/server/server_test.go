package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/desertthunder/petstore/internal/models"
	"github.com/desertthunder/petstore/internal/repositories"
	"github.com/desertthunder/petstore/internal/services"
	"github.com/desertthunder/petstore/internal/shared"
	tu "github.com/desertthunder/petstore/internal/testing"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	logger := shared.NewLogger(io.Discard)
	svc := services.NewPetStoreService(repositories.NewGateway(tu.NewTestDB(t)), logger)
	return NewRouter(svc, shared.ServerConfig{}, logger)
}

func do(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = strings.NewReader(b)
	case io.Reader:
		reader = b
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestPetStoreHandler(t *testing.T) {
	t.Run("scenario", func(t *testing.T) {
		h := newTestRouter(t)

		rec := do(t, h, http.MethodPost, "/pet_store", map[string]any{"storeName": "Paws"})
		require.Equal(t, http.StatusOK, rec.Code)
		store := decodeBody[models.PetStoreData](t, rec)
		assert.Equal(t, int64(1), store.StoreID())
		assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

		rec = do(t, h, http.MethodPost, "/pet_store/1/employee", map[string]any{"employeeName": "Alice"})
		require.Equal(t, http.StatusCreated, rec.Code)
		employee := decodeBody[models.PetStoreEmployee](t, rec)
		assert.Equal(t, int64(1), employee.EmployeeID())

		rec = do(t, h, http.MethodGet, "/pet_store/1", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t,
			`{"id":1,"storeName":"Paws","customers":[],"employees":[{"id":1,"employeeName":"Alice"}]}`,
			rec.Body.String())

		rec = do(t, h, http.MethodDelete, "/pet_store/1", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"message":"Pet store with ID=1 was deleted successfully."}`, rec.Body.String())

		rec = do(t, h, http.MethodGet, "/pet_store/1", nil)
		require.Equal(t, http.StatusNotFound, rec.Code)
		errBody := decodeBody[ErrorResponse](t, rec)
		assert.Equal(t, "pet store with ID=1 not found", errBody.Message)
		assert.Equal(t, http.StatusNotFound, errBody.StatusCode)
		assert.Equal(t, "Not Found", errBody.Reason)
		assert.Equal(t, "/pet_store/1", errBody.URI)
		assert.NotEmpty(t, errBody.Timestamp)
	})

	t.Run("customer", func(t *testing.T) {
		h := newTestRouter(t)

		require.Equal(t, http.StatusOK, do(t, h, http.MethodPost, "/pet_store", map[string]any{"storeName": "Paws"}).Code)
		require.Equal(t, http.StatusOK, do(t, h, http.MethodPost, "/pet_store", map[string]any{"storeName": "Claws"}).Code)

		rec := do(t, h, http.MethodPost, "/pet_store/1/customer", map[string]any{"customerName": "Bob", "customerEmail": "bob@example.com"})
		require.Equal(t, http.StatusCreated, rec.Code)
		assert.JSONEq(t, `{"id":1,"customerName":"Bob","customerEmail":"bob@example.com"}`, rec.Body.String())

		rec = do(t, h, http.MethodPost, "/pet_store/2/customer", map[string]any{"id": 1, "customerName": "Bob"})
		assert.Equal(t, http.StatusBadRequest, rec.Code)

		rec = do(t, h, http.MethodPost, "/pet_store/9/customer", map[string]any{"customerName": "Bob"})
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("employee ownership mismatch", func(t *testing.T) {
		h := newTestRouter(t)

		do(t, h, http.MethodPost, "/pet_store", map[string]any{"storeName": "Paws", "employees": []any{map[string]any{"employeeName": "Alice"}}})
		do(t, h, http.MethodPost, "/pet_store", map[string]any{"storeName": "Claws"})

		rec := do(t, h, http.MethodPost, "/pet_store/2/employee", map[string]any{"id": 1, "employeeName": "Mallory"})
		require.Equal(t, http.StatusBadRequest, rec.Code)
		errBody := decodeBody[ErrorResponse](t, rec)
		assert.Contains(t, errBody.Message, "ownership mismatch")
	})

	t.Run("save with unknown id", func(t *testing.T) {
		h := newTestRouter(t)

		rec := do(t, h, http.MethodPost, "/pet_store", map[string]any{"id": 5, "storeName": "Ghost"})
		assert.Equal(t, http.StatusNotFound, rec.Code)

		rec = do(t, h, http.MethodGet, "/pet_store", nil)
		assert.JSONEq(t, `[]`, rec.Body.String())
	})

	t.Run("list strips children", func(t *testing.T) {
		h := newTestRouter(t)

		do(t, h, http.MethodPost, "/pet_store", map[string]any{
			"storeName": "Paws",
			"employees": []any{map[string]any{"employeeName": "Alice"}},
			"customers": []any{map[string]any{"customerName": "Bob", "customerEmail": "bob@example.com"}},
		})

		rec := do(t, h, http.MethodGet, "/pet_store", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `[{"id":1,"storeName":"Paws","customers":[],"employees":[]}]`, rec.Body.String())
	})

	t.Run("bad input", func(t *testing.T) {
		h := newTestRouter(t)

		tests := []struct {
			name   string
			method string
			path   string
			body   any
			want   int
		}{
			{"malformed store", http.MethodPost, "/pet_store", "{", http.StatusBadRequest},
			{"unreadable body", http.MethodPost, "/pet_store", &tu.FCloser{}, http.StatusBadRequest},
			{"non numeric id", http.MethodGet, "/pet_store/abc", nil, http.StatusBadRequest},
			{"non numeric employee store", http.MethodPost, "/pet_store/abc/employee", map[string]any{}, http.StatusBadRequest},
			{"unknown route", http.MethodGet, "/nowhere", nil, http.StatusNotFound},
			{"wrong method", http.MethodPut, "/pet_store/1", nil, http.StatusMethodNotAllowed},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				rec := do(t, h, tt.method, tt.path, tt.body)
				assert.Equal(t, tt.want, rec.Code)
				errBody := decodeBody[ErrorResponse](t, rec)
				assert.Equal(t, tt.want, errBody.StatusCode)
			})
		}
	})
}

func TestHealth(t *testing.T) {
	h := newTestRouter(t)

	rec := do(t, h, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get(RequestIDHeader))
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{shared.ErrNotFound, http.StatusNotFound},
		{errors.Join(errors.New("wrapped"), shared.ErrOwnershipMismatch), http.StatusBadRequest},
		{shared.ErrInvalidInput, http.StatusBadRequest},
		{shared.ErrServiceUnavailable, http.StatusServiceUnavailable},
		{errors.New("disk on fire"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, StatusFor(tt.err), tt.err.Error())
	}
}

// failingService fails every call with err, or panics when err is nil.
type failingService struct {
	services.Service
	err error
}

func (f failingService) RetrieveAllPetStores(context.Context) ([]models.PetStoreData, error) {
	if f.err == nil {
		panic("boom")
	}
	return nil, f.err
}

func TestMiddleware(t *testing.T) {
	logger := shared.NewLogger(io.Discard)

	t.Run("internal errors map to 500", func(t *testing.T) {
		h := NewRouter(failingService{err: errors.New("disk on fire")}, shared.ServerConfig{}, logger)

		rec := do(t, h, http.MethodGet, "/pet_store", nil)
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})

	t.Run("recovers panics", func(t *testing.T) {
		h := NewRouter(failingService{}, shared.ServerConfig{}, logger)

		rec := do(t, h, http.MethodGet, "/pet_store", nil)
		require.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Contains(t, decodeBody[ErrorResponse](t, rec).Message, "boom")
	})

	t.Run("propagates request id", func(t *testing.T) {
		h := NewRouter(failingService{err: shared.ErrNotFound}, shared.ServerConfig{}, logger)

		req := httptest.NewRequest(http.MethodGet, "/pet_store", nil)
		req.Header.Set(RequestIDHeader, "req-123")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		assert.Equal(t, "req-123", rec.Header().Get(RequestIDHeader))
	})

	t.Run("rate limits", func(t *testing.T) {
		h := NewRouter(failingService{err: shared.ErrNotFound}, shared.ServerConfig{RateLimit: 0.001, RateBurst: 2}, logger)

		assert.Equal(t, http.StatusNotFound, do(t, h, http.MethodGet, "/pet_store", nil).Code)
		assert.Equal(t, http.StatusNotFound, do(t, h, http.MethodGet, "/pet_store", nil).Code)
		assert.Equal(t, http.StatusTooManyRequests, do(t, h, http.MethodGet, "/pet_store", nil).Code)
	})

	t.Run("logs requests", func(t *testing.T) {
		var buf bytes.Buffer
		h := NewRouter(failingService{err: shared.ErrNotFound}, shared.ServerConfig{}, shared.NewLogger(&buf))

		do(t, h, http.MethodGet, "/pet_store", nil)

		out := buf.String()
		assert.Contains(t, out, "request")
		assert.Contains(t, out, "status=404")
		assert.Contains(t, out, "path=/pet_store")
	})
}

func TestBasicRouter(t *testing.T) {
	router := NewBasicRouter()

	var order []string
	mark := func(name string) Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}
	router.Use(mark("first"), mark("second"))
	router.Handle(http.MethodGet, "/ping", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		order = append(order, "handler")
		w.WriteHeader(http.StatusNoContent)
	}))

	rec := do(t, router, http.MethodGet, "/ping", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, []string{"first", "second", "handler"}, order)
}
