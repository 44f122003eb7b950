package api

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/catalog/pkg/types"
)

func TestRequestIDGenerated(t *testing.T) {
	m := new(mockCatalog)
	m.On("List", mock.Anything).Return([]types.Item{}, nil)

	w := serve(t, m, http.MethodGet, "/api/items", "")

	id := w.Header().Get(RequestIDHeader)
	_, err := uuid.Parse(id)
	assert.NoError(t, err, "request id %q is not a UUID", id)
}

func TestRequestIDEchoed(t *testing.T) {
	m := new(mockCatalog)
	m.On("List", mock.Anything).Return([]types.Item{}, nil)
	router := NewRouter(m, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/items", nil)
	req.Header.Set(RequestIDHeader, "client-supplied")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, "client-supplied", w.Header().Get(RequestIDHeader))
}

func TestRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	m := new(mockCatalog)
	m.On("Get", mock.Anything, int64(5)).Return(nil, &types.NotFoundError{ID: 5})
	router := NewRouter(m, logger)

	req := httptest.NewRequest(http.MethodGet, "/api/items/5", nil)
	req.Header.Set(RequestIDHeader, "req-42")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusNotFound, w.Code)

	out := buf.String()
	assert.Contains(t, out, "msg=request")
	assert.Contains(t, out, "method=GET")
	assert.Contains(t, out, "path=/api/items/5")
	assert.Contains(t, out, "status=404")
	assert.Contains(t, out, "request_id=req-42")
}
