package registry

import (
	"context"
	"net/http/httptest"
	"net/url"
	"strconv"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// exerciseRegistry checks the behaviour every Registry shares
func exerciseRegistry(t *testing.T, r Registry) {
	t.Helper()
	ctx := context.Background()

	_, err := r.Lookup(ctx, "Hertz")
	assert.ErrorIs(t, err, ErrNameNotFound)

	require.NoError(t, r.Bind(ctx, "Hertz", "http://localhost:8080"))
	require.NoError(t, r.Bind(ctx, "Avis", "http://localhost:8081"))

	addr, err := r.Lookup(ctx, "Hertz")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080", addr)

	// Rebinding replaces the address
	require.NoError(t, r.Bind(ctx, "Hertz", "http://10.0.0.7:8080"))
	addr, err = r.Lookup(ctx, "Hertz")
	require.NoError(t, err)
	assert.Equal(t, "http://10.0.0.7:8080", addr)

	bindings, err := r.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"Hertz": "http://10.0.0.7:8080",
		"Avis":  "http://localhost:8081",
	}, bindings)

	require.NoError(t, r.Unbind(ctx, "Avis"))
	_, err = r.Lookup(ctx, "Avis")
	assert.ErrorIs(t, err, ErrNameNotFound)
	assert.ErrorIs(t, r.Unbind(ctx, "Avis"), ErrNameNotFound)

	assert.ErrorIs(t, r.Bind(ctx, "Sixt", ""), ErrInvalidBinding)
}

func startDirectory(t *testing.T, backend Registry) *Client {
	t.Helper()

	router := mux.NewRouter()
	NewHandler(backend).RegisterRoutes(router)
	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	u, err := url.Parse(server.URL)
	require.NoError(t, err)
	port, err := strconv.Atoi(u.Port())
	require.NoError(t, err)

	return NewClient(u.Hostname(), port)
}

func TestMemoryRegistry(t *testing.T) {
	exerciseRegistry(t, NewMemoryRegistry())
}

func TestMemoryRegistry_ListIsACopy(t *testing.T) {
	r := NewMemoryRegistry()
	ctx := context.Background()
	require.NoError(t, r.Bind(ctx, "Hertz", "http://localhost:8080"))

	bindings, err := r.List(ctx)
	require.NoError(t, err)
	bindings["Hertz"] = "http://elsewhere"

	addr, err := r.Lookup(ctx, "Hertz")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080", addr)
}

func TestClient_OverDirectory(t *testing.T) {
	exerciseRegistry(t, startDirectory(t, NewMemoryRegistry()))
}

func TestClient_SharesBackendWithServer(t *testing.T) {
	backend := NewMemoryRegistry()
	client := startDirectory(t, backend)
	ctx := context.Background()

	require.NoError(t, backend.Bind(ctx, "Hertz", "http://localhost:8080"))

	addr, err := client.Lookup(ctx, "Hertz")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080", addr)
}

func TestClient_Unreachable(t *testing.T) {
	router := mux.NewRouter()
	server := httptest.NewServer(router)
	u, _ := url.Parse(server.URL)
	port, _ := strconv.Atoi(u.Port())
	server.Close()

	_, err := NewClient(u.Hostname(), port).Lookup(context.Background(), "Hertz")

	assert.ErrorIs(t, err, ErrUnreachable)
	assert.NotErrorIs(t, err, ErrNameNotFound)
}
