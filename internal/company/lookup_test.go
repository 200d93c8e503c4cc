package company

import (
	"context"
	"net/http/httptest"
	"net/url"
	"strconv"
	"testing"

	"car-rental/internal/registry"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookup_ThroughNameDirectory(t *testing.T) {
	company := startTestCompany(t)

	names := registry.NewMemoryRegistry()
	router := mux.NewRouter()
	registry.NewHandler(names).RegisterRoutes(router)
	directory := httptest.NewServer(router)
	defer directory.Close()

	ctx := context.Background()
	require.NoError(t, names.Bind(ctx, "Hertz", company.URL))

	u, err := url.Parse(directory.URL)
	require.NoError(t, err)
	port, err := strconv.Atoi(u.Port())
	require.NoError(t, err)
	resolver := registry.NewClient(u.Hostname(), port)

	client, err := Lookup(ctx, resolver, "Hertz")
	require.NoError(t, err)

	quote, err := client.CreateQuote(ctx, constraints("Compact"), "alice")
	require.NoError(t, err)
	reservation, err := client.ConfirmQuote(ctx, quote)
	require.NoError(t, err)
	assert.Equal(t, 1, reservation.CarID)

	_, err = Lookup(ctx, resolver, "Avis")
	assert.ErrorIs(t, err, registry.ErrNameNotFound)
}
