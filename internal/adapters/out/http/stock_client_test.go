// internal/adapters/out/http/stock_client_test.go
package httpout

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckAvailability(t *testing.T) {
	ctx := context.Background()

	t.Run("available answer", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/api/products/herb-1/availability", r.URL.Path)
			assert.Equal(t, "3", r.URL.Query().Get("qty"))
			assert.Equal(t, "Bearer k-123", r.Header.Get("Authorization"))
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"available":true,"maxAvailable":7}`))
		}))
		defer srv.Close()

		c := NewStockClient(srv.URL, "k-123")
		av, err := c.CheckAvailability(ctx, "herb-1", 3)
		require.NoError(t, err)
		assert.True(t, av.Available)
		assert.Equal(t, 7, av.MaxAvailable)
	})

	t.Run("no api key sends no auth header", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Empty(t, r.Header.Get("Authorization"))
			_, _ = w.Write([]byte(`{"available":false,"maxAvailable":0}`))
		}))
		defer srv.Close()

		av, err := NewStockClient(srv.URL, "").CheckAvailability(ctx, "herb-1", 1)
		require.NoError(t, err)
		assert.False(t, av.Available)
	})

	t.Run("non-200 surfaces as error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "nope", http.StatusBadGateway)
		}))
		defer srv.Close()

		_, err := NewStockClient(srv.URL, "").CheckAvailability(ctx, "herb-1", 1)
		assert.Error(t, err)
	})

	t.Run("empty product id rejected", func(t *testing.T) {
		_, err := NewStockClient("http://localhost:5000", "").CheckAvailability(ctx, "  ", 1)
		assert.Error(t, err)
	})

	t.Run("empty base url rejected", func(t *testing.T) {
		_, err := NewStockClient("", "").CheckAvailability(ctx, "herb-1", 1)
		assert.Error(t, err)
	})
}
