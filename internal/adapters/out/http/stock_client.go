// internal/adapters/out/http/stock_client.go
package httpout

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"greencart/internal/application/usecase"
)

// StockClient queries the catalog service's availability endpoint.
//
// baseURL example:
// - Cloud Run: https://greencart-catalog-xxxx.asia-northeast1.run.app
// - local: http://localhost:5000
type StockClient struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

func NewStockClient(baseURL, apiKey string) *StockClient {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	return &StockClient{
		baseURL: baseURL,
		apiKey:  strings.TrimSpace(apiKey),
		client:  &http.Client{Timeout: 5 * time.Second},
	}
}

type availabilityResponse struct {
	Available    bool `json:"available"`
	MaxAvailable int  `json:"maxAvailable"`
}

// CheckAvailability calls GET /api/products/{id}/availability?qty=N.
// Transport failures and non-200 answers surface as errors; the gateway
// fail-opens on them.
func (c *StockClient) CheckAvailability(ctx context.Context, productID string, qty int) (usecase.Availability, error) {
	if c == nil {
		return usecase.Availability{}, fmt.Errorf("stock_client: client is nil")
	}
	if c.baseURL == "" {
		return usecase.Availability{}, fmt.Errorf("stock_client: baseURL is empty")
	}

	pid := strings.TrimSpace(productID)
	if pid == "" {
		return usecase.Availability{}, fmt.Errorf("stock_client: productID is empty")
	}

	endpoint := c.baseURL + "/api/products/" + url.PathEscape(pid) + "/availability?qty=" + strconv.Itoa(qty)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return usecase.Availability{}, fmt.Errorf("stock_client: create request: %w", err)
	}
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	res, err := c.client.Do(req)
	if err != nil {
		return usecase.Availability{}, fmt.Errorf("stock_client: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(res.Body, 1<<20))
		return usecase.Availability{}, fmt.Errorf("stock_client: status=%d body=%s", res.StatusCode, strings.TrimSpace(string(body)))
	}

	var decoded availabilityResponse
	if err := json.NewDecoder(res.Body).Decode(&decoded); err != nil {
		return usecase.Availability{}, fmt.Errorf("stock_client: decode: %w", err)
	}

	return usecase.Availability{
		Available:    decoded.Available,
		MaxAvailable: decoded.MaxAvailable,
	}, nil
}
