// internal/adapters/out/db/stock_availability_pg.go
package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"greencart/internal/application/usecase"
)

// StockAvailabilityPG answers availability queries straight from the
// products table. Read-only: it never reserves or decrements stock.
type StockAvailabilityPG struct {
	DB *sql.DB
}

func NewStockAvailabilityPG(db *sql.DB) *StockAvailabilityPG {
	return &StockAvailabilityPG{DB: db}
}

// CheckAvailability reports whether qty units of productID are in stock.
// An unknown product id is reported as unavailable with zero stock, not as
// an error; only transport/database failures surface as errors (which the
// gateway treats as fail-open).
func (r *StockAvailabilityPG) CheckAvailability(ctx context.Context, productID string, qty int) (usecase.Availability, error) {
	if r == nil || r.DB == nil {
		return usecase.Availability{}, fmt.Errorf("stock_availability_pg: db is nil")
	}

	pid := strings.TrimSpace(productID)
	if pid == "" {
		return usecase.Availability{}, fmt.Errorf("stock_availability_pg: productID is empty")
	}

	const q = `SELECT stock FROM products WHERE id = $1`

	var stock int
	err := r.DB.QueryRowContext(ctx, q, pid).Scan(&stock)
	if errors.Is(err, sql.ErrNoRows) {
		return usecase.Availability{Available: false, MaxAvailable: 0}, nil
	}
	if err != nil {
		return usecase.Availability{}, fmt.Errorf("stock_availability_pg: query %s: %w", pid, err)
	}

	if stock < 0 {
		stock = 0
	}
	return usecase.Availability{
		Available:    stock >= qty,
		MaxAvailable: stock,
	}, nil
}
