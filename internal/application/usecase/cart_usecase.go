// internal/application/usecase/cart_usecase.go
package usecase

import (
	"context"
	"errors"
	"log"
	"strings"

	"greencart/internal/domain/cart"
)

var (
	ErrCartInvalidArgument = errors.New("cart_usecase: invalid argument")
)

// StockExceeded reports that the requested quantity is not available.
// It is a user-visible outcome, not an error: callers show "only N left"
// and decide whether to retry with MaxAvailable.
type StockExceeded struct {
	ProductID    string `json:"productId"`
	MaxAvailable int    `json:"maxAvailable"`
}

// CartUsecase is the mutation gateway for the cart: every
// quantity-increasing operation is validated against a live stock
// availability query before it is committed to the reconciled collection.
type CartUsecase struct {
	session *SessionUsecase
	stock   AvailabilityChecker
}

// NewCartUsecase builds the gateway. A nil checker disables the stock gate
// entirely (every quantity is treated as available).
func NewCartUsecase(session *SessionUsecase, stock AvailabilityChecker) *CartUsecase {
	return &CartUsecase{session: session, stock: stock}
}

// AddLine merges line into the cart by product id, summing quantity. When
// stock is short the mutation is rejected and the outcome reports how many
// units are actually available.
func (uc *CartUsecase) AddLine(ctx context.Context, line cart.Line) ([]cart.Line, *StockExceeded, error) {
	if uc == nil || uc.session == nil {
		return nil, nil, ErrCartInvalidArgument
	}
	line.ProductID = strings.TrimSpace(line.ProductID)
	if line.ProductID == "" || line.Quantity <= 0 {
		return nil, nil, ErrCartInvalidArgument
	}

	id := uc.session.Current()

	av := uc.checkAvailability(ctx, line.ProductID, line.Quantity)
	if !av.Available {
		return uc.session.EffectiveCart(), &StockExceeded{ProductID: line.ProductID, MaxAvailable: av.MaxAvailable}, nil
	}

	lines, err := uc.session.UpdateCartFor(ctx, id, func(lines []cart.Line) ([]cart.Line, error) {
		return cart.Add(lines, line)
	})
	if err != nil {
		return nil, nil, err
	}
	return lines, nil, nil
}

// SetQuantity commits qty for productID, clamped to live availability.
// Clamping instead of rejecting is deliberate: a momentarily stale cart
// should self-correct rather than dead-end the user. The returned outcome
// is non-nil when a clamp happened.
func (uc *CartUsecase) SetQuantity(ctx context.Context, productID string, qty int) ([]cart.Line, *StockExceeded, error) {
	if uc == nil || uc.session == nil {
		return nil, nil, ErrCartInvalidArgument
	}
	pid := strings.TrimSpace(productID)
	if pid == "" {
		return nil, nil, ErrCartInvalidArgument
	}

	id := uc.session.Current()

	if qty <= 0 {
		lines, err := uc.session.UpdateCartFor(ctx, id, func(lines []cart.Line) ([]cart.Line, error) {
			return cart.Remove(lines, pid), nil
		})
		return lines, nil, err
	}

	var exceeded *StockExceeded
	commit := qty
	av := uc.checkAvailability(ctx, pid, qty)
	if !av.Available {
		exceeded = &StockExceeded{ProductID: pid, MaxAvailable: av.MaxAvailable}
		commit = av.MaxAvailable
	}

	lines, err := uc.session.UpdateCartFor(ctx, id, func(lines []cart.Line) ([]cart.Line, error) {
		return cart.SetQuantity(lines, pid, commit), nil
	})
	if err != nil {
		return nil, nil, err
	}
	return lines, exceeded, nil
}

// RemoveLine deletes productID unconditionally; decreasing demand needs no
// stock gate.
func (uc *CartUsecase) RemoveLine(ctx context.Context, productID string) ([]cart.Line, error) {
	if uc == nil || uc.session == nil {
		return nil, ErrCartInvalidArgument
	}
	pid := strings.TrimSpace(productID)
	if pid == "" {
		return nil, ErrCartInvalidArgument
	}

	return uc.session.UpdateCartFor(ctx, uc.session.Current(), func(lines []cart.Line) ([]cart.Line, error) {
		return cart.Remove(lines, pid), nil
	})
}

// Clear empties the cart. The checkout collaborator calls this after a
// confirmed order placement.
func (uc *CartUsecase) Clear(ctx context.Context) error {
	if uc == nil || uc.session == nil {
		return ErrCartInvalidArgument
	}
	_, err := uc.session.UpdateCartFor(ctx, uc.session.Current(), func([]cart.Line) ([]cart.Line, error) {
		return nil, nil
	})
	return err
}

// checkAvailability wraps the collaborator with the fail-open policy: a
// transport failure counts as available so a flaky stock endpoint cannot
// block purchases. Known overselling risk; logged, not hidden.
func (uc *CartUsecase) checkAvailability(ctx context.Context, productID string, qty int) Availability {
	if uc.stock == nil {
		return Availability{Available: true, MaxAvailable: qty}
	}
	av, err := uc.stock.CheckAvailability(ctx, productID, qty)
	if err != nil {
		log.Printf("[cart_usecase] WARN: availability check failed product=%s qty=%d err=%v (fail-open)", productID, qty, err)
		return Availability{Available: true, MaxAvailable: qty}
	}
	return av
}
