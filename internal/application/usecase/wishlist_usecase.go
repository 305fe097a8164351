// internal/application/usecase/wishlist_usecase.go
package usecase

import (
	"context"
	"errors"
	"strings"

	"greencart/internal/domain/wishlist"
)

var (
	ErrWishlistInvalidArgument = errors.New("wishlist_usecase: invalid argument")
)

// WishlistUsecase mutates the wishlist. No stock gate: membership is a
// pure set, always persisted synchronously.
type WishlistUsecase struct {
	session *SessionUsecase
}

func NewWishlistUsecase(session *SessionUsecase) *WishlistUsecase {
	return &WishlistUsecase{session: session}
}

// Toggle adds the product when absent and removes it when present.
// added reports which direction the toggle took.
func (uc *WishlistUsecase) Toggle(ctx context.Context, entry wishlist.Entry) ([]wishlist.Entry, bool, error) {
	if uc == nil || uc.session == nil {
		return nil, false, ErrWishlistInvalidArgument
	}
	entry.ProductID = strings.TrimSpace(entry.ProductID)
	if entry.ProductID == "" {
		return nil, false, ErrWishlistInvalidArgument
	}

	added := false
	entries, err := uc.session.UpdateWishlistFor(ctx, uc.session.Current(), func(entries []wishlist.Entry) ([]wishlist.Entry, error) {
		next, wasAdded, err := wishlist.Toggle(entries, entry)
		if err != nil {
			return nil, err
		}
		added = wasAdded
		return next, nil
	})
	if err != nil {
		return nil, false, err
	}
	return entries, added, nil
}
