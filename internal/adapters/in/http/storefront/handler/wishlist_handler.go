// internal/adapters/in/http/storefront/handler/wishlist_handler.go
package storefrontHandler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"greencart/internal/application/query"
	"greencart/internal/application/usecase"
	"greencart/internal/domain/wishlist"
)

// WishlistHandler serves the wishlist endpoints:
// - GET  /api/wishlist         effective wishlist summary
// - POST /api/wishlist/toggle  involutive membership toggle
type WishlistHandler struct {
	sessions *usecase.SessionManager
}

func NewWishlistHandler(sessions *usecase.SessionManager) http.Handler {
	return &WishlistHandler{sessions: sessions}
}

type toggleResponse struct {
	Added    bool                  `json:"added"`
	Wishlist query.WishlistSummary `json:"wishlist"`
}

func (h *WishlistHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.sessions == nil {
		writeErr(w, http.StatusInternalServerError, "wishlist handler is not configured")
		return
	}

	eng := acquireEngine(h.sessions, w, r)
	path := strings.TrimRight(r.URL.Path, "/")

	switch {
	case r.Method == http.MethodGet:
		writeJSON(w, http.StatusOK, query.BuildWishlistSummary(eng.Session.Current(), eng.Session.EffectiveWishlist()))

	case r.Method == http.MethodPost && strings.HasSuffix(path, "/toggle"):
		var entry wishlist.Entry
		if err := json.NewDecoder(r.Body).Decode(&entry); err != nil {
			writeErr(w, http.StatusBadRequest, "invalid body")
			return
		}

		entries, added, err := eng.Wishlist.Toggle(r.Context(), entry)
		if err != nil {
			switch {
			case errors.Is(err, usecase.ErrWishlistInvalidArgument), errors.Is(err, wishlist.ErrInvalidEntry):
				writeErr(w, http.StatusBadRequest, err.Error())
			case errors.Is(err, usecase.ErrSessionSuperseded):
				writeErr(w, http.StatusConflict, err.Error())
			default:
				writeErr(w, http.StatusInternalServerError, err.Error())
			}
			return
		}

		writeJSON(w, http.StatusOK, toggleResponse{
			Added:    added,
			Wishlist: query.BuildWishlistSummary(eng.Session.Current(), entries),
		})

	default:
		writeErr(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}
