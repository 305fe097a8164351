// internal/adapters/in/http/storefront/handler/cart_handler.go
package storefrontHandler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"greencart/internal/application/query"
	"greencart/internal/application/usecase"
	"greencart/internal/domain/cart"
)

// CartHandler serves the cart endpoints:
// - GET    /api/cart                    effective cart summary
// - POST   /api/cart/items              add a line (stock gated)
// - PUT    /api/cart/items/{productId}  set quantity (stock clamped)
// - DELETE /api/cart/items/{productId}  remove a line
// - DELETE /api/cart                    clear
// - POST   /api/cart/checkout           checkout collaborator hook: clear
type CartHandler struct {
	sessions *usecase.SessionManager
}

func NewCartHandler(sessions *usecase.SessionManager) http.Handler {
	return &CartHandler{sessions: sessions}
}

type cartMutationResponse struct {
	Cart          query.CartSummary      `json:"cart"`
	StockExceeded *usecase.StockExceeded `json:"stockExceeded,omitempty"`
}

func (h *CartHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.sessions == nil {
		writeErr(w, http.StatusInternalServerError, "cart handler is not configured")
		return
	}

	eng := acquireEngine(h.sessions, w, r)

	path := strings.TrimRight(r.URL.Path, "/")
	itemsIdx := strings.Index(path, "/cart/items")

	switch {
	case r.Method == http.MethodGet:
		writeJSON(w, http.StatusOK, query.BuildCartSummary(eng.Session.Current(), eng.Session.EffectiveCart()))

	case r.Method == http.MethodPost && strings.HasSuffix(path, "/checkout"):
		if err := eng.Cart.Clear(r.Context()); err != nil {
			writeCartErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, query.BuildCartSummary(eng.Session.Current(), eng.Session.EffectiveCart()))

	case r.Method == http.MethodPost && strings.HasSuffix(path, "/items"):
		h.handleAdd(w, r, eng)

	case r.Method == http.MethodPut && itemsIdx >= 0:
		h.handleSetQuantity(w, r, eng, pathProductID(path))

	case r.Method == http.MethodDelete && itemsIdx >= 0:
		h.handleRemove(w, r, eng, pathProductID(path))

	case r.Method == http.MethodDelete:
		if err := eng.Cart.Clear(r.Context()); err != nil {
			writeCartErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, query.BuildCartSummary(eng.Session.Current(), eng.Session.EffectiveCart()))

	default:
		writeErr(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

// pathProductID extracts {productId} from ".../cart/items/{productId}".
func pathProductID(path string) string {
	idx := strings.Index(path, "/cart/items/")
	if idx < 0 {
		return ""
	}
	return strings.TrimSpace(path[idx+len("/cart/items/"):])
}

func (h *CartHandler) handleAdd(w http.ResponseWriter, r *http.Request, eng *usecase.Engine) {
	var line cart.Line
	if err := json.NewDecoder(r.Body).Decode(&line); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid body")
		return
	}
	if line.Quantity == 0 {
		line.Quantity = 1
	}

	lines, exceeded, err := eng.Cart.AddLine(r.Context(), line)
	if err != nil {
		writeCartErr(w, err)
		return
	}

	resp := cartMutationResponse{
		Cart:          query.BuildCartSummary(eng.Session.Current(), lines),
		StockExceeded: exceeded,
	}
	if exceeded != nil {
		// nothing was committed; 409 carries maxAvailable for the UI
		writeJSON(w, http.StatusConflict, resp)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

type setQuantityRequest struct {
	Quantity int `json:"quantity"`
}

func (h *CartHandler) handleSetQuantity(w http.ResponseWriter, r *http.Request, eng *usecase.Engine, productID string) {
	if productID == "" {
		writeErr(w, http.StatusBadRequest, "productId is required")
		return
	}

	var req setQuantityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid body")
		return
	}

	lines, exceeded, err := eng.Cart.SetQuantity(r.Context(), productID, req.Quantity)
	if err != nil {
		writeCartErr(w, err)
		return
	}

	// a clamp is still a success: the committed quantity self-corrected
	writeJSON(w, http.StatusOK, cartMutationResponse{
		Cart:          query.BuildCartSummary(eng.Session.Current(), lines),
		StockExceeded: exceeded,
	})
}

func (h *CartHandler) handleRemove(w http.ResponseWriter, r *http.Request, eng *usecase.Engine, productID string) {
	if productID == "" {
		writeErr(w, http.StatusBadRequest, "productId is required")
		return
	}

	lines, err := eng.Cart.RemoveLine(r.Context(), productID)
	if err != nil {
		writeCartErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cartMutationResponse{
		Cart: query.BuildCartSummary(eng.Session.Current(), lines),
	})
}

func writeCartErr(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, usecase.ErrCartInvalidArgument), errors.Is(err, cart.ErrInvalidLine):
		writeErr(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, usecase.ErrSessionSuperseded):
		writeErr(w, http.StatusConflict, err.Error())
	default:
		writeErr(w, http.StatusInternalServerError, err.Error())
	}
}
