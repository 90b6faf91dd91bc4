package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/greenpantry/storefront/app/services"
	"github.com/greenpantry/storefront/app/utils/sessions"
	"github.com/unrolled/render"
)

type CheckoutHandler struct {
	checkoutSvc *services.CheckoutService
	carts       *services.GuestCartProvider
	sessions    sessions.GuestSessionStore
	render      *render.Render
}

func NewCheckoutHandler(
	checkoutSvc *services.CheckoutService,
	carts *services.GuestCartProvider,
	sessionStore sessions.GuestSessionStore,
	render *render.Render,
) *CheckoutHandler {
	return &CheckoutHandler{
		checkoutSvc: checkoutSvc,
		carts:       carts,
		sessions:    sessionStore,
		render:      render,
	}
}

func (h *CheckoutHandler) PlaceGuestOrder(w http.ResponseWriter, r *http.Request) {
	var payload services.GuestCheckoutPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		_ = h.render.JSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	guestID, err := h.sessions.EnsureGuestID(w, r)
	if err != nil {
		log.Printf("CheckoutHandler: failed to establish guest session: %v", err)
		_ = h.render.JSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to establish session"})
		return
	}

	order, err := h.checkoutSvc.PlaceGuestOrder(r.Context(), h.carts.ForGuest(guestID), payload)
	if err != nil {
		var validationErrs validator.ValidationErrors
		switch {
		case errors.Is(err, services.ErrEmptyCart):
			_ = h.render.JSON(w, http.StatusConflict, map[string]string{"error": "cart is empty"})
		case errors.As(err, &validationErrs):
			_ = h.render.JSON(w, http.StatusUnprocessableEntity, map[string]string{"error": err.Error()})
		default:
			log.Printf("CheckoutHandler.PlaceGuestOrder: %v", err)
			_ = h.render.JSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to place order"})
		}
		return
	}

	_ = h.render.JSON(w, http.StatusCreated, order)
}
