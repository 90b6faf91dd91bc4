package middlewares

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/greenpantry/storefront/app/services"
	"github.com/greenpantry/storefront/app/utils/sessions"
)

type contextKey string

const (
	CartCountKey contextKey = "cart_count"
)

func RequestLoggerMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("%s %s (%s)", r.Method, r.URL.Path, time.Since(start))
	})
}

// CartCountMiddleware puts the guest's current item count on the request
// context so any handler can report it without reloading the cart.
func CartCountMiddleware(carts *services.GuestCartProvider, sessionStore sessions.GuestSessionStore) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			guestID := sessionStore.GuestID(r)
			if guestID == "" {
				next.ServeHTTP(w, r)
				return
			}

			count := carts.ForGuest(guestID).ItemCount(r.Context())
			ctx := context.WithValue(r.Context(), CartCountKey, count)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// CartCountFromContext reads the count placed by CartCountMiddleware.
func CartCountFromContext(ctx context.Context) (int, bool) {
	count, ok := ctx.Value(CartCountKey).(int)
	return count, ok
}
