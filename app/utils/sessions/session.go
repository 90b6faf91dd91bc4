package sessions

import (
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"
)

const (
	sessionCookieName = "greenpantry-session"

	guestIDSessionKey = "guestID"
)

// GuestSessionStore tracks the anonymous shopper's identity across requests.
// The guest ID scopes the cart's storage key, nothing more.
type GuestSessionStore interface {
	GuestID(r *http.Request) string
	EnsureGuestID(w http.ResponseWriter, r *http.Request) (string, error)
	ClearSession(w http.ResponseWriter, r *http.Request) error
}

type CookieSessionStore struct {
	store *sessions.CookieStore
}

func NewCookieSessionStore(keyPairs ...[]byte) *CookieSessionStore {
	store := sessions.NewCookieStore(keyPairs...)

	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   int(30 * 24 * time.Hour / time.Second),
		HttpOnly: true,
		Secure:   false,
		SameSite: http.SameSiteLaxMode,
	}
	return &CookieSessionStore{store: store}
}

func (c *CookieSessionStore) getSession(r *http.Request) (*sessions.Session, error) {
	session, err := c.store.Get(r, sessionCookieName)
	if err != nil {

		log.Printf("Error getting session: %v", err)
	}
	return session, nil
}

func (c *CookieSessionStore) GuestID(r *http.Request) string {
	session, err := c.getSession(r)
	if err != nil || session == nil {
		return ""
	}
	guestID, ok := session.Values[guestIDSessionKey].(string)
	if !ok {
		return ""
	}
	return guestID
}

// EnsureGuestID returns the session's guest ID, minting and saving a fresh
// one on first contact.
func (c *CookieSessionStore) EnsureGuestID(w http.ResponseWriter, r *http.Request) (string, error) {
	session, err := c.getSession(r)
	if err != nil || session == nil {
		return "", err
	}

	if guestID, ok := session.Values[guestIDSessionKey].(string); ok && guestID != "" {
		return guestID, nil
	}

	guestID := uuid.New().String()
	session.Values[guestIDSessionKey] = guestID
	if err := session.Save(r, w); err != nil {
		return "", err
	}
	return guestID, nil
}

func (c *CookieSessionStore) ClearSession(w http.ResponseWriter, r *http.Request) error {
	session, err := c.getSession(r)
	if err != nil || session == nil {
		return err
	}
	session.Values = make(map[interface{}]interface{})
	session.Options.MaxAge = -1
	return session.Save(r, w)
}
