package mw

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// ClientCookie carries the opaque id preferences are keyed by.
const ClientCookie = "apihub_client"

const clientCookieMaxAge = 365 * 24 * time.Hour

type clientIDKey struct{}

// ClientID makes sure every request has a client id, issuing a cookie for
// first-time visitors. Malformed cookies are replaced.
func ClientID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := ""
		if c, err := r.Cookie(ClientCookie); err == nil {
			if _, perr := uuid.Parse(c.Value); perr == nil {
				id = c.Value
			}
		}
		if id == "" {
			id = uuid.NewString()
			http.SetCookie(w, &http.Cookie{
				Name:     ClientCookie,
				Value:    id,
				Path:     "/",
				MaxAge:   int(clientCookieMaxAge.Seconds()),
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
		}

		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), clientIDKey{}, id)))
	})
}

// ClientIDFrom returns the id set by ClientID, or "" outside of it.
func ClientIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(clientIDKey{}).(string)
	return id
}
