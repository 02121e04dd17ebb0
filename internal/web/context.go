package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/JonMunkholm/ddport/internal/logging"
)

// sessionContext stores the {sessionID} URL parameter in the request
// context so logging.FromContext tags every entry with it.
func sessionContext(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "sessionID")
		if id == "" {
			next.ServeHTTP(w, r)
			return
		}
		ctx, _ := logging.WithSession(r.Context(), id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
