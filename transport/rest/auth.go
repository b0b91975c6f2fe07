package rest

import (
	"context"
	"net/http"
	"strings"
)

type contextKey string

const playerCtxKey = contextKey("player")

// requireAuth resolves the bearer token into the player ID stored on the request context.
func (that *Server) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if !strings.HasPrefix(strings.ToLower(header), "bearer ") {
			writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "missing bearer token"})
			return
		}

		playerID, err := that.auth.ParseToken(strings.TrimSpace(header[len("bearer "):]))
		if err != nil {
			writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "invalid token"})
			return
		}

		ctx := context.WithValue(r.Context(), playerCtxKey, playerID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func currentPlayerID(r *http.Request) string {
	playerID, _ := r.Context().Value(playerCtxKey).(string)
	return playerID
}
