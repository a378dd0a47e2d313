package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	h "musicroombooking/internal/delivery/http/helpers"
	"musicroombooking/internal/domain"
)

type contextKey string

const participantIDKey contextKey = "participantID"

// SetParticipantID returns a context with the participant ID set. Used by auth middleware.
func SetParticipantID(ctx context.Context, participantID int64) context.Context {
	return context.WithValue(ctx, participantIDKey, participantID)
}

// ParticipantIDFromContext returns the authenticated participant ID from the context, if present.
func ParticipantIDFromContext(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(participantIDKey).(int64)
	return id, ok
}

// RequireAuth returns a wrapper that validates the Bearer token and sets the participant ID in the request context.
// If the token is missing or invalid, it responds with 401 and does not call next.
func RequireAuth(verifier domain.TokenVerifier, logger *slog.Logger) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			auth := r.Header.Get("Authorization")
			if auth == "" {
				h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "missing authorization header")
				return
			}
			const prefix = "Bearer "
			if !strings.HasPrefix(auth, prefix) {
				h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "invalid authorization format")
				return
			}
			token := strings.TrimSpace(auth[len(prefix):])
			if token == "" {
				h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "missing token")
				return
			}
			participantID, err := verifier.Verify(token)
			if err != nil {
				h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "invalid or expired token")
				return
			}
			r = r.WithContext(SetParticipantID(r.Context(), participantID))
			next(w, r)
		}
	}
}
