package middleware

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/eurenemendes/ecofeira-backend/pkg/logger"
)

// SessionHeader carries the anonymous session identifier. There are no user
// accounts; the shopping list and favorites are keyed by this id alone.
const SessionHeader = "X-EF-Session"

// Session resolves the caller's session id, minting a fresh one when the
// header is absent or malformed. The id is always echoed back so clients can
// persist it.
func Session(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sessionID, err := uuid.Parse(r.Header.Get(SessionHeader))
			if err != nil || sessionID == uuid.Nil {
				sessionID = uuid.New()
			}

			w.Header().Set(SessionHeader, sessionID.String())

			ctx := WithSessionID(r.Context(), sessionID.String())
			if logg != nil {
				ctx = logg.WithSessionID(ctx, sessionID.String())
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
