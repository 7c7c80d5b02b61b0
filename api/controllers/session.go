package controllers

import (
	"context"

	"github.com/google/uuid"

	"github.com/eurenemendes/ecofeira-backend/api/middleware"
	pkgerrors "github.com/eurenemendes/ecofeira-backend/pkg/errors"
)

// sessionFromContext extracts the anonymous session id injected by the
// Session middleware.
func sessionFromContext(ctx context.Context) (uuid.UUID, error) {
	raw := middleware.SessionIDFromContext(ctx)
	if raw == "" {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeInternal, "session context missing")
	}
	sessionID, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "invalid session id in context")
	}
	return sessionID, nil
}
