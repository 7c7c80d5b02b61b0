package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/eurenemendes/ecofeira-backend/api/responses"
	"github.com/eurenemendes/ecofeira-backend/internal/comparison"
	pkgerrors "github.com/eurenemendes/ecofeira-backend/pkg/errors"
	"github.com/eurenemendes/ecofeira-backend/pkg/logger"
)

// ListComparison ranks the partner stores by the estimated cost of the
// session's shopping list.
func ListComparison(svc comparison.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "comparison service unavailable"))
			return
		}

		sessionID, err := sessionFromContext(ctx)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		dto, err := svc.Compare(ctx, sessionID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, dto)
	}
}

// ComparisonStore returns the line-by-line breakdown for one of the
// compared stores.
func ComparisonStore(svc comparison.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "comparison service unavailable"))
			return
		}

		sessionID, err := sessionFromContext(ctx)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		storeName := strings.TrimSpace(chi.URLParam(r, "storeName"))
		if storeName == "" {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeValidation, "store name is required"))
			return
		}

		dto, err := svc.CompareStore(ctx, sessionID, storeName)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, dto)
	}
}
