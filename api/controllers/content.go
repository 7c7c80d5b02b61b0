package controllers

import (
	"net/http"
	"strings"

	"github.com/eurenemendes/ecofeira-backend/api/responses"
	"github.com/eurenemendes/ecofeira-backend/internal/content"
	pkgerrors "github.com/eurenemendes/ecofeira-backend/pkg/errors"
	"github.com/eurenemendes/ecofeira-backend/pkg/logger"
)

// ContentBanners returns the curated home banners, optionally filtered by
// placement.
func ContentBanners(svc content.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "content service unavailable"))
			return
		}

		banners, err := svc.Banners(ctx, strings.TrimSpace(r.URL.Query().Get("placement")))
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, banners)
	}
}

// ContentSuggestions returns the curated search suggestions in display order.
func ContentSuggestions(svc content.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "content service unavailable"))
			return
		}

		labels, err := svc.Suggestions(ctx)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, labels)
	}
}
