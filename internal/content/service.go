package content

import (
	"context"

	"github.com/google/uuid"

	"github.com/eurenemendes/ecofeira-backend/pkg/db/models"
	"github.com/eurenemendes/ecofeira-backend/pkg/enums"
	pkgerrors "github.com/eurenemendes/ecofeira-backend/pkg/errors"
)

// BannerDTO is a home banner as served to the client.
type BannerDTO struct {
	ID        uuid.UUID `json:"id"`
	Placement string    `json:"placement"`
	ImageURL  string    `json:"imageUrl"`
	Title     string    `json:"title,omitempty"`
	Subtitle  string    `json:"subtitle,omitempty"`
	Tag       string    `json:"tag,omitempty"`
	CTA       string    `json:"cta,omitempty"`
	LinkURL   *string   `json:"linkUrl,omitempty"`
}

// ContentStore is the persistence surface the content service depends on.
type ContentStore interface {
	Banners(ctx context.Context, placement enums.BannerPlacement) ([]models.Banner, error)
	Suggestions(ctx context.Context) ([]models.Suggestion, error)
}

// ServiceParams groups dependencies for the content service.
type ServiceParams struct {
	Repo ContentStore
}

// Service exposes curated home content.
type Service interface {
	Banners(ctx context.Context, placement string) ([]BannerDTO, error)
	Suggestions(ctx context.Context) ([]string, error)
}

type service struct {
	repo ContentStore
}

// NewService builds a content service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "content repo is required")
	}
	return &service{repo: params.Repo}, nil
}

// Banners returns banners for a placement; placement is optional but, when
// present, must be one the storefront understands.
func (s *service) Banners(ctx context.Context, placement string) ([]BannerDTO, error) {
	typed := enums.BannerPlacement(placement)
	if placement != "" && !typed.Valid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown banner placement").
			WithDetails(map[string]string{"placement": placement})
	}

	records, err := s.repo.Banners(ctx, typed)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load banners")
	}

	items := make([]BannerDTO, 0, len(records))
	for _, record := range records {
		items = append(items, BannerDTO{
			ID:        record.ID,
			Placement: record.Placement.String(),
			ImageURL:  record.ImageURL,
			Title:     record.Title,
			Subtitle:  record.Subtitle,
			Tag:       record.Tag,
			CTA:       record.CTA,
			LinkURL:   record.LinkURL,
		})
	}
	return items, nil
}

// Suggestions returns the curated search tags in order.
func (s *service) Suggestions(ctx context.Context) ([]string, error) {
	records, err := s.repo.Suggestions(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load suggestions")
	}
	labels := make([]string, 0, len(records))
	for _, record := range records {
		labels = append(labels, record.Label)
	}
	return labels, nil
}
