package content

import (
	"context"
	"testing"

	"github.com/eurenemendes/ecofeira-backend/pkg/db/models"
	"github.com/eurenemendes/ecofeira-backend/pkg/enums"
	pkgerrors "github.com/eurenemendes/ecofeira-backend/pkg/errors"
)

type stubContentStore struct {
	banners       []models.Banner
	suggestions   []models.Suggestion
	lastPlacement enums.BannerPlacement
}

func (s *stubContentStore) Banners(_ context.Context, placement enums.BannerPlacement) ([]models.Banner, error) {
	s.lastPlacement = placement
	return s.banners, nil
}

func (s *stubContentStore) Suggestions(_ context.Context) ([]models.Suggestion, error) {
	return s.suggestions, nil
}

func newContentService(t *testing.T, store *stubContentStore) Service {
	t.Helper()
	svc, err := NewService(ServiceParams{Repo: store})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func TestBannersForwardsPlacement(t *testing.T) {
	store := &stubContentStore{banners: []models.Banner{{
		Placement: enums.BannerPlacementGrid,
		ImageURL:  "https://cdn.example/b.png",
	}}}
	svc := newContentService(t, store)

	items, err := svc.Banners(context.Background(), "grid")
	if err != nil {
		t.Fatalf("banners: %v", err)
	}
	if store.lastPlacement != enums.BannerPlacementGrid {
		t.Fatalf("placement not forwarded, got %q", store.lastPlacement)
	}
	if len(items) != 1 || items[0].Placement != "grid" {
		t.Fatalf("unexpected items %+v", items)
	}
}

func TestBannersRejectsUnknownPlacement(t *testing.T) {
	svc := newContentService(t, &stubContentStore{})

	_, err := svc.Banners(context.Background(), "sidebar")
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestSuggestionsKeepCuratedOrder(t *testing.T) {
	store := &stubContentStore{suggestions: []models.Suggestion{
		{Label: "Arroz", Position: 0},
		{Label: "Feijão", Position: 1},
	}}
	svc := newContentService(t, store)

	labels, err := svc.Suggestions(context.Background())
	if err != nil {
		t.Fatalf("suggestions: %v", err)
	}
	if len(labels) != 2 || labels[0] != "Arroz" || labels[1] != "Feijão" {
		t.Fatalf("unexpected labels %v", labels)
	}
}
