package comparison

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/eurenemendes/ecofeira-backend/pkg/config"
	pkgerrors "github.com/eurenemendes/ecofeira-backend/pkg/errors"
	"github.com/eurenemendes/ecofeira-backend/pkg/logger"
	"github.com/eurenemendes/ecofeira-backend/pkg/redis"
	"github.com/eurenemendes/ecofeira-backend/pkg/textutil"
)

// ServiceParams groups dependencies for the comparison service.
type ServiceParams struct {
	ListSource    ListSource
	CatalogSource CatalogSource
	StoreSource   StoreSource
	Cache         redis.ComparisonCache
	Logger        *logger.Logger
	Config        config.ComparisonConfig
}

// Service ranks the session's shopping list across stores.
type Service interface {
	Compare(ctx context.Context, sessionID uuid.UUID) (ComparisonDTO, error)
	CompareStore(ctx context.Context, sessionID uuid.UUID, storeName string) (BreakdownDTO, error)
}

type service struct {
	listSource    ListSource
	catalogSource CatalogSource
	storeSource   StoreSource
	cache         redis.ComparisonCache
	logg          *logger.Logger
	cfg           config.ComparisonConfig
}

// NewService builds a comparison service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.ListSource == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "list source is required")
	}
	if params.CatalogSource == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "catalog source is required")
	}
	if params.StoreSource == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "store source is required")
	}
	return &service{
		listSource:    params.ListSource,
		catalogSource: params.CatalogSource,
		storeSource:   params.StoreSource,
		cache:         params.Cache,
		logg:          params.Logger,
		cfg:           params.Config,
	}, nil
}

// Compare returns the ranked comparison for the session's list, serving from
// cache when a fresh copy exists. The cache is best effort; a broken cache
// never fails the comparison.
func (s *service) Compare(ctx context.Context, sessionID uuid.UUID) (ComparisonDTO, error) {
	if sessionID == uuid.Nil {
		return ComparisonDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "session id is required")
	}

	version, versionOK := s.catalogVersion(ctx)
	if versionOK {
		if cached, ok := s.cachedComparison(ctx, sessionID, version); ok {
			return cached, nil
		}
	}

	dto, _, err := s.compute(ctx, sessionID)
	if err != nil {
		return ComparisonDTO{}, err
	}

	if versionOK {
		s.storeComparison(ctx, sessionID, version, dto)
	}
	return dto, nil
}

// CompareStore expands one store option into its per-item breakdown. The
// breakdown is recomputed rather than cached; it is only requested for one
// store at a time.
func (s *service) CompareStore(ctx context.Context, sessionID uuid.UUID, storeName string) (BreakdownDTO, error) {
	if sessionID == uuid.Nil {
		return BreakdownDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "session id is required")
	}
	if textutil.Normalize(storeName) == "" {
		return BreakdownDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "store name is required")
	}

	dto, result, err := s.compute(ctx, sessionID)
	if err != nil {
		return BreakdownDTO{}, err
	}

	target := textutil.Normalize(storeName)
	for i, est := range result.Options {
		if textutil.Normalize(est.StoreName) != target {
			continue
		}
		lines := make([]LineDTO, 0, len(est.Lines))
		for _, line := range est.Lines {
			lines = append(lines, LineDTO{
				Name:      line.Name,
				Quantity:  line.Quantity,
				UnitPrice: line.UnitPrice,
				LineTotal: line.LineTotal,
				Confirmed: line.Confirmed,
				IsPromo:   line.IsPromo,
			})
		}
		return BreakdownDTO{Option: dto.Options[i], Lines: lines}, nil
	}

	return BreakdownDTO{}, pkgerrors.New(pkgerrors.CodeNotFound, "store is not among the comparison options")
}

func (s *service) compute(ctx context.Context, sessionID uuid.UUID) (ComparisonDTO, Result, error) {
	items, err := s.listSource.ItemsForComparison(ctx, sessionID)
	if err != nil {
		return ComparisonDTO{}, Result{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load shopping list")
	}

	listings, err := s.catalogSource.AllListings(ctx)
	if err != nil {
		return ComparisonDTO{}, Result{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load catalog listings")
	}

	storeInfos, err := s.storeSource.ComparableStores(ctx)
	if err != nil {
		return ComparisonDTO{}, Result{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load stores")
	}

	profiles := make([]StoreProfile, 0, len(storeInfos))
	infoByName := make(map[string]StoreInfo, len(storeInfos))
	for _, info := range storeInfos {
		profiles = append(profiles, StoreProfile{Name: info.Name, PriceIndex: info.PriceIndex})
		infoByName[textutil.Normalize(info.Name)] = info
	}

	result := Estimate(items, listings, profiles, s.cfg.MaxResults)

	options := make([]OptionDTO, 0, len(result.Options))
	for _, est := range result.Options {
		opt := OptionDTO{
			StoreName:      est.StoreName,
			TotalEstimated: est.TotalEstimated,
			TotalConfirmed: est.TotalConfirmed,
			ConfirmedCount: est.ConfirmedCount,
			ItemCount:      est.ItemCount,
			IsBestOption:   est.IsBestOption,
		}
		if info, ok := infoByName[textutil.Normalize(est.StoreName)]; ok {
			opt.LogoURL = info.LogoURL
			opt.Status = string(info.Status)
		}
		options = append(options, opt)
	}

	dto := ComparisonDTO{
		Options:     options,
		Savings:     result.Savings,
		ItemCount:   len(items),
		GeneratedAt: time.Now().UTC(),
	}
	return dto, result, nil
}

// cacheEnvelope pins a cached comparison to the catalog version it was
// computed against. A version bump after an import makes every cached copy
// stale, regardless of its TTL.
type cacheEnvelope struct {
	CatalogVersion int64         `json:"catalogVersion"`
	Comparison     ComparisonDTO `json:"comparison"`
}

func (s *service) catalogVersion(ctx context.Context) (int64, bool) {
	if s.cache == nil {
		return 0, false
	}
	version, err := s.cache.CatalogVersion(ctx)
	if err != nil {
		if s.logg != nil {
			s.logg.Warn(ctx, "catalog version read failed, skipping comparison cache: "+err.Error())
		}
		return 0, false
	}
	return version, true
}

func (s *service) cachedComparison(ctx context.Context, sessionID uuid.UUID, version int64) (ComparisonDTO, bool) {
	payload, err := s.cache.GetComparison(ctx, sessionID.String())
	if err != nil {
		if s.logg != nil && err != redis.ErrCacheMiss {
			s.logg.Warn(ctx, "comparison cache read failed: "+err.Error())
		}
		return ComparisonDTO{}, false
	}
	var envelope cacheEnvelope
	if err := json.Unmarshal([]byte(payload), &envelope); err != nil {
		if s.logg != nil {
			s.logg.Warn(ctx, "comparison cache payload corrupt, recomputing")
		}
		return ComparisonDTO{}, false
	}
	if envelope.CatalogVersion != version {
		return ComparisonDTO{}, false
	}
	return envelope.Comparison, true
}

func (s *service) storeComparison(ctx context.Context, sessionID uuid.UUID, version int64, dto ComparisonDTO) {
	payload, err := json.Marshal(cacheEnvelope{CatalogVersion: version, Comparison: dto})
	if err != nil {
		return
	}
	if err := s.cache.SetComparison(ctx, sessionID.String(), string(payload), s.cfg.CacheTTL); err != nil && s.logg != nil {
		s.logg.Warn(ctx, "comparison cache write failed: "+err.Error())
	}
}
