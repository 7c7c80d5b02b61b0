package importer

import (
	"context"
	"fmt"

	"go.uber.org/multierr"

	"github.com/eurenemendes/ecofeira-backend/pkg/config"
	pkgerrors "github.com/eurenemendes/ecofeira-backend/pkg/errors"
	"github.com/eurenemendes/ecofeira-backend/pkg/logger"
)

// SheetSource fetches one spreadsheet tab as CSV rows.
type SheetSource interface {
	FetchTab(ctx context.Context, tab string) ([][]string, error)
}

// SnapshotWriter persists a parsed import.
type SnapshotWriter interface {
	Replace(ctx context.Context, snapshot Snapshot) error
}

// VersionBumper signals readers that the catalog changed.
type VersionBumper interface {
	BumpCatalogVersion(ctx context.Context) (int64, error)
}

// Summary reports what one import run did.
type Summary struct {
	Products    int      `json:"products"`
	Stores      int      `json:"stores"`
	Banners     int      `json:"banners"`
	Suggestions int      `json:"suggestions"`
	RowErrors   []string `json:"rowErrors,omitempty"`
}

// ServiceParams groups dependencies for the importer service.
type ServiceParams struct {
	Sheets SheetSource
	Writer SnapshotWriter
	Bumper VersionBumper
	Logger *logger.Logger
	Config config.SheetsConfig
}

// Service runs spreadsheet imports.
type Service interface {
	ImportAll(ctx context.Context) (Summary, error)
}

type service struct {
	sheets SheetSource
	writer SnapshotWriter
	bumper VersionBumper
	logg   *logger.Logger
	cfg    config.SheetsConfig
}

// NewService builds an importer service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Sheets == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "sheet source is required")
	}
	if params.Writer == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "snapshot writer is required")
	}
	return &service{
		sheets: params.Sheets,
		writer: params.Writer,
		bumper: params.Bumper,
		logg:   params.Logger,
		cfg:    params.Config,
	}, nil
}

// ImportAll fetches every tab, parses it and swaps the stored content. A tab
// that cannot be fetched aborts the run; bad rows are skipped and reported
// in the summary.
func (s *service) ImportAll(ctx context.Context) (Summary, error) {
	productRows, err := s.sheets.FetchTab(ctx, s.cfg.ProductsTab)
	if err != nil {
		return Summary{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "fetch products tab")
	}
	storeRows, err := s.sheets.FetchTab(ctx, s.cfg.StoresTab)
	if err != nil {
		return Summary{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "fetch stores tab")
	}
	bannerRows, err := s.sheets.FetchTab(ctx, s.cfg.BannersTab)
	if err != nil {
		return Summary{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "fetch banners tab")
	}
	suggestionRows, err := s.sheets.FetchTab(ctx, s.cfg.SuggestionsTab)
	if err != nil {
		return Summary{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "fetch suggestions tab")
	}

	var rowErrs error

	products, errs := ParseProducts(productRows)
	rowErrs = multierr.Append(rowErrs, errs)
	stores, errs := ParseStores(storeRows)
	rowErrs = multierr.Append(rowErrs, errs)
	banners, errs := ParseBanners(bannerRows)
	rowErrs = multierr.Append(rowErrs, errs)
	suggestions, errs := ParseSuggestions(suggestionRows)
	rowErrs = multierr.Append(rowErrs, errs)

	if len(products) == 0 {
		return Summary{}, pkgerrors.New(pkgerrors.CodeValidation, "refusing to import an empty catalog")
	}

	snapshot := Snapshot{
		Products:    products,
		Stores:      stores,
		Banners:     banners,
		Suggestions: suggestions,
	}
	if err := s.writer.Replace(ctx, snapshot); err != nil {
		return Summary{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "replace catalog snapshot")
	}

	if s.bumper != nil {
		if _, err := s.bumper.BumpCatalogVersion(ctx); err != nil && s.logg != nil {
			s.logg.Warn(ctx, "catalog version bump failed: "+err.Error())
		}
	}

	summary := Summary{
		Products:    len(products),
		Stores:      len(stores),
		Banners:     len(banners),
		Suggestions: len(suggestions),
	}
	for _, rowErr := range multierr.Errors(rowErrs) {
		summary.RowErrors = append(summary.RowErrors, rowErr.Error())
	}

	if s.logg != nil {
		s.logg.Info(ctx, fmt.Sprintf(
			"catalog import finished: %d products, %d stores, %d banners, %d suggestions, %d skipped rows",
			summary.Products, summary.Stores, summary.Banners, summary.Suggestions, len(summary.RowErrors)))
	}
	return summary, nil
}
