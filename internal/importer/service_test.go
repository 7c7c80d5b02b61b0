package importer

import (
	"context"
	"errors"
	"testing"

	"github.com/eurenemendes/ecofeira-backend/pkg/config"
	pkgerrors "github.com/eurenemendes/ecofeira-backend/pkg/errors"
)

type stubSheets struct {
	tabs map[string][][]string
	err  error
}

func (s *stubSheets) FetchTab(_ context.Context, tab string) ([][]string, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.tabs[tab], nil
}

type stubWriter struct {
	snapshot Snapshot
	calls    int
	err      error
}

func (s *stubWriter) Replace(_ context.Context, snapshot Snapshot) error {
	s.calls++
	s.snapshot = snapshot
	return s.err
}

type stubBumper struct {
	calls int
}

func (s *stubBumper) BumpCatalogVersion(_ context.Context) (int64, error) {
	s.calls++
	return int64(s.calls), nil
}

func sheetsConfig() config.SheetsConfig {
	return config.SheetsConfig{
		ProductsTab:    "Produtos",
		StoresTab:      "Mercados",
		BannersTab:     "Banners",
		SuggestionsTab: "Sugestoes",
	}
}

func fullTabs() map[string][][]string {
	return map[string][][]string{
		"Produtos": {
			{"Nome", "Mercado", "Preço Normal", "Preço Promo", "Promoção"},
			{"Arroz", "Justo", "25,00", "19,90", "sim"},
			{"", "Justo", "1,00", "", ""},
		},
		"Mercados": {
			{"Nome", "Índice", "Aberto"},
			{"Justo", "0,9", "sim"},
		},
		"Banners": {
			{"Imagem"},
			{"https://cdn.example/b.png"},
		},
		"Sugestoes": {
			{"Sugestão"},
			{"Arroz"},
		},
	}
}

func newImporter(t *testing.T, sheets *stubSheets, writer *stubWriter, bumper *stubBumper) Service {
	t.Helper()
	svc, err := NewService(ServiceParams{
		Sheets: sheets,
		Writer: writer,
		Bumper: bumper,
		Config: sheetsConfig(),
	})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func TestImportAllReplacesAndBumps(t *testing.T) {
	writer := &stubWriter{}
	bumper := &stubBumper{}
	svc := newImporter(t, &stubSheets{tabs: fullTabs()}, writer, bumper)

	summary, err := svc.ImportAll(context.Background())
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if writer.calls != 1 || bumper.calls != 1 {
		t.Fatalf("expected one replace and one bump, got %d/%d", writer.calls, bumper.calls)
	}
	if summary.Products != 1 || summary.Stores != 1 || summary.Banners != 1 || summary.Suggestions != 1 {
		t.Fatalf("unexpected summary %+v", summary)
	}
	if len(summary.RowErrors) != 1 {
		t.Fatalf("expected the bad product row to be reported, got %v", summary.RowErrors)
	}
	if len(writer.snapshot.Products) != 1 || writer.snapshot.Products[0].Name != "Arroz" {
		t.Fatalf("snapshot not written, got %+v", writer.snapshot.Products)
	}
}

func TestImportAllFailsWhenFetchFails(t *testing.T) {
	writer := &stubWriter{}
	svc := newImporter(t, &stubSheets{err: errors.New("network down")}, writer, nil)

	_, err := svc.ImportAll(context.Background())
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeDependency {
		t.Fatalf("expected dependency error, got %v", err)
	}
	if writer.calls != 0 {
		t.Fatalf("writer must not run on fetch failure")
	}
}

func TestImportAllRefusesEmptyCatalog(t *testing.T) {
	tabs := fullTabs()
	tabs["Produtos"] = [][]string{{"Nome", "Mercado", "Preço Normal"}}
	writer := &stubWriter{}
	svc := newImporter(t, &stubSheets{tabs: tabs}, writer, nil)

	_, err := svc.ImportAll(context.Background())
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	if writer.calls != 0 {
		t.Fatalf("empty catalog must not replace existing data")
	}
}
