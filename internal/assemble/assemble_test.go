package assemble

import (
	"errors"
	"strings"
	"testing"

	"carscope-api/internal/model"
	"carscope-api/internal/parser"
)

func sampleFields() model.ParsedFields {
	return model.ParsedFields{
		CarName:      "Ferrari SF90 Stradale",
		Brand:        "Ferrari",
		Model:        "SF90 Stradale",
		Year:         "2020-2023",
		Price:        "$507,000 - $625,000",
		Power:        "986 hp",
		Acceleration: "2.5 seconds",
		TopSpeed:     "340 km/h",
		Description:  strings.Repeat("A mid-engine plug-in hybrid with striking aerodynamic bodywork. ", 3),
		EngineDetail: "Configuration: 4.0L twin-turbo V8",
		Interior:     "Seating: Carbon-shell racing seats",
		Features:     []string{"ABS", "Airbags"},
	}
}

func TestBuildENNormalizesRanges(t *testing.T) {
	rec := BuildEN(sampleFields(), Enrichment{
		NumberProduced: "799 coupe + 599 spider",
		Rarity:         "★★★★½",
		LogoURL:        "data:image/png;base64,xxx",
	})

	if rec.Year != "2020" {
		t.Errorf("Year = %q, want 2020", rec.Year)
	}
	if rec.Price != "$566,000" {
		t.Errorf("Price = %q, want $566,000", rec.Price)
	}
	if rec.Brand != "Ferrari" {
		t.Errorf("Brand = %q", rec.Brand)
	}
	if rec.Rarity != "★★★★½" {
		t.Errorf("Rarity = %q", rec.Rarity)
	}
	if rec.LogoURL != "data:image/png;base64,xxx" {
		t.Errorf("LogoURL = %q", rec.LogoURL)
	}
	if !strings.Contains(rec.Description, "plug-in hybrid") {
		t.Errorf("Description = %q", rec.Description)
	}
}

func TestBuildENDeduplicatesCarName(t *testing.T) {
	f := sampleFields()
	f.CarName = "Ferrari Ferrari Roma"
	rec := BuildEN(f, Enrichment{})
	if rec.CarName != "Ferrari Roma" {
		t.Errorf("CarName = %q, want Ferrari Roma", rec.CarName)
	}
}

func TestBuildENLocalizesUnits(t *testing.T) {
	f := sampleFields()
	rec := BuildEN(f, Enrichment{NumberProduced: "1,500 xe/năm"})
	if rec.NumberProduced != "1,500 units/year" {
		t.Errorf("NumberProduced = %q, want 1,500 units/year", rec.NumberProduced)
	}
}

func TestBuildENToleratesMissingIdentity(t *testing.T) {
	rec := BuildEN(model.ParsedFields{}, Enrichment{})

	if rec.CarName != "" || rec.Brand != "" {
		t.Errorf("identity fields = %q/%q, want empty", rec.CarName, rec.Brand)
	}
	if rec.Description != parser.DescriptionUnavailable {
		t.Errorf("Description = %q, want placeholder", rec.Description)
	}
}

func TestBuildVIShadowsFields(t *testing.T) {
	f := model.ParsedFields{
		CarName:      "Ferrari SF90 Stradale",
		Brand:        "Ferrari",
		Model:        "SF90 Stradale",
		Year:         "2020",
		Description:  strings.Repeat("Siêu xe hybrid cắm sạc với thiết kế khí động học ấn tượng. ", 3),
		EngineDetail: "Cấu hình: V8 tăng áp kép 4.0L",
		Interior:     "Ghế ngồi: Ghế đua vỏ carbon",
		Features:     []string{"ABS", "Túi khí"},
	}

	rec, err := BuildVI(f, Enrichment{NumberProduced: "1,500 units/year"})
	if err != nil {
		t.Fatalf("BuildVI returned error: %v", err)
	}

	if rec.NumberProduced != "1,500 xe/năm" {
		t.Errorf("NumberProduced = %q, want 1,500 xe/năm", rec.NumberProduced)
	}
	if rec.CarNameVI != "Ferrari SF90 Stradale" {
		t.Errorf("CarNameVI = %q", rec.CarNameVI)
	}
	if rec.BrandVI != "Ferrari" || rec.ModelVI != "SF90 Stradale" {
		t.Errorf("BrandVI/ModelVI = %q/%q", rec.BrandVI, rec.ModelVI)
	}
	if !strings.Contains(rec.Description, "Siêu xe hybrid") {
		t.Errorf("Description = %q, want Vietnamese text", rec.Description)
	}
	if len(rec.FeaturesVI) != 2 {
		t.Errorf("FeaturesVI = %v", rec.FeaturesVI)
	}
}

func TestBuildVIPlaceholderDescription(t *testing.T) {
	f := model.ParsedFields{
		CarName: "Ferrari Roma",
		Brand:   "Ferrari",
		Model:   "Roma",
	}

	rec, err := BuildVI(f, Enrichment{})
	if err != nil {
		t.Fatalf("BuildVI returned error: %v", err)
	}
	if rec.Description != parser.DescriptionUnavailableVI {
		t.Errorf("Description = %q, want VI placeholder", rec.Description)
	}
}

func TestBuildVIMissingIdentity(t *testing.T) {
	f := model.ParsedFields{CarName: "Ferrari Roma", Brand: "Ferrari"}

	_, err := BuildVI(f, Enrichment{})
	if !errors.Is(err, ErrMissingIdentity) {
		t.Fatalf("err = %v, want ErrMissingIdentity", err)
	}
	if !strings.Contains(err.Error(), "model") {
		t.Errorf("error should name the missing field: %v", err)
	}
}
