package assemble

import (
	"errors"
	"fmt"
	"strings"

	"carscope-api/internal/model"
	"carscope-api/internal/normalize"
	"carscope-api/internal/parser"
)

// ErrMissingIdentity signals that the Vietnamese variant lacks the fields
// needed to identify the car. The caller should ask for a clearer photo.
var ErrMissingIdentity = errors.New("vietnamese record is missing identifying fields")

// Enrichment carries the values resolved outside the parsed text.
type Enrichment struct {
	Price          string
	NumberProduced string
	Rarity         string
	LogoURL        string
}

// BuildEN assembles the English record. Assembly is best effort: a gap in
// any one field never fails the record.
func BuildEN(f model.ParsedFields, enr Enrichment) model.CarRecord {
	rec := buildCommon(f, enr, "en")
	rec.Description = parser.SelectDescription("", f)
	return rec
}

// BuildVI assembles the Vietnamese record with the Vietnamese-parsed fields
// shadowed alongside the shared ones. A record that cannot name the car is
// rejected rather than padded with English.
func BuildVI(f model.ParsedFields, enr Enrichment) (model.CarRecord, error) {
	var missing []string
	if strings.TrimSpace(f.Brand) == "" {
		missing = append(missing, "brand")
	}
	if strings.TrimSpace(f.Model) == "" {
		missing = append(missing, "model")
	}
	if strings.TrimSpace(f.CarName) == "" {
		missing = append(missing, "car_name")
	}
	if len(missing) > 0 {
		return model.CarRecord{}, fmt.Errorf("%w: %s", ErrMissingIdentity, strings.Join(missing, ", "))
	}

	rec := buildCommon(f, enr, "vi")

	// The Vietnamese description is never silently backfilled from English.
	if desc := strings.TrimSpace(f.Description); desc != "" {
		rec.Description = desc
	} else {
		rec.Description = parser.DescriptionUnavailableVI
	}

	rec.CarNameVI = f.CarName
	rec.BrandVI = f.Brand
	rec.ModelVI = f.Model
	rec.DescriptionVI = f.Description
	rec.EngineDetailVI = f.EngineDetail
	rec.InteriorVI = f.Interior
	rec.FeaturesVI = f.Features

	return rec, nil
}

func buildCommon(f model.ParsedFields, enr Enrichment, lang string) model.CarRecord {
	carName := normalize.CleanCarName(f.CarName)
	if carName == "" && f.Brand != "" && f.Model != "" {
		carName = normalize.CleanCarName(f.Brand + " " + f.Model)
	}

	// A search-derived price arrives already formatted; only the parsed
	// one still needs its range collapsed.
	price := enr.Price
	if price == "" {
		price = normalize.AveragePrice(f.Price)
	}

	volume := enr.NumberProduced
	if volume == "" {
		volume = f.NumberProduced
	}

	rarity := enr.Rarity
	if rarity == "" {
		rarity = f.Rarity
	}

	return model.CarRecord{
		CarName:        carName,
		Brand:          normalize.BrandFromCarName(carName),
		Year:           normalize.AverageYear(f.Year),
		Price:          price,
		Power:          f.Power,
		Acceleration:   f.Acceleration,
		TopSpeed:       f.TopSpeed,
		EngineDetail:   f.EngineDetail,
		Interior:       f.Interior,
		Features:       f.Features,
		NumberProduced: localizeVolume(volume, lang),
		Rarity:         rarity,
		LogoURL:        enr.LogoURL,
	}
}

// localizeVolume rewrites the units token of a production figure to match
// the record's language.
func localizeVolume(volume, lang string) string {
	if volume == "" {
		return ""
	}
	if lang == "vi" {
		return strings.NewReplacer(
			"units/year", "xe/năm",
			"per year", "xe/năm",
			"units", "xe",
			"unit", "xe",
		).Replace(volume)
	}
	return strings.NewReplacer(
		"xe/năm", "units/year",
		"xe", "units",
	).Replace(volume)
}
