package parser

import (
	"errors"
	"fmt"
	"strings"

	"carscope-api/internal/model"
	"carscope-api/internal/normalize"
)

// ErrParseFailure signals that no usable description could be recovered from
// the model output, even after all fallbacks. The caller should retry with
// different input; every other gap degrades to a default instead.
var ErrParseFailure = errors.New("description missing or not detailed enough")

// minDescriptionWords is the floor below which a description is unusable.
const minDescriptionWords = 8

// Parse extracts a ParsedFields value from one language variant of the model
// output. Malformed input never panics or errors by itself; the only hard
// failure is an unusable description after every fallback.
func Parse(text string) (model.ParsedFields, error) {
	f := model.ParsedFields{RawText: text}

	var (
		overview []string
		engine   []string
		interior []string
		current  = sectionNone
	)

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if strings.HasSuffix(line, ":") {
			current = routeHeader(strings.ToLower(strings.TrimSuffix(line, ":")), current)
			continue
		}

		if strings.HasPrefix(line, "- ") {
			lower := strings.ToLower(line)
			switch {
			case containsAny(lower, powerMarkers):
				f.Power = bulletValue(line)
			case containsAny(lower, accelMarkers):
				f.Acceleration = bulletValue(line)
			case containsAny(lower, speedMarkers):
				f.TopSpeed = bulletValue(line)
			default:
				item := strings.TrimSpace(strings.TrimPrefix(line, "- "))
				if key, value, ok := strings.Cut(item, ":"); ok &&
					scalarSynonyms[strings.TrimSpace(strings.ToLower(key))] == fieldFeatures {
					f.Features = append(f.Features, splitFeatures(value)...)
					continue
				}
				switch current {
				case sectionEngine:
					engine = append(engine, item)
				case sectionInterior:
					interior = append(interior, item)
				case sectionFeatures:
					f.Features = append(f.Features, item)
				case sectionOverview:
					overview = append(overview, item)
				}
			}
			continue
		}

		if key, value, ok := strings.Cut(line, ":"); ok {
			switch scalarSynonyms[strings.TrimSpace(strings.ToLower(key))] {
			case fieldBrand:
				f.Brand = strings.TrimSpace(value)
			case fieldModel:
				f.Model = strings.TrimSpace(value)
			case fieldYear:
				f.Year = strings.TrimSpace(value)
			case fieldPrice:
				f.Price = strings.TrimSpace(value)
			case fieldDescription:
				if v := strings.TrimSpace(value); v != "" {
					overview = append(overview, v)
				}
			case fieldPower:
				f.Power = strings.TrimSpace(value)
			case fieldAcceleration:
				f.Acceleration = strings.TrimSpace(value)
			case fieldTopSpeed:
				f.TopSpeed = strings.TrimSpace(value)
			case fieldNumberProduced:
				f.NumberProduced = strings.TrimSpace(value)
			case fieldRarity:
				f.Rarity = strings.TrimSpace(value)
			case fieldFeatures:
				f.Features = append(f.Features, splitFeatures(value)...)
			case fieldEngineOpen:
				engine = append(engine, line)
				current = sectionEngine
			case fieldInteriorOpen:
				interior = append(interior, line)
				current = sectionInterior
			default:
				if current != sectionNone {
					appendToSection(current, line, &overview, &engine, &interior, &f.Features)
				}
			}
			continue
		}

		if current != sectionNone {
			appendToSection(current, line, &overview, &engine, &interior, &f.Features)
		}
	}

	// Overview paragraphs read as one flow; engine and interior keep their
	// bullet structure.
	f.Description = strings.TrimSpace(strings.Join(overview, " "))
	f.EngineDetail = strings.TrimSpace(strings.Join(engine, "\n"))
	f.Interior = strings.TrimSpace(strings.Join(interior, "\n"))

	f.CarName = strings.TrimSpace(f.Brand + " " + f.Model)

	// The brand stays as the model wrote it, except for two-token marques
	// whose halves belong joined. Multi-word brands like Aston Martin feed
	// logo search and the Vietnamese shadow fields intact.
	f.Brand = normalize.JoinMarque(f.Brand)

	if f.Description == "" {
		f.Description = fallbackDescription(f)
	}
	if f.EngineDetail == "" {
		f.EngineDetail = fallbackEngineDetail(f)
	}
	if f.Interior == "" {
		f.Interior = fallbackInterior(f)
	}

	if !usableDescription(f.Description) {
		return model.ParsedFields{}, fmt.Errorf("%w: %q", ErrParseFailure, truncate(f.Description, 80))
	}

	return f, nil
}

// routeHeader updates the open section for a "Header:" line. Unknown headers
// close whatever section is open.
func routeHeader(header string, current section) section {
	for _, h := range sectionHeaders {
		if strings.Contains(header, h.marker) {
			return h.sec
		}
	}
	return sectionNone
}

func appendToSection(sec section, line string, overview, engine, interior, features *[]string) {
	switch sec {
	case sectionOverview:
		*overview = append(*overview, line)
	case sectionEngine:
		*engine = append(*engine, line)
	case sectionInterior:
		*interior = append(*interior, line)
	case sectionFeatures:
		*features = append(*features, splitFeatures(line)...)
	}
}

// bulletValue extracts the value from a performance bullet, preferring the
// text after the colon.
func bulletValue(line string) string {
	if _, value, ok := strings.Cut(line, ":"); ok {
		return strings.TrimSpace(value)
	}
	return strings.TrimSpace(strings.TrimPrefix(line, "- "))
}

func splitFeatures(value string) []string {
	var features []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			features = append(features, part)
		}
	}
	return features
}

func containsAny(s string, markers []string) bool {
	for _, m := range markers {
		if strings.Contains(s, m) {
			return true
		}
	}
	return false
}

// usableDescription rejects descriptions below the word floor or ones that
// only state that no description exists.
func usableDescription(desc string) bool {
	if len(strings.Fields(desc)) < minDescriptionWords {
		return false
	}
	lower := strings.ToLower(desc)
	if strings.Contains(lower, "no detailed description") ||
		strings.Contains(lower, "is not available") ||
		strings.Contains(lower, "chưa có mô tả") {
		return false
	}
	return true
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}
