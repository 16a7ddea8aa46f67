package enrich

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"image"
	"log/slog"
	"strings"
	"time"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"carscope-api/internal/client"
	"carscope-api/internal/normalize"
)

const (
	// Accepted logo dimensions. Icons below the floor are unusable
	// thumbnails, anything above the ceiling is a photo, not a logo.
	minLogoDimension = 50
	maxLogoDimension = 5000

	volumeEstimateDefault = "Estimated: 100,000+ units"
	popularBrandVolume    = "Over 10,000 units per year"

	// Snippet counts below this are usually partial figures (one model
	// year, one trim) and not worth trusting over the model.
	minTrustedSnippetCount = 10000
)

// Resolver looks up brand logos and production volumes. Every lookup is
// best effort: failures log a warning and return an empty or estimated
// value, never an error to the caller.
type Resolver struct {
	search      client.SearchClient
	vision      client.VisionClient
	fetcher     client.Fetcher
	logoCache   *Cache
	volumeCache *Cache
	maxAttempts int
	retryDelay  time.Duration
	logger      *slog.Logger
}

// NewResolver creates a resolver with bounded caches for both lookup kinds.
func NewResolver(
	search client.SearchClient,
	vision client.VisionClient,
	fetcher client.Fetcher,
	cacheTTL time.Duration,
	cacheSize int,
	maxAttempts int,
	retryDelay time.Duration,
	logger *slog.Logger,
) *Resolver {
	return &Resolver{
		search:      search,
		vision:      vision,
		fetcher:     fetcher,
		logoCache:   NewCache(cacheTTL, cacheSize),
		volumeCache: NewCache(cacheTTL, cacheSize),
		maxAttempts: maxAttempts,
		retryDelay:  retryDelay,
		logger:      logger,
	}
}

// LogoURL returns a base64 data URL for the brand's logo, or "" when no
// usable image could be found.
func (r *Resolver) LogoURL(ctx context.Context, brand string) string {
	key := normalize.Fold(brand)
	if key == "" {
		return ""
	}

	logo, err := r.logoCache.Do(ctx, key, func() (string, error) {
		return r.resolveLogo(ctx, key)
	})
	if err != nil {
		r.logger.Warn("logo lookup failed", "brand", brand, "error", err)
		return ""
	}
	return logo
}

func (r *Resolver) resolveLogo(ctx context.Context, brand string) (string, error) {
	for attempt := 1; attempt <= r.maxAttempts; attempt++ {
		if logo := r.searchLogo(ctx, brand); logo != "" {
			return logo, nil
		}

		// Retry under the canonical brand name when one applies.
		for loose, canonical := range brandVariants {
			if strings.Contains(brand, loose) && canonical != brand {
				if logo := r.searchLogo(ctx, canonical); logo != "" {
					return logo, nil
				}
				break
			}
		}

		if attempt < r.maxAttempts {
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(r.retryDelay):
			}
		}
	}
	return "", nil
}

// searchLogo walks the query variants and returns the first fetched image
// that passes validation, as a data URL.
func (r *Resolver) searchLogo(ctx context.Context, brand string) string {
	for _, variant := range logoQueryVariants {
		query := fmt.Sprintf(variant, brand)

		links, err := r.search.SearchImages(ctx, query, 10)
		if err != nil {
			r.logger.Warn("logo image search failed", "query", query, "error", err)
			continue
		}

		for _, link := range links {
			logo, err := r.fetchLogo(ctx, link)
			if err != nil {
				r.logger.Debug("logo candidate rejected", "url", link, "error", err)
				continue
			}
			r.logger.Info("logo resolved", "brand", brand, "url", link)
			return logo
		}
	}
	return ""
}

// fetchLogo downloads a candidate and returns it embedded as a data URL.
// Only PNG and JPEG within the accepted dimensions qualify.
func (r *Resolver) fetchLogo(ctx context.Context, link string) (string, error) {
	body, contentType, err := r.fetcher.Fetch(ctx, link)
	if err != nil {
		return "", err
	}

	contentType = strings.ToLower(contentType)
	var prefix string
	switch {
	case strings.Contains(contentType, "image/png"):
		prefix = "png"
	case strings.Contains(contentType, "image/jpeg"), strings.Contains(contentType, "image/jpg"):
		prefix = "jpeg"
	default:
		return "", fmt.Errorf("content type %q is not png or jpeg", contentType)
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("undecodable image: %w", err)
	}
	if cfg.Width < minLogoDimension || cfg.Height < minLogoDimension {
		return "", fmt.Errorf("image too small: %dx%d", cfg.Width, cfg.Height)
	}
	if cfg.Width > maxLogoDimension || cfg.Height > maxLogoDimension {
		return "", fmt.Errorf("image too large: %dx%d", cfg.Width, cfg.Height)
	}

	return "data:image/" + prefix + ";base64," + base64.StdEncoding.EncodeToString(body), nil
}

// PriceEstimate averages the USD figures found in search results for the
// car, rendered "$ x xxx". Returns "" when search yields nothing numeric.
func (r *Resolver) PriceEstimate(ctx context.Context, carName string) string {
	carName = strings.TrimSpace(carName)
	if carName == "" {
		return ""
	}

	snippets, err := r.search.SearchSnippets(ctx, carName+" price USD", 10)
	if err != nil {
		r.logger.Warn("price search failed", "car_name", carName, "error", err)
		return ""
	}

	joined := strings.Join(snippets, " ")
	if _, ok := normalize.FirstNumber(joined); !ok {
		return ""
	}
	return normalize.FormatPrice(joined)
}

// ProductionVolume returns a human-readable production figure for the car.
// Curated figures win, then mass-market brands get a flat answer, then the
// search/model fallback chain runs.
func (r *Resolver) ProductionVolume(ctx context.Context, carName string) string {
	key := normalize.Fold(carName)
	if key == "" {
		return volumeEstimateDefault
	}

	if figure, ok := specialProductionNumbers[key]; ok {
		return figure
	}
	for _, brand := range popularBrands {
		if strings.Contains(key, brand) {
			return popularBrandVolume
		}
	}

	volume, err := r.volumeCache.Do(ctx, key, func() (string, error) {
		return r.resolveVolume(ctx, carName), nil
	})
	if err != nil {
		r.logger.Warn("production volume lookup failed", "car_name", carName, "error", err)
		return volumeEstimateDefault
	}
	return volume
}

func (r *Resolver) resolveVolume(ctx context.Context, carName string) string {
	query := carName + " number produced OR production numbers OR production quantity"

	snippets, err := r.search.SearchSnippets(ctx, query, 10)
	if err != nil {
		r.logger.Warn("production volume search failed", "car_name", carName, "error", err)
	}

	// A large count in any snippet beats asking the model.
	var best int64
	for _, snippet := range snippets {
		if n, ok := normalize.MaxProductionCount(snippet); ok && n > best {
			best = n
		}
	}
	if best >= minTrustedSnippetCount {
		return normalize.FormatGrouped(best) + " units"
	}

	if len(snippets) > 0 {
		prompt := fmt.Sprintf(
			"Extract the number of units produced for this car from the following text. "+
				"If not found, estimate a plausible number and return only the number and units. Text: %s",
			strings.Join(snippets, " "),
		)
		if result := r.askModel(ctx, prompt); result != "" {
			return result
		}
	}

	prompt := fmt.Sprintf(
		"How many units of %s have been produced up to now? "+
			"If you don't know the exact number, estimate a plausible number. "+
			"Return only the number and units.",
		carName,
	)
	if result := r.askModel(ctx, prompt); result != "" {
		return result
	}

	return volumeEstimateDefault
}

// askModel runs a text-only prompt and returns the answer only when it
// actually contains a figure.
func (r *Resolver) askModel(ctx context.Context, prompt string) string {
	result, err := r.vision.GenerateText(ctx, prompt)
	if err != nil {
		r.logger.Warn("model volume query failed", "error", err)
		return ""
	}
	result = strings.TrimSpace(result)
	if !containsDigit(result) {
		return ""
	}
	return result
}

func containsDigit(s string) bool {
	for _, r := range s {
		if r >= '0' && r <= '9' {
			return true
		}
	}
	return false
}
