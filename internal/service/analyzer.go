package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"carscope-api/internal/assemble"
	"carscope-api/internal/client"
	"carscope-api/internal/imaging"
	"carscope-api/internal/model"
	"carscope-api/internal/normalize"
	"carscope-api/internal/parser"
)

// Enricher resolves the out-of-band fields. Lookups are best effort and
// never fail the analysis.
type Enricher interface {
	LogoURL(ctx context.Context, brand string) string
	ProductionVolume(ctx context.Context, carName string) string
	PriceEstimate(ctx context.Context, carName string) string
}

// AnalysisStore persists completed analyses. Persistence failures are logged
// and never surfaced to the caller.
type AnalysisStore interface {
	SaveAnalysis(ctx context.Context, result *model.AnalysisResult) error
}

// Analyzer runs the full photo-to-records pipeline: vision model, parsing,
// enrichment, assembly.
type Analyzer struct {
	vision        client.VisionClient
	enricher      Enricher
	store         AnalysisStore
	maxImageBytes int64
	logger        *slog.Logger
}

// NewAnalyzer creates an analyzer. store may be nil when history persistence
// is disabled.
func NewAnalyzer(vision client.VisionClient, enricher Enricher, store AnalysisStore, maxImageBytes int64, logger *slog.Logger) *Analyzer {
	return &Analyzer{
		vision:        vision,
		enricher:      enricher,
		store:         store,
		maxImageBytes: maxImageBytes,
		logger:        logger,
	}
}

// Analyze turns one uploaded image into the bilingual result. Both language
// variants of each stage run concurrently; when either side of a pair fails,
// the pair reruns sequentially and the sequential outcome is authoritative.
func (a *Analyzer) Analyze(ctx context.Context, imageData []byte) (*model.AnalysisResult, error) {
	start := time.Now()

	mimeType, err := imaging.Validate(imageData, a.maxImageBytes)
	if err != nil {
		return nil, err
	}
	imageB64 := imaging.EncodeBase64(imageData)

	var textEN, textVI string
	err = runPair(
		func() error {
			var err error
			textEN, err = a.vision.DescribeImage(ctx, PromptEN, imageB64, mimeType)
			return err
		},
		func() error {
			var err error
			textVI, err = a.vision.DescribeImage(ctx, PromptVI, imageB64, mimeType)
			return err
		},
		a.logger, "vision",
	)
	if err != nil {
		return nil, fmt.Errorf("vision model failed: %w", err)
	}

	var fieldsEN, fieldsVI model.ParsedFields
	err = runPair(
		func() error {
			var err error
			fieldsEN, err = parser.Parse(textEN)
			return err
		},
		func() error {
			var err error
			fieldsVI, err = parser.Parse(textVI)
			return err
		},
		a.logger, "parse",
	)
	if err != nil {
		return nil, err
	}

	// Enrichment keys off the English fields; the resolver absorbs its own
	// failures, so this pair cannot error.
	var logoURL, volume, price string
	runPair(
		func() error {
			logoURL = a.enricher.LogoURL(ctx, fieldsEN.Brand)
			return nil
		},
		func() error {
			volume = a.enricher.ProductionVolume(ctx, fieldsEN.CarName)
			if fieldsEN.Price == "" {
				price = a.enricher.PriceEstimate(ctx, fieldsEN.CarName)
			}
			return nil
		},
		a.logger, "enrich",
	)

	enr := assemble.Enrichment{
		Price:          price,
		NumberProduced: volume,
		Rarity:         normalize.CalculateRarity(volume),
		LogoURL:        logoURL,
	}

	var recEN, recVI model.CarRecord
	err = runPair(
		func() error {
			recEN = assemble.BuildEN(fieldsEN, enr)
			return nil
		},
		func() error {
			var err error
			recVI, err = assemble.BuildVI(fieldsVI, enr)
			return err
		},
		a.logger, "assemble",
	)
	if err != nil {
		return nil, err
	}

	result := &model.AnalysisResult{
		ID:             uuid.New().String(),
		ResultEN:       &recEN,
		ResultVI:       &recVI,
		ProcessingTime: time.Since(start),
	}

	if a.store != nil {
		if err := a.store.SaveAnalysis(ctx, result); err != nil {
			a.logger.Warn("failed to persist analysis",
				"analysis_id", result.ID,
				"error", err,
			)
		}
	}

	a.logger.Info("analysis complete",
		"analysis_id", result.ID,
		"car_name", recEN.CarName,
		"rarity", recEN.Rarity,
		"duration", result.ProcessingTime,
	)

	return result, nil
}

// runPair runs both functions concurrently. If either side fails or panics,
// the pair reruns sequentially and that outcome replaces the concurrent one.
func runPair(first, second func() error, logger *slog.Logger, stage string) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- safeRun(second)
	}()

	err1 := safeRun(first)
	err2 := <-errCh

	if err1 == nil && err2 == nil {
		return nil
	}

	logger.Warn("concurrent stage failed, rerunning sequentially",
		"stage", stage,
		"first_error", err1,
		"second_error", err2,
	)

	if err := safeRun(first); err != nil {
		return err
	}
	return safeRun(second)
}

// safeRun converts a panic inside a stage into an error so one bad variant
// cannot take down the request.
func safeRun(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("stage panicked: %v", r)
		}
	}()
	return fn()
}
