package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"carscope-api/internal/model"
)

type AnalysisRepo struct {
	db *pgxpool.Pool
}

func NewAnalysisRepo(db *pgxpool.Pool) *AnalysisRepo {
	return &AnalysisRepo{db: db}
}

// SaveAnalysis persists one completed analysis with both language records.
func (r *AnalysisRepo) SaveAnalysis(ctx context.Context, result *model.AnalysisResult) error {
	resultEN, err := json.Marshal(result.ResultEN)
	if err != nil {
		return fmt.Errorf("failed to marshal english record: %w", err)
	}
	resultVI, err := json.Marshal(result.ResultVI)
	if err != nil {
		return fmt.Errorf("failed to marshal vietnamese record: %w", err)
	}

	query := `
		INSERT INTO analysis (id, car_name, brand, rarity, number_produced, result_en, result_vi, processing_ms)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err = r.db.Exec(ctx, query,
		result.ID,
		result.ResultEN.CarName,
		result.ResultEN.Brand,
		result.ResultEN.Rarity,
		result.ResultEN.NumberProduced,
		resultEN,
		resultVI,
		result.ProcessingTime.Milliseconds(),
	)
	return err
}

// ListRecent returns summaries of the latest analyses, newest first.
func (r *AnalysisRepo) ListRecent(ctx context.Context, limit int) ([]model.AnalysisSummary, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	query := `
		SELECT id, car_name, brand, COALESCE(rarity, ''), COALESCE(number_produced, ''), processing_ms, created_at
		FROM analysis
		ORDER BY created_at DESC
		LIMIT $1
	`

	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var summaries []model.AnalysisSummary
	for rows.Next() {
		var s model.AnalysisSummary
		if err := rows.Scan(&s.ID, &s.CarName, &s.Brand, &s.Rarity, &s.NumberProduced, &s.ProcessingMS, &s.CreatedAt); err != nil {
			return nil, err
		}
		summaries = append(summaries, s)
	}

	return summaries, rows.Err()
}

// GetByID returns the full stored records for one analysis.
func (r *AnalysisRepo) GetByID(ctx context.Context, id string) (*model.AnalysisResult, error) {
	query := `
		SELECT id, result_en, result_vi, processing_ms
		FROM analysis
		WHERE id = $1
	`

	var (
		result       model.AnalysisResult
		rawEN, rawVI []byte
		processingMS int64
	)
	err := r.db.QueryRow(ctx, query, id).Scan(&result.ID, &rawEN, &rawVI, &processingMS)
	if err != nil {
		return nil, err
	}

	result.ResultEN = &model.CarRecord{}
	if err := json.Unmarshal(rawEN, result.ResultEN); err != nil {
		return nil, fmt.Errorf("failed to unmarshal english record: %w", err)
	}
	result.ResultVI = &model.CarRecord{}
	if err := json.Unmarshal(rawVI, result.ResultVI); err != nil {
		return nil, fmt.Errorf("failed to unmarshal vietnamese record: %w", err)
	}
	result.ProcessingTime = time.Duration(processingMS) * time.Millisecond

	return &result, nil
}
