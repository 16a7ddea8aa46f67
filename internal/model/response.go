package model

import "time"

// AnalyzeResponse is the envelope returned by POST /api/v1/analyze.
type AnalyzeResponse struct {
	Status         string     `json:"status"`
	Message        string     `json:"message,omitempty"`
	ID             string     `json:"id"`
	ResultEN       *CarRecord `json:"result_en"`
	ResultVI       *CarRecord `json:"result_vi"`
	ImageProcessed bool       `json:"image_processed"`
	ProcessingTime float64    `json:"processing_time"`
}

// HealthResponse is the health check payload.
type HealthResponse struct {
	Status    string    `json:"status"`
	Database  string    `json:"database"`
	Timestamp time.Time `json:"timestamp"`
}

// ErrorResponse is the generic error payload.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
