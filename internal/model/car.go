package model

import "time"

// ParsedFields is the structured extraction from one language variant of the
// vision model's free-text output. Values are raw strings exactly as they
// appeared in the text; normalization happens at assembly time.
type ParsedFields struct {
	CarName        string
	Brand          string
	Model          string
	Year           string
	Price          string
	Power          string
	Acceleration   string
	TopSpeed       string
	Description    string
	EngineDetail   string
	Interior       string
	Features       []string
	NumberProduced string
	Rarity         string

	// RawText keeps the original block for downstream fallback scans.
	RawText string
}

// CarRecord is the final per-language record returned to the caller.
type CarRecord struct {
	CarName        string   `json:"car_name"`
	Brand          string   `json:"brand"`
	Year           string   `json:"year"`
	Price          string   `json:"price"`
	Power          string   `json:"power"`
	Acceleration   string   `json:"acceleration"`
	TopSpeed       string   `json:"top_speed"`
	Description    string   `json:"description"`
	EngineDetail   string   `json:"engine_detail"`
	Interior       string   `json:"interior"`
	Features       []string `json:"features"`
	NumberProduced string   `json:"number_produced"`
	Rarity         string   `json:"rarity"`
	LogoURL        string   `json:"logo_url,omitempty"`

	// Shadow fields carrying the unmodified Vietnamese-parsed values,
	// populated only on the Vietnamese record.
	CarNameVI      string   `json:"car_name_vi,omitempty"`
	BrandVI        string   `json:"brand_vi,omitempty"`
	ModelVI        string   `json:"model_vi,omitempty"`
	DescriptionVI  string   `json:"description_vi,omitempty"`
	EngineDetailVI string   `json:"engine_detail_vi,omitempty"`
	InteriorVI     string   `json:"interior_vi,omitempty"`
	FeaturesVI     []string `json:"features_vi,omitempty"`
}

// AnalysisResult bundles both language records for one analyzed image.
type AnalysisResult struct {
	ID             string
	ResultEN       *CarRecord
	ResultVI       *CarRecord
	ProcessingTime time.Duration
}

// AnalysisSummary is one persisted row of analysis history.
type AnalysisSummary struct {
	ID             string    `json:"id"`
	CarName        string    `json:"car_name"`
	Brand          string    `json:"brand"`
	Rarity         string    `json:"rarity"`
	NumberProduced string    `json:"number_produced"`
	ProcessingMS   int64     `json:"processing_ms"`
	CreatedAt      time.Time `json:"created_at"`
}
