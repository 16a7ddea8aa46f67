package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"carscope-api/internal/assemble"
	"carscope-api/internal/imaging"
	"carscope-api/internal/model"
	"carscope-api/internal/parser"
)

// CarAnalyzer runs the analysis pipeline for one uploaded image.
type CarAnalyzer interface {
	Analyze(ctx context.Context, imageData []byte) (*model.AnalysisResult, error)
}

type AnalyzeHandler struct {
	analyzer      CarAnalyzer
	maxImageBytes int64
	logger        *slog.Logger
}

func NewAnalyzeHandler(analyzer CarAnalyzer, maxImageBytes int64, logger *slog.Logger) *AnalyzeHandler {
	return &AnalyzeHandler{
		analyzer:      analyzer,
		maxImageBytes: maxImageBytes,
		logger:        logger,
	}
}

// Analyze handles POST /api/v1/analyze with a multipart "image" field.
func (h *AnalyzeHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	// Leave headroom for the multipart framing around the image itself.
	if err := r.ParseMultipartForm(h.maxImageBytes + 1<<20); err != nil {
		writeError(w, http.StatusBadRequest, "validation_error", "invalid multipart form")
		return
	}

	file, _, err := r.FormFile("image")
	if err != nil {
		writeError(w, http.StatusBadRequest, "validation_error", "no image file provided")
		return
	}
	defer file.Close()

	imageData, err := io.ReadAll(io.LimitReader(file, h.maxImageBytes+1))
	if err != nil {
		writeError(w, http.StatusBadRequest, "validation_error", "failed to read image")
		return
	}

	result, err := h.analyzer.Analyze(r.Context(), imageData)
	if err != nil {
		h.writeAnalyzeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, model.AnalyzeResponse{
		Status:         "success",
		ID:             result.ID,
		ResultEN:       result.ResultEN,
		ResultVI:       result.ResultVI,
		ImageProcessed: true,
		ProcessingTime: result.ProcessingTime.Seconds(),
	})
}

func (h *AnalyzeHandler) writeAnalyzeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, imaging.ErrTooLarge):
		writeError(w, http.StatusRequestEntityTooLarge, "validation_error", "image exceeds size limit")
	case errors.Is(err, imaging.ErrUnsupportedFormat):
		writeError(w, http.StatusBadRequest, "validation_error", "image must be PNG, JPEG or GIF")
	case errors.Is(err, parser.ErrParseFailure):
		writeError(w, http.StatusUnprocessableEntity, "unusable_description",
			"the model could not describe this vehicle, try a clearer photo")
	case errors.Is(err, assemble.ErrMissingIdentity):
		writeError(w, http.StatusUnprocessableEntity, "missing_vi_fields",
			"the Vietnamese result is missing identifying fields, try a clearer photo")
	default:
		h.logger.Error("analysis failed", "error", err)
		writeError(w, http.StatusInternalServerError, "processing_error", "error processing image")
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, model.ErrorResponse{
		Error:   code,
		Message: message,
	})
}
