package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5"

	"carscope-api/internal/model"
	"carscope-api/internal/repository"
)

type AnalysisHistoryHandler struct {
	repo *repository.AnalysisRepo
}

func NewAnalysisHistoryHandler(repo *repository.AnalysisRepo) *AnalysisHistoryHandler {
	return &AnalysisHistoryHandler{repo: repo}
}

// List handles GET /api/v1/analyses?limit=N
func (h *AnalysisHistoryHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := 20
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			limit = n
		}
	}

	summaries, err := h.repo.ListRecent(r.Context(), limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "database_error", "failed to list analyses")
		return
	}

	if summaries == nil {
		summaries = []model.AnalysisSummary{}
	}
	writeJSON(w, http.StatusOK, summaries)
}

// Get handles GET /api/v1/analyses/{id}
func (h *AnalysisHistoryHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	result, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeError(w, http.StatusNotFound, "not_found", "analysis not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "database_error", "failed to load analysis")
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
