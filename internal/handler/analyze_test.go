package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"carscope-api/internal/assemble"
	"carscope-api/internal/model"
	"carscope-api/internal/parser"
)

type stubAnalyzer struct {
	result *model.AnalysisResult
	err    error
}

func (s *stubAnalyzer) Analyze(ctx context.Context, imageData []byte) (*model.AnalysisResult, error) {
	return s.result, s.err
}

func multipartImage(t *testing.T, field string) (*bytes.Buffer, string) {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile(field, "car.png")
	if err != nil {
		t.Fatalf("creating form file: %v", err)
	}
	part.Write([]byte("fake image bytes"))
	w.Close()
	return &body, w.FormDataContentType()
}

func newTestHandler(a CarAnalyzer) *AnalyzeHandler {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewAnalyzeHandler(a, 10<<20, logger)
}

func TestAnalyzeHandlerSuccess(t *testing.T) {
	result := &model.AnalysisResult{
		ID:             "6a1f6f0e-0000-0000-0000-000000000000",
		ResultEN:       &model.CarRecord{CarName: "Ferrari Roma"},
		ResultVI:       &model.CarRecord{CarName: "Ferrari Roma"},
		ProcessingTime: 1500 * time.Millisecond,
	}
	h := newTestHandler(&stubAnalyzer{result: result})

	body, contentType := multipartImage(t, "image")
	req := httptest.NewRequest(http.MethodPost, "/api/v1/analyze", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	h.Analyze(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var resp model.AnalyzeResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.Status != "success" || resp.ID != result.ID {
		t.Errorf("response = %+v", resp)
	}
	if resp.ProcessingTime != 1.5 {
		t.Errorf("ProcessingTime = %v, want 1.5", resp.ProcessingTime)
	}
	if resp.ResultEN.CarName != "Ferrari Roma" {
		t.Errorf("ResultEN = %+v", resp.ResultEN)
	}
}

func TestAnalyzeHandlerMissingImage(t *testing.T) {
	h := newTestHandler(&stubAnalyzer{})

	body, contentType := multipartImage(t, "photo")
	req := httptest.NewRequest(http.MethodPost, "/api/v1/analyze", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	h.Analyze(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestAnalyzeHandlerErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"parse failure", fmt.Errorf("wrap: %w", parser.ErrParseFailure), http.StatusUnprocessableEntity, "unusable_description"},
		{"missing identity", fmt.Errorf("wrap: %w", assemble.ErrMissingIdentity), http.StatusUnprocessableEntity, "missing_vi_fields"},
		{"internal", fmt.Errorf("model exploded"), http.StatusInternalServerError, "processing_error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestHandler(&stubAnalyzer{err: tt.err})

			body, contentType := multipartImage(t, "image")
			req := httptest.NewRequest(http.MethodPost, "/api/v1/analyze", body)
			req.Header.Set("Content-Type", contentType)
			rec := httptest.NewRecorder()

			h.Analyze(rec, req)

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			var resp model.ErrorResponse
			if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
				t.Fatalf("decoding response: %v", err)
			}
			if resp.Error != tt.wantCode {
				t.Errorf("error code = %q, want %q", resp.Error, tt.wantCode)
			}
		})
	}
}
