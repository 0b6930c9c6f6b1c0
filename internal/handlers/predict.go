package handlers

import (
	"io"
	"net/http"
	"path/filepath"
	"strconv"

	"solarserver/internal/dto"
	"solarserver/internal/logger"
	"solarserver/internal/models"
	"solarserver/internal/services/pipeline"
)

// maxUploadBytes bounds how much of a multipart body is buffered in memory.
const maxUploadBytes = 32 << 20

// PredictHandler accepts a multipart image upload, runs the classification
// pipeline and returns the detections plus the stored artifact path.
func PredictHandler(p *pipeline.Pipeline, log *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
			writeDetail(w, http.StatusBadRequest, "Invalid multipart form.")
			return
		}

		userID, err := strconv.ParseInt(r.FormValue("user_id"), 10, 64)
		if err != nil || userID <= 0 {
			writeDetail(w, http.StatusBadRequest, "user_id is required.")
			return
		}
		fieldID, err := strconv.ParseInt(r.FormValue("field_id"), 10, 64)
		if err != nil || fieldID <= 0 {
			writeDetail(w, http.StatusBadRequest, "field_id is required.")
			return
		}

		file, header, err := r.FormFile("image")
		if err != nil {
			writeDetail(w, http.StatusBadRequest, "An image file is required.")
			return
		}
		defer file.Close()

		data, err := io.ReadAll(file)
		if err != nil {
			log.Error("Failed to read upload %s: %v", header.Filename, err)
			writeDetail(w, http.StatusInternalServerError, "Failed to read uploaded file.")
			return
		}

		result, err := p.Run(r.Context(), pipeline.Input{
			Data:        data,
			ContentType: header.Header.Get("Content-Type"),
			Filename:    filepath.Base(header.Filename),
			UserID:      userID,
			FieldID:     fieldID,
		})
		if err != nil {
			writeDetail(w, pipeline.StatusCode(err), pipeline.UserMessage(err))
			return
		}

		detections := result.Detections
		if detections == nil {
			detections = []models.Detection{}
		}

		writeJSON(w, http.StatusOK, dto.PredictResponse{
			Predictions:         dto.PredictionList{Predictions: detections},
			ClassifiedImagePath: result.Path,
		})
	}
}
