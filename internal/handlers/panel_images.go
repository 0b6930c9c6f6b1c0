package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"solarserver/internal/dto"
	"solarserver/internal/logger"
	"solarserver/internal/models"
	"solarserver/internal/repository"
)

// CreatePanelImageHandler inserts a metadata row by hand. The pipeline is
// the normal writer; this exists for parity with the CRUD surface.
func CreatePanelImageHandler(images repository.PanelImageRepository, log *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req dto.PanelImageRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeDetail(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if req.Path == "" || req.FieldID <= 0 {
			writeDetail(w, http.StatusBadRequest, "path and field_id are required")
			return
		}

		img, err := images.CreateInField(req.FieldID, req.Path, req.ImageClass)
		if err != nil {
			if errors.Is(err, repository.ErrFieldNotFound) {
				writeDetail(w, http.StatusNotFound, "SolarField not found")
				return
			}
			log.Error("Failed to create panel image: %v", err)
			writeDetail(w, http.StatusInternalServerError, "internal server error")
			return
		}
		writeJSON(w, http.StatusCreated, img)
	}
}

// ListPanelImagesHandler returns metadata rows, optionally filtered by
// ?field_id=.
func ListPanelImagesHandler(images repository.PanelImageRepository, log *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var (
			all []models.PanelImage
			err error
		)
		if raw := r.URL.Query().Get("field_id"); raw != "" {
			fieldID, parseErr := strconv.ParseInt(raw, 10, 64)
			if parseErr != nil || fieldID <= 0 {
				writeDetail(w, http.StatusBadRequest, "invalid field_id")
				return
			}
			all, err = images.GetByFieldID(fieldID)
		} else {
			all, err = images.GetAll()
		}
		if err != nil {
			log.Error("Failed to list panel images: %v", err)
			writeDetail(w, http.StatusInternalServerError, "internal server error")
			return
		}
		if all == nil {
			all = []models.PanelImage{}
		}
		writeJSON(w, http.StatusOK, all)
	}
}

// GetPanelImageHandler returns one metadata row by id.
func GetPanelImageHandler(images repository.PanelImageRepository, log *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(r)
		if !ok {
			writeDetail(w, http.StatusBadRequest, "invalid image id")
			return
		}
		img, err := images.GetByID(id)
		if err != nil {
			log.Error("Failed to get panel image %d: %v", id, err)
			writeDetail(w, http.StatusInternalServerError, "internal server error")
			return
		}
		if img == nil {
			writeDetail(w, http.StatusNotFound, "PanelImage not found")
			return
		}
		writeJSON(w, http.StatusOK, img)
	}
}

// UpdatePanelImageHandler replaces a row's mutable attributes.
func UpdatePanelImageHandler(images repository.PanelImageRepository, log *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(r)
		if !ok {
			writeDetail(w, http.StatusBadRequest, "invalid image id")
			return
		}
		img, err := images.GetByID(id)
		if err != nil {
			log.Error("Failed to get panel image %d: %v", id, err)
			writeDetail(w, http.StatusInternalServerError, "internal server error")
			return
		}
		if img == nil {
			writeDetail(w, http.StatusNotFound, "PanelImage not found")
			return
		}

		var req dto.PanelImageRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeDetail(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if req.Path != "" {
			img.Path = req.Path
		}
		if req.FieldID != 0 {
			img.FieldID = req.FieldID
		}
		if req.ImageClass != "" {
			img.ImageClass = req.ImageClass
		}

		if err := images.Update(img); err != nil {
			log.Error("Failed to update panel image %d: %v", id, err)
			writeDetail(w, http.StatusInternalServerError, "internal server error")
			return
		}

		updated, err := images.GetByID(id)
		if err != nil || updated == nil {
			log.Error("Failed to reload panel image %d: %v", id, err)
			writeDetail(w, http.StatusInternalServerError, "internal server error")
			return
		}
		writeJSON(w, http.StatusOK, updated)
	}
}

// DeletePanelImageHandler removes a metadata row.
func DeletePanelImageHandler(images repository.PanelImageRepository, log *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(r)
		if !ok {
			writeDetail(w, http.StatusBadRequest, "invalid image id")
			return
		}
		img, err := images.GetByID(id)
		if err != nil {
			log.Error("Failed to get panel image %d: %v", id, err)
			writeDetail(w, http.StatusInternalServerError, "internal server error")
			return
		}
		if img == nil {
			writeDetail(w, http.StatusNotFound, "PanelImage not found")
			return
		}
		if err := images.Delete(id); err != nil {
			log.Error("Failed to delete panel image %d: %v", id, err)
			writeDetail(w, http.StatusInternalServerError, "internal server error")
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
