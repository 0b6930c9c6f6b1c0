package handlers

import (
	"encoding/json"
	"net/http"

	"solarserver/internal/dto"
	"solarserver/internal/logger"
	"solarserver/internal/models"
	"solarserver/internal/repository"
)

// CreateFieldHandler registers a new solar field.
func CreateFieldHandler(fields repository.FieldRepository, log *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req dto.FieldRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeDetail(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if req.Name == "" || req.Location == "" {
			writeDetail(w, http.StatusBadRequest, "name and location are required")
			return
		}

		id, err := fields.Create(&models.SolarField{Name: req.Name, Location: req.Location, UserID: req.UserID})
		if err != nil {
			log.Error("Failed to create solar field: %v", err)
			writeDetail(w, http.StatusInternalServerError, "internal server error")
			return
		}

		field, err := fields.GetByID(id)
		if err != nil || field == nil {
			log.Error("Failed to load created field %d: %v", id, err)
			writeDetail(w, http.StatusInternalServerError, "internal server error")
			return
		}
		writeJSON(w, http.StatusCreated, field)
	}
}

// ListFieldsHandler returns all solar fields.
func ListFieldsHandler(fields repository.FieldRepository, log *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		all, err := fields.GetAll()
		if err != nil {
			log.Error("Failed to list solar fields: %v", err)
			writeDetail(w, http.StatusInternalServerError, "internal server error")
			return
		}
		if all == nil {
			all = []models.SolarField{}
		}
		writeJSON(w, http.StatusOK, all)
	}
}

// GetFieldHandler returns one solar field by id.
func GetFieldHandler(fields repository.FieldRepository, log *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(r)
		if !ok {
			writeDetail(w, http.StatusBadRequest, "invalid field id")
			return
		}
		field, err := fields.GetByID(id)
		if err != nil {
			log.Error("Failed to get solar field %d: %v", id, err)
			writeDetail(w, http.StatusInternalServerError, "internal server error")
			return
		}
		if field == nil {
			writeDetail(w, http.StatusNotFound, "SolarField not found")
			return
		}
		writeJSON(w, http.StatusOK, field)
	}
}

// UpdateFieldHandler replaces a solar field's mutable attributes.
func UpdateFieldHandler(fields repository.FieldRepository, log *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(r)
		if !ok {
			writeDetail(w, http.StatusBadRequest, "invalid field id")
			return
		}
		field, err := fields.GetByID(id)
		if err != nil {
			log.Error("Failed to get solar field %d: %v", id, err)
			writeDetail(w, http.StatusInternalServerError, "internal server error")
			return
		}
		if field == nil {
			writeDetail(w, http.StatusNotFound, "SolarField not found")
			return
		}

		var req dto.FieldRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeDetail(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if req.Name != "" {
			field.Name = req.Name
		}
		if req.Location != "" {
			field.Location = req.Location
		}
		if req.UserID != 0 {
			field.UserID = req.UserID
		}

		if err := fields.Update(field); err != nil {
			log.Error("Failed to update solar field %d: %v", id, err)
			writeDetail(w, http.StatusInternalServerError, "internal server error")
			return
		}

		updated, err := fields.GetByID(id)
		if err != nil || updated == nil {
			log.Error("Failed to reload solar field %d: %v", id, err)
			writeDetail(w, http.StatusInternalServerError, "internal server error")
			return
		}
		writeJSON(w, http.StatusOK, updated)
	}
}

// DeleteFieldHandler removes a solar field.
func DeleteFieldHandler(fields repository.FieldRepository, log *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(r)
		if !ok {
			writeDetail(w, http.StatusBadRequest, "invalid field id")
			return
		}
		field, err := fields.GetByID(id)
		if err != nil {
			log.Error("Failed to get solar field %d: %v", id, err)
			writeDetail(w, http.StatusInternalServerError, "internal server error")
			return
		}
		if field == nil {
			writeDetail(w, http.StatusNotFound, "SolarField not found")
			return
		}
		if err := fields.Delete(id); err != nil {
			log.Error("Failed to delete solar field %d: %v", id, err)
			writeDetail(w, http.StatusInternalServerError, "internal server error")
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
