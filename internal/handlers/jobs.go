package handlers

import (
	"encoding/json"
	"net/http"

	"solarserver/internal/dto"
	"solarserver/internal/logger"
	"solarserver/internal/models"
	"solarserver/internal/repository"
)

// CreateJobHandler registers a new inspection job.
func CreateJobHandler(jobs repository.JobRepository, log *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req dto.JobRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeDetail(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if req.Description == "" || req.Location == "" {
			writeDetail(w, http.StatusBadRequest, "description and location are required")
			return
		}

		id, err := jobs.Create(&models.Job{
			Description: req.Description,
			Location:    req.Location,
			Status:      req.Status,
			ImageURL:    req.ImageURL,
			OwnerID:     req.OwnerID,
		})
		if err != nil {
			log.Error("Failed to create job: %v", err)
			writeDetail(w, http.StatusInternalServerError, "internal server error")
			return
		}

		job, err := jobs.GetByID(id)
		if err != nil || job == nil {
			log.Error("Failed to load created job %d: %v", id, err)
			writeDetail(w, http.StatusInternalServerError, "internal server error")
			return
		}
		writeJSON(w, http.StatusCreated, job)
	}
}

// ListJobsHandler returns all jobs.
func ListJobsHandler(jobs repository.JobRepository, log *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		all, err := jobs.GetAll()
		if err != nil {
			log.Error("Failed to list jobs: %v", err)
			writeDetail(w, http.StatusInternalServerError, "internal server error")
			return
		}
		if all == nil {
			all = []models.Job{}
		}
		writeJSON(w, http.StatusOK, all)
	}
}

// GetJobHandler returns one job by id.
func GetJobHandler(jobs repository.JobRepository, log *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(r)
		if !ok {
			writeDetail(w, http.StatusBadRequest, "invalid job id")
			return
		}
		job, err := jobs.GetByID(id)
		if err != nil {
			log.Error("Failed to get job %d: %v", id, err)
			writeDetail(w, http.StatusInternalServerError, "internal server error")
			return
		}
		if job == nil {
			writeDetail(w, http.StatusNotFound, "Job not found")
			return
		}
		writeJSON(w, http.StatusOK, job)
	}
}

// UpdateJobHandler replaces a job's mutable attributes.
func UpdateJobHandler(jobs repository.JobRepository, log *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(r)
		if !ok {
			writeDetail(w, http.StatusBadRequest, "invalid job id")
			return
		}
		job, err := jobs.GetByID(id)
		if err != nil {
			log.Error("Failed to get job %d: %v", id, err)
			writeDetail(w, http.StatusInternalServerError, "internal server error")
			return
		}
		if job == nil {
			writeDetail(w, http.StatusNotFound, "Job not found")
			return
		}

		var req dto.JobRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeDetail(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if req.Description != "" {
			job.Description = req.Description
		}
		if req.Location != "" {
			job.Location = req.Location
		}
		if req.Status != 0 {
			job.Status = req.Status
		}
		if req.ImageURL != "" {
			job.ImageURL = req.ImageURL
		}
		if req.OwnerID != 0 {
			job.OwnerID = req.OwnerID
		}

		if err := jobs.Update(job); err != nil {
			log.Error("Failed to update job %d: %v", id, err)
			writeDetail(w, http.StatusInternalServerError, "internal server error")
			return
		}

		updated, err := jobs.GetByID(id)
		if err != nil || updated == nil {
			log.Error("Failed to reload job %d: %v", id, err)
			writeDetail(w, http.StatusInternalServerError, "internal server error")
			return
		}
		writeJSON(w, http.StatusOK, updated)
	}
}

// DeleteJobHandler removes a job.
func DeleteJobHandler(jobs repository.JobRepository, log *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(r)
		if !ok {
			writeDetail(w, http.StatusBadRequest, "invalid job id")
			return
		}
		job, err := jobs.GetByID(id)
		if err != nil {
			log.Error("Failed to get job %d: %v", id, err)
			writeDetail(w, http.StatusInternalServerError, "internal server error")
			return
		}
		if job == nil {
			writeDetail(w, http.StatusNotFound, "Job not found")
			return
		}
		if err := jobs.Delete(id); err != nil {
			log.Error("Failed to delete job %d: %v", id, err)
			writeDetail(w, http.StatusInternalServerError, "internal server error")
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
