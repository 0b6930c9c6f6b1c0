package dto

import "solarserver/internal/models"

// PredictionList wraps the raw detection list, mirroring the shape review
// tooling already consumes.
type PredictionList struct {
	Predictions []models.Detection `json:"predictions"`
}

// PredictResponse is the success payload of POST /predict.
type PredictResponse struct {
	Predictions         PredictionList `json:"predictions"`
	ClassifiedImagePath string         `json:"classified_image_path"`
}
