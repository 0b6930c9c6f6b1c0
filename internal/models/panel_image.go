package models

import "time"

// PanelImage is the metadata record written once per classified upload.
// Path is the partition-relative location of the annotated artifact and
// ImageClass is the comma-joined set of detected classes, e.g. "clean,dusty".
type PanelImage struct {
	ID         int64     `json:"id"`
	Path       string    `json:"path"`
	FieldID    int64     `json:"field_id"`
	ImageClass string    `json:"image_class"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
