package dto

// FieldRequest is the create/update payload for solar fields.
type FieldRequest struct {
	Name     string `json:"name"`
	Location string `json:"location"`
	UserID   int64  `json:"user_id"`
}

// JobRequest is the create/update payload for inspection jobs.
type JobRequest struct {
	Description string `json:"description"`
	Location    string `json:"location"`
	Status      int    `json:"status"`
	ImageURL    string `json:"image_url"`
	OwnerID     int64  `json:"owner_id"`
}

// PanelImageRequest is the create/update payload for manual panel image rows.
type PanelImageRequest struct {
	Path       string `json:"path"`
	FieldID    int64  `json:"field_id"`
	ImageClass string `json:"image_class"`
}
