package models

// Detection represents a single detected panel region. Coordinates are in
// pixel space of the decoded (possibly downscaled) image. Detections live
// for the duration of one pipeline run and are not persisted individually.
type Detection struct {
	Label      string  `json:"class"`
	Confidence float64 `json:"confidence"`
	X          int     `json:"x"`
	Y          int     `json:"y"`
	Width      int     `json:"width"`
	Height     int     `json:"height"`
}
