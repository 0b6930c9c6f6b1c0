package vision

import (
	"fmt"
	"image"
	"image/color"

	"gocv.io/x/gocv"

	"solarserver/internal/models"
)

var (
	boxColor   = color.RGBA{R: 255, A: 255}
	labelColor = color.RGBA{R: 255, G: 255, B: 255, A: 255}
)

const (
	labelFontScale = 0.5
	labelPadding   = 4
)

// Annotate draws bounding boxes and "class (confidence)" labels onto a copy
// of the image. The input is never mutated and the output always has the
// input's dimensions. With no detections the result is a plain copy.
// The caller owns the returned Mat and must Close it.
func Annotate(img gocv.Mat, detections []models.Detection) (gocv.Mat, error) {
	out := img.Clone()

	for _, det := range detections {
		box := image.Rect(det.X, det.Y, det.X+det.Width, det.Y+det.Height)
		if err := gocv.Rectangle(&out, box, boxColor, 2); err != nil {
			out.Close()
			return gocv.NewMat(), fmt.Errorf("failed to draw rectangle: %w", err)
		}

		label := fmt.Sprintf("%s (%.2f)", det.Label, det.Confidence)
		size := gocv.GetTextSize(label, gocv.FontHersheySimplex, labelFontScale, 1)

		// Label sits just above the top-left corner, clamped inside the
		// image when the box touches the top edge.
		top := det.Y - size.Y - labelPadding*2
		if top < 0 {
			top = det.Y
		}

		background := image.Rect(det.X, top, det.X+size.X+labelPadding*2, top+size.Y+labelPadding*2)
		if err := gocv.Rectangle(&out, background, boxColor, -1); err != nil {
			out.Close()
			return gocv.NewMat(), fmt.Errorf("failed to draw label background: %w", err)
		}

		origin := image.Pt(det.X+labelPadding, top+size.Y+labelPadding)
		if err := gocv.PutText(&out, label, origin, gocv.FontHersheySimplex, labelFontScale, labelColor, 1); err != nil {
			out.Close()
			return gocv.NewMat(), fmt.Errorf("failed to draw label text: %w", err)
		}
	}

	return out, nil
}
