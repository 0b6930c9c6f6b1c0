package vision

import (
	"errors"
	"fmt"
	"image"
	"strings"

	"gocv.io/x/gocv"
)

// ErrNotAnImage is returned when the declared content type of an upload is
// not an image family.
var ErrNotAnImage = errors.New("uploaded file is not an image")

// Decode turns uploaded bytes into a pixel buffer. When either dimension
// exceeds maxSide the image is downscaled isotropically so the longer side
// equals maxSide, which bounds inference latency and memory. The caller owns
// the returned Mat and must Close it.
func Decode(data []byte, contentType string, maxSide int) (gocv.Mat, error) {
	if !strings.HasPrefix(contentType, "image/") {
		return gocv.NewMat(), ErrNotAnImage
	}

	mat, err := gocv.IMDecode(data, gocv.IMReadColor)
	if err != nil {
		return gocv.NewMat(), fmt.Errorf("failed to decode image: %w", err)
	}
	if mat.Empty() {
		mat.Close()
		return gocv.NewMat(), errors.New("decoded image is empty")
	}

	if maxSide > 0 && (mat.Cols() > maxSide || mat.Rows() > maxSide) {
		scale := float64(maxSide) / float64(max(mat.Cols(), mat.Rows()))
		newW := int(float64(mat.Cols()) * scale)
		newH := int(float64(mat.Rows()) * scale)

		resized := gocv.NewMat()
		gocv.Resize(mat, &resized, image.Pt(newW, newH), 0, 0, gocv.InterpolationArea)
		mat.Close()
		mat = resized
	}

	return mat, nil
}
