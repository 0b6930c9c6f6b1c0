package vision

import (
	"errors"
	"fmt"
	"image"
	"os"

	"gocv.io/x/gocv"

	"solarserver/internal/config"
	"solarserver/internal/logger"
	"solarserver/internal/models"
)

// DetectorService runs panel classification inference with a DNN loaded once
// at startup. OpenCV nets are not safe for concurrent Forward calls, so the
// service keeps a fixed pool of nets and each Detect call borrows one; N
// requests run in parallel while access to a single net stays serialized.
type DetectorService struct {
	pool       chan gocv.Net
	classNames []string
	confidence float32
	overlap    float32
	logger     *logger.Logger
}

// NewDetectorService loads the detection network pool from the configured
// model files.
func NewDetectorService(cfg *config.Config, log *logger.Logger) (*DetectorService, error) {
	if _, err := os.Stat(cfg.ModelPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("model file not found: %s", cfg.ModelPath)
	}
	if _, err := os.Stat(cfg.ModelConfigPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("model config file not found: %s", cfg.ModelConfigPath)
	}

	workers := cfg.DetectorWorkers
	if workers < 1 {
		workers = 1
	}

	service := &DetectorService{
		pool:       make(chan gocv.Net, workers),
		classNames: cfg.ClassNames,
		confidence: float32(cfg.ConfidenceThreshold),
		overlap:    float32(cfg.OverlapThreshold),
		logger:     log,
	}

	for i := 0; i < workers; i++ {
		net := gocv.ReadNet(cfg.ModelPath, cfg.ModelConfigPath)
		if net.Empty() {
			service.Close()
			return nil, fmt.Errorf("failed to load detection network from %s", cfg.ModelPath)
		}
		if err := net.SetPreferableBackend(gocv.NetBackendDefault); err != nil {
			service.Close()
			return nil, fmt.Errorf("failed to set network backend: %w", err)
		}
		if err := net.SetPreferableTarget(gocv.NetTargetCPU); err != nil {
			service.Close()
			return nil, fmt.Errorf("failed to set network target: %w", err)
		}
		service.pool <- net
	}

	log.Info("Detection network pool initialized (%d nets, vocabulary %v)", workers, cfg.ClassNames)
	return service, nil
}

// Detect runs inference on the given image and returns detections above the
// confidence threshold, with overlapping same-region boxes suppressed. The
// order of returned detections carries no meaning. Transient inference
// buffers are released before returning.
func (s *DetectorService) Detect(img gocv.Mat) ([]models.Detection, error) {
	if img.Empty() {
		return nil, errors.New("input image is empty")
	}

	net := <-s.pool
	defer func() { s.pool <- net }()

	blob := gocv.BlobFromImage(img, 1.0/127.5, image.Pt(300, 300),
		gocv.NewScalar(127.5, 127.5, 127.5, 0), true, false)
	defer blob.Close()

	net.SetInput(blob, "")

	output := net.Forward("")
	defer output.Close()

	if output.Empty() {
		return nil, errors.New("inference produced no output")
	}

	// Output rows are [batch, class, confidence, x1, y1, x2, y2] with
	// normalized coordinates.
	reshaped := output.Reshape(1, output.Total()/7)
	defer reshaped.Close()

	imgW := float32(img.Cols())
	imgH := float32(img.Rows())

	var boxes []image.Rectangle
	var scores []float32
	var classIDs []int

	for i := 0; i < reshaped.Rows(); i++ {
		confidence := reshaped.GetFloatAt(i, 2)
		if confidence < s.confidence {
			continue
		}

		x1 := int(reshaped.GetFloatAt(i, 3) * imgW)
		y1 := int(reshaped.GetFloatAt(i, 4) * imgH)
		x2 := int(reshaped.GetFloatAt(i, 5) * imgW)
		y2 := int(reshaped.GetFloatAt(i, 6) * imgH)

		boxes = append(boxes, image.Rect(x1, y1, x2, y2))
		scores = append(scores, confidence)
		classIDs = append(classIDs, int(reshaped.GetFloatAt(i, 1)))
	}

	if len(boxes) == 0 {
		return nil, nil
	}

	var results []models.Detection
	for _, idx := range gocv.NMSBoxes(boxes, scores, s.confidence, s.overlap) {
		box := boxes[idx]
		results = append(results, models.Detection{
			Label:      s.className(classIDs[idx]),
			Confidence: float64(scores[idx]),
			X:          box.Min.X,
			Y:          box.Min.Y,
			Width:      box.Dx(),
			Height:     box.Dy(),
		})
	}

	return results, nil
}

// className maps a 1-based model class id onto the configured vocabulary.
func (s *DetectorService) className(classID int) string {
	if classID >= 1 && classID <= len(s.classNames) {
		return s.classNames[classID-1]
	}
	return fmt.Sprintf("unknown_%d", classID)
}

// Close releases every net in the pool.
func (s *DetectorService) Close() {
	for {
		select {
		case net := <-s.pool:
			net.Close()
		default:
			return
		}
	}
}
