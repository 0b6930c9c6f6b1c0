package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gocv.io/x/gocv"

	"solarserver/internal/logger"
	"solarserver/internal/models"
	"solarserver/internal/repository"
	"solarserver/internal/services/storage"
	"solarserver/internal/services/vision"
)

// Detector is the opaque inference capability the pipeline consumes.
type Detector interface {
	Detect(img gocv.Mat) ([]models.Detection, error)
}

// Broadcaster receives one event per successful classification, usually the
// websocket hub.
type Broadcaster interface {
	Broadcast(message []byte)
}

// Input is one uploaded image with its addressing parameters.
type Input struct {
	Data        []byte
	ContentType string
	Filename    string
	UserID      int64
	FieldID     int64
}

// Result bundles the per-detection list with the stored artifact path and
// the committed metadata record.
type Result struct {
	Detections []models.Detection
	Classes    []string
	Path       string
	Record     *models.PanelImage
}

// classificationEvent is the payload broadcast to review clients.
type classificationEvent struct {
	FieldID    int64  `json:"field_id"`
	Path       string `json:"path"`
	ImageClass string `json:"image_class"`
	Detections int    `json:"detections"`
}

// Pipeline sequences decode, detection, annotation, aggregation, artifact
// storage and metadata recording for one uploaded image. All state is
// request-local; the detector and repositories are the only shared
// collaborators.
type Pipeline struct {
	detector     Detector
	store        *storage.ArtifactStore
	fields       repository.FieldRepository
	images       repository.PanelImageRepository
	hub          Broadcaster
	logger       *logger.Logger
	maxImageSide int
}

// New wires a pipeline. hub may be nil when no live event fan-out is wanted.
func New(detector Detector, store *storage.ArtifactStore, fields repository.FieldRepository,
	images repository.PanelImageRepository, hub Broadcaster, log *logger.Logger, maxImageSide int) *Pipeline {
	return &Pipeline{
		detector:     detector,
		store:        store,
		fields:       fields,
		images:       images,
		hub:          hub,
		logger:       log,
		maxImageSide: maxImageSide,
	}
}

// Run executes one end-to-end classification. Validation failures
// short-circuit before any side effect; the metadata row is only committed
// after the artifact is durably written.
func (p *Pipeline) Run(ctx context.Context, in Input) (*Result, error) {
	runID := uuid.NewString()

	if err := p.checkField(in.FieldID); err != nil {
		return nil, err
	}

	img, err := vision.Decode(in.Data, in.ContentType, p.maxImageSide)
	if err != nil {
		if errors.Is(err, vision.ErrNotAnImage) {
			return nil, &Error{Kind: KindInvalidInput, Message: "Uploaded file is not an image."}
		}
		return nil, p.fail(runID, in, &Error{Kind: KindInternal, Message: "failed to decode image", Err: err})
	}
	defer img.Close()

	if err := ctx.Err(); err != nil {
		return nil, p.fail(runID, in, &Error{Kind: KindInternal, Message: "request abandoned before inference", Err: err})
	}

	detections, err := p.detector.Detect(img)
	if err != nil {
		return nil, p.fail(runID, in, &Error{Kind: KindInference, Message: "object detection failed", Err: err})
	}

	annotated, err := vision.Annotate(img, detections)
	if err != nil {
		return nil, p.fail(runID, in, &Error{Kind: KindInternal, Message: "failed to annotate image", Err: err})
	}
	defer annotated.Close()

	classes := vision.Aggregate(detections)

	path, err := p.store.Store(annotated, in.UserID, in.Filename)
	if err != nil {
		return nil, p.fail(runID, in, &Error{Kind: KindInternal, Message: "failed to store classified image", Err: err})
	}

	record, err := p.images.CreateInField(in.FieldID, path, vision.JoinClasses(classes))
	if err != nil {
		if errors.Is(err, repository.ErrFieldNotFound) {
			return nil, p.notFound(in.FieldID)
		}
		return nil, p.fail(runID, in, &Error{Kind: KindInternal, Message: "failed to record panel image", Err: err})
	}

	p.logger.Info("pipeline %s: user=%d field=%d file=%s detections=%d classes=%q path=%s",
		runID, in.UserID, in.FieldID, in.Filename, len(detections), record.ImageClass, path)

	p.broadcast(record, len(detections))

	return &Result{
		Detections: detections,
		Classes:    classes,
		Path:       path,
		Record:     record,
	}, nil
}

// checkField rejects missing fields before any decode or storage work. The
// recorder re-checks inside its transaction; this early check keeps failed
// requests free of side effects.
func (p *Pipeline) checkField(fieldID int64) error {
	exists, err := p.fields.Exists(fieldID)
	if err != nil {
		return &Error{Kind: KindInternal, Message: "failed to check solar field", Err: err}
	}
	if !exists {
		return p.notFound(fieldID)
	}
	return nil
}

func (p *Pipeline) notFound(fieldID int64) error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf("SolarField with ID %d not found", fieldID)}
}

// fail logs the failure with full request context before returning it.
func (p *Pipeline) fail(runID string, in Input, err *Error) error {
	p.logger.Error("pipeline %s: user=%d field=%d file=%s: %v",
		runID, in.UserID, in.FieldID, in.Filename, err)
	return err
}

func (p *Pipeline) broadcast(record *models.PanelImage, detections int) {
	if p.hub == nil {
		return
	}
	payload, err := json.Marshal(classificationEvent{
		FieldID:    record.FieldID,
		Path:       record.Path,
		ImageClass: record.ImageClass,
		Detections: detections,
	})
	if err != nil {
		p.logger.Error("Failed to encode classification event: %v", err)
		return
	}
	p.hub.Broadcast(payload)
}
