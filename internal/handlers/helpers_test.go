package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"path/filepath"
	"testing"

	"gocv.io/x/gocv"

	"solarserver/internal/logger"
	"solarserver/internal/models"
	"solarserver/internal/repository/sqlite"
	"solarserver/internal/services/auth"
	"solarserver/internal/services/pipeline"
	"solarserver/internal/services/storage"
)

type stubDetector struct {
	detections []models.Detection
	err        error
}

func (s *stubDetector) Detect(img gocv.Mat) ([]models.Detection, error) {
	return s.detections, s.err
}

type testEnv struct {
	db          *sqlite.DB
	users       *sqlite.UserRepository
	fields      *sqlite.FieldRepository
	jobs        *sqlite.JobRepository
	images      *sqlite.PanelImageRepository
	pipeline    *pipeline.Pipeline
	auth        *auth.Service
	logger      *logger.Logger
	artifactDir string
	userID      int64
	fieldID     int64
}

func newTestEnv(t *testing.T, detector pipeline.Detector) *testEnv {
	t.Helper()

	dir := t.TempDir()
	db, err := sqlite.New(filepath.Join(dir, "test.db"))
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	log := logger.New(filepath.Join(dir, "logs"))
	users := sqlite.NewUserRepository(db)
	fields := sqlite.NewFieldRepository(db)
	jobs := sqlite.NewJobRepository(db)
	images := sqlite.NewPanelImageRepository(db)

	hashed, err := auth.HashPassword("sunlight42")
	if err != nil {
		t.Fatalf("failed to hash test password: %v", err)
	}
	userID, err := users.Create(&models.User{
		Username:       "operator",
		Email:          "operator@example.com",
		HashedPassword: hashed,
		Role:           "owner",
		IsActive:       true,
	})
	if err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	fieldID, err := fields.Create(&models.SolarField{Name: "North Array", Location: "Sector 4", UserID: userID})
	if err != nil {
		t.Fatalf("failed to create test field: %v", err)
	}

	artifactDir := filepath.Join(dir, "artifacts")
	p := pipeline.New(detector, storage.NewArtifactStore(artifactDir, 85), fields, images, nil, log, 800)

	return &testEnv{
		db:          db,
		users:       users,
		fields:      fields,
		jobs:        jobs,
		images:      images,
		pipeline:    p,
		auth:        auth.NewService("test-secret", 30),
		logger:      log,
		artifactDir: artifactDir,
		userID:      userID,
		fieldID:     fieldID,
	}
}

func encodeTestJPEG(t *testing.T, width, height int) []byte {
	t.Helper()

	mat := gocv.NewMatWithSize(height, width, gocv.MatTypeCV8UC3)
	defer mat.Close()

	buf, err := gocv.IMEncode(gocv.JPEGFileExt, mat)
	if err != nil {
		t.Fatalf("failed to encode test image: %v", err)
	}
	defer buf.Close()

	data := make([]byte, len(buf.GetBytes()))
	copy(data, buf.GetBytes())
	return data
}

// newPredictRequest builds a multipart upload addressed via query parameters.
func newPredictRequest(t *testing.T, userID, fieldID int64, filename, contentType string, data []byte) *http.Request {
	t.Helper()

	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="image"; filename="%s"`, filename))
	header.Set("Content-Type", contentType)
	part, err := mw.CreatePart(header)
	if err != nil {
		t.Fatalf("failed to create multipart part: %v", err)
	}
	if _, err := part.Write(data); err != nil {
		t.Fatalf("failed to write multipart body: %v", err)
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("failed to close multipart writer: %v", err)
	}

	url := fmt.Sprintf("/predict?user_id=%d&field_id=%d", userID, fieldID)
	req := httptest.NewRequest(http.MethodPost, url, body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func decodeDetail(t *testing.T, rr *httptest.ResponseRecorder) string {
	t.Helper()

	var payload struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &payload); err != nil {
		t.Fatalf("response is not a detail payload: %v (%s)", err, rr.Body.String())
	}
	return payload.Detail
}
