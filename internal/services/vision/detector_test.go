package vision

import (
	"path/filepath"
	"testing"

	"solarserver/internal/config"
	"solarserver/internal/logger"
)

func TestNewDetectorService_MissingModel(t *testing.T) {
	dir := t.TempDir()
	cfg := &config.Config{
		ModelPath:       filepath.Join(dir, "missing.pb"),
		ModelConfigPath: filepath.Join(dir, "missing.pbtxt"),
		ClassNames:      []string{"clean", "dusty", "damaged"},
		DetectorWorkers: 1,
	}

	if _, err := NewDetectorService(cfg, logger.New(filepath.Join(dir, "logs"))); err == nil {
		t.Error("NewDetectorService() with missing model files returned nil error")
	}
}
