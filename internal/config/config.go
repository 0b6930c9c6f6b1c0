package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port              int
	DatabasePath      string
	ArtifactDirectory string
	LogDirectory      string

	ModelPath       string
	ModelConfigPath string
	ClassNames      []string // detection vocabulary, index = model class id - 1

	MaxImageSide        int     // longer side after decode, larger inputs are downscaled
	ConfidenceThreshold float64 // minimum detection confidence
	OverlapThreshold    float64 // non-max suppression IoU threshold
	JPEGQuality         int     // artifact encode quality
	DetectorWorkers     int     // size of the inference net pool

	JWTSecret          string
	TokenExpiryMinutes int
}

func Load() *Config {
	// .env is optional, real deployments use the environment directly
	_ = godotenv.Load()

	return &Config{
		Port:              getEnvAsInt("PORT", 8080),
		DatabasePath:      getEnv("DB_PATH", filepath.Join("data", "inspection.db")),
		ArtifactDirectory: getEnv("ARTIFACT_DIR", filepath.Join(".", "artifacts")),
		LogDirectory:      getEnv("LOG_DIR", filepath.Join(".", "logs")),

		ModelPath:       getEnv("MODEL_PATH", filepath.Join("models", "panel_inspection.pb")),
		ModelConfigPath: getEnv("MODEL_CONFIG_PATH", filepath.Join("models", "panel_inspection.pbtxt")),
		ClassNames:      getEnvAsList("CLASS_NAMES", "clean,dusty,damaged"),

		MaxImageSide:        getEnvAsInt("MAX_IMAGE_SIDE", 800),
		ConfidenceThreshold: getEnvAsFloat("CONFIDENCE_THRESHOLD", 0.07),
		OverlapThreshold:    getEnvAsFloat("OVERLAP_THRESHOLD", 0.5),
		JPEGQuality:         getEnvAsInt("JPEG_QUALITY", 85),
		DetectorWorkers:     getEnvAsInt("DETECTOR_WORKERS", 2),

		JWTSecret:          getEnv("JWT_SECRET", "change-me-in-production"),
		TokenExpiryMinutes: getEnvAsInt("TOKEN_EXPIRY_MINUTES", 30),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvAsList(key, defaultValue string) []string {
	raw := getEnv(key, defaultValue)
	parts := strings.Split(raw, ",")
	values := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			values = append(values, trimmed)
		}
	}
	return values
}
