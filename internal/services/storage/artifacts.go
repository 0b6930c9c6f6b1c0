package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gocv.io/x/gocv"
)

// ArtifactStore persists annotated images as JPEGs under a
// {year}/{month}/{day}/{userID} partition tree. Paths are deterministic:
// storing the same (date, user, filename) twice overwrites the same file and
// returns the same path, which callers expose verbatim as the static lookup
// key.
type ArtifactStore struct {
	baseDir string
	quality int
}

// NewArtifactStore creates a store rooted at baseDir writing JPEGs at the
// given quality (lossy on purpose, storage cost over review fidelity).
func NewArtifactStore(baseDir string, quality int) *ArtifactStore {
	return &ArtifactStore{baseDir: baseDir, quality: quality}
}

// Store encodes the image and writes it to the partition for today's date
// and the given user. Returns the partition-relative path in slash form.
func (s *ArtifactStore) Store(img gocv.Mat, userID int64, filename string) (string, error) {
	now := time.Now()
	relDir := filepath.Join(
		fmt.Sprintf("%04d", now.Year()),
		fmt.Sprintf("%02d", int(now.Month())),
		fmt.Sprintf("%02d", now.Day()),
		strconv.FormatInt(userID, 10),
	)

	// Concurrent requests may create the same partition, MkdirAll treats
	// an existing directory as success.
	absDir := filepath.Join(s.baseDir, relDir)
	if err := os.MkdirAll(absDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create artifact directory: %w", err)
	}

	buf, err := gocv.IMEncodeWithParams(gocv.JPEGFileExt, img, []int{gocv.IMWriteJpegQuality, s.quality})
	if err != nil {
		return "", fmt.Errorf("failed to encode artifact: %w", err)
	}
	defer buf.Close()

	name := "classified_" + filepath.Base(filename)
	if err := os.WriteFile(filepath.Join(absDir, name), buf.GetBytes(), 0644); err != nil {
		return "", fmt.Errorf("failed to write artifact: %w", err)
	}

	return filepath.ToSlash(filepath.Join(relDir, name)), nil
}

// BaseDir returns the store root, used for static serving.
func (s *ArtifactStore) BaseDir() string {
	return s.baseDir
}
