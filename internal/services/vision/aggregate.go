package vision

import (
	"sort"
	"strings"

	"solarserver/internal/models"
)

// Aggregate reduces detections to the image-level class set: lower-cased,
// deduplicated and sorted so the persisted join is reproducible. An empty
// input yields an empty slice, which is the valid "nothing detected" outcome.
func Aggregate(detections []models.Detection) []string {
	seen := make(map[string]struct{}, len(detections))
	for _, det := range detections {
		seen[strings.ToLower(det.Label)] = struct{}{}
	}

	classes := make([]string, 0, len(seen))
	for class := range seen {
		classes = append(classes, class)
	}
	sort.Strings(classes)
	return classes
}

// JoinClasses produces the persisted comma-delimited representation.
func JoinClasses(classes []string) string {
	return strings.Join(classes, ",")
}
