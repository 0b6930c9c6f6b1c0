package vision

import (
	"reflect"
	"testing"

	"solarserver/internal/models"
)

func TestAggregate_DeduplicatesAndLowercases(t *testing.T) {
	detections := []models.Detection{
		{Label: "Dusty", Confidence: 0.9},
		{Label: "CLEAN", Confidence: 0.8},
		{Label: "dusty", Confidence: 0.7},
		{Label: "Damaged", Confidence: 0.6},
	}

	got := Aggregate(detections)
	want := []string{"clean", "damaged", "dusty"}

	if !reflect.DeepEqual(got, want) {
		t.Errorf("Aggregate() = %v, want %v", got, want)
	}
}

func TestAggregate_SortedOutput(t *testing.T) {
	detections := []models.Detection{
		{Label: "zeta"},
		{Label: "alpha"},
		{Label: "mid"},
	}

	got := Aggregate(detections)
	want := []string{"alpha", "mid", "zeta"}

	if !reflect.DeepEqual(got, want) {
		t.Errorf("Aggregate() = %v, want sorted %v", got, want)
	}
}

func TestAggregate_EmptyInput(t *testing.T) {
	got := Aggregate(nil)
	if len(got) != 0 {
		t.Errorf("Aggregate(nil) = %v, want empty", got)
	}

	if joined := JoinClasses(got); joined != "" {
		t.Errorf("JoinClasses(empty) = %q, want empty string", joined)
	}
}

func TestJoinClasses(t *testing.T) {
	tests := []struct {
		classes  []string
		expected string
	}{
		{[]string{"dusty"}, "dusty"},
		{[]string{"clean", "dusty"}, "clean,dusty"},
		{[]string{"clean", "damaged", "dusty"}, "clean,damaged,dusty"},
	}

	for _, tt := range tests {
		if got := JoinClasses(tt.classes); got != tt.expected {
			t.Errorf("JoinClasses(%v) = %q, expected %q", tt.classes, got, tt.expected)
		}
	}
}
