package config

import (
	"reflect"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	if cfg.Port != 8080 {
		t.Errorf("Port = %d, want 8080", cfg.Port)
	}
	if cfg.MaxImageSide != 800 {
		t.Errorf("MaxImageSide = %d, want 800", cfg.MaxImageSide)
	}
	if cfg.ConfidenceThreshold != 0.07 {
		t.Errorf("ConfidenceThreshold = %v, want 0.07", cfg.ConfidenceThreshold)
	}
	if cfg.OverlapThreshold != 0.5 {
		t.Errorf("OverlapThreshold = %v, want 0.5", cfg.OverlapThreshold)
	}
	if cfg.JPEGQuality != 85 {
		t.Errorf("JPEGQuality = %d, want 85", cfg.JPEGQuality)
	}
	if want := []string{"clean", "dusty", "damaged"}; !reflect.DeepEqual(cfg.ClassNames, want) {
		t.Errorf("ClassNames = %v, want %v", cfg.ClassNames, want)
	}
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("CONFIDENCE_THRESHOLD", "0.25")
	t.Setenv("CLASS_NAMES", "clean, cracked ,hotspot")

	cfg := Load()

	if cfg.Port != 9090 {
		t.Errorf("Port = %d, want 9090", cfg.Port)
	}
	if cfg.ConfidenceThreshold != 0.25 {
		t.Errorf("ConfidenceThreshold = %v, want 0.25", cfg.ConfidenceThreshold)
	}
	if want := []string{"clean", "cracked", "hotspot"}; !reflect.DeepEqual(cfg.ClassNames, want) {
		t.Errorf("ClassNames = %v, want trimmed %v", cfg.ClassNames, want)
	}
}

func TestLoad_InvalidNumbersFallBack(t *testing.T) {
	t.Setenv("PORT", "not-a-port")
	t.Setenv("OVERLAP_THRESHOLD", "high")

	cfg := Load()

	if cfg.Port != 8080 {
		t.Errorf("Port = %d, want default 8080 for invalid value", cfg.Port)
	}
	if cfg.OverlapThreshold != 0.5 {
		t.Errorf("OverlapThreshold = %v, want default 0.5 for invalid value", cfg.OverlapThreshold)
	}
}
