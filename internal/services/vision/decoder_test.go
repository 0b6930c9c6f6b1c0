package vision

import (
	"errors"
	"testing"

	"gocv.io/x/gocv"
)

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

func TestDecode_RejectsNonImageContentType(t *testing.T) {
	mat, err := Decode([]byte("not pixels"), "application/pdf", 800)
	defer mat.Close()

	if !errors.Is(err, ErrNotAnImage) {
		t.Errorf("Decode() error = %v, want ErrNotAnImage", err)
	}
}

func TestDecode_RejectsCorruptBytes(t *testing.T) {
	mat, err := Decode([]byte{0x00, 0x01, 0x02}, "image/jpeg", 800)
	defer mat.Close()

	if err == nil {
		t.Error("Decode() accepted corrupt bytes, want error")
	}
}

func TestDecode_KeepsSmallImageUnscaled(t *testing.T) {
	data := encodeTestJPEG(t, 640, 480)

	mat, err := Decode(data, "image/jpeg", 800)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	defer mat.Close()

	if mat.Cols() != 640 || mat.Rows() != 480 {
		t.Errorf("decoded size = %dx%d, want 640x480", mat.Cols(), mat.Rows())
	}
}

func TestDecode_DownscalesIsotropically(t *testing.T) {
	data := encodeTestJPEG(t, 1600, 1200)

	mat, err := Decode(data, "image/jpeg", 800)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	defer mat.Close()

	if mat.Cols() != 800 || mat.Rows() != 600 {
		t.Errorf("decoded size = %dx%d, want 800x600", mat.Cols(), mat.Rows())
	}
}

func TestDecode_DownscalesTallImage(t *testing.T) {
	data := encodeTestJPEG(t, 500, 1000)

	mat, err := Decode(data, "image/jpeg", 800)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	defer mat.Close()

	if mat.Cols() != 400 || mat.Rows() != 800 {
		t.Errorf("decoded size = %dx%d, want 400x800", mat.Cols(), mat.Rows())
	}
}
