package imaging

import (
	"bytes"
	"image"
	"image/jpeg"
	"image/png"
	"testing"
)

func encodePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, w, h))); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func decodeDims(t *testing.T, data []byte) (int, int) {
	t.Helper()
	img, err := jpeg.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("output is not a JPEG: %v", err)
	}
	return img.Bounds().Dx(), img.Bounds().Dy()
}

func TestDownscaleWideImage(t *testing.T) {
	out, err := Downscale(encodePNG(t, 1600, 400))
	if err != nil {
		t.Fatal(err)
	}
	w, h := decodeDims(t, out)
	if w != MaxWidth {
		t.Errorf("expected width %d, got %d", MaxWidth, w)
	}
	if h != 200 {
		t.Errorf("expected aspect-preserved height 200, got %d", h)
	}
}

func TestDownscaleLeavesSmallImageDimensions(t *testing.T) {
	out, err := Downscale(encodePNG(t, 100, 50))
	if err != nil {
		t.Fatal(err)
	}
	w, h := decodeDims(t, out)
	if w != 100 || h != 50 {
		t.Errorf("expected 100x50 unchanged, got %dx%d", w, h)
	}
}

func TestDownscaleRejectsNonImage(t *testing.T) {
	if _, err := Downscale([]byte("not an image")); err == nil {
		t.Fatal("expected error for undecodable input")
	}
}
