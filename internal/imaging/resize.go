// Package imaging bounds uploaded images before they are sent upstream, to
// cap object-store payload size and inference cost.
package imaging

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"

	_ "image/gif"
	_ "image/png"

	"golang.org/x/image/draw"
)

// MaxWidth is the widest an uploaded image is allowed to be after compression.
const MaxWidth = 800

const jpegQuality = 85

// Downscale decodes data, scales it to at most MaxWidth pixels wide
// preserving aspect ratio, and re-encodes it as JPEG. Images already within
// bounds are re-encoded without scaling.
func Downscale(data []byte) ([]byte, error) {
	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	bounds := src.Bounds()
	out := src
	if bounds.Dx() > MaxWidth {
		h := bounds.Dy() * MaxWidth / bounds.Dx()
		dst := image.NewRGBA(image.Rect(0, 0, MaxWidth, h))
		draw.ApproxBiLinear.Scale(dst, dst.Bounds(), src, bounds, draw.Over, nil)
		out = dst
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, out, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, fmt.Errorf("encode image: %w", err)
	}
	return buf.Bytes(), nil
}
