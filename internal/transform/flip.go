// Package transform holds the pure image transforms applied to processed
// results. The only operation today is the horizontal mirror flip.
package transform

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"

	"github.com/disintegration/imaging"

	_ "image/gif"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// jpegQuality is used when re-encoding JPEG input after the flip.
const jpegQuality = 95

// FlipHorizontal mirrors a raster image across its vertical axis and
// re-encodes it, preserving dimensions. PNG and JPEG keep their format;
// inputs without an encoder wired here (WebP, GIF) come back as PNG.
// Deterministic and pure, no I/O beyond the byte slices.
func FlipHorizontal(data []byte) ([]byte, error) {
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	flipped := imaging.FlipH(img)

	var buf bytes.Buffer
	switch format {
	case "jpeg":
		err = jpeg.Encode(&buf, flipped, &jpeg.Options{Quality: jpegQuality})
	case "bmp":
		err = bmp.Encode(&buf, flipped)
	case "tiff":
		err = tiff.Encode(&buf, flipped, nil)
	default:
		// png, gif, webp and anything else land here as PNG; PNG is the
		// format the background-removal API returns, so this is the hot path.
		err = png.Encode(&buf, flipped)
	}
	if err != nil {
		return nil, fmt.Errorf("encode %s image: %w", format, err)
	}
	return buf.Bytes(), nil
}
