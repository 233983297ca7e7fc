// Package imgproc decodes, downscales, and re-encodes images on demand.
// Images are only ever shrunk: a request that does not fit strictly inside
// the natural dimensions returns the original bytes untouched.
package imgproc

import (
	"bytes"
	"errors"
	"fmt"
	"image"

	"github.com/HugoSmits86/nativewebp"
	"github.com/disintegration/imaging"

	// Register decoders beyond the ones imaging pulls in itself.
	_ "golang.org/x/image/webp"
)

// ErrUnsupportedFormat is returned when the input is not a recognized image
// format or the detected format cannot be re-encoded.
var ErrUnsupportedFormat = errors.New("imgproc: unsupported image format")

// mimeTypes maps detected format names to the MIME type reported to clients.
// Formats missing from this table yield an empty MIME string.
var mimeTypes = map[string]string{
	"jpeg": "image/jpeg",
	"png":  "image/png",
	"gif":  "image/gif",
	"bmp":  "image/bmp",
	"tiff": "image/tiff",
	"webp": "image/webp",
}

// Scale decodes data, normalizes any embedded orientation, downscales it to
// the largest aspect-preserving size fitting inside width x height, and
// re-encodes it in the format it arrived in. When either requested dimension
// is not strictly smaller than the natural one, the original bytes are
// returned unmodified. The returned string is the MIME type for the
// detected format.
func Scale(data []byte, width, height uint) (string, []byte, error) {
	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return "", nil, fmt.Errorf("%w: %v", ErrUnsupportedFormat, err)
	}
	mimeType := mimeTypes[format]

	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return "", nil, fmt.Errorf("imgproc: decode %s: %w", format, err)
	}

	bounds := img.Bounds()
	naturalWidth, naturalHeight := bounds.Dx(), bounds.Dy()

	if int(width) >= naturalWidth || int(height) >= naturalHeight {
		// Never upscale.
		return mimeType, data, nil
	}

	newWidth, newHeight := fitDimensions(naturalWidth, naturalHeight, width, height)
	scaled := imaging.Resize(img, newWidth, newHeight, imaging.CatmullRom)

	out, err := encode(scaled, format)
	if err != nil {
		return "", nil, err
	}
	return mimeType, out, nil
}

// fitDimensions returns the largest size that preserves the natural aspect
// ratio and fits within the requested box. The looser constraint is fixed
// and the other dimension derived from the ratio, integer-truncated.
func fitDimensions(naturalWidth, naturalHeight int, width, height uint) (int, int) {
	ratio := float64(naturalWidth) / float64(naturalHeight)
	if width > height {
		return int(width), int(float64(width) / ratio)
	}
	return int(float64(height) * ratio), int(height)
}

func encode(img image.Image, format string) ([]byte, error) {
	var buf bytes.Buffer
	var err error

	switch format {
	case "jpeg":
		err = imaging.Encode(&buf, img, imaging.JPEG)
	case "png":
		err = imaging.Encode(&buf, img, imaging.PNG)
	case "gif":
		err = imaging.Encode(&buf, img, imaging.GIF)
	case "bmp":
		err = imaging.Encode(&buf, img, imaging.BMP)
	case "tiff":
		err = imaging.Encode(&buf, img, imaging.TIFF)
	case "webp":
		err = nativewebp.Encode(&buf, img, nil)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
	if err != nil {
		return nil, fmt.Errorf("imgproc: encode %s: %w", format, err)
	}
	return buf.Bytes(), nil
}
