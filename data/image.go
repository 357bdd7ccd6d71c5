package data

import (
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"

	"golang.org/x/image/draw"
)

// DefaultJPEGQuality is used when re-encoding resized JPEGs.
const DefaultJPEGQuality = 95

// LoadImage opens and decodes one image file. The file is closed before returning.
// Any failure is reported as an *ImageReadError carrying the path.
func LoadImage(path string) (image.Image, string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, "", &ImageReadError{Path: path, Err: err}
	}
	defer f.Close()

	img, format, err := image.Decode(f)
	if err != nil {
		return nil, "", &ImageReadError{Path: path, Err: err}
	}
	return img, format, nil
}

// LoadRaster decodes path straight into per-channel planes.
func LoadRaster(path string) (*Raster, error) {
	img, _, err := LoadImage(path)
	if err != nil {
		return nil, err
	}
	r, err := RasterFromImage(img)
	if err != nil {
		return nil, &ImageReadError{Path: path, Err: err}
	}
	return r, nil
}

// Resize scales src to w x h with bilinear interpolation.
// Grayscale sources stay grayscale so the channel count survives a save/load round trip.
func Resize(src image.Image, w, h int) image.Image {
	rect := image.Rect(0, 0, w, h)
	var dst draw.Image
	switch src.(type) {
	case *image.Gray, *image.Gray16:
		dst = image.NewGray(rect)
	case *image.YCbCr, *image.CMYK:
		dst = image.NewRGBA(rect)
	default:
		dst = image.NewNRGBA(rect)
	}
	draw.BiLinear.Scale(dst, rect, src, src.Bounds(), draw.Src, nil)
	return dst
}

// SaveImage encodes img in the named format ("jpeg", "png" or "gif") and writes it to
// path, creating parent directories as needed. An existing file is overwritten.
func SaveImage(path string, img image.Image, format string, quality int) (err error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	switch format {
	case "jpeg":
		if quality <= 0 {
			quality = DefaultJPEGQuality
		}
		return jpeg.Encode(f, img, &jpeg.Options{Quality: quality})
	case "png":
		return png.Encode(f, img)
	case "gif":
		return gif.Encode(f, img, nil)
	default:
		return fmt.Errorf("no encoder for format %q", format)
	}
}

// ResizeFile loads src, scales it to w x h and writes the result to dst in the source's
// own format. Errors are reported as *ImageReadError for src or dst respectively.
func ResizeFile(src, dst string, w, h, quality int) error {
	img, format, err := LoadImage(src)
	if err != nil {
		return err
	}
	if err := SaveImage(dst, Resize(img, w, h), format, quality); err != nil {
		return &ImageReadError{Path: dst, Err: err}
	}
	return nil
}
