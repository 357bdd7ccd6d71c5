package data

import (
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// writeJPEG writes a w x h JPEG filled with c.
func writeJPEG(t testing.TB, path string, w, h int, c color.Color) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	writeImage(t, path, func(f *os.File) error {
		return jpeg.Encode(f, img, &jpeg.Options{Quality: 100})
	})
}

// writeGrayPNG writes a w x h single-channel PNG filled with level.
func writeGrayPNG(t testing.TB, path string, w, h int, level uint8) {
	t.Helper()
	img := image.NewGray(image.Rect(0, 0, w, h))
	for i := range img.Pix {
		img.Pix[i] = level
	}
	writeImage(t, path, func(f *os.File) error { return png.Encode(f, img) })
}

// writeNRGBAPNG writes a w x h PNG with an alpha channel filled with c.
func writeNRGBAPNG(t testing.TB, path string, w, h int, c color.NRGBA) {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	writeImage(t, path, func(f *os.File) error { return png.Encode(f, img) })
}

// writeGradientJPEG writes a JPEG whose pixels vary so resampling is not trivial.
func writeGradientJPEG(t testing.TB, path string, w, h int) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x * 255 / w), G: uint8(y * 255 / h), B: 128, A: 255})
		}
	}
	writeImage(t, path, func(f *os.File) error {
		return jpeg.Encode(f, img, &jpeg.Options{Quality: 90})
	})
}

func writeCorrupt(t testing.TB, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte("definitely not an image"), 0644))
}

func writeImage(t testing.TB, path string, encode func(f *os.File) error) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, encode(f))
}

// makeDataset creates root/<category>/img_N.jpg for every entry of counts.
// Categories with a zero count still get an (empty) directory.
func makeDataset(t testing.TB, counts map[string]int) string {
	t.Helper()
	root := t.TempDir()
	for cat, n := range counts {
		dir := filepath.Join(root, cat)
		require.NoError(t, os.MkdirAll(dir, 0755))
		for i := 0; i < n; i++ {
			shade := uint8(20 + i*10)
			writeJPEG(t, filepath.Join(dir, "img_"+string(rune('a'+i))+".jpg"), 8, 8, color.RGBA{R: shade, G: 120, B: 60, A: 255})
		}
	}
	return root
}

func seed(v int64) *int64 { return &v }
