package data

import (
	"errors"
	"image"
	"image/color"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// Raster holds decoded pixels as one plane per channel.
// Values are on the 8-bit scale [0, 255] whatever the source bit depth.
type Raster struct {
	width, height int
	data          [][]float64  // flat row-major storage, one slice per channel
	planes        []*mat.Dense // views over data
}

var errEmptyImage = errors.New("image has zero area")

// -------- CONSTRUCTORS ------- //
func NewRaster(width, height, channels int) *Raster {
	r := &Raster{
		width:  width,
		height: height,
		data:   make([][]float64, channels),
		planes: make([]*mat.Dense, channels),
	}
	for c := range channels {
		r.data[c] = make([]float64, width*height)
		r.planes[c] = mat.NewDense(height, width, r.data[c])
	}
	return r
}

// ChannelCount reports how many intensity channels a decoded image carries.
// Alpha-only images report 0. The first three channels of anything with 3 or more are
// taken to be red, green and blue in that order.
func ChannelCount(img image.Image) int {
	switch img.(type) {
	case *image.Gray, *image.Gray16:
		return 1
	case *image.YCbCr, *image.CMYK:
		return 3
	case *image.Alpha, *image.Alpha16:
		return 0
	default:
		return 4
	}
}

// RasterFromImage copies the pixels of img into a Raster with ChannelCount(img) planes.
// YCbCr and CMYK sources are converted to RGB; RGBA-like sources are un-premultiplied.
func RasterFromImage(img image.Image) (*Raster, error) {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= 0 || h <= 0 {
		return nil, errEmptyImage
	}

	channels := ChannelCount(img)
	r := &Raster{width: w, height: h}
	if channels == 0 {
		return r, nil
	}
	r = NewRaster(w, h, channels)

	for y := b.Min.Y; y < b.Max.Y; y++ {
		row := (y - b.Min.Y) * w
		for x := b.Min.X; x < b.Max.X; x++ {
			i := row + x - b.Min.X
			switch src := img.(type) {
			case *image.Gray:
				r.data[0][i] = float64(src.GrayAt(x, y).Y)
			case *image.Gray16:
				r.data[0][i] = float64(src.Gray16At(x, y).Y) / 257
			case *image.NRGBA:
				c := src.NRGBAAt(x, y)
				r.data[0][i] = float64(c.R)
				r.data[1][i] = float64(c.G)
				r.data[2][i] = float64(c.B)
				r.data[3][i] = float64(c.A)
			case *image.YCbCr, *image.CMYK:
				cr, cg, cb, _ := src.At(x, y).RGBA()
				r.data[0][i] = float64(cr) / 257
				r.data[1][i] = float64(cg) / 257
				r.data[2][i] = float64(cb) / 257
			default:
				c := color.NRGBA64Model.Convert(img.At(x, y)).(color.NRGBA64)
				r.data[0][i] = float64(c.R) / 257
				r.data[1][i] = float64(c.G) / 257
				r.data[2][i] = float64(c.B) / 257
				r.data[3][i] = float64(c.A) / 257
			}
		}
	}
	return r, nil
}

// ------- RASTER METHODS ------ //
func (r *Raster) Width() int    { return r.width }
func (r *Raster) Height() int   { return r.height }
func (r *Raster) Channels() int { return len(r.planes) }

// Plane exposes channel c as a height x width matrix.
func (r *Raster) Plane(c int) *mat.Dense { return r.planes[c] }

// Set writes one sample; used by tests and synthetic fixtures.
func (r *Raster) Set(c, x, y int, v float64) {
	r.data[c][y*r.width+x] = v
}

// Fill sets every sample of channel c to v.
func (r *Raster) Fill(c int, v float64) {
	for i := range r.data[c] {
		r.data[c][i] = v
	}
}

// ChannelMean is the arithmetic mean of all samples in channel c.
func (r *Raster) ChannelMean(c int) float64 {
	return stat.Mean(r.data[c], nil)
}

// MeanRGB collapses the raster to one mean per colour channel.
// Single-channel rasters are replicated across R, G and B; rasters with 3 or more
// channels contribute their first three. Anything else is rejected with the channel count.
func (r *Raster) MeanRGB() (RGB, bool) {
	switch n := r.Channels(); {
	case n == 1:
		m := r.ChannelMean(0)
		return RGB{R: m, G: m, B: m}, true
	case n >= 3:
		return RGB{R: r.ChannelMean(0), G: r.ChannelMean(1), B: r.ChannelMean(2)}, true
	default:
		return RGB{}, false
	}
}

// RGB is one mean intensity per colour channel on the 8-bit scale.
type RGB struct {
	R float64 `json:"r" yaml:"r"`
	G float64 `json:"g" yaml:"g"`
	B float64 `json:"b" yaml:"b"`
}

// MeanOf averages triples component-wise. It returns the zero RGB for an empty slice.
func MeanOf(triples []RGB) RGB {
	if len(triples) == 0 {
		return RGB{}
	}
	rs := make([]float64, len(triples))
	gs := make([]float64, len(triples))
	bs := make([]float64, len(triples))
	for i, t := range triples {
		rs[i], gs[i], bs[i] = t.R, t.G, t.B
	}
	n := float64(len(triples))
	return RGB{R: floats.Sum(rs) / n, G: floats.Sum(gs) / n, B: floats.Sum(bs) / n}
}
