package raster

import (
	"image"
	"image/color"
	"image/png"
	"io"

	"golang.org/x/image/tiff"
)

// ReadTIFF decodes the first image of a TIFF (GeoTIFF tags are ignored).
// Gray and Gray16 samples are used as-is; colour images are reduced to
// 16-bit luminance.
func ReadTIFF(r io.Reader) (*Grid, error) {
	img, err := tiff.Decode(r)
	if err != nil {
		return nil, err
	}
	return fromImage(img)
}

func ReadPNG(r io.Reader) (*Grid, error) {
	img, err := png.Decode(r)
	if err != nil {
		return nil, err
	}
	return fromImage(img)
}

func fromImage(img image.Image) (*Grid, error) {
	b := img.Bounds()
	g := &Grid{Width: b.Dx(), Height: b.Dy(), Values: make([]float64, 0, b.Dx()*b.Dy())}
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			g.Values = append(g.Values, grayValue(img.At(x, y)))
		}
	}
	if err := g.check(); err != nil {
		return nil, err
	}
	return g, nil
}

func grayValue(c color.Color) float64 {
	switch v := c.(type) {
	case color.Gray:
		return float64(v.Y)
	case color.Gray16:
		return float64(v.Y)
	default:
		return float64(color.Gray16Model.Convert(c).(color.Gray16).Y)
	}
}
