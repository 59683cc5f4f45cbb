// Package mnist downloads and decodes the MNIST handwritten digit database.
package mnist

import (
	"image"
	"image/color"
)

// Width and height in pixels of each digit image
const Size = 28

// Image is a single channel digit image with pixel intensities scaled to the
// range 0 to 1, stored in row major order. Images are immutable once loaded.
type Image struct {
	Pix []float32
}

func NewImage() *Image {
	return &Image{Pix: make([]float32, Size*Size)}
}

func (m *Image) ColorModel() color.Model {
	return color.GrayModel
}

func (m *Image) Bounds() image.Rectangle {
	return image.Rect(0, 0, Size, Size)
}

func (m *Image) At(x, y int) color.Color {
	if x < 0 || x >= Size || y < 0 || y >= Size {
		return color.Gray{}
	}
	return color.Gray{Y: uint8(m.Pix[y*Size+x]*255 + 0.5)}
}
