package dataset

import (
	"image"

	"github.com/pkg/errors"
)

// Foreground is the value written for pixels covered by exactly one
// annotation.
const Foreground = 255

// Accumulator sums per-annotation 0/1 masks into one uint8 grid.
type Accumulator struct {
	*image.Gray
}

func NewAccumulator(height, width int) *Accumulator {
	return &Accumulator{Gray: image.NewGray(image.Rect(0, 0, width, height))}
}

// Add sums m into the grid, wrapping at 256.
func (acc *Accumulator) Add(m *image.Gray) error {
	if m.Bounds().Size() != acc.Bounds().Size() {
		return errors.Errorf("mask size %v does not match grid %v", m.Bounds().Size(), acc.Bounds().Size())
	}

	for i, v := range m.Pix {
		acc.Pix[i] += v
	}

	return nil
}

// Remap sets cells equal to 1 to Foreground. Cells where annotations
// overlapped keep their summed count.
func (acc *Accumulator) Remap() {
	for i, v := range acc.Pix {
		if v == 1 {
			acc.Pix[i] = Foreground
		}
	}
}
