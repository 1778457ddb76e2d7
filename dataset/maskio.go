package dataset

import (
	"image"

	"github.com/pkg/errors"
	"gocv.io/x/gocv"
)

// WriteMask stores m as a single-channel image, the format is picked from
// the path extension.
func WriteMask(path string, m *image.Gray) error {
	b := m.Bounds()
	if b.Empty() {
		return errors.Errorf("write %s: empty mask", path)
	}

	mat, err := gocv.NewMatFromBytes(b.Dy(), b.Dx(), gocv.MatTypeCV8UC1, m.Pix)
	if err != nil {
		return errors.Wrapf(err, "write %s", path)
	}
	defer mat.Close()

	if !gocv.IMWrite(path, mat) {
		return errors.Errorf("write %s: encode failed", path)
	}

	return nil
}

// ReadMask loads a mask written by WriteMask.
func ReadMask(path string) (*image.Gray, error) {
	mat := gocv.IMRead(path, gocv.IMReadGrayScale)
	defer mat.Close()
	if mat.Empty() {
		return nil, errors.Errorf("read %s: not an image", path)
	}

	m := image.NewGray(image.Rect(0, 0, mat.Cols(), mat.Rows()))
	for y := 0; y < mat.Rows(); y++ {
		for x := 0; x < mat.Cols(); x++ {
			m.Pix[y*m.Stride+x] = mat.GetUCharAt(y, x)
		}
	}

	return m, nil
}
