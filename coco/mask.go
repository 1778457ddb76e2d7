package coco

import (
	"image"
	"image/color"

	"github.com/llgcode/draw2d/draw2dimg"
	"github.com/pkg/errors"
)

// alphaCutoff is the minimum canvas coverage for a pixel to be foreground.
const alphaCutoff = 0x80

// AnnToMask rasterizes the annotation's shape into a height×width mask
// holding 0 or 1 per pixel.
func AnnToMask(a *Annotation, height, width int) (*image.Gray, error) {
	mask := image.NewGray(image.Rect(0, 0, width, height))

	seg := a.Segmentation
	switch {
	case seg.RLE != nil:
		if seg.RLE.Size[0] != height || seg.RLE.Size[1] != width {
			return nil, errors.Errorf("annotation %d: rle size %v does not match image %dx%d",
				a.ID, seg.RLE.Size, height, width)
		}
		pix, err := seg.RLE.Decode()
		if err != nil {
			return nil, errors.Wrapf(err, "annotation %d", a.ID)
		}
		copy(mask.Pix, pix)
	case len(seg.Polygons) > 0:
		fillPolygons(mask, seg.Polygons)
	}

	return mask, nil
}

func fillPolygons(mask *image.Gray, polys [][]float64) {
	b := mask.Bounds()
	for _, bc := range polys {
		if len(bc) < 6 {
			continue
		}
		bc = bc[:len(bc)&^1]

		canvas := image.NewRGBA(b)
		gc := draw2dimg.NewGraphicContext(canvas)
		gc.SetFillColor(color.RGBA{0, 0, 0, 255})

		gc.MoveTo(bc[0], bc[1])
		for i := 2; i < len(bc); i += 2 {
			gc.LineTo(bc[i], bc[i+1])
		}
		gc.Close()
		gc.Fill()

		for y := b.Min.Y; y < b.Max.Y; y++ {
			for x := b.Min.X; x < b.Max.X; x++ {
				if canvas.RGBAAt(x, y).A >= alphaCutoff {
					mask.SetGray(x, y, color.Gray{Y: 1})
				}
			}
		}
	}
}
