package main

import (
	"encoding/json"
	"image"
	"image/color"
	"strconv"

	"github.com/pkg/errors"
	"gocv.io/x/gocv"
)

func bboxRect(b []json.Number) (r image.Rectangle, err error) {
	if len(b) != 4 {
		err = errors.Errorf("bbox needs 4 values, got %d", len(b))
		return
	}

	var v [4]float64
	for i, n := range b {
		if v[i], err = n.Float64(); err != nil {
			return
		}
	}

	r = image.Rect(int(v[0]), int(v[1]), int(v[0]+v[2]), int(v[1]+v[3]))
	return
}

func drawBoundingBoxOnImage(img gocv.Mat, bboxes [][]json.Number) error {
	for i, b := range bboxes {
		r, err := bboxRect(b)
		if err != nil {
			return errors.Wrapf(err, "bbox %d", i)
		}

		gocv.Rectangle(&img, r, color.RGBA{255, 255, 0, 0}, 1)
		gocv.PutText(&img, strconv.Itoa(i), r.Min, gocv.FontHersheyComplex, 0.5, color.RGBA{255, 0, 0, 255}, 1)
	}

	return nil
}
