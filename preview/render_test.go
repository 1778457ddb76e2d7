package main

import (
	"encoding/json"
	"image"
	"testing"

	"go.viam.com/test"
)

func TestBBoxRect(t *testing.T) {
	r, err := bboxRect([]json.Number{"1.5", "2", "3", "4"})
	test.That(t, err, test.ShouldBeNil)
	test.That(t, r, test.ShouldResemble, image.Rect(1, 2, 4, 6))

	_, err = bboxRect([]json.Number{"1", "2", "3"})
	test.That(t, err, test.ShouldNotBeNil)

	_, err = bboxRect([]json.Number{"1", "x", "3", "4"})
	test.That(t, err, test.ShouldNotBeNil)
}
