package main

import (
	"bytes"
	"encoding/json"
	"image"
	"os"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"
	http "github.com/valyala/fasthttp"
	"go.uber.org/zap/zaptest"
	"go.viam.com/test"

	"github.com/model-collapse/coco-mask/dataset"
)

func writeOutput(t *testing.T, bbox []json.Number) string {
	t.Helper()
	root := t.TempDir()
	for _, dir := range []string{"images", "masks"} {
		test.That(t, os.MkdirAll(filepath.Join(root, "train", dir), 0o755), test.ShouldBeNil)
	}

	img := image.NewNRGBA(image.Rect(0, 0, 32, 24))
	test.That(t, imaging.Save(img, filepath.Join(root, "train", "images", "0000.jpg")), test.ShouldBeNil)

	maskPath := filepath.Join(root, "train", "masks", "0000_mask.jpg")
	mask := image.NewGray(image.Rect(0, 0, 32, 24))
	for i := range mask.Pix[:64] {
		mask.Pix[i] = dataset.Foreground
	}
	test.That(t, dataset.WriteMask(maskPath, mask), test.ShouldBeNil)

	idx := dataset.NewIndex()
	idx["train"]["0000.jpg"] = &dataset.Entry{MaskPath: maskPath, BBoxList: [][]json.Number{bbox}}
	test.That(t, dataset.WriteIndex(filepath.Join(root, dataset.IndexFileName), idx), test.ShouldBeNil)

	return root
}

func get(s *server, uri string) *http.RequestCtx {
	var c http.RequestCtx
	c.Request.SetRequestURI(uri)
	s.handle(&c)
	return &c
}

func TestServe(t *testing.T) {
	root := writeOutput(t, []json.Number{"2", "2", "10", "10.5"})
	s, err := newServer(root, zaptest.NewLogger(t).Sugar())
	test.That(t, err, test.ShouldBeNil)

	c := get(s, "/index")
	test.That(t, c.Response.StatusCode(), test.ShouldEqual, http.StatusOK)
	var idx dataset.Index
	test.That(t, json.Unmarshal(c.Response.Body(), &idx), test.ShouldBeNil)
	test.That(t, idx, test.ShouldResemble, s.index)

	for _, uri := range []string{
		"/preview?subset=train&image=0000.jpg",
		"/preview?subset=train&image=0000.jpg&box=true",
	} {
		c = get(s, uri)
		test.That(t, c.Response.StatusCode(), test.ShouldEqual, http.StatusOK)
		test.That(t, string(c.Response.Header.ContentType()), test.ShouldEqual, "image/jpeg")
		img, err := imaging.Decode(bytes.NewReader(c.Response.Body()))
		test.That(t, err, test.ShouldBeNil)
		test.That(t, img.Bounds().Size(), test.ShouldResemble, image.Pt(32, 24))
	}

	c = get(s, "/mask?subset=train&image=0000.jpg")
	test.That(t, c.Response.StatusCode(), test.ShouldEqual, http.StatusOK)
	want, err := os.ReadFile(filepath.Join(root, "train", "masks", "0000_mask.jpg"))
	test.That(t, err, test.ShouldBeNil)
	test.That(t, c.Response.Body(), test.ShouldResemble, want)
}

func TestServeErrors(t *testing.T) {
	s, err := newServer(writeOutput(t, []json.Number{"a", "b", "c", "d"}), zaptest.NewLogger(t).Sugar())
	test.That(t, err, test.ShouldBeNil)

	for uri, code := range map[string]int{
		"/preview?subset=train&image=9999.jpg":          http.StatusNotFound,
		"/preview?subset=val&image=0000.jpg":            http.StatusNotFound,
		"/mask?subset=train":                            http.StatusBadRequest,
		"/preview?subset=train&image=0000.jpg&box=true": http.StatusInternalServerError,
		"/nope":                                         http.StatusNotFound,
	} {
		c := get(s, uri)
		test.That(t, c.Response.StatusCode(), test.ShouldEqual, code)
	}
}

func TestNewServerMissingIndex(t *testing.T) {
	_, err := newServer(t.TempDir(), zaptest.NewLogger(t).Sugar())
	test.That(t, err, test.ShouldNotBeNil)
}
