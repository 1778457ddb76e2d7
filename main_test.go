package main

import (
	"image"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"
	"go.uber.org/zap/zaptest"
	"go.viam.com/test"

	"github.com/model-collapse/coco-mask/dataset"
)

func runApp(t *testing.T, args ...string) error {
	t.Helper()
	app := newApp(zaptest.NewLogger(t).Sugar())
	app.Writer = io.Discard
	app.ErrWriter = io.Discard
	return app.Run(append([]string{"coco-mask"}, args...))
}

func TestMissingFlags(t *testing.T) {
	err := runApp(t)
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, flagParentFolder)

	err = runApp(t, "--parent-folder", t.TempDir())
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, flagOutputFolder)
}

func TestConvert(t *testing.T) {
	parent, out := t.TempDir(), t.TempDir()
	anns := map[string]string{
		"train": `{"images": [{"id": 1, "file_name": "a.png", "height": 6, "width": 8}],
			"annotations": [{"id": 1, "image_id": 1, "bbox": [1, 1, 2, 2], "segmentation": [[1, 1, 3, 1, 3, 3, 1, 3]]}]}`,
		"test": `{"images": [], "annotations": []}`,
	}
	for subset, body := range anns {
		dir := filepath.Join(parent, subset)
		test.That(t, os.MkdirAll(dir, 0o755), test.ShouldBeNil)
		test.That(t, os.WriteFile(filepath.Join(dir, dataset.AnnotationFileName), []byte(body), 0o644), test.ShouldBeNil)
	}
	test.That(t, imaging.Save(image.NewGray(image.Rect(0, 0, 8, 6)), filepath.Join(parent, "train", "a.png")), test.ShouldBeNil)

	test.That(t, runApp(t, "--parent-folder", parent, "--output-folder", out), test.ShouldBeNil)

	idx, err := dataset.ReadIndex(filepath.Join(out, dataset.IndexFileName))
	test.That(t, err, test.ShouldBeNil)
	test.That(t, idx["train"], test.ShouldHaveLength, 1)
	test.That(t, idx["test"], test.ShouldBeEmpty)
}
