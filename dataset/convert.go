// Package dataset converts a train/test COCO dataset into numbered JPEG
// images, binary masks and a single annotation index.
package dataset

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/model-collapse/coco-mask/coco"
)

// AnnotationFileName is looked up inside every subset folder.
const AnnotationFileName = "_annotations.coco.json"

const jpegQuality = 75

type Converter struct {
	ParentFolder string
	OutputFolder string
	Logger       *zap.SugaredLogger
}

func NewConverter(parent, output string, logger *zap.SugaredLogger) *Converter {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Converter{ParentFolder: parent, OutputFolder: output, Logger: logger}
}

// Run loads the annotation files of every subset, converts them in order
// and writes the index. Nothing is written if an annotation file is missing.
func (c *Converter) Run() (Index, error) {
	indexes := make(map[string]*coco.Index, len(Subsets))
	for _, subset := range Subsets {
		path := filepath.Join(c.ParentFolder, subset, AnnotationFileName)
		idx, err := coco.LoadIndex(path)
		if err != nil {
			return nil, errors.Wrapf(err, "subset %s", subset)
		}
		indexes[subset] = idx
	}

	out := NewIndex()
	for _, subset := range Subsets {
		if err := c.ConvertSubset(indexes[subset], subset, out[subset]); err != nil {
			return nil, err
		}
	}

	path := filepath.Join(c.OutputFolder, IndexFileName)
	if err := WriteIndex(path, out); err != nil {
		return nil, err
	}
	c.Logger.Infof("wrote %s", path)

	return out, nil
}

// ConvertSubset writes the images and masks of one subset and records
// their entries into out, keyed by output image file name.
func (c *Converter) ConvertSubset(idx *coco.Index, subset string, out map[string]*Entry) error {
	imgDir := filepath.Join(c.OutputFolder, subset, "images")
	maskDir := filepath.Join(c.OutputFolder, subset, "masks")
	for _, dir := range []string{imgDir, maskDir} {
		if err := os.MkdirAll(dir, os.ModePerm); err != nil {
			return errors.Wrapf(err, "create %s", dir)
		}
	}

	ids := idx.ImageIDs()
	c.Logger.Infof("[%s] #images = %d", subset, len(ids))

	for i, id := range ids {
		info, _ := idx.Image(id)
		name := fmt.Sprintf("%04d.jpg", i)

		src := filepath.Join(c.ParentFolder, subset, info.FileName)
		if err := reencode(src, filepath.Join(imgDir, name)); err != nil {
			return err
		}

		anns := idx.AnnotationsFor(id)
		acc := NewAccumulator(info.Height, info.Width)
		bboxes := make([][]json.Number, 0, len(anns))
		for _, a := range anns {
			m, err := coco.AnnToMask(a, info.Height, info.Width)
			if err != nil {
				return errors.Wrapf(err, "image %s", src)
			}
			if err := acc.Add(m); err != nil {
				return errors.Wrapf(err, "annotation %d", a.ID)
			}

			bboxes = append(bboxes, append([]json.Number{}, a.BBox...))
		}
		acc.Remap()

		maskPath := filepath.Join(maskDir, fmt.Sprintf("%04d_mask.jpg", i))
		if err := WriteMask(maskPath, acc.Gray); err != nil {
			return err
		}

		c.Logger.Debugf("[%s] %s -> %s, #annotations = %d", subset, info.FileName, name, len(anns))
		out[name] = &Entry{MaskPath: maskPath, BBoxList: bboxes}
	}

	return nil
}

func reencode(src, dst string) error {
	img, err := imaging.Open(src)
	if err != nil {
		return errors.Wrapf(err, "open %s", src)
	}

	if err := imaging.Save(img, dst, imaging.JPEGQuality(jpegQuality)); err != nil {
		return errors.Wrapf(err, "save %s", dst)
	}

	return nil
}
