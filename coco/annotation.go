// Package coco reads COCO detection/segmentation annotation files and
// rasterizes their shapes into binary masks.
package coco

import (
	"encoding/json"
	"os"

	"github.com/pkg/errors"
)

type Image struct {
	ID       int64  `json:"id"`
	FileName string `json:"file_name"`
	Height   int    `json:"height"`
	Width    int    `json:"width"`
}

type Annotation struct {
	ID           int64         `json:"id"`
	ImgID        int64         `json:"image_id"`
	CategoryID   int64         `json:"category_id"`
	IsCrowd      int           `json:"iscrowd"`
	Segmentation Segmentation  `json:"segmentation"`
	BBox         []json.Number `json:"bbox"`
}

type AnnotationFile struct {
	Images      []Image       `json:"images"`
	Annotations []*Annotation `json:"annotations"`
}

func LoadAnnotationFile(path string) (ret *AnnotationFile, err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return
	}

	if err = json.Unmarshal(data, &ret); err != nil {
		err = errors.Wrapf(err, "parse %s", path)
		return
	}

	if ret == nil {
		ret = &AnnotationFile{}
	}

	return
}

// Index answers image and per-image annotation lookups over one annotation
// file. Image ids come back in the order of the images array and the
// annotations of an image in the order of the annotations array.
type Index struct {
	ids    []int64
	images map[int64]Image
	anns   map[int64][]*Annotation
}

func NewIndex(f *AnnotationFile) *Index {
	idx := &Index{
		images: make(map[int64]Image, len(f.Images)),
		anns:   make(map[int64][]*Annotation),
	}

	for _, img := range f.Images {
		if _, ok := idx.images[img.ID]; !ok {
			idx.ids = append(idx.ids, img.ID)
		}
		idx.images[img.ID] = img
	}

	for _, a := range f.Annotations {
		if a == nil {
			continue
		}
		idx.anns[a.ImgID] = append(idx.anns[a.ImgID], a)
	}

	return idx
}

// LoadIndex fails with an error matching fs.ErrNotExist when path is absent.
func LoadIndex(path string) (*Index, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, errors.Wrap(err, "annotation file not found")
	}

	f, err := LoadAnnotationFile(path)
	if err != nil {
		return nil, err
	}

	return NewIndex(f), nil
}

func (idx *Index) ImageIDs() []int64 {
	ret := make([]int64, len(idx.ids))
	copy(ret, idx.ids)
	return ret
}

func (idx *Index) Image(id int64) (img Image, ok bool) {
	img, ok = idx.images[id]
	return
}

func (idx *Index) AnnotationsFor(id int64) []*Annotation {
	return idx.anns[id]
}
