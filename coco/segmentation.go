package coco

import (
	"bytes"
	"encoding/json"

	"github.com/pkg/errors"
)

// Segmentation holds either a polygon list or a run-length encoding.
type Segmentation struct {
	Polygons [][]float64
	RLE      *RLE
}

// RLE is a COCO run-length encoding. Exactly one of Counts and Compressed
// is set, Size is [height, width].
type RLE struct {
	Counts     []uint32
	Compressed string
	Size       [2]int
}

type rawRLE struct {
	Counts json.RawMessage `json:"counts"`
	Size   []int           `json:"size"`
}

func (s *Segmentation) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*s = Segmentation{}
		return nil
	}

	switch data[0] {
	case '[':
		var polys [][]float64
		if err := json.Unmarshal(data, &polys); err != nil {
			return errors.Wrap(err, "segmentation polygons")
		}
		*s = Segmentation{Polygons: polys}
		return nil
	case '{':
		var raw rawRLE
		if err := json.Unmarshal(data, &raw); err != nil {
			return errors.Wrap(err, "segmentation rle")
		}
		if len(raw.Size) != 2 {
			return errors.Errorf("segmentation rle: size must have 2 entries, got %d", len(raw.Size))
		}

		r := &RLE{Size: [2]int{raw.Size[0], raw.Size[1]}}
		counts := bytes.TrimSpace(raw.Counts)
		if len(counts) > 0 && counts[0] == '"' {
			if err := json.Unmarshal(counts, &r.Compressed); err != nil {
				return errors.Wrap(err, "segmentation rle counts")
			}
		} else if err := json.Unmarshal(counts, &r.Counts); err != nil {
			return errors.Wrap(err, "segmentation rle counts")
		}

		*s = Segmentation{RLE: r}
		return nil
	}

	return errors.Errorf("segmentation: unexpected JSON %.20q", data)
}

func (s Segmentation) MarshalJSON() ([]byte, error) {
	if s.RLE != nil {
		var counts interface{} = s.RLE.Counts
		if s.RLE.Compressed != "" {
			counts = s.RLE.Compressed
		}
		return json.Marshal(map[string]interface{}{
			"counts": counts,
			"size":   s.RLE.Size,
		})
	}

	if s.Polygons == nil {
		return []byte("[]"), nil
	}

	return json.Marshal(s.Polygons)
}
