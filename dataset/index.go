package dataset

import (
	"encoding/json"
	"os"

	"github.com/pkg/errors"
)

// Subsets are converted in this order.
var Subsets = []string{"train", "test"}

// IndexFileName is written at the root of the output folder.
const IndexFileName = "annotation.json"

type Entry struct {
	MaskPath string          `json:"mask_path"`
	BBoxList [][]json.Number `json:"bbox_list"`
}

// Index maps subset -> output image file name -> entry.
type Index map[string]map[string]*Entry

func NewIndex() Index {
	idx := make(Index, len(Subsets))
	for _, s := range Subsets {
		idx[s] = make(map[string]*Entry)
	}
	return idx
}

func WriteIndex(path string, idx Index) error {
	data, err := json.MarshalIndent(idx, "", "  ")
	if err != nil {
		return errors.Wrap(err, "encode index")
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrapf(err, "write %s", path)
	}

	return nil
}

func ReadIndex(path string) (ret Index, err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return
	}

	if err = json.Unmarshal(data, &ret); err != nil {
		err = errors.Wrapf(err, "parse %s", path)
	}

	return
}
