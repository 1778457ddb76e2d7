package coco

import (
	"github.com/pkg/errors"
)

// DecodeCounts parses the compressed COCO counts string. Each count is
// stored as 5-bit groups offset by '0'; from the fourth count on the value
// is a delta against the count two positions back.
func DecodeCounts(s string) (ret []uint32, err error) {
	var vals []int64
	p := 0
	for p < len(s) {
		var x int64
		k := uint(0)
		more := true
		for more {
			if p >= len(s) {
				err = errors.Errorf("rle counts: truncated at byte %d", p)
				return
			}
			c := int64(s[p]) - 48
			x |= (c & 0x1f) << (5 * k)
			more = c&0x20 != 0
			p++
			k++
			if !more && c&0x10 != 0 {
				x |= -1 << (5 * k)
			}
		}

		if m := len(vals); m > 2 {
			x += vals[m-2]
		}
		if x < 0 {
			err = errors.Errorf("rle counts: negative run %d at position %d", x, len(vals))
			return
		}
		vals = append(vals, x)
	}

	ret = make([]uint32, len(vals))
	for i, v := range vals {
		ret[i] = uint32(v)
	}

	return
}

// Runs returns the uncompressed counts of r.
func (r *RLE) Runs() ([]uint32, error) {
	if r.Compressed != "" {
		return DecodeCounts(r.Compressed)
	}

	return r.Counts, nil
}

// Decode lays the runs out column-major into a h*w buffer of 0/1 values,
// runs alternating between background and foreground starting with
// background.
func (r *RLE) Decode() (ret []uint8, err error) {
	h, w := r.Size[0], r.Size[1]
	runs, err := r.Runs()
	if err != nil {
		return
	}

	n := h * w
	ret = make([]uint8, n)
	pos := 0
	var v uint8
	for _, c := range runs {
		if pos+int(c) > n {
			err = errors.Errorf("rle counts cover %d pixels, want %d", pos+int(c), n)
			return
		}

		if v == 1 {
			for i := pos; i < pos+int(c); i++ {
				ret[(i%h)*w+i/h] = 1
			}
		}

		pos += int(c)
		v ^= 1
	}

	return
}
