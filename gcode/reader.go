package gcode

import "io"

// A Reader yields gcode blocks one at a time.
type Reader interface {
	Read() (Block, error)
}

// BlocksReader replays a fixed slice of blocks.
type BlocksReader struct {
	Blocks []Block
	n      int
}

func (r *BlocksReader) Read() (Block, error) {
	if r.n >= len(r.Blocks) {
		return nil, io.EOF
	}

	r.n++
	return r.Blocks[r.n-1], nil
}
