package gcode

import (
	"io"
	"strings"
)

// Parse reads every block of a gcode program held in a string.
func Parse(program string) ([]Block, error) {
	p := NewParser(strings.NewReader(program))
	var blocks []Block
	for {
		b, err := p.Read()
		if err == io.EOF {
			return blocks, nil
		}
		if err != nil {
			return nil, err
		}
		blocks = append(blocks, b)
	}
}

// MustParse is Parse for known-good program text, like tests.
func MustParse(program string) []Block {
	b, err := Parse(program)
	if err != nil {
		panic(err)
	}
	return b
}
