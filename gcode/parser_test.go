package gcode

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParser_Read(t *testing.T) {
	p := NewParser(strings.NewReader(`
g0 x1.5 y-2 ; rapid over
(lift first) G0 Z3

M2
`))

	b, err := p.Read()
	assert.NoError(t, err)
	assert.Equal(t, Block{{W: 'G', Arg: 0}, {W: 'X', Arg: 1.5}, {W: 'Y', Arg: -2}}, b)

	b, err = p.Read()
	assert.NoError(t, err)
	assert.Equal(t, Block{{W: 'G', Arg: 0}, {W: 'Z', Arg: 3}}, b)

	b, err = p.Read()
	assert.NoError(t, err)
	assert.Equal(t, Block{{W: 'M', Arg: 2}}, b)

	_, err = p.Read()
	assert.Equal(t, io.EOF, err)
}

func TestParser_Read_Invalid(t *testing.T) {
	p := NewParser(strings.NewReader("G0 X1\n%\n"))

	_, err := p.Read()
	assert.NoError(t, err)

	_, err = p.Read()
	assert.Error(t, err)
}

func TestBlock_String(t *testing.T) {
	b := MustParse("G0 X1.5004 Y-2.000 F100")[0]
	assert.Equal(t, "G0X1.5Y-2F100", b.String())
}
