package gcode

import (
	"bufio"
	"errors"
	"io"
	"regexp"
	"strconv"
	"strings"
)

// Parser reads blocks from a gcode program, one per line.
type Parser struct {
	s *bufio.Scanner
}

func NewParser(r io.Reader) *Parser {
	return &Parser{s: bufio.NewScanner(r)}
}

var wordRx = regexp.MustCompile(`[A-Z][0-9.\-]+`)

// clean strips comments and whitespace, normalizing to upper case.
func clean(line string) string {
	if i := strings.IndexByte(line, ';'); i != -1 {
		line = line[:i]
	}
	for {
		start := strings.IndexByte(line, '(')
		if start == -1 {
			break
		}
		end := strings.IndexByte(line[start:], ')')
		if end == -1 {
			line = line[:start]
			break
		}
		line = line[:start] + line[start+end+1:]
	}
	line = strings.Replace(line, " ", "", -1)
	line = strings.Replace(line, "\t", "", -1)
	return strings.ToUpper(strings.TrimSpace(line))
}

// Read returns the next non-empty block. io.EOF signals the end of
// the program.
func (p *Parser) Read() (Block, error) {
	for p.s.Scan() {
		line := clean(p.s.Text())
		if line == "" {
			continue
		}

		words := wordRx.FindAllString(line, -1)
		if strings.Join(words, "") != line {
			return nil, errors.New("invalid or unhandled line: " + line)
		}

		b := make(Block, len(words))
		for i, w := range words {
			arg, err := strconv.ParseFloat(w[1:], 64)
			if err != nil {
				return nil, err
			}
			b[i] = Word{W: w[0], Arg: arg}
		}

		return b, nil
	}
	if err := p.s.Err(); err != nil {
		return nil, err
	}

	return nil, io.EOF
}
