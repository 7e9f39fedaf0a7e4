package molecule

import (
	"bufio"
	"errors"
	"io"
	"strconv"
	"strings"
)

// ErrNoMolecules is returned when a reader holds no parsable structure.
var ErrNoMolecules = errors.New("no molecules found")

const maxLineLength = 1 << 20

func newScanner(r io.Reader) *bufio.Scanner {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineLength)
	return sc
}

// column returns the trimmed text of line[start:end], clamped to the line
// length. Fixed-column formats are frequently written with trailing fields
// left off.
func column(line string, start, end int) string {
	if start >= len(line) {
		return ""
	}
	if end > len(line) {
		end = len(line)
	}
	return strings.TrimSpace(line[start:end])
}

func parseFloat(s string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(s), 64)
}

func parseInt(s string) (int, error) {
	return strconv.Atoi(strings.TrimSpace(s))
}

// parseXYZ parses three coordinate strings.
func parseXYZ(xs, ys, zs string) (x, y, z float64, err error) {
	if x, err = parseFloat(xs); err != nil {
		return
	}
	if y, err = parseFloat(ys); err != nil {
		return
	}
	z, err = parseFloat(zs)
	return
}
