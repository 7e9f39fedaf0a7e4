// Package obabel parses molecular files with the Open Babel command line
// tool. The input is streamed on stdin and converted to MOL2 with hydrogens
// removed, keeping only the first structure.
package obabel

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os/exec"
	"strings"

	"github.com/xhad/molrmsd/internal/models"
	"github.com/xhad/molrmsd/pkg/molecule"
)

const DefaultBinary = "obabel"

type Parser struct {
	binary string
}

// New resolves the obabel binary. An empty path means DefaultBinary on PATH.
func New(path string) (*Parser, error) {
	if path == "" {
		path = DefaultBinary
	}
	resolved, err := exec.LookPath(path)
	if err != nil {
		return nil, fmt.Errorf("obabel not found: %w", err)
	}
	return &Parser{binary: resolved}, nil
}

func (p *Parser) Parse(ctx context.Context, r io.Reader, format models.Format) (*models.Molecule, error) {
	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, p.binary, "-i"+string(format), "-omol2", "-l", "1", "-d")
	cmd.Stdin = r
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("obabel failed: %w: %s", err, strings.TrimSpace(stderr.String()))
	}
	if noneConverted(stderr.String()) || stdout.Len() == 0 {
		return nil, molecule.ErrNoMolecules
	}
	return molecule.ReadMol2(&stdout)
}

// noneConverted looks for obabel's "0 molecules converted" summary line.
func noneConverted(stderr string) bool {
	for _, line := range strings.Split(stderr, "\n") {
		if strings.TrimSpace(line) == "0 molecules converted" {
			return true
		}
	}
	return false
}
