package molecule

import (
	"context"
	"fmt"
	"io"

	"github.com/xhad/molrmsd/internal/models"
)

// Parser reads every supported format with the pure Go readers of this
// package.
type Parser struct{}

func NewParser() *Parser {
	return &Parser{}
}

func (p *Parser) Parse(ctx context.Context, r io.Reader, format models.Format) (*models.Molecule, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	switch format {
	case models.FormatSDF, models.FormatMOL:
		return ReadSDF(r)
	case models.FormatMOL2:
		return ReadMol2(r)
	case models.FormatPDB:
		return ReadPDB(r)
	case models.FormatXYZ:
		return ReadXYZ(r)
	}
	return nil, fmt.Errorf("no reader for format %q", format)
}
