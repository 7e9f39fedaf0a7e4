package types

import (
	"context"
	"io"

	"github.com/xhad/molrmsd/internal/models"
)

// Core interfaces
type MolecularFormatParser interface {
	Parse(ctx context.Context, r io.Reader, format models.Format) (*models.Molecule, error)
}

type StructureLoader interface {
	Load(ctx context.Context, path string) (models.AtomTable, error)
}

type RMSDCalculator interface {
	Calculate(target, model models.AtomTable) (float64, error)
}
