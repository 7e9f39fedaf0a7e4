package loader

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/xhad/molrmsd/internal/models"
	"github.com/xhad/molrmsd/internal/types"
	"github.com/xhad/molrmsd/pkg/molecule"
	"github.com/xhad/molrmsd/pkg/obabel"
)

const (
	BackendNative = "native"
	BackendObabel = "obabel"
)

type LoaderConfig struct {
	Backend    string // "native" or "obabel"
	ObabelPath string // obabel binary, looked up on PATH when empty
	ScratchDir string // directory for scratch files, os.TempDir() when empty
}

// ParseError is returned when a file holds no structure that can be read.
type ParseError struct {
	File string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("No molecules found on %s", e.File)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Loader converts molecular files into heavy-atom tables. A Loader holds no
// per-call state and may be shared between goroutines.
type Loader struct {
	config LoaderConfig
	parser types.MolecularFormatParser
}

func NewWithConfig(config LoaderConfig) (*Loader, error) {
	if config.Backend == "" {
		config.Backend = BackendNative
	}

	var parser types.MolecularFormatParser
	switch config.Backend {
	case BackendNative:
		parser = molecule.NewParser()
	case BackendObabel:
		p, err := obabel.New(config.ObabelPath)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize obabel backend: %w", err)
		}
		parser = p
	default:
		return nil, fmt.Errorf("unknown loader backend %q", config.Backend)
	}

	return NewWithParser(config, parser), nil
}

// NewWithParser builds a Loader around any MolecularFormatParser.
func NewWithParser(config LoaderConfig, parser types.MolecularFormatParser) *Loader {
	return &Loader{config: config, parser: parser}
}

func New() *Loader {
	l, _ := NewWithConfig(LoaderConfig{})
	return l
}

// Load reads path, removes its hydrogens and returns the atoms as they are
// read back from the canonical MOL2 form. Only the first structure of a
// multi-structure file is used.
func (l *Loader) Load(ctx context.Context, path string) (models.AtomTable, error) {
	format, err := molecule.FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	file := models.MolecularFile{Path: path, Format: format}

	mol, err := l.parse(ctx, file)
	if err != nil {
		return nil, err
	}
	molecule.StripHydrogens(mol)

	return l.canonicalize(mol)
}

func (l *Loader) parse(ctx context.Context, file models.MolecularFile) (*models.Molecule, error) {
	f, err := os.Open(file.Path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	mol, err := l.parser.Parse(ctx, f, file.Format)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		return nil, &ParseError{File: filepath.Base(file.Path), Err: err}
	}
	return mol, nil
}

// canonicalize writes mol to a scratch MOL2 file owned by this call and
// reads the table back from it. The scratch file is removed on every path.
func (l *Loader) canonicalize(mol *models.Molecule) (models.AtomTable, error) {
	scratch, err := os.CreateTemp(l.config.ScratchDir, "molrmsd-*.mol2")
	if err != nil {
		return nil, fmt.Errorf("failed to create scratch file: %w", err)
	}
	defer os.Remove(scratch.Name())
	defer scratch.Close()

	if err := molecule.WriteMol2(scratch, mol); err != nil {
		return nil, fmt.Errorf("failed to write scratch file: %w", err)
	}
	if _, err := scratch.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("failed to rewind scratch file: %w", err)
	}

	table, err := molecule.ReadMol2Table(scratch)
	if err != nil {
		return nil, fmt.Errorf("failed to read scratch file: %w", err)
	}
	return table, nil
}
