package molecule

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	chem "github.com/rmera/gochem"

	"github.com/xhad/molrmsd/internal/models"
)

// ReadXYZ parses the first frame of an XYZ file. The element column may hold
// a symbol or an atomic number.
func ReadXYZ(r io.Reader) (*models.Molecule, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	data = bytes.TrimLeft(data, " \t\r\n")
	if len(data) == 0 {
		return nil, ErrNoMolecules
	}

	header, _, _ := bytes.Cut(data, []byte("\n"))
	natoms, err := parseInt(string(header))
	if err != nil || natoms < 0 {
		return nil, fmt.Errorf("invalid atom count %q", strings.TrimSpace(string(header)))
	}
	if natoms == 0 {
		return nil, ErrNoMolecules
	}

	cmol, err := chemRead(func() (*chem.Molecule, error) {
		return chem.XYZRead(bytes.NewReader(data))
	})
	if err != nil {
		return nil, err
	}
	coords, err := firstFrame(cmol)
	if err != nil {
		return nil, err
	}

	mol := &models.Molecule{}
	if len(cmol.XYZFileData) > 0 {
		mol.Title = strings.TrimSpace(cmol.XYZFileData[0])
	}
	// gochem copies the symbol into the atom name; names are left empty so
	// the MOL2 writer numbers them.
	for i := 0; i < cmol.Len(); i++ {
		mol.Atoms = append(mol.Atoms, models.Atom{
			Serial:  i + 1,
			Element: normalizeElement(cmol.Atom(i).Symbol),
			X:       coords.At(i, 0),
			Y:       coords.At(i, 1),
			Z:       coords.At(i, 2),
		})
	}
	return mol, nil
}
