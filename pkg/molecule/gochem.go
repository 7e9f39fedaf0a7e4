package molecule

import (
	"fmt"

	chem "github.com/rmera/gochem"
	v3 "github.com/rmera/gochem/v3"
)

// chemRead runs a gochem reader. gochem slices fixed columns and atom names
// without length checks, so a panic on malformed input becomes an error.
func chemRead(read func() (*chem.Molecule, error)) (mol *chem.Molecule, err error) {
	defer func() {
		if p := recover(); p != nil {
			mol, err = nil, fmt.Errorf("malformed input: %v", p)
		}
	}()
	return read()
}

// firstFrame returns the coordinates of the first model or frame and checks
// they cover every atom of the topology.
func firstFrame(mol *chem.Molecule) (*v3.Matrix, error) {
	if mol == nil || len(mol.Coords) == 0 || mol.Coords[0] == nil {
		return nil, ErrNoMolecules
	}
	coords := mol.Coords[0]
	if coords.NVecs() != mol.Len() {
		return nil, fmt.Errorf("read %d coordinates for %d atoms", coords.NVecs(), mol.Len())
	}
	return coords, nil
}

// chemElement prefers the symbol gochem read or guessed and falls back to
// the atom name when that is not an element.
func chemElement(at *chem.Atom) string {
	if element := normalizeElement(at.Symbol); knownSymbols[element] {
		return element
	}
	return elementFromName(at.Name)
}
