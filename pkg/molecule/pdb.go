package molecule

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	chem "github.com/rmera/gochem"

	"github.com/xhad/molrmsd/internal/models"
)

// pdbModel holds the coordinate records of the first model in a PDB file.
type pdbModel struct {
	title   string
	records bytes.Buffer
	charges []float64
}

// ReadPDB parses the ATOM and HETATM records of the first model in a PDB
// file. Residues are numbered in order of appearance and named after their
// residue name and sequence number ("ALA12").
func ReadPDB(r io.Reader) (*models.Molecule, error) {
	model, err := firstPDBModel(r)
	if err != nil {
		return nil, err
	}
	if len(model.charges) == 0 {
		return nil, ErrNoMolecules
	}

	cmol, err := chemRead(func() (*chem.Molecule, error) {
		return chem.PDBRead(bytes.NewReader(model.records.Bytes()))
	})
	if err != nil {
		return nil, err
	}
	coords, err := firstFrame(cmol)
	if err != nil {
		return nil, err
	}
	if cmol.Len() != len(model.charges) {
		return nil, fmt.Errorf("read %d atoms from %d coordinate records", cmol.Len(), len(model.charges))
	}

	mol := &models.Molecule{Title: model.title}
	var (
		lastResidue string
		residueID   int
	)
	for i := 0; i < cmol.Len(); i++ {
		at := cmol.Atom(i)
		resName := strings.TrimSpace(at.MolName)
		chain := strings.TrimSpace(at.Chain)

		key := fmt.Sprintf("%s/%s/%d", chain, resName, at.MolID)
		if key != lastResidue || residueID == 0 {
			residueID++
			lastResidue = key
		}
		mol.Atoms = append(mol.Atoms, models.Atom{
			Serial:    at.ID,
			Name:      at.Name,
			Element:   chemElement(at),
			X:         coords.At(i, 0),
			Y:         coords.At(i, 1),
			Z:         coords.At(i, 2),
			ResidueID: residueID,
			Residue:   fmt.Sprintf("%s%d", resName, at.MolID),
			Chain:     chain,
			Charge:    model.charges[i],
		})
	}
	return mol, nil
}

// firstPDBModel copies the ATOM and HETATM records up to the first ENDMDL or
// END that follows them. Formal charges are taken from columns 79-80 here
// since gochem does not keep them.
func firstPDBModel(r io.Reader) (*pdbModel, error) {
	model := &pdbModel{}
	sc := newScanner(r)
	for sc.Scan() {
		line := strings.TrimRight(sc.Text(), "\r")

		// The record name is always in the first six columns.
		switch column(line, 0, 6) {
		case "HEADER":
			if model.title == "" {
				model.title = column(line, 62, 66)
			}
		case "COMPND":
			if model.title == "" {
				model.title = column(line, 10, 80)
			}
		case "ENDMDL", "END":
			if len(model.charges) > 0 {
				return model, nil
			}
		case "ATOM", "HETATM":
			if len(line) < 54 {
				return nil, fmt.Errorf("line %q: coordinate record is %d columns wide, need 54", line, len(line))
			}
			model.records.WriteString(line)
			model.records.WriteByte('\n')
			model.charges = append(model.charges, pdbCharge(column(line, 78, 80)))
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return model, nil
}

// pdbCharge reads the "2+" / "1-" formal charge notation of columns 79-80.
func pdbCharge(s string) float64 {
	if len(s) != 2 || s[0] < '0' || s[0] > '9' {
		return 0
	}
	n := float64(s[0] - '0')
	switch s[1] {
	case '+':
		return n
	case '-':
		return -n
	}
	return 0
}
