package molecule

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xhad/molrmsd/internal/models"
)

const (
	triposMolecule = "@<TRIPOS>MOLECULE"
	triposAtom     = "@<TRIPOS>ATOM"
	triposBond     = "@<TRIPOS>BOND"
)

// ReadMol2 parses the first molecule of a Tripos MOL2 file.
func ReadMol2(r io.Reader) (*models.Molecule, error) {
	var (
		mol     *models.Molecule
		section string
		header  int
	)
	sc := newScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if strings.HasPrefix(line, "@<TRIPOS>") {
			if line == triposMolecule {
				if mol != nil {
					break
				}
				mol = &models.Molecule{}
				header = 0
			}
			section = line
			continue
		}
		if mol == nil {
			continue
		}

		switch section {
		case triposMolecule:
			if header == 0 {
				mol.Title = line
			}
			header++
		case triposAtom:
			atom, err := parseMol2Atom(line)
			if err != nil {
				return nil, fmt.Errorf("atom %d: %w", len(mol.Atoms)+1, err)
			}
			mol.Atoms = append(mol.Atoms, atom)
		case triposBond:
			fields := strings.Fields(line)
			if len(fields) < 4 {
				return nil, fmt.Errorf("invalid bond line %q", line)
			}
			from, err1 := parseInt(fields[1])
			to, err2 := parseInt(fields[2])
			if err1 != nil || err2 != nil {
				return nil, fmt.Errorf("invalid bond line %q", line)
			}
			mol.Bonds = append(mol.Bonds, models.Bond{From: from, To: to, Order: fields[3]})
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if mol == nil {
		return nil, ErrNoMolecules
	}
	return mol, nil
}

func parseMol2Atom(line string) (models.Atom, error) {
	fields := strings.Fields(line)
	if len(fields) < 6 {
		return models.Atom{}, fmt.Errorf("invalid line %q", line)
	}
	serial, err := parseInt(fields[0])
	if err != nil {
		return models.Atom{}, fmt.Errorf("invalid atom id %q", fields[0])
	}
	x, y, z, err := parseXYZ(fields[2], fields[3], fields[4])
	if err != nil {
		return models.Atom{}, err
	}
	atom := models.Atom{
		Serial:  serial,
		Name:    fields[1],
		X:       x,
		Y:       y,
		Z:       z,
		Type:    fields[5],
		Element: elementFromType(fields[5]),
	}
	if len(fields) > 6 {
		if id, err := parseInt(fields[6]); err == nil {
			atom.ResidueID = id
		}
	}
	if len(fields) > 7 {
		atom.Residue = fields[7]
	}
	if len(fields) > 8 {
		if c, err := parseFloat(fields[8]); err == nil {
			atom.Charge = c
		}
	}
	return atom, nil
}

// ReadMol2Table parses the first molecule of a MOL2 stream into an AtomTable.
func ReadMol2Table(r io.Reader) (models.AtomTable, error) {
	mol, err := ReadMol2(r)
	if err != nil {
		return nil, err
	}
	return Table(mol), nil
}

// Table converts a molecule into table rows without any filtering.
func Table(m *models.Molecule) models.AtomTable {
	table := make(models.AtomTable, 0, len(m.Atoms))
	for _, a := range m.Atoms {
		table = append(table, models.AtomRecord{
			AtomID:    a.Serial,
			AtomName:  a.Name,
			X:         a.X,
			Y:         a.Y,
			Z:         a.Z,
			AtomType:  a.Type,
			SubstID:   a.ResidueID,
			SubstName: a.Residue,
			Charge:    a.Charge,
			Element:   a.Element,
		})
	}
	return table
}

// WriteMol2 serializes m as a Tripos MOL2 record. Atoms are renumbered from
// 1; missing names become element plus position ("C1", "O2") and missing
// SYBYL types fall back to the element symbol.
func WriteMol2(w io.Writer, m *models.Molecule) error {
	bw := bufio.NewWriter(w)

	title := m.Title
	if title == "" {
		title = "*****"
	}
	chargeType := "NO_CHARGES"
	substs := map[int]bool{}
	for _, a := range m.Atoms {
		if a.Charge != 0 {
			chargeType = "USER_CHARGES"
		}
		substs[substID(a)] = true
	}

	fmt.Fprintln(bw, triposMolecule)
	fmt.Fprintln(bw, title)
	fmt.Fprintf(bw, " %d %d %d 0 0\n", len(m.Atoms), len(m.Bonds), len(substs))
	fmt.Fprintln(bw, "SMALL")
	fmt.Fprintln(bw, chargeType)
	fmt.Fprintln(bw)
	fmt.Fprintln(bw)

	fmt.Fprintln(bw, triposAtom)
	for i, a := range m.Atoms {
		name := a.Name
		if name == "" {
			name = a.Element + strconv.Itoa(i+1)
		}
		atomType := a.Type
		if atomType == "" {
			atomType = a.Element
		}
		if atomType == "" {
			atomType = "Du"
		}
		subst := a.Residue
		if subst == "" {
			subst = "UNL1"
		}
		fmt.Fprintf(bw, "%7d %-8s %10.4f %10.4f %10.4f %-6s %5d %-8s %9.4f\n",
			i+1, name, a.X, a.Y, a.Z, atomType, substID(a), subst, a.Charge)
	}

	fmt.Fprintln(bw, triposBond)
	for i, b := range m.Bonds {
		fmt.Fprintf(bw, "%6d %5d %5d %-4s\n", i+1, b.From, b.To, mol2BondType(b.Order))
	}
	return bw.Flush()
}

func substID(a models.Atom) int {
	if a.ResidueID == 0 {
		return 1
	}
	return a.ResidueID
}

// mol2BondType maps MDL bond codes to SYBYL bond types. MOL2 types pass
// through unchanged.
func mol2BondType(order string) string {
	switch order {
	case "", "1":
		return "1"
	case "4":
		return "ar"
	case "8":
		return "un"
	}
	return order
}
