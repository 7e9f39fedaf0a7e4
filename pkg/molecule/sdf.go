package molecule

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xhad/molrmsd/internal/models"
)

// ReadSDF parses the first record of an MDL SD file or a single MOL file.
// Both V2000 and V3000 connection tables are understood.
func ReadSDF(r io.Reader) (*models.Molecule, error) {
	var lines []string
	sc := newScanner(r)
	for sc.Scan() {
		line := strings.TrimRight(sc.Text(), "\r")
		if strings.TrimSpace(line) == "$$$$" {
			break
		}
		lines = append(lines, line)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if len(strings.TrimSpace(strings.Join(lines, ""))) == 0 {
		return nil, ErrNoMolecules
	}
	if len(lines) < 4 {
		return nil, fmt.Errorf("molfile header is truncated (%d lines)", len(lines))
	}

	mol := &models.Molecule{Title: strings.TrimSpace(lines[0])}
	counts := lines[3]
	if strings.Contains(counts, "V3000") {
		if err := readCtabV3000(mol, lines[4:]); err != nil {
			return nil, err
		}
	} else if err := readCtabV2000(mol, counts, lines[4:]); err != nil {
		return nil, err
	}
	if len(mol.Atoms) == 0 {
		return nil, ErrNoMolecules
	}
	return mol, nil
}

func readCtabV2000(mol *models.Molecule, counts string, body []string) error {
	natoms, err1 := parseInt(column(counts, 0, 3))
	nbonds, err2 := parseInt(column(counts, 3, 6))
	if err1 != nil || err2 != nil {
		fields := strings.Fields(counts)
		if len(fields) < 2 {
			return fmt.Errorf("invalid counts line %q", counts)
		}
		var err error
		if natoms, err = parseInt(fields[0]); err != nil {
			return fmt.Errorf("invalid atom count: %w", err)
		}
		if nbonds, err = parseInt(fields[1]); err != nil {
			return fmt.Errorf("invalid bond count: %w", err)
		}
	}
	if len(body) < natoms+nbonds {
		return fmt.Errorf("connection table declares %d atoms and %d bonds but only %d lines follow",
			natoms, nbonds, len(body))
	}

	mol.Atoms = make([]models.Atom, 0, natoms)
	for i := 0; i < natoms; i++ {
		atom, err := parseV2000Atom(body[i])
		if err != nil {
			return fmt.Errorf("atom %d: %w", i+1, err)
		}
		atom.Serial = i + 1
		mol.Atoms = append(mol.Atoms, atom)
	}

	mol.Bonds = make([]models.Bond, 0, nbonds)
	for i := 0; i < nbonds; i++ {
		line := body[natoms+i]
		from, err1 := parseInt(column(line, 0, 3))
		to, err2 := parseInt(column(line, 3, 6))
		order := column(line, 6, 9)
		if err1 != nil || err2 != nil {
			fields := strings.Fields(line)
			if len(fields) < 3 {
				return fmt.Errorf("bond %d: invalid line %q", i+1, line)
			}
			from, err1 = parseInt(fields[0])
			to, err2 = parseInt(fields[1])
			order = fields[2]
			if err1 != nil || err2 != nil {
				return fmt.Errorf("bond %d: invalid line %q", i+1, line)
			}
		}
		mol.Bonds = append(mol.Bonds, models.Bond{From: from, To: to, Order: order})
	}

	// Property block. M  CHG supersedes the atom block charge codes.
	charged := false
	for _, line := range body[natoms+nbonds:] {
		if strings.HasPrefix(line, "M  END") {
			break
		}
		if !strings.HasPrefix(line, "M  CHG") {
			continue
		}
		if !charged {
			for i := range mol.Atoms {
				mol.Atoms[i].Charge = 0
			}
			charged = true
		}
		fields := strings.Fields(line)
		for j := 3; j+1 < len(fields); j += 2 {
			idx, err1 := parseInt(fields[j])
			chg, err2 := parseInt(fields[j+1])
			if err1 != nil || err2 != nil || idx < 1 || idx > len(mol.Atoms) {
				continue
			}
			mol.Atoms[idx-1].Charge = float64(chg)
		}
	}
	return nil
}

// v2000Charges maps the atom block charge code to a formal charge.
var v2000Charges = map[int]float64{1: 3, 2: 2, 3: 1, 5: -1, 6: -2, 7: -3}

func parseV2000Atom(line string) (models.Atom, error) {
	var (
		atom  models.Atom
		err   error
		sym   string
		chg   string
		fixed = len(line) >= 34
	)
	if fixed {
		atom.X, atom.Y, atom.Z, err = parseXYZ(line[0:10], line[10:20], line[20:30])
		sym = column(line, 31, 34)
		chg = column(line, 36, 39)
	}
	if !fixed || err != nil {
		fields := strings.Fields(line)
		if len(fields) < 4 {
			return atom, fmt.Errorf("invalid line %q", line)
		}
		if atom.X, atom.Y, atom.Z, err = parseXYZ(fields[0], fields[1], fields[2]); err != nil {
			return atom, err
		}
		sym = fields[3]
		chg = ""
		if len(fields) > 5 {
			chg = fields[5]
		}
	}
	atom.Element = normalizeElement(sym)
	if code, err := strconv.Atoi(chg); err == nil {
		atom.Charge = v2000Charges[code]
	}
	return atom, nil
}

func readCtabV3000(mol *models.Molecule, body []string) error {
	var section string
	for _, line := range joinV3000(body) {
		if strings.HasPrefix(line, "M  END") {
			break
		}
		if !strings.HasPrefix(line, "M  V30 ") {
			continue
		}
		rest := strings.TrimSpace(line[len("M  V30 "):])
		switch {
		case strings.HasPrefix(rest, "BEGIN "):
			section = strings.TrimSpace(rest[len("BEGIN "):])
			continue
		case strings.HasPrefix(rest, "END "):
			section = ""
			continue
		}

		fields := strings.Fields(rest)
		switch section {
		case "ATOM":
			if len(fields) < 5 {
				return fmt.Errorf("invalid V3000 atom line %q", line)
			}
			serial, err := parseInt(fields[0])
			if err != nil {
				return fmt.Errorf("invalid V3000 atom index %q", fields[0])
			}
			x, y, z, err := parseXYZ(fields[2], fields[3], fields[4])
			if err != nil {
				return fmt.Errorf("atom %d: %w", serial, err)
			}
			atom := models.Atom{Serial: serial, Element: normalizeElement(fields[1]), X: x, Y: y, Z: z}
			for _, f := range fields[5:] {
				if v, ok := strings.CutPrefix(f, "CHG="); ok {
					if c, err := strconv.Atoi(v); err == nil {
						atom.Charge = float64(c)
					}
				}
			}
			mol.Atoms = append(mol.Atoms, atom)
		case "BOND":
			if len(fields) < 4 {
				return fmt.Errorf("invalid V3000 bond line %q", line)
			}
			from, err1 := parseInt(fields[2])
			to, err2 := parseInt(fields[3])
			if err1 != nil || err2 != nil {
				return fmt.Errorf("invalid V3000 bond line %q", line)
			}
			mol.Bonds = append(mol.Bonds, models.Bond{From: from, To: to, Order: fields[1]})
		}
	}
	return nil
}

// joinV3000 merges continuation lines, which end in "-".
func joinV3000(body []string) []string {
	out := make([]string, 0, len(body))
	var pending string
	for _, line := range body {
		if pending != "" {
			line = pending + strings.TrimPrefix(line, "M  V30 ")
			pending = ""
		}
		if strings.HasPrefix(line, "M  V30 ") && strings.HasSuffix(line, "-") {
			pending = strings.TrimSuffix(line, "-")
			continue
		}
		out = append(out, line)
	}
	if pending != "" {
		out = append(out, pending)
	}
	return out
}
