package molecule

import "github.com/xhad/molrmsd/internal/models"

// IsHydrogen reports whether the element symbol is hydrogen or one of its
// isotopes.
func IsHydrogen(element string) bool {
	switch normalizeElement(element) {
	case "H", "D", "T":
		return true
	}
	return false
}

// StripHydrogens removes every hydrogen atom from m together with the bonds
// that touch it. Remaining bonds are renumbered to the new atom positions.
func StripHydrogens(m *models.Molecule) {
	newIndex := make([]int, len(m.Atoms)+1)
	atoms := m.Atoms[:0]
	for i, a := range m.Atoms {
		if IsHydrogen(a.Element) {
			continue
		}
		atoms = append(atoms, a)
		newIndex[i+1] = len(atoms)
	}
	m.Atoms = atoms

	bonds := m.Bonds[:0]
	for _, b := range m.Bonds {
		if b.From < 1 || b.To < 1 || b.From >= len(newIndex) || b.To >= len(newIndex) {
			continue
		}
		from, to := newIndex[b.From], newIndex[b.To]
		if from == 0 || to == 0 {
			continue
		}
		bonds = append(bonds, models.Bond{From: from, To: to, Order: b.Order})
	}
	m.Bonds = bonds
}
