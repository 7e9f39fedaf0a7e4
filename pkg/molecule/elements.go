package molecule

import (
	"strconv"
	"strings"
	"unicode"
)

// symbols is indexed by atomic number.
var symbols = []string{"",
	"H", "He", "Li", "Be", "B", "C", "N", "O", "F", "Ne",
	"Na", "Mg", "Al", "Si", "P", "S", "Cl", "Ar", "K", "Ca",
	"Sc", "Ti", "V", "Cr", "Mn", "Fe", "Co", "Ni", "Cu", "Zn",
	"Ga", "Ge", "As", "Se", "Br", "Kr", "Rb", "Sr", "Y", "Zr",
	"Nb", "Mo", "Tc", "Ru", "Rh", "Pd", "Ag", "Cd", "In", "Sn",
	"Sb", "Te", "I", "Xe", "Cs", "Ba", "La", "Ce", "Pr", "Nd",
	"Pm", "Sm", "Eu", "Gd", "Tb", "Dy", "Ho", "Er", "Tm", "Yb",
	"Lu", "Hf", "Ta", "W", "Re", "Os", "Ir", "Pt", "Au", "Hg",
	"Tl", "Pb", "Bi", "Po", "At", "Rn", "Fr", "Ra", "Ac", "Th",
	"Pa", "U", "Np", "Pu", "Am", "Cm", "Bk", "Cf", "Es", "Fm",
	"Md", "No", "Lr", "Rf", "Db", "Sg", "Bh", "Hs", "Mt", "Ds",
	"Rg", "Cn", "Nh", "Fl", "Mc", "Lv", "Ts", "Og",
}

var knownSymbols = map[string]bool{"D": true, "T": true}

func init() {
	for _, s := range symbols[1:] {
		knownSymbols[s] = true
	}
}

// normalizeElement capitalizes an element symbol ("CL" -> "Cl") and maps
// atomic numbers to symbols. Unknown input is returned capitalized.
func normalizeElement(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	if n, err := strconv.Atoi(s); err == nil {
		if n > 0 && n < len(symbols) {
			return symbols[n]
		}
		return s
	}
	return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
}

// elementFromName guesses the element of a PDB-style atom name such as
// "CA", "OG1" or "1HB". Two-letter symbols win only when the name is not a
// common protein atom label.
func elementFromName(name string) string {
	letters := strings.TrimLeftFunc(strings.TrimSpace(name), unicode.IsDigit)
	end := strings.IndexFunc(letters, func(r rune) bool { return !unicode.IsLetter(r) })
	if end >= 0 {
		letters = letters[:end]
	}
	if letters == "" {
		return ""
	}
	if len(letters) >= 2 {
		two := normalizeElement(letters[:2])
		switch strings.ToUpper(letters[:1]) {
		case "C", "N", "O", "H", "S":
			// CA, NE, OH, HG, SD... are protein atom labels, not elements.
		default:
			if knownSymbols[two] {
				return two
			}
		}
	}
	return normalizeElement(letters[:1])
}

// elementFromType strips the SYBYL hybridization suffix, "C.ar" -> "C".
func elementFromType(atomType string) string {
	if i := strings.IndexByte(atomType, '.'); i >= 0 {
		atomType = atomType[:i]
	}
	return normalizeElement(atomType)
}
