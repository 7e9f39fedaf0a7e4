package models

// Format is the short tag of a molecular file format, taken from the file
// extension.
type Format string

const (
	FormatSDF  Format = "sdf"
	FormatMOL  Format = "mol"
	FormatMOL2 Format = "mol2"
	FormatPDB  Format = "pdb"
	FormatXYZ  Format = "xyz"
)

type MolecularFile struct {
	Path   string
	Format Format
}

// Atom is a single atom of a parsed Molecule. Name and Type are empty when
// the source format does not carry them.
type Atom struct {
	Serial    int
	Name      string
	Element   string
	Type      string
	X, Y, Z   float64
	ResidueID int
	Residue   string
	Chain     string
	Charge    float64
}

// Bond joins two atoms by their 1-based position in Molecule.Atoms.
type Bond struct {
	From, To int
	Order    string
}

type Molecule struct {
	Title string
	Atoms []Atom
	Bonds []Bond
}

// AtomRecord is one row of an AtomTable. Its columns follow the Tripos MOL2
// ATOM record.
type AtomRecord struct {
	AtomID    int     `json:"atom_id"`
	AtomName  string  `json:"atom_name"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Z         float64 `json:"z"`
	AtomType  string  `json:"atom_type"`
	SubstID   int     `json:"subst_id"`
	SubstName string  `json:"subst_name"`
	Charge    float64 `json:"charge"`
	Element   string  `json:"element"`
}

// AtomTable is ordered as the atoms appear in the converted file. Tables are
// compared position by position.
type AtomTable []AtomRecord
