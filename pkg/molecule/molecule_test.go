package molecule

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xhad/molrmsd/internal/models"
)

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		path     string
		expected models.Format
		wantErr  bool
	}{
		{"docking/pose.sdf", models.FormatSDF, false},
		{"ligand.MOL", models.FormatMOL, false},
		{"/tmp/ref.mol2", models.FormatMOL2, false},
		{"1abc.pdb", models.FormatPDB, false},
		{"water.xyz", models.FormatXYZ, false},
		{"model.cif", "", true},
		{"noextension", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			format, err := FormatFromPath(tt.path)
			if tt.wantErr {
				var unsupported *UnsupportedFormatError
				require.ErrorAs(t, err, &unsupported)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, format)
		})
	}
}

func TestSupportedFormats(t *testing.T) {
	formats := SupportedFormats()
	assert.Equal(t, []models.Format{"sdf", "mol", "mol2", "pdb", "xyz"}, formats)

	formats[0] = "cif"
	assert.Equal(t, models.FormatSDF, SupportedFormats()[0])
}

func TestReadSDF(t *testing.T) {
	mol, err := ReadSDF(strings.NewReader(methanolSDF + secondRecordSDF))
	require.NoError(t, err)

	assert.Equal(t, "methanol", mol.Title)
	require.Len(t, mol.Atoms, 6)
	require.Len(t, mol.Bonds, 5)
	assert.Equal(t, "C", mol.Atoms[0].Element)
	assert.Equal(t, "O", mol.Atoms[1].Element)
	assert.Equal(t, 1.4, mol.Atoms[1].X)
	assert.Equal(t, 1.0, mol.Atoms[4].Z)
	assert.Equal(t, models.Bond{From: 2, To: 6, Order: "1"}, mol.Bonds[4])
}

func TestReadSDFCharges(t *testing.T) {
	mol, err := ReadSDF(strings.NewReader(chargedSDF))
	require.NoError(t, err)
	require.Len(t, mol.Atoms, 4)

	// M  CHG replaces the charge codes of the atom block.
	assert.Equal(t, -1.0, mol.Atoms[2].Charge)
	assert.Equal(t, 0.0, mol.Atoms[3].Charge)
	assert.Equal(t, "2", mol.Bonds[1].Order)
}

func TestReadSDFV3000(t *testing.T) {
	mol, err := ReadSDF(strings.NewReader(methylamineV3000))
	require.NoError(t, err)

	require.Len(t, mol.Atoms, 3)
	assert.Equal(t, "N", mol.Atoms[0].Element)
	assert.Equal(t, 1.0, mol.Atoms[0].Charge)
	assert.Equal(t, "C", mol.Atoms[1].Element)
	assert.Equal(t, 1.47, mol.Atoms[1].X)
	assert.Equal(t, 0.0, mol.Atoms[1].Z)
	assert.Len(t, mol.Bonds, 2)
}

func TestReadSDFNoMolecules(t *testing.T) {
	for _, input := range []string{"", "\n\n  \n", "$$$$\n"} {
		_, err := ReadSDF(strings.NewReader(input))
		assert.ErrorIs(t, err, ErrNoMolecules)
	}

	_, err := ReadSDF(strings.NewReader("title\n\n\n  9  0  0  0  0  0  0  0  0  0999 V2000\n"))
	assert.Error(t, err)
}

func TestReadMol2(t *testing.T) {
	mol, err := ReadMol2(strings.NewReader(ligandMol2))
	require.NoError(t, err)

	assert.Equal(t, "ligand", mol.Title)
	require.Len(t, mol.Atoms, 4)
	assert.Equal(t, "C1", mol.Atoms[0].Name)
	assert.Equal(t, "C.3", mol.Atoms[0].Type)
	assert.Equal(t, "C", mol.Atoms[0].Element)
	assert.Equal(t, "H", mol.Atoms[2].Element)
	assert.Equal(t, "Cl", mol.Atoms[3].Element)
	assert.Equal(t, "LIG1", mol.Atoms[3].Residue)
	assert.Equal(t, -0.4, mol.Atoms[1].Charge)
	assert.Len(t, mol.Bonds, 3)

	_, err = ReadMol2(strings.NewReader("no tripos records here\n"))
	assert.ErrorIs(t, err, ErrNoMolecules)
}

func TestReadPDB(t *testing.T) {
	mol, err := ReadPDB(strings.NewReader(glycinePDB))
	require.NoError(t, err)

	// Only the first MODEL is read.
	require.Len(t, mol.Atoms, 6)
	assert.Equal(t, "CA", mol.Atoms[1].Name)
	assert.Equal(t, "C", mol.Atoms[1].Element)
	assert.Equal(t, "GLY1", mol.Atoms[1].Residue)
	assert.Equal(t, "A", mol.Atoms[1].Chain)
	assert.Equal(t, 1, mol.Atoms[1].ResidueID)
	assert.Equal(t, 2.39, mol.Atoms[4].Y)

	zinc := mol.Atoms[5]
	assert.Equal(t, "Zn", zinc.Element)
	assert.Equal(t, "ZN2", zinc.Residue)
	assert.Equal(t, 2, zinc.ResidueID)
	assert.Equal(t, 2.0, zinc.Charge)
}

func TestReadPDBElementFromName(t *testing.T) {
	mol, err := ReadPDB(strings.NewReader(bareNamesPDB))
	require.NoError(t, err)

	elements := make([]string, len(mol.Atoms))
	for i, a := range mol.Atoms {
		elements[i] = a.Element
	}
	assert.Equal(t, []string{"N", "C", "H", "N", "Fe"}, elements)
	assert.Equal(t, 2, mol.Atoms[3].ResidueID)
	assert.Equal(t, 3, mol.Atoms[4].ResidueID)

	_, err = ReadPDB(strings.NewReader("REMARK nothing to see\nEND\n"))
	assert.ErrorIs(t, err, ErrNoMolecules)
}

func TestReadXYZ(t *testing.T) {
	mol, err := ReadXYZ(strings.NewReader(waterXYZ))
	require.NoError(t, err)

	assert.Equal(t, "water, frame 1", mol.Title)
	require.Len(t, mol.Atoms, 3)
	assert.Equal(t, "O", mol.Atoms[0].Element)
	assert.Equal(t, "H", mol.Atoms[1].Element)
	assert.Equal(t, 0.957, mol.Atoms[1].X)

	_, err = ReadXYZ(strings.NewReader(""))
	assert.ErrorIs(t, err, ErrNoMolecules)

	_, err = ReadXYZ(strings.NewReader("3\ntruncated\nO 0 0 0\n"))
	assert.Error(t, err)
}

func TestStripHydrogens(t *testing.T) {
	mol, err := ReadSDF(strings.NewReader(methanolSDF))
	require.NoError(t, err)

	StripHydrogens(mol)
	require.Len(t, mol.Atoms, 2)
	assert.Equal(t, "C", mol.Atoms[0].Element)
	assert.Equal(t, "O", mol.Atoms[1].Element)
	assert.Equal(t, []models.Bond{{From: 1, To: 2, Order: "1"}}, mol.Bonds)

	StripHydrogens(mol)
	assert.Len(t, mol.Atoms, 2)
	assert.Len(t, mol.Bonds, 1)
}

func TestStripHydrogensRenumbersBonds(t *testing.T) {
	mol := &models.Molecule{
		Atoms: []models.Atom{{Element: "H"}, {Element: "C"}, {Element: "D"}, {Element: "N"}},
		Bonds: []models.Bond{{From: 1, To: 2}, {From: 2, To: 4, Order: "2"}, {From: 3, To: 4}},
	}
	StripHydrogens(mol)

	assert.Len(t, mol.Atoms, 2)
	assert.Equal(t, []models.Bond{{From: 1, To: 2, Order: "2"}}, mol.Bonds)
}

func TestIsHydrogen(t *testing.T) {
	assert.True(t, IsHydrogen("H"))
	assert.True(t, IsHydrogen("h"))
	assert.True(t, IsHydrogen("D"))
	assert.True(t, IsHydrogen("T"))
	assert.False(t, IsHydrogen("He"))
	assert.False(t, IsHydrogen("Hg"))
	assert.False(t, IsHydrogen(""))
}

func TestWriteMol2(t *testing.T) {
	mol, err := ReadSDF(strings.NewReader(chargedSDF))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteMol2(&buf, mol))
	assert.Contains(t, buf.String(), "USER_CHARGES")

	table, err := ReadMol2Table(&buf)
	require.NoError(t, err)
	require.Len(t, table, 4)

	names := make([]string, len(table))
	for i, rec := range table {
		names[i] = rec.AtomName
	}
	assert.Equal(t, []string{"C1", "C2", "O3", "O4"}, names)
	assert.Equal(t, "O", table[2].AtomType)
	assert.Equal(t, "O", table[2].Element)
	assert.Equal(t, "UNL1", table[2].SubstName)
	assert.Equal(t, 1, table[2].SubstID)
	assert.Equal(t, -1.0, table[2].Charge)
	assert.Equal(t, 2.1, table[3].X)
	assert.Equal(t, -1.1, table[3].Y)
}

func TestWriteMol2KeepsNamesAndTypes(t *testing.T) {
	mol, err := ReadMol2(strings.NewReader(ligandMol2))
	require.NoError(t, err)
	StripHydrogens(mol)

	var buf bytes.Buffer
	require.NoError(t, WriteMol2(&buf, mol))

	table, err := ReadMol2Table(&buf)
	require.NoError(t, err)
	require.Len(t, table, 3)
	assert.Equal(t, "CL1", table[2].AtomName)
	assert.Equal(t, "Cl", table[2].AtomType)
	assert.Equal(t, 3, table[2].AtomID)
	assert.Equal(t, "LIG1", table[2].SubstName)
}

func TestWriteMol2Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteMol2(&buf, &models.Molecule{}))

	table, err := ReadMol2Table(&buf)
	require.NoError(t, err)
	assert.Empty(t, table)
}

func TestElementFromName(t *testing.T) {
	tests := map[string]string{
		"CA":  "C",
		"OG1": "O",
		"1HB": "H",
		"NE2": "N",
		"FE":  "Fe",
		"MG":  "Mg",
		"BR1": "Br",
		"":    "",
	}
	for name, expected := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, expected, elementFromName(name))
		})
	}
}

func TestNormalizeElement(t *testing.T) {
	assert.Equal(t, "Cl", normalizeElement("CL"))
	assert.Equal(t, "C", normalizeElement(" c "))
	assert.Equal(t, "O", normalizeElement("8"))
	assert.Equal(t, "999", normalizeElement("999"))
	assert.Equal(t, "C", elementFromType("C.ar"))
	assert.Equal(t, "Du", elementFromType("Du"))
}

func TestParser(t *testing.T) {
	p := NewParser()
	ctx := context.Background()

	inputs := map[models.Format]string{
		models.FormatSDF:  methanolSDF,
		models.FormatMOL:  chargedSDF,
		models.FormatMOL2: ligandMol2,
		models.FormatPDB:  glycinePDB,
		models.FormatXYZ:  waterXYZ,
	}
	for format, input := range inputs {
		t.Run(string(format), func(t *testing.T) {
			mol, err := p.Parse(ctx, strings.NewReader(input), format)
			require.NoError(t, err)
			assert.NotEmpty(t, mol.Atoms)
		})
	}

	_, err := p.Parse(ctx, strings.NewReader(""), "cif")
	assert.Error(t, err)

	canceled, cancel := context.WithCancel(ctx)
	cancel()
	_, err = p.Parse(canceled, strings.NewReader(methanolSDF), models.FormatSDF)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestReadPDBStopsAtFirstEnd(t *testing.T) {
	input := "COMPND    ETHANOL\r\n" +
		"HETATM    1  C1  EOH A   1      -0.890   0.150   0.000  1.00  0.00           C\r\n" +
		"HETATM    2  O1  EOH A   1       1.290   0.480   0.000  1.00  0.00           O1-\r\n" +
		"END\r\n" +
		"HETATM    1  C1  EOH A   1       9.000   9.000   9.000  1.00  0.00           C\r\n" +
		"END\r\n"

	mol, err := ReadPDB(strings.NewReader(input))
	require.NoError(t, err)

	assert.Equal(t, "ETHANOL", mol.Title)
	require.Len(t, mol.Atoms, 2)
	assert.Equal(t, -0.89, mol.Atoms[0].X)
	assert.Equal(t, "O", mol.Atoms[1].Element)
	assert.Equal(t, -1.0, mol.Atoms[1].Charge)
	assert.Equal(t, "EOH1", mol.Atoms[1].Residue)
}

func TestReadPDBMalformedRecords(t *testing.T) {
	cases := map[string]string{
		"short record":  "ATOM      1  N   ALA A   1       0.000   0.000\n",
		"bad number":    "ATOM      1  N   ALA A   1       x.000   0.000   0.000\n",
		"no atom name":  "ATOM      1      ALA A   1       0.000   0.000   0.000\n",
		"cut occupancy": "ATOM      1  N   ALA A   1       0.000   0.000   0.000  1.00  0\n",
	}
	for name, input := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ReadPDB(strings.NewReader(input))
			assert.Error(t, err)
			assert.NotErrorIs(t, err, ErrNoMolecules)
		})
	}
}

func TestReadXYZHeader(t *testing.T) {
	mol, err := ReadXYZ(strings.NewReader("\n\n  2\nCO\n6 0 0 0\n8 0 0 1.128"))
	require.NoError(t, err)
	require.Len(t, mol.Atoms, 2)
	assert.Equal(t, "C", mol.Atoms[0].Element)
	assert.Equal(t, "O", mol.Atoms[1].Element)
	assert.Equal(t, 1.128, mol.Atoms[1].Z)
	assert.Empty(t, mol.Atoms[0].Name)

	_, err = ReadXYZ(strings.NewReader("0\nnothing\n"))
	assert.ErrorIs(t, err, ErrNoMolecules)

	_, err = ReadXYZ(strings.NewReader("-2\nbroken\n"))
	assert.EqualError(t, err, `invalid atom count "-2"`)

	_, err = ReadXYZ(strings.NewReader("two\nbroken\n"))
	assert.Error(t, err)
}
