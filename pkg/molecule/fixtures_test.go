package molecule

const methanolSDF = `methanol
  molrmsd

  6  5  0  0  0  0  0  0  0  0999 V2000
    0.0000    0.0000    0.0000 C   0  0  0  0  0  0  0  0  0  0  0  0
    1.4000    0.0000    0.0000 O   0  0  0  0  0  0  0  0  0  0  0  0
   -0.5000    0.9000    0.0000 H   0  0  0  0  0  0  0  0  0  0  0  0
   -0.5000   -0.9000    0.0000 H   0  0  0  0  0  0  0  0  0  0  0  0
   -0.3000    0.0000    1.0000 H   0  0  0  0  0  0  0  0  0  0  0  0
    1.7000    0.9000    0.0000 H   0  0  0  0  0  0  0  0  0  0  0  0
  1  2  1  0
  1  3  1  0
  1  4  1  0
  1  5  1  0
  2  6  1  0
M  END
$$$$
`

const secondRecordSDF = `water
  molrmsd

  3  2  0  0  0  0  0  0  0  0999 V2000
    5.0000    5.0000    5.0000 O   0  0  0  0  0  0  0  0  0  0  0  0
    5.9000    5.0000    5.0000 H   0  0  0  0  0  0  0  0  0  0  0  0
    4.7000    5.9000    5.0000 H   0  0  0  0  0  0  0  0  0  0  0  0
  1  2  1  0
  1  3  1  0
M  END
$$$$
`

const chargedSDF = `acetate
  molrmsd

  4  3  0  0  0  0  0  0  0  0999 V2000
    0.0000    0.0000    0.0000 C   0  0  0  0  0  0  0  0  0  0  0  0
    1.5000    0.0000    0.0000 C   0  0  0  0  0  0  0  0  0  0  0  0
    2.1000    1.1000    0.0000 O   0  0  0  0  0  0  0  0  0  0  0  0
    2.1000   -1.1000    0.0000 O   0  5  0  0  0  0  0  0  0  0  0  0
  1  2  1  0
  2  3  2  0
  2  4  1  0
M  CHG  1   3  -1
M  END
`

const methylamineV3000 = `methylamine
  molrmsd

  0  0  0     0  0            999 V3000
M  V30 BEGIN CTAB
M  V30 COUNTS 3 2 0 0 0
M  V30 BEGIN ATOM
M  V30 1 N 0.0 0.0 0.0 0 CHG=1
M  V30 2 C 1.47 0.0 -
M  V30 0.0 0
M  V30 3 H -0.4 0.9 0.0 0
M  V30 END ATOM
M  V30 BEGIN BOND
M  V30 1 1 1 2
M  V30 2 1 1 3
M  V30 END BOND
M  V30 END CTAB
M  END
`

const ligandMol2 = `# written by hand
@<TRIPOS>MOLECULE
ligand
 4 3 1 0 0
SMALL
GASTEIGER

@<TRIPOS>ATOM
      1 C1          0.0000    0.0000    0.0000 C.3     1  LIG1       -0.0500
      2 O1          1.4000    0.0000    0.0000 O.3     1  LIG1       -0.4000
      3 H1         -0.5000    0.9000    0.0000 H       1  LIG1        0.0500
      4 CL1        -1.0000    0.0000    0.0000 Cl      1  LIG1       -0.1000
@<TRIPOS>BOND
     1     1     2    1
     2     1     3    1
     3     1     4    1
@<TRIPOS>MOLECULE
second
 1 0 1 0 0
SMALL
NO_CHARGES

@<TRIPOS>ATOM
      1 N1          9.0000    9.0000    9.0000 N.3     1  LIG1        0.0000
`

const glycinePDB = `HEADER    TEST
MODEL        1
ATOM      1  N   GLY A   1       0.000   0.000   0.000  1.00  0.00           N
ATOM      2  CA  GLY A   1       1.458   0.000   0.000  1.00  0.00           C
ATOM      3  H   GLY A   1      -0.500   0.800   0.000  1.00  0.00           H
ATOM      4  C   GLY A   1       2.009   1.420   0.000  1.00  0.00           C
ATOM      5  O   GLY A   1       1.251   2.390   0.000  1.00  0.00           O
HETATM    6 ZN    ZN B   2       5.000   5.000   5.000  1.00  0.00          ZN2+
ENDMDL
MODEL        2
ATOM      1  N   GLY A   1       9.000   9.000   9.000  1.00  0.00           N
ENDMDL
END
`

// Element columns left off, so elements come from the atom names.
const bareNamesPDB = `ATOM      1  N   ALA A   1       0.000   0.000   0.000
ATOM      2  CA  ALA A   1       1.458   0.000   0.000
ATOM      3 1HB  ALA A   1       1.900  -0.900   0.500
ATOM      4  N   ALA A   2       3.000   0.000   0.000
HETATM    5 FE   HEM A   3       6.000   6.000   6.000
`

const waterXYZ = `3
water, frame 1
8   0.000  0.000  0.000
1   0.957  0.000  0.000
H  -0.240  0.927  0.000
3
water, frame 2
O   1.000  1.000  1.000
H   1.957  1.000  1.000
H   0.760  1.927  1.000
`
