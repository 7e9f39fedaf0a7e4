// Package rmsd computes the root mean square deviation between two atom
// tables that are already superimposed. No alignment is performed; atoms are
// compared position by position.
package rmsd

import (
	"errors"
	"fmt"
	"math"
	"unicode/utf8"

	"github.com/xhad/molrmsd/internal/models"
)

// ErrNoAtoms is returned when both tables are empty.
var ErrNoAtoms = errors.New("the molecules have no heavy atoms to compare")

type ShapeMismatchError struct {
	Target, Model int
}

func (e *ShapeMismatchError) Error() string {
	return fmt.Sprintf("The molecules have different number of atoms (%d vs %d)", e.Target, e.Model)
}

// OrderMismatchError reports the first position whose atom names start with
// different characters.
type OrderMismatchError struct {
	Index         int
	Target, Model string
}

func (e *OrderMismatchError) Error() string {
	return fmt.Sprintf("The molecules have different order of atoms (atom %d: %s vs %s)",
		e.Index+1, e.Target, e.Model)
}

// Calculator is the stateless RMSD calculator. Its zero value is ready to
// use.
type Calculator struct{}

func (Calculator) Calculate(target, model models.AtomTable) (float64, error) {
	return Calculate(target, model)
}

// Calculate returns sqrt(sum(|t_i - m_i|^2) / N).
//
// The tables must have the same length and, at every index, atom names that
// begin with the same character. The leading character stands in for the
// element and is a weak check: "C1" and "Cl1" are considered the same.
func Calculate(target, model models.AtomTable) (float64, error) {
	if err := Comparable(target, model); err != nil {
		return 0, err
	}
	var sum float64
	for i := range target {
		sum += squaredDistance(target[i], model[i])
	}
	return math.Sqrt(sum / float64(len(target))), nil
}

// Deviations returns the distance between each pair of corresponding atoms.
func Deviations(target, model models.AtomTable) ([]float64, error) {
	if err := Comparable(target, model); err != nil {
		return nil, err
	}
	out := make([]float64, len(target))
	for i := range target {
		out[i] = math.Sqrt(squaredDistance(target[i], model[i]))
	}
	return out, nil
}

// Comparable checks atom counts first, then the atom name order.
func Comparable(target, model models.AtomTable) error {
	if len(target) != len(model) {
		return &ShapeMismatchError{Target: len(target), Model: len(model)}
	}
	for i := range target {
		if leading(target[i].AtomName) != leading(model[i].AtomName) {
			return &OrderMismatchError{Index: i, Target: target[i].AtomName, Model: model[i].AtomName}
		}
	}
	if len(target) == 0 {
		return ErrNoAtoms
	}
	return nil
}

func leading(name string) rune {
	r, _ := utf8.DecodeRuneInString(name)
	return r
}

func squaredDistance(a, b models.AtomRecord) float64 {
	dx, dy, dz := a.X-b.X, a.Y-b.Y, a.Z-b.Z
	return dx*dx + dy*dy + dz*dz
}
