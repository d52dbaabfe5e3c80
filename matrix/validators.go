// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//   - Provide a single, canonical source of truth for input validation checks.
//   - Keep solvers minimal by delegating shape/NaN/sign checks here.
//   - Return sentinel errors wrapped with the validator tag so call sites can
//     still match with errors.Is.
//
// Determinism & Performance:
//   - All checks are pure, deterministic and allocate nothing on success.
//   - The first violation in row-major order is reported.

package matrix

import (
	"fmt"
	"math"
)

// validatorErrorf wraps an underlying error with the given validator tag.
func validatorErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// ValidateNotNil ensures the matrix reference is non-nil.
// Complexity: O(1).
func ValidateNotNil(m Matrix) error {
	if m == nil {
		return validatorErrorf("ValidateNotNil", ErrNilMatrix)
	}
	// A typed nil *Dense hidden in the interface is just as unusable.
	if d, ok := m.(*Dense); ok && d == nil {
		return validatorErrorf("ValidateNotNil", ErrNilMatrix)
	}

	return nil
}

// ValidateRectangular ensures rows is non-empty, has non-empty rows, and every
// row has the same length.
// Errors: ErrInvalidDimensions, ErrRagged.
// Complexity: O(r).
func ValidateRectangular(rows [][]float64) error {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return validatorErrorf("ValidateRectangular", ErrInvalidDimensions)
	}
	width := len(rows[0])
	var i int
	for i = 1; i < len(rows); i++ {
		if len(rows[i]) != width {
			return validatorErrorf(fmt.Sprintf("ValidateRectangular: row %d", i), ErrRagged)
		}
	}

	return nil
}

// ValidateFinite rejects NaN and ±Inf anywhere in rows.
// Complexity: O(r*c).
func ValidateFinite(rows [][]float64) error {
	var i, j int
	for i = 0; i < len(rows); i++ {
		for j = 0; j < len(rows[i]); j++ {
			if math.IsNaN(rows[i][j]) || math.IsInf(rows[i][j], 0) {
				return validatorErrorf(fmt.Sprintf("ValidateFinite: (%d,%d)", i, j), ErrNaNInf)
			}
		}
	}

	return nil
}

// ValidateNonNegative rejects negative entries of m.
// Assumes m is non-nil (call ValidateNotNil first).
// Complexity: O(r*c).
func ValidateNonNegative(m Matrix) error {
	var (
		i, j int
		v    float64
		err  error
	)
	for i = 0; i < m.Rows(); i++ {
		for j = 0; j < m.Cols(); j++ {
			if v, err = m.At(i, j); err != nil {
				return validatorErrorf("ValidateNonNegative", err)
			}
			if v < 0 {
				return validatorErrorf(fmt.Sprintf("ValidateNonNegative: (%d,%d)", i, j), ErrNegative)
			}
		}
	}

	return nil
}

// ValidateVector checks that x has exactly n entries, all finite and non-negative.
// It is the vector counterpart of ValidateFinite + ValidateNonNegative and is used
// for supply and demand capacities.
// Complexity: O(n).
func ValidateVector(x []float64, n int) error {
	if err := ValidateVecLen(x, n); err != nil {
		return err
	}
	var i int
	for i = 0; i < n; i++ {
		if math.IsNaN(x[i]) || math.IsInf(x[i], 0) {
			return validatorErrorf(fmt.Sprintf("ValidateVector: [%d]", i), ErrNaNInf)
		}
		if x[i] < 0 {
			return validatorErrorf(fmt.Sprintf("ValidateVector: [%d]", i), ErrNegative)
		}
	}

	return nil
}

// ValidateVecLen ensures the vector length matches the required size n.
// Complexity: O(1).
func ValidateVecLen(x []float64, n int) error {
	if x == nil {
		return validatorErrorf("ValidateVecLen", ErrNilMatrix)
	}
	if len(x) != n {
		return validatorErrorf("ValidateVecLen", ErrDimensionMismatch)
	}

	return nil
}
