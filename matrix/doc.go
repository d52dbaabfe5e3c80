// SPDX-License-Identifier: MIT

// Package matrix offers the dense numeric storage shared by the transportation
// solvers.
//
// The package provides:
//
//   - Dense: a row-major float64 matrix with bounds-checked At/Set, deep Clone,
//     and the structural edits a transportation problem needs (AppendZeroRow,
//     AppendZeroCol for dummy suppliers/consumers, AddToRow for tariff rents).
//   - Column scans (ColMin, ColArgMin) used by minimal-tariff selection.
//   - Validators (ValidateRectangular, ValidateFinite, ValidateNonNegative,
//     ValidateVecLen) that turn raw [][]float64 / []float64 input into sentinel
//     errors before any algorithm runs.
//
// Public methods never panic on user input; they return sentinels from
// errors.go, wrapped with the method name and coordinates.
//
// Complexity quicksheet:
//   - NewDense / NewFromRows: O(r*c); At/Set: O(1); Clone: O(r*c);
//     AppendZeroRow: O(c) amortized; AppendZeroCol: O(r*c); ColMin: O(r).
package matrix
