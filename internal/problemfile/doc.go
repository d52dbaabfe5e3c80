// SPDX-License-Identifier: MIT

// Package problemfile loads transportation problem definitions from YAML (or
// JSON, which is a subset of YAML) and validates the raw values before they
// reach the solver.
//
// A definition looks like:
//
//	name: two plants, three shops
//	suppliers: [Plant A, Plant B]
//	consumers: [Shop 1, Shop 2, Shop 3]
//	costs:
//	  - [4, 6, 9]
//	  - [5, 3, 8]
//	supplies: [120, 80]
//	demands: [70, 90, 40]
//	method: potentials      # optional: potentials | rent
//	initializer: vogel      # optional: min-cost | northwest | vogel
//
// Names are optional; missing ones default to S1..Sm and C1..Cn.
package problemfile
