// SPDX-License-Identifier: MIT

package problemfile

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/transport/matrix"
)

var (
	// ErrDecode wraps YAML syntax errors and unknown fields.
	ErrDecode = errors.New("problemfile: cannot decode definition")

	// ErrInvalid reports a definition that does not describe one problem.
	ErrInvalid = errors.New("problemfile: invalid definition")
)

// DummyName labels the participant added by balancing.
const DummyName = "(dummy)"

// Definition is the on-disk form of a problem.
type Definition struct {
	Name        string      `yaml:"name,omitempty"`
	Suppliers   []string    `yaml:"suppliers,omitempty"`
	Consumers   []string    `yaml:"consumers,omitempty"`
	Costs       [][]float64 `yaml:"costs"`
	Supplies    []float64   `yaml:"supplies"`
	Demands     []float64   `yaml:"demands"`
	Method      string      `yaml:"method,omitempty"`
	Initializer string      `yaml:"initializer,omitempty"`
}

// Load reads and validates the definition stored at path.
func Load(path string) (*Definition, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	def, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return def, nil
}

// Parse decodes and validates a definition held in memory.
func Parse(data []byte) (*Definition, error) {
	return Decode(bytes.NewReader(data))
}

// Decode reads one definition from r. Unknown fields are rejected.
func Decode(r io.Reader) (*Definition, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var def Definition
	if err := dec.Decode(&def); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty document", ErrDecode)
		}
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	if err := def.Validate(); err != nil {
		return nil, err
	}

	return &def, nil
}

// Validate checks shapes, finiteness, signs and name counts.
func (d *Definition) Validate() error {
	if err := matrix.ValidateRectangular(d.Costs); err != nil {
		return fmt.Errorf("%w: costs: %w", ErrInvalid, err)
	}
	if err := matrix.ValidateFinite(d.Costs); err != nil {
		return fmt.Errorf("%w: costs: %w", ErrInvalid, err)
	}
	m, n := len(d.Costs), len(d.Costs[0])
	for i, row := range d.Costs {
		for j, v := range row {
			if v < 0 {
				return fmt.Errorf("%w: costs: negative value %g at (%d,%d)", ErrInvalid, v, i, j)
			}
		}
	}
	if err := matrix.ValidateVector(d.Supplies, m); err != nil {
		return fmt.Errorf("%w: supplies (want %d): %w", ErrInvalid, m, err)
	}
	if err := matrix.ValidateVector(d.Demands, n); err != nil {
		return fmt.Errorf("%w: demands (want %d): %w", ErrInvalid, n, err)
	}
	if len(d.Suppliers) != 0 && len(d.Suppliers) != m {
		return fmt.Errorf("%w: %d supplier names for %d rows", ErrInvalid, len(d.Suppliers), m)
	}
	if len(d.Consumers) != 0 && len(d.Consumers) != n {
		return fmt.Errorf("%w: %d consumer names for %d columns", ErrInvalid, len(d.Consumers), n)
	}

	return nil
}

// Matrix returns the cost matrix as a matrix.Dense.
func (d *Definition) Matrix() (*matrix.Dense, error) {
	m, err := matrix.NewFromRows(d.Costs)
	if err != nil {
		return nil, fmt.Errorf("%w: costs: %w", ErrInvalid, err)
	}

	return m, nil
}

// SupplierName names row i; rows past the definition belong to the dummy.
func (d *Definition) SupplierName(i int) string {
	return name(d.Suppliers, len(d.Costs), i, "S")
}

// ConsumerName names column j; columns past the definition belong to the dummy.
func (d *Definition) ConsumerName(j int) string {
	n := 0
	if len(d.Costs) > 0 {
		n = len(d.Costs[0])
	}

	return name(d.Consumers, n, j, "C")
}

func name(names []string, size, k int, prefix string) string {
	switch {
	case k >= size:
		return DummyName
	case k < len(names) && names[k] != "":
		return names[k]
	default:
		return prefix + strconv.Itoa(k+1)
	}
}
