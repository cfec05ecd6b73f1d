package table

import (
	"strings"

	"github.com/itohio/pmactab/pkg/errs"
	"github.com/itohio/pmactab/pkg/sample"
)

// Quantity selects the derived sample field a table is built from.
type Quantity int

const (
	PsiD   Quantity = iota // d-axis flux linkage, Wb
	PsiQ                   // q-axis flux linkage, Wb
	Ld                     // d-axis inductance from flux linkage, H
	Lq                     // q-axis inductance from flux linkage, H
	Torque                 // Electromagnetic torque from flux linkage, N·m
)

// DefaultQuantities are the flux linkage maps a current controller needs.
var DefaultQuantities = []Quantity{PsiD, PsiQ}

var quantityNames = map[Quantity]string{
	PsiD:   "psi_d",
	PsiQ:   "psi_q",
	Ld:     "ld",
	Lq:     "lq",
	Torque: "torque",
}

var quantityUnits = map[Quantity]string{
	PsiD:   "Wb",
	PsiQ:   "Wb",
	Ld:     "H",
	Lq:     "H",
	Torque: "N·m",
}

func (q Quantity) String() string {
	if name, ok := quantityNames[q]; ok {
		return name
	}
	return "unknown"
}

// Unit returns the SI unit of the quantity.
func (q Quantity) Unit() string {
	return quantityUnits[q]
}

func (q Quantity) valid() bool {
	_, ok := quantityNames[q]
	return ok
}

func (q Quantity) value(d sample.DerivedSample) float64 {
	switch q {
	case PsiD:
		return d.PsiD
	case PsiQ:
		return d.PsiQ
	case Ld:
		return d.LdFlux
	case Lq:
		return d.LqFlux
	case Torque:
		return d.TorqueEM
	}
	return 0
}

// ParseQuantity converts a configuration name such as "psi_d" to a Quantity.
func ParseQuantity(s string) (Quantity, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for q, n := range quantityNames {
		if n == name {
			return q, nil
		}
	}
	return 0, errs.New(errs.KindConfig, "table.ParseQuantity", "unknown quantity %q", s)
}

// ParseQuantities converts a list of names, keeping their order.
func ParseQuantities(names []string) ([]Quantity, error) {
	qs := make([]Quantity, 0, len(names))
	for _, name := range names {
		q, err := ParseQuantity(name)
		if err != nil {
			return nil, err
		}
		qs = append(qs, q)
	}
	return qs, nil
}
