package cursorpage

import "fmt"

// Operator defines a comparison operator for the position filter applied to
// the primary ordering column.
type Operator string

const (
	OperatorGT Operator = ">"
	OperatorLT Operator = "<"
)

func (o Operator) Valid() bool {
	return o == OperatorLT || o == OperatorGT
}

// Inverse flips the comparison to scan past the boundary in the opposite
// direction.
func (o Operator) Inverse() Operator {
	switch o {
	case OperatorGT:
		return OperatorLT
	case OperatorLT:
		return OperatorGT
	default:
		panic(fmt.Errorf("cannot invert operator '%s'", o))
	}
}

func (o Operator) ForOrdering() Direction {
	switch o {
	case OperatorGT:
		return DirectionASC
	case OperatorLT:
		return DirectionDESC
	default:
		panic(fmt.Errorf("cannot map operator '%s' to ordering", o))
	}
}
