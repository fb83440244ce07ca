package splu // import "splu"

import (
	"splu/kernel"
)

// Symmetry selects the factorization strategy for the matrix symmetry kind.
type Symmetry int

const (
	// SymmetryNo marks an unsymmetric matrix.
	SymmetryNo Symmetry = iota
	// SymmetryPosDef marks a positive-definite symmetric matrix.
	SymmetryPosDef
	// SymmetryGeneral marks a general symmetric matrix.
	SymmetryGeneral
)

// Ordering selects the fill-reducing ordering heuristic.
type Ordering int

const (
	// OrderingAmd uses the approximate minimum degree ordering.
	OrderingAmd Ordering = iota
	// OrderingBest tries the available methods and takes the best.
	OrderingBest
	// OrderingCholmod picks a method based on the matrix symmetry.
	OrderingCholmod
	// OrderingDefault is the kernel's default method.
	OrderingDefault
	// OrderingMetis uses nested-dissection ordering.
	OrderingMetis
	// OrderingNo factors the matrix as-is, in natural order.
	OrderingNo
)

// Scaling selects the row scaling applied before factorization.
type Scaling int

const (
	// ScalingDefault is the kernel's default scaling method.
	ScalingDefault Scaling = iota
	// ScalingMax divides each row by its largest absolute value.
	ScalingMax
	// ScalingNo disables scaling.
	ScalingNo
	// ScalingSum divides each row by the sum of its absolute values.
	ScalingSum
)

// Read-only tables mapping the enumerated selectors into the kernel's
// constant space.
var symmetryStrategies = [...]int32{
	SymmetryNo:      kernel.StrategyUnsymmetric,
	SymmetryPosDef:  kernel.StrategySymmetric,
	SymmetryGeneral: kernel.StrategySymmetric,
}

var orderingCodes = [...]int32{
	OrderingAmd:     kernel.OrderingAmd,
	OrderingBest:    kernel.OrderingBest,
	OrderingCholmod: kernel.OrderingCholmod,
	OrderingDefault: kernel.OrderingDefault,
	OrderingMetis:   kernel.OrderingMetis,
	OrderingNo:      kernel.OrderingNone,
}

var scalingCodes = [...]int32{
	ScalingDefault: kernel.ScaleDefault,
	ScalingMax:     kernel.ScaleMax,
	ScalingNo:      kernel.ScaleNone,
	ScalingSum:     kernel.ScaleSum,
}

func (s Symmetry) valid() bool {
	return s >= SymmetryNo && int(s) < len(symmetryStrategies)
}

func (o Ordering) valid() bool {
	return o >= OrderingAmd && int(o) < len(orderingCodes)
}

func (c Scaling) valid() bool {
	return c >= ScalingDefault && int(c) < len(scalingCodes)
}

func (s Symmetry) String() string {
	switch s {
	case SymmetryNo:
		return "no"
	case SymmetryPosDef:
		return "pos-def"
	case SymmetryGeneral:
		return "general"
	}
	return "invalid"
}

func (o Ordering) String() string {
	switch o {
	case OrderingAmd:
		return "amd"
	case OrderingBest:
		return "best"
	case OrderingCholmod:
		return "cholmod"
	case OrderingDefault:
		return "default"
	case OrderingMetis:
		return "metis"
	case OrderingNo:
		return "no"
	}
	return "invalid"
}

func (c Scaling) String() string {
	switch c {
	case ScalingDefault:
		return "default"
	case ScalingMax:
		return "max"
	case ScalingNo:
		return "no"
	case ScalingSum:
		return "sum"
	}
	return "invalid"
}

// Options is the solver configuration fixed at initialization.
type Options struct {
	Symmetry Symmetry
	Ordering Ordering
	Scaling  Scaling
	Verbose  bool
}
