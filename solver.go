// Package splu manages the lifecycle of a sparse direct linear solver: it
// bridges an unordered triplet matrix to the compressed-column form the
// numerical kernel consumes, drives the two-phase factorization (symbolic
// analysis cached across refactorizations, numeric factorization redone on
// every call) and applies the factorization to right-hand sides.
//
// A Solver owns every buffer and opaque kernel state it creates. Operations
// on one Solver must not run concurrently; distinct Solvers are independent.
package splu

import (
	"splu/kernel"
)

// Solver owns the matrix buffers and factorization state for one sparse
// linear system. The zero value from NewSolver is an empty handle; Initialize
// sizes it, Factorize and Solve operate on it, Destroy releases it.
type Solver struct {
	n   int
	nnz int

	colPtr []int32   // column boundaries, length n+1
	rowIdx []int32   // row indices, length nnz
	values []float64 // values, overwritten on every Factorize

	control kernel.Control
	info    kernel.Info

	symbolic *kernel.Symbolic
	numeric  *kernel.Numeric

	reporter    Reporter
	initialized bool
}

// Allocation seams for the handle buffers. Tests force failures through
// these to exercise the partial-initialization rollback.
var (
	newIndexBuffer = func(n int) []int32 { return make([]int32, n) }
	newValueBuffer = func(n int) []float64 { return make([]float64, n) }
)

// NewSolver returns a handle in the empty state. It performs no allocations
// beyond the handle itself and never fails.
func NewSolver() *Solver {
	return &Solver{reporter: defaultReporter}
}

// SetReporter replaces the collaborator that receives verbose reports.
// A nil reporter silences them regardless of the verbose flag.
func (s *Solver) SetReporter(r Reporter) {
	if s == nil {
		return
	}
	s.reporter = r
}

// Initialize allocates the triplet buffers for an n-by-n matrix with nnz
// entries and fixes the solver configuration. The handle must be in the
// empty state. On any failure the handle is left fully empty; a partial
// allocation never survives this call.
func (s *Solver) Initialize(n, nnz int, opts Options) error {
	if s == nil {
		return ErrNilSolver
	}
	if s.initialized {
		return ErrAlreadyInitialized
	}
	if n <= 0 {
		return errorf("dimension must be positive, got %d", n)
	}
	if nnz <= 0 {
		return errorf("nonzero count must be positive, got %d", nnz)
	}
	if !opts.Symmetry.valid() {
		return errorf("symmetry selector out of range: %d", int(opts.Symmetry))
	}
	if !opts.Ordering.valid() {
		return errorf("ordering selector out of range: %d", int(opts.Ordering))
	}
	if !opts.Scaling.valid() {
		return errorf("scaling selector out of range: %d", int(opts.Scaling))
	}

	colPtr := newIndexBuffer(n + 1)
	if colPtr == nil {
		return ErrAllocation
	}
	rowIdx := newIndexBuffer(nnz)
	if rowIdx == nil {
		return ErrAllocation
	}
	values := newValueBuffer(nnz)
	if values == nil {
		return ErrAllocation
	}

	kernel.Defaults(&s.control)
	s.control[kernel.CtrlStrategy] = float64(symmetryStrategies[opts.Symmetry])
	s.control[kernel.CtrlOrdering] = float64(orderingCodes[opts.Ordering])
	s.control[kernel.CtrlScale] = float64(scalingCodes[opts.Scaling])
	s.setVerbose(opts.Verbose)

	s.colPtr = colPtr
	s.rowIdx = rowIdx
	s.values = values
	s.n = n
	s.nnz = nnz
	s.initialized = true

	return nil
}

// Factorize converts the triplet input into the handle's compressed-column
// buffers and derives the numeric factorization. The symbolic analysis runs
// on the first successful call and is reused afterwards; call ResetSymbolic
// to force a fresh one. Duplicate (row, col) entries are summed. The
// previously cached numeric state survives a failed call, so an earlier
// successful factorization remains solvable.
func (s *Solver) Factorize(indicesI, indicesJ []int32, valuesAij []float64, verbose bool) error {
	if s == nil {
		return ErrNilSolver
	}
	if !s.initialized {
		return ErrNotInitialized
	}
	if len(indicesI) != s.nnz || len(indicesJ) != s.nnz || len(valuesAij) != s.nnz {
		return errorf("triplet arrays must have length %d, got %d/%d/%d",
			s.nnz, len(indicesI), len(indicesJ), len(valuesAij))
	}
	s.setVerbose(verbose)

	st := kernel.CompressColumns(int32(s.n), int32(s.nnz), indicesI, indicesJ, valuesAij,
		s.colPtr, s.rowIdx, s.values)
	s.report("triplet to column", st)
	if st != kernel.StatusOK {
		return statusError(ErrConversion, st)
	}

	if s.symbolic == nil {
		sym, st := kernel.Analyze(int32(s.n), s.colPtr, s.rowIdx, s.values, &s.control, &s.info)
		s.report("symbolic analysis", st)
		if st != kernel.StatusOK {
			return statusError(ErrSymbolic, st)
		}
		s.symbolic = sym
	}

	num, st := kernel.Factorize(s.colPtr, s.rowIdx, s.values, s.symbolic, &s.control, &s.info)
	s.report("numeric factorization", st)
	if st != kernel.StatusOK {
		return statusError(ErrNumeric, st)
	}

	// commit: release the outgoing numeric state only now that the new one
	// is known good
	kernel.FreeNumeric(&s.numeric)
	s.numeric = num

	if verbose && s.reporter != nil {
		s.reporter.Info(&s.control, &s.info)
	}
	return nil
}

// Solve computes x from A x = rhs using the cached numeric factorization.
// Both vectors must have length at least the matrix dimension; x is the
// caller's buffer and is only written on success.
func (s *Solver) Solve(x, rhs []float64, verbose bool) error {
	if s == nil {
		return ErrNilSolver
	}
	if !s.initialized {
		return ErrNotInitialized
	}
	if s.numeric == nil {
		return ErrNoFactorization
	}
	if len(x) < s.n || len(rhs) < s.n {
		return errorf("vector length below dimension %d, got x=%d rhs=%d", s.n, len(x), len(rhs))
	}
	s.setVerbose(verbose)

	st := kernel.Solve(kernel.SolveModeA, s.colPtr, s.rowIdx, s.values, x, rhs,
		s.numeric, &s.control, &s.info)
	s.report("solve", st)
	if st != kernel.StatusOK {
		return statusError(ErrSolve, st)
	}

	if verbose && s.reporter != nil {
		s.reporter.Info(&s.control, &s.info)
	}
	return nil
}

// ResetSymbolic discards the cached symbolic analysis and, with it, the
// numeric factorization that depends on it. The next Factorize re-runs the
// analysis. Use when the sparsity pattern of the input changes.
func (s *Solver) ResetSymbolic() {
	if s == nil {
		return
	}
	kernel.FreeNumeric(&s.numeric)
	kernel.FreeSymbolic(&s.symbolic)
}

// Destroy releases every owned buffer and opaque kernel state exactly once.
// Destroying a nil or already destroyed handle is a no-op. The handle
// returns to the empty state and may be initialized again.
func (s *Solver) Destroy() {
	if s == nil {
		return
	}
	kernel.FreeNumeric(&s.numeric)
	kernel.FreeSymbolic(&s.symbolic)
	s.colPtr = nil
	s.rowIdx = nil
	s.values = nil
	s.n = 0
	s.nnz = 0
	s.initialized = false
}

// Dimension returns the matrix dimension fixed at initialization.
func (s *Solver) Dimension() int {
	if s == nil {
		return 0
	}
	return s.n
}

// NonzeroCount returns the triplet entry count fixed at initialization.
func (s *Solver) NonzeroCount() int {
	if s == nil {
		return 0
	}
	return s.nnz
}

// UsedOrdering returns the ordering the kernel actually applied in the most
// recent symbolic analysis, which may differ from the requested one. Before
// any successful factorization the result is the zero ordering.
func (s *Solver) UsedOrdering() Ordering {
	if s == nil {
		return OrderingAmd
	}
	code := int32(s.info[kernel.InfoOrderingUsed])
	for ord, c := range orderingCodes {
		if c == code {
			return Ordering(ord)
		}
	}
	return OrderingAmd
}

// UsedScaling returns the scaling strategy as configured. Unlike
// UsedOrdering this reads the configuration, not a post-factorization
// diagnostic.
func (s *Solver) UsedScaling() Scaling {
	if s == nil {
		return ScalingDefault
	}
	code := int32(s.control[kernel.CtrlScale])
	for sc, c := range scalingCodes {
		if c == code {
			return Scaling(sc)
		}
	}
	return ScalingDefault
}

func (s *Solver) setVerbose(verbose bool) {
	if verbose {
		s.control[kernel.CtrlPrintLevel] = kernel.PrintLevelVerbose
	} else {
		s.control[kernel.CtrlPrintLevel] = kernel.PrintLevelSilent
	}
}

func (s *Solver) report(stage string, st kernel.Status) {
	if s.reporter == nil || s.control[kernel.CtrlPrintLevel] < kernel.PrintLevelVerbose {
		return
	}
	s.reporter.Status(&s.control, stage, st)
}
