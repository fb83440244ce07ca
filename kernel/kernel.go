// Package kernel implements the numerical engine behind the splu solver
// handle: triplet-to-column conversion, symbolic analysis (ordering), numeric
// LU factorization and forward/backward substitution. The factorization uses
// Markowitz pivoting with threshold stability checks over a linked element
// representation.
//
// Every operation communicates through a fixed-layout Control vector, a
// fixed-layout Info vector and an integer Status. Status 0 means success;
// every nonzero value is a distinct failure kind.
package kernel

// Status is the result code of a kernel operation.
type Status int32

const (
	StatusOK               Status = 0
	StatusNullArgument     Status = -1
	StatusInvalidDimension Status = -2
	StatusIndexOutOfRange  Status = -3
	StatusBufferTooSmall   Status = -4
	StatusSingularMatrix   Status = -5
	StatusNotFactored      Status = -6
	StatusPatternChanged   Status = -7
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusNullArgument:
		return "null argument"
	case StatusInvalidDimension:
		return "invalid dimension"
	case StatusIndexOutOfRange:
		return "index out of range"
	case StatusBufferTooSmall:
		return "buffer too small"
	case StatusSingularMatrix:
		return "singular matrix"
	case StatusNotFactored:
		return "matrix is not factored"
	case StatusPatternChanged:
		return "sparsity pattern changed"
	}
	return "unknown status"
}

// Control and Info are fixed-size records. Their layout is part of the kernel
// interface; fields are addressed by the index constants below.
const (
	ControlLen = 20
	InfoLen    = 20
)

type Control [ControlLen]float64

type Info [InfoLen]float64

// Control vector indices.
const (
	CtrlPrintLevel     = 0 // PrintLevelSilent or PrintLevelVerbose
	CtrlStrategy       = 1 // Strategy* constant
	CtrlOrdering       = 2 // Ordering* constant
	CtrlScale          = 3 // Scale* constant
	CtrlPivotTolerance = 4 // relative pivot threshold, (0,1]
	CtrlTiesMultiplier = 5 // Markowitz tie-break search limit multiplier
)

// Info vector indices.
const (
	InfoStatus         = 0
	InfoDimension      = 1
	InfoNonzeros       = 2 // entries in the factored matrix, fill-ins included
	InfoOrderingUsed   = 3
	InfoFillIns        = 4
	InfoSingularRow    = 5 // 1-based pivot step that failed, 0 if none
	InfoSingularCol    = 6
	InfoPivotMethod    = 7 // last pivot search method, as a byte value
	InfoStrategyUsed   = 8
	InfoRefactorations = 9 // numeric factorizations against the same symbolic
)

// Print levels.
const (
	PrintLevelSilent  = 1
	PrintLevelVerbose = 2
)

// Strategy constants (CtrlStrategy).
const (
	StrategyUnsymmetric int32 = 0
	StrategySymmetric   int32 = 1
	StrategyAuto        int32 = 2
)

// Ordering constants (CtrlOrdering and InfoOrderingUsed).
const (
	OrderingAmd     int32 = 0
	OrderingBest    int32 = 1
	OrderingCholmod int32 = 2
	OrderingDefault int32 = 3
	OrderingMetis   int32 = 4
	OrderingNone    int32 = 5
)

// Scale constants (CtrlScale).
const (
	ScaleDefault int32 = 0
	ScaleMax     int32 = 1
	ScaleNone    int32 = 2
	ScaleSum     int32 = 3
)

const (
	defaultRelThreshold   = 0.001
	defaultTiesMultiplier = 5
)

// Defaults resets the control vector to the default configuration.
func Defaults(control *Control) {
	if control == nil {
		return
	}
	*control = Control{}
	control[CtrlPrintLevel] = PrintLevelSilent
	control[CtrlStrategy] = float64(StrategyAuto)
	control[CtrlOrdering] = float64(OrderingDefault)
	control[CtrlScale] = float64(ScaleDefault)
	control[CtrlPivotTolerance] = defaultRelThreshold
	control[CtrlTiesMultiplier] = defaultTiesMultiplier
}

// Symbolic is the opaque result of the analysis phase: the pivot order and
// the fill pattern it produced, reusable across numeric factorizations of
// matrices sharing one sparsity pattern.
type Symbolic struct {
	n       int64
	rowPerm []int64   // internal row -> 1-based external row
	colPerm []int64   // internal col -> 1-based external col
	pattern [][]int64 // per internal column: sorted internal rows, fill-ins included
	fillins int
}

// Numeric is the opaque result of a numeric factorization. It owns the
// factored matrix and the row scaling applied to the input values.
type Numeric struct {
	mat      *matrix
	rowScale []float64 // by 0-based external row, nil when scaling is off
}

// FreeSymbolic releases a symbolic handle and clears the caller's pointer.
// Passing nil, or a pointer to an already released handle, is a no-op.
func FreeSymbolic(sym **Symbolic) {
	if sym == nil || *sym == nil {
		return
	}
	(*sym).rowPerm = nil
	(*sym).colPerm = nil
	(*sym).pattern = nil
	*sym = nil
}

// FreeNumeric releases a numeric handle and clears the caller's pointer.
// Passing nil, or a pointer to an already released handle, is a no-op.
func FreeNumeric(num **Numeric) {
	if num == nil || *num == nil {
		return
	}
	(*num).mat = nil
	(*num).rowScale = nil
	*num = nil
}

// SolveMode selects between solving with the matrix or its transpose.
type SolveMode int32

const (
	SolveModeA  SolveMode = 0 // solve A x = b
	SolveModeAT SolveMode = 1 // solve A' x = b
)

// Analyze performs the symbolic phase over a compressed-column matrix:
// it orders the matrix with Markowitz pivoting (threshold checked against the
// supplied values) and records the resulting permutations and fill pattern.
func Analyze(n int32, colPtr, rowIdx []int32, values []float64, control *Control, info *Info) (*Symbolic, Status) {
	if control == nil || colPtr == nil || rowIdx == nil || values == nil {
		return nil, StatusNullArgument
	}
	if st := checkColumns(n, colPtr, rowIdx, values); st != StatusOK {
		return nil, st
	}
	scale := rowScales(int64(n), colPtr, rowIdx, values, control)
	m := matrixFromColumns(int64(n), colPtr, rowIdx, values, scale)
	m.configure(control)

	ordering := int32(control[CtrlOrdering])
	st := m.orderAndFactor(diagPivoting(control), ordering != OrderingNone)
	if info != nil {
		info.record(m, st)
		if st == StatusOK {
			if ordering == OrderingNone {
				info[InfoOrderingUsed] = float64(OrderingNone)
			} else {
				// single built-in ordering engine; requests fall back to it
				info[InfoOrderingUsed] = float64(OrderingAmd)
			}
			info[InfoStrategyUsed] = control[CtrlStrategy]
			info[InfoRefactorations] = 0
		}
	}
	if st != StatusOK {
		return nil, st
	}

	sym := &Symbolic{
		n:       m.size,
		rowPerm: make([]int64, m.size+1),
		colPerm: make([]int64, m.size+1),
		pattern: make([][]int64, m.size+1),
		fillins: m.fillins,
	}
	copy(sym.rowPerm, m.intToExtRow[:m.size+1])
	copy(sym.colPerm, m.intToExtCol[:m.size+1])
	for c := int64(1); c <= m.size; c++ {
		rows := make([]int64, 0, 4)
		for e := m.firstInCol[c]; e != nil; e = e.nextInCol {
			rows = append(rows, e.row)
		}
		sym.pattern[c] = rows
	}
	return sym, StatusOK
}

// Factorize performs the numeric phase: it rebuilds the factor skeleton from
// the symbolic pattern, loads the current values and refactorizes along the
// cached pivot order. When the threshold check rejects a cached pivot the
// matrix is reordered from scratch (unless ordering is OrderingNone).
func Factorize(colPtr, rowIdx []int32, values []float64, sym *Symbolic, control *Control, info *Info) (*Numeric, Status) {
	if control == nil || sym == nil || colPtr == nil || rowIdx == nil || values == nil {
		return nil, StatusNullArgument
	}
	n := int32(sym.n)
	if st := checkColumns(n, colPtr, rowIdx, values); st != StatusOK {
		return nil, st
	}
	scale := rowScales(sym.n, colPtr, rowIdx, values, control)
	m, lookup := matrixFromPattern(sym)
	m.configure(control)
	if st := m.loadValues(lookup, colPtr, rowIdx, values, scale); st != StatusOK {
		return nil, st
	}

	ordering := int32(control[CtrlOrdering])
	st := m.orderAndFactor(diagPivoting(control), ordering != OrderingNone)
	if info != nil {
		info.record(m, st)
		if st == StatusOK {
			info[InfoRefactorations]++
		}
	}
	if st != StatusOK {
		return nil, st
	}
	return &Numeric{mat: m, rowScale: scale}, StatusOK
}

// Solve applies a numeric factorization to a right-hand side, writing the
// solution into x. The column structure arguments are accepted for interface
// compatibility; the numeric handle is self-contained.
func Solve(mode SolveMode, colPtr, rowIdx []int32, values []float64, x, rhs []float64, num *Numeric, control *Control, info *Info) Status {
	_ = colPtr
	_ = rowIdx
	_ = values
	if control == nil || num == nil {
		return StatusNullArgument
	}
	if num.mat == nil || !num.mat.factored {
		return StatusNotFactored
	}
	if int64(len(x)) < num.mat.size || int64(len(rhs)) < num.mat.size {
		return StatusBufferTooSmall
	}
	var st Status
	switch mode {
	case SolveModeAT:
		st = num.mat.solveTransposedVec(x, rhs, num.rowScale)
	default:
		st = num.mat.solveVec(x, rhs, num.rowScale)
	}
	if info != nil {
		info[InfoStatus] = float64(st)
	}
	return st
}

// checkColumns validates a compressed-column structure against its buffers.
func checkColumns(n int32, colPtr, rowIdx []int32, values []float64) Status {
	if n <= 0 {
		return StatusInvalidDimension
	}
	if len(colPtr) < int(n)+1 {
		return StatusBufferTooSmall
	}
	nz := colPtr[n]
	if nz < 0 || len(rowIdx) < int(nz) || len(values) < int(nz) {
		return StatusBufferTooSmall
	}
	for j := int32(0); j < n; j++ {
		if colPtr[j] < 0 || colPtr[j] > colPtr[j+1] {
			return StatusIndexOutOfRange
		}
		for p := colPtr[j]; p < colPtr[j+1]; p++ {
			if rowIdx[p] < 0 || rowIdx[p] >= n {
				return StatusIndexOutOfRange
			}
		}
	}
	return StatusOK
}

func diagPivoting(control *Control) bool {
	return int32(control[CtrlStrategy]) != StrategyUnsymmetric
}

// rowScales derives per-row scale factors from the compressed-column values.
// Returns nil when scaling is disabled. Rows without entries keep factor 1 so
// singularity is reported by the factorization, not by a division here.
func rowScales(n int64, colPtr, rowIdx []int32, values []float64, control *Control) []float64 {
	mode := int32(control[CtrlScale])
	if mode == ScaleNone {
		return nil
	}
	norm := make([]float64, n)
	for j := int64(0); j < n; j++ {
		for p := colPtr[j]; p < colPtr[j+1]; p++ {
			v := values[p]
			if v < 0 {
				v = -v
			}
			if mode == ScaleMax {
				norm[rowIdx[p]] = maxOf(norm[rowIdx[p]], v)
			} else {
				norm[rowIdx[p]] += v
			}
		}
	}
	for i := range norm {
		if norm[i] == 0.0 {
			norm[i] = 1.0
		} else {
			norm[i] = 1.0 / norm[i]
		}
	}
	return norm
}

func (info *Info) record(m *matrix, st Status) {
	info[InfoStatus] = float64(st)
	info[InfoDimension] = float64(m.size)
	info[InfoNonzeros] = float64(m.elements)
	info[InfoFillIns] = float64(m.fillins)
	info[InfoSingularRow] = float64(m.singularRow)
	info[InfoSingularCol] = float64(m.singularCol)
	info[InfoPivotMethod] = float64(m.pivotMethod)
}
