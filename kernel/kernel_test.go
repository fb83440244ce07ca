package kernel_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"splu/kernel"
)

// compress is a test helper building compressed-column buffers from triplets.
func compress(t *testing.T, n int32, rows, cols []int32, vals []float64) ([]int32, []int32, []float64) {
	t.Helper()
	nnz := int32(len(rows))
	colPtr := make([]int32, n+1)
	rowIdx := make([]int32, nnz)
	values := make([]float64, nnz)
	st := kernel.CompressColumns(n, nnz, rows, cols, vals, colPtr, rowIdx, values)
	require.Equal(t, kernel.StatusOK, st)
	return colPtr, rowIdx, values
}

func factorize(t *testing.T, n int32, colPtr, rowIdx []int32, values []float64, control *kernel.Control) (*kernel.Symbolic, *kernel.Numeric, *kernel.Info) {
	t.Helper()
	var info kernel.Info
	sym, st := kernel.Analyze(n, colPtr, rowIdx, values, control, &info)
	require.Equal(t, kernel.StatusOK, st)
	num, st := kernel.Factorize(colPtr, rowIdx, values, sym, control, &info)
	require.Equal(t, kernel.StatusOK, st)
	return sym, num, &info
}

func TestSolve_Tridiagonal(t *testing.T) {
	// A = | 2 1 0 |      x = [1 2 3]  =>  b = [4 10 8]
	//     | 1 3 1 |
	//     | 0 1 2 |
	rows := []int32{0, 0, 1, 1, 1, 2, 2}
	cols := []int32{0, 1, 0, 1, 2, 1, 2}
	vals := []float64{2, 1, 1, 3, 1, 1, 2}
	colPtr, rowIdx, values := compress(t, 3, rows, cols, vals)

	var control kernel.Control
	kernel.Defaults(&control)

	sym, num, info := factorize(t, 3, colPtr, rowIdx, values, &control)
	defer kernel.FreeSymbolic(&sym)
	defer kernel.FreeNumeric(&num)

	x := make([]float64, 3)
	st := kernel.Solve(kernel.SolveModeA, colPtr, rowIdx, values, x, []float64{4, 10, 8}, num, &control, info)
	require.Equal(t, kernel.StatusOK, st)
	require.InDelta(t, 1.0, x[0], 1e-9)
	require.InDelta(t, 2.0, x[1], 1e-9)
	require.InDelta(t, 3.0, x[2], 1e-9)
}

func TestSolve_ZeroDiagonalNeedsPivoting(t *testing.T) {
	// A = | 0 1 |   b = [3 5]  =>  x = [5 3]
	//     | 1 0 |
	rows := []int32{0, 1}
	cols := []int32{1, 0}
	vals := []float64{1, 1}
	colPtr, rowIdx, values := compress(t, 2, rows, cols, vals)

	var control kernel.Control
	kernel.Defaults(&control)

	sym, num, info := factorize(t, 2, colPtr, rowIdx, values, &control)
	defer kernel.FreeSymbolic(&sym)
	defer kernel.FreeNumeric(&num)

	x := make([]float64, 2)
	st := kernel.Solve(kernel.SolveModeA, colPtr, rowIdx, values, x, []float64{3, 5}, num, &control, info)
	require.Equal(t, kernel.StatusOK, st)
	require.InDelta(t, 5.0, x[0], 1e-9)
	require.InDelta(t, 3.0, x[1], 1e-9)
}

func TestSolve_Transposed(t *testing.T) {
	// A = | 2 1 |   A' x = [2 7]  =>  x = [1 2]
	//     | 0 3 |
	rows := []int32{0, 0, 1}
	cols := []int32{0, 1, 1}
	vals := []float64{2, 1, 3}
	colPtr, rowIdx, values := compress(t, 2, rows, cols, vals)

	var control kernel.Control
	kernel.Defaults(&control)

	sym, num, info := factorize(t, 2, colPtr, rowIdx, values, &control)
	defer kernel.FreeSymbolic(&sym)
	defer kernel.FreeNumeric(&num)

	x := make([]float64, 2)
	st := kernel.Solve(kernel.SolveModeAT, colPtr, rowIdx, values, x, []float64{2, 7}, num, &control, info)
	require.Equal(t, kernel.StatusOK, st)
	require.InDelta(t, 1.0, x[0], 1e-9)
	require.InDelta(t, 2.0, x[1], 1e-9)
}

func TestFactorize_RefactorWithNewValues(t *testing.T) {
	rows := []int32{0, 0, 1, 1, 1, 2, 2}
	cols := []int32{0, 1, 0, 1, 2, 1, 2}
	vals := []float64{2, 1, 1, 3, 1, 1, 2}
	colPtr, rowIdx, values := compress(t, 3, rows, cols, vals)

	var control kernel.Control
	kernel.Defaults(&control)

	sym, num, info := factorize(t, 3, colPtr, rowIdx, values, &control)
	defer kernel.FreeSymbolic(&sym)

	// double every value: the same pattern, so the symbolic result is
	// reusable, and the solution halves
	for i := range values {
		values[i] *= 2
	}
	kernel.FreeNumeric(&num)
	num2, st := kernel.Factorize(colPtr, rowIdx, values, sym, &control, info)
	require.Equal(t, kernel.StatusOK, st)
	defer kernel.FreeNumeric(&num2)

	x := make([]float64, 3)
	st = kernel.Solve(kernel.SolveModeA, colPtr, rowIdx, values, x, []float64{4, 10, 8}, num2, &control, info)
	require.Equal(t, kernel.StatusOK, st)
	require.InDelta(t, 0.5, x[0], 1e-9)
	require.InDelta(t, 1.0, x[1], 1e-9)
	require.InDelta(t, 1.5, x[2], 1e-9)
}

func TestAnalyze_Singular(t *testing.T) {
	colPtr, rowIdx, values := compress(t, 2, []int32{0}, []int32{0}, []float64{0.0})

	var control kernel.Control
	kernel.Defaults(&control)
	var info kernel.Info

	sym, st := kernel.Analyze(2, colPtr, rowIdx, values, &control, &info)
	require.Equal(t, kernel.StatusSingularMatrix, st)
	require.Nil(t, sym)
	require.Greater(t, info[kernel.InfoSingularRow], 0.0)
}

func TestAnalyze_OrderingNone(t *testing.T) {
	// zero diagonal cannot be factored in natural order
	rows := []int32{0, 1}
	cols := []int32{1, 0}
	vals := []float64{1, 1}
	colPtr, rowIdx, values := compress(t, 2, rows, cols, vals)

	var control kernel.Control
	kernel.Defaults(&control)
	control[kernel.CtrlOrdering] = float64(kernel.OrderingNone)
	var info kernel.Info

	sym, st := kernel.Analyze(2, colPtr, rowIdx, values, &control, &info)
	require.Equal(t, kernel.StatusSingularMatrix, st)
	require.Nil(t, sym)

	// a diagonally dominant matrix factors fine without reordering
	colPtr, rowIdx, values = compress(t, 2,
		[]int32{0, 0, 1, 1}, []int32{0, 1, 0, 1}, []float64{4, 1, 1, 3})
	sym, st = kernel.Analyze(2, colPtr, rowIdx, values, &control, &info)
	require.Equal(t, kernel.StatusOK, st)
	require.Equal(t, float64(kernel.OrderingNone), info[kernel.InfoOrderingUsed])
	kernel.FreeSymbolic(&sym)
}

func TestSolve_ScalingModes(t *testing.T) {
	rows := []int32{0, 0, 1, 1, 1, 2, 2}
	cols := []int32{0, 1, 0, 1, 2, 1, 2}
	vals := []float64{200, 1, 1, 0.003, 0.001, 1, 2}
	rhs := []float64{201, 1.005, 5}

	for _, scale := range []int32{kernel.ScaleNone, kernel.ScaleMax, kernel.ScaleSum, kernel.ScaleDefault} {
		colPtr, rowIdx, values := compress(t, 3, rows, cols, vals)

		var control kernel.Control
		kernel.Defaults(&control)
		control[kernel.CtrlScale] = float64(scale)

		sym, num, info := factorize(t, 3, colPtr, rowIdx, values, &control)

		x := make([]float64, 3)
		st := kernel.Solve(kernel.SolveModeA, colPtr, rowIdx, values, x, rhs, num, &control, info)
		require.Equal(t, kernel.StatusOK, st)
		require.InDelta(t, 1.0, x[0], 1e-6, "scale mode %d", scale)
		require.InDelta(t, 1.0, x[1], 1e-6, "scale mode %d", scale)
		require.InDelta(t, 2.0, x[2], 1e-6, "scale mode %d", scale)

		kernel.FreeNumeric(&num)
		kernel.FreeSymbolic(&sym)
	}
}

func TestFree_NilSafety(t *testing.T) {
	kernel.FreeSymbolic(nil)
	kernel.FreeNumeric(nil)

	var sym *kernel.Symbolic
	var num *kernel.Numeric
	kernel.FreeSymbolic(&sym)
	kernel.FreeNumeric(&num)

	colPtr, rowIdx, values := compress(t, 1, []int32{0}, []int32{0}, []float64{2})
	var control kernel.Control
	kernel.Defaults(&control)
	sym2, num2, _ := factorize(t, 1, colPtr, rowIdx, values, &control)

	kernel.FreeSymbolic(&sym2)
	require.Nil(t, sym2)
	kernel.FreeSymbolic(&sym2) // double free is a no-op

	kernel.FreeNumeric(&num2)
	require.Nil(t, num2)
	kernel.FreeNumeric(&num2)
}

func TestSolve_ArgumentChecks(t *testing.T) {
	colPtr, rowIdx, values := compress(t, 2,
		[]int32{0, 1}, []int32{0, 1}, []float64{2, 2})

	var control kernel.Control
	kernel.Defaults(&control)
	var info kernel.Info

	st := kernel.Solve(kernel.SolveModeA, colPtr, rowIdx, values,
		make([]float64, 2), make([]float64, 2), nil, &control, &info)
	require.Equal(t, kernel.StatusNullArgument, st)

	sym, num, _ := factorize(t, 2, colPtr, rowIdx, values, &control)
	defer kernel.FreeSymbolic(&sym)
	defer kernel.FreeNumeric(&num)

	st = kernel.Solve(kernel.SolveModeA, colPtr, rowIdx, values,
		make([]float64, 1), make([]float64, 2), num, &control, &info)
	require.Equal(t, kernel.StatusBufferTooSmall, st)
}

func TestDefaults(t *testing.T) {
	var control kernel.Control
	kernel.Defaults(&control)

	require.Equal(t, float64(kernel.PrintLevelSilent), control[kernel.CtrlPrintLevel])
	require.Equal(t, float64(kernel.StrategyAuto), control[kernel.CtrlStrategy])
	require.Equal(t, float64(kernel.OrderingDefault), control[kernel.CtrlOrdering])
	require.Equal(t, float64(kernel.ScaleDefault), control[kernel.CtrlScale])
	require.Equal(t, 0.001, control[kernel.CtrlPivotTolerance])
}
