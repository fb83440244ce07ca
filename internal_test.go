package splu

import (
	"testing"

	"github.com/stretchr/testify/require"

	"splu/kernel"
)

func TestInitialize_AllocationFailureRollsBack(t *testing.T) {
	orig := newIndexBuffer
	defer func() { newIndexBuffer = orig }()

	calls := 0
	newIndexBuffer = func(n int) []int32 {
		calls++
		if calls == 2 {
			return nil
		}
		return make([]int32, n)
	}

	s := NewSolver()
	err := s.Initialize(3, 5, Options{})
	require.ErrorIs(t, err, ErrAllocation)

	// nothing from the failed call survives on the handle
	require.False(t, s.initialized)
	require.Nil(t, s.colPtr)
	require.Nil(t, s.rowIdx)
	require.Nil(t, s.values)
	require.Equal(t, 0, s.n)
	require.Equal(t, 0, s.nnz)

	newIndexBuffer = orig
	require.NoError(t, s.Initialize(3, 5, Options{}))
	s.Destroy()
}

func TestFactorize_DeterministicBuffers(t *testing.T) {
	i := []int32{0, 0, 1, 1, 2, 2}
	j := []int32{0, 1, 0, 1, 1, 2}
	v := []float64{4, 1, 1, 5, 1, 3}

	s := NewSolver()
	defer s.Destroy()
	require.NoError(t, s.Initialize(3, 6, Options{}))

	require.NoError(t, s.Factorize(i, j, v, false))
	colPtr := append([]int32(nil), s.colPtr...)
	rowIdx := append([]int32(nil), s.rowIdx...)
	values := append([]float64(nil), s.values...)

	require.NoError(t, s.Factorize(i, j, v, false))
	require.Equal(t, colPtr, s.colPtr)
	require.Equal(t, rowIdx, s.rowIdx)
	require.Equal(t, values, s.values)
}

func TestFactorize_SymbolicReused(t *testing.T) {
	i := []int32{0, 1}
	j := []int32{0, 1}
	v := []float64{2, 3}

	s := NewSolver()
	defer s.Destroy()
	require.NoError(t, s.Initialize(2, 2, Options{}))

	require.NoError(t, s.Factorize(i, j, v, false))
	sym := s.symbolic
	require.NotNil(t, sym)

	require.NoError(t, s.Factorize(i, j, v, false))
	require.Same(t, sym, s.symbolic)
	require.Equal(t, 2.0, s.info[kernel.InfoRefactorations])

	s.ResetSymbolic()
	require.Nil(t, s.symbolic)
	require.Nil(t, s.numeric)
}

func TestOptionCodeTables(t *testing.T) {
	require.Equal(t, kernel.StrategyUnsymmetric, symmetryStrategies[SymmetryNo])
	require.Equal(t, kernel.StrategySymmetric, symmetryStrategies[SymmetryPosDef])
	require.Equal(t, kernel.StrategySymmetric, symmetryStrategies[SymmetryGeneral])

	require.Equal(t, [...]int32{0, 1, 2, 3, 4, 5}, orderingCodes)
	require.Equal(t, [...]int32{0, 1, 2, 3}, scalingCodes)
}

func TestEnumStrings(t *testing.T) {
	require.Equal(t, "general", SymmetryGeneral.String())
	require.Equal(t, "amd", OrderingAmd.String())
	require.Equal(t, "sum", ScalingSum.String())
	require.Equal(t, "invalid", Ordering(17).String())
}
