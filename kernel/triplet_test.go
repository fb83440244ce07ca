package kernel_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"splu/kernel"
)

func TestCompressColumns_Basic(t *testing.T) {
	// | 2 0 1 |
	// | 0 3 0 |
	// | 4 0 5 |
	rows := []int32{2, 0, 1, 2, 0}
	cols := []int32{0, 0, 1, 2, 2}
	vals := []float64{4, 2, 3, 5, 1}

	colPtr := make([]int32, 4)
	rowIdx := make([]int32, 5)
	values := make([]float64, 5)

	st := kernel.CompressColumns(3, 5, rows, cols, vals, colPtr, rowIdx, values)
	require.Equal(t, kernel.StatusOK, st)

	require.Equal(t, []int32{0, 2, 3, 5}, colPtr)
	require.Equal(t, []int32{0, 2, 1, 0, 2}, rowIdx[:5])
	require.Equal(t, []float64{2, 4, 3, 1, 5}, values[:5])
}

func TestCompressColumns_DuplicatesSummed(t *testing.T) {
	rows := []int32{0, 0, 1}
	cols := []int32{0, 0, 1}
	vals := []float64{1.5, 0.5, 3}

	colPtr := make([]int32, 3)
	rowIdx := make([]int32, 3)
	values := make([]float64, 3)

	st := kernel.CompressColumns(2, 3, rows, cols, vals, colPtr, rowIdx, values)
	require.Equal(t, kernel.StatusOK, st)

	// merging shrinks the entry count
	require.Equal(t, []int32{0, 1, 2}, colPtr)
	require.Equal(t, []int32{0, 1}, rowIdx[:2])
	require.Equal(t, []float64{2.0, 3.0}, values[:2])
}

func TestCompressColumns_IndexOutOfRange(t *testing.T) {
	colPtr := make([]int32, 3)
	rowIdx := make([]int32, 1)
	values := make([]float64, 1)

	st := kernel.CompressColumns(2, 1, []int32{2}, []int32{0}, []float64{1}, colPtr, rowIdx, values)
	require.Equal(t, kernel.StatusIndexOutOfRange, st)

	st = kernel.CompressColumns(2, 1, []int32{0}, []int32{-1}, []float64{1}, colPtr, rowIdx, values)
	require.Equal(t, kernel.StatusIndexOutOfRange, st)
}

func TestCompressColumns_BadArguments(t *testing.T) {
	colPtr := make([]int32, 3)
	rowIdx := make([]int32, 1)
	values := make([]float64, 1)

	st := kernel.CompressColumns(0, 1, []int32{0}, []int32{0}, []float64{1}, colPtr, rowIdx, values)
	require.Equal(t, kernel.StatusInvalidDimension, st)

	st = kernel.CompressColumns(2, 0, []int32{0}, []int32{0}, []float64{1}, colPtr, rowIdx, values)
	require.Equal(t, kernel.StatusInvalidDimension, st)

	st = kernel.CompressColumns(2, 2, []int32{0}, []int32{0}, []float64{1}, colPtr, rowIdx, values)
	require.Equal(t, kernel.StatusBufferTooSmall, st)

	st = kernel.CompressColumns(2, 1, []int32{0}, []int32{0}, []float64{1}, make([]int32, 2), rowIdx, values)
	require.Equal(t, kernel.StatusBufferTooSmall, st)
}
