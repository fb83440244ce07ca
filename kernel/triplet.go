package kernel

import (
	"sort"
)

// CompressColumns converts an unordered triplet matrix into compressed-column
// form, writing the caller's colPtr, rowIdx and values buffers in place.
// Duplicate (row, col) entries are summed, rows within a column come out
// sorted, and colPtr[n] holds the entry count after merging (at most nnz).
// The tail of rowIdx and values beyond colPtr[n] is left unspecified.
func CompressColumns(n, nnz int32, rows, cols []int32, vals []float64, colPtr, rowIdx []int32, values []float64) Status {
	if n <= 0 || nnz <= 0 {
		return StatusInvalidDimension
	}
	if len(rows) < int(nnz) || len(cols) < int(nnz) || len(vals) < int(nnz) {
		return StatusBufferTooSmall
	}
	if len(colPtr) < int(n)+1 || len(rowIdx) < int(nnz) || len(values) < int(nnz) {
		return StatusBufferTooSmall
	}

	for k := int32(0); k < nnz; k++ {
		if rows[k] < 0 || rows[k] >= n || cols[k] < 0 || cols[k] >= n {
			return StatusIndexOutOfRange
		}
	}

	// bucket the entries by column, preserving input order within a column
	count := make([]int32, n)
	for k := int32(0); k < nnz; k++ {
		count[cols[k]]++
	}
	next := make([]int32, n)
	var running int32
	for j := int32(0); j < n; j++ {
		next[j] = running
		running += count[j]
	}

	workRows := make([]int32, nnz)
	workVals := make([]float64, nnz)
	for k := int32(0); k < nnz; k++ {
		slot := next[cols[k]]
		workRows[slot] = rows[k]
		workVals[slot] = vals[k]
		next[cols[k]]++
	}

	// sort each column by row, then merge duplicates while compacting
	var out int32
	var start int32
	for j := int32(0); j < n; j++ {
		end := start + count[j]
		sort.Sort(&columnEntries{rows: workRows[start:end], vals: workVals[start:end]})

		colPtr[j] = out
		for p := start; p < end; p++ {
			if out > colPtr[j] && rowIdx[out-1] == workRows[p] {
				values[out-1] += workVals[p]
			} else {
				rowIdx[out] = workRows[p]
				values[out] = workVals[p]
				out++
			}
		}
		start = end
	}
	colPtr[n] = out

	return StatusOK
}

// columnEntries sorts one column segment of the scatter buffers by row.
type columnEntries struct {
	rows []int32
	vals []float64
}

func (c *columnEntries) Len() int           { return len(c.rows) }
func (c *columnEntries) Less(i, j int) bool { return c.rows[i] < c.rows[j] }
func (c *columnEntries) Swap(i, j int) {
	c.rows[i], c.rows[j] = c.rows[j], c.rows[i]
	c.vals[i], c.vals[j] = c.vals[j], c.vals[i]
}
