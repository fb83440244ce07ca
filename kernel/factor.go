package kernel

import (
	"math"
)

// orderAndFactor factors the matrix in place. When the matrix already carries
// a pivot order (needsOrdering false) the cached order is retried first and
// abandoned only if a pivot fails the stability threshold. reorderAllowed
// false restricts the factorization to the natural diagonal order, the
// behavior of the OrderingNone request.
func (m *matrix) orderAndFactor(diagPivoting, reorderAllowed bool) Status {
	size := m.size
	step := int64(1)

	if !m.needsOrdering {
		for step = 1; step <= size; step++ {
			pivot := m.diags[step]
			if pivot == nil {
				m.needsOrdering = true
				break
			}

			largestInCol := findBiggestInCol(pivot.nextInCol)
			if largestInCol*m.relThreshold < math.Abs(pivot.val) {
				if st := m.rowColElimination(pivot); st != StatusOK {
					return st
				}
			} else {
				m.needsOrdering = true
				break
			}
		}

		if !m.needsOrdering {
			m.factored = true
			return StatusOK
		}
		if !reorderAllowed {
			m.singularRow = step
			m.singularCol = step
			return StatusSingularMatrix
		}
	} else {
		if !reorderAllowed {
			return m.factorNaturalOrder()
		}
		step = 1
		if !m.rowsLinked {
			m.linkRows()
		}
	}

	m.countMarkowitz(step)
	m.markowitzProducts(step)

	for ; step <= size; step++ {
		pivot := m.searchForPivot(step, diagPivoting)
		if pivot == nil {
			m.singularRow = step
			m.singularCol = step
			return StatusSingularMatrix
		}

		m.exchangeRowsAndCols(pivot, step)

		if st := m.rowColElimination(pivot); st != StatusOK {
			return st
		}

		m.updateMarkowitz(pivot)
	}

	m.needsOrdering = false
	m.factored = true
	return StatusOK
}

// factorNaturalOrder eliminates along the diagonal as-is, without any pivot
// search. Counts are still needed because elimination creates fill-ins.
func (m *matrix) factorNaturalOrder() Status {
	if !m.rowsLinked {
		m.linkRows()
	}
	m.countMarkowitz(1)
	m.markowitzProducts(1)

	for step := int64(1); step <= m.size; step++ {
		pivot := m.diags[step]
		if pivot == nil || pivot.val == 0.0 {
			m.singularRow = step
			m.singularCol = step
			return StatusSingularMatrix
		}

		if st := m.rowColElimination(pivot); st != StatusOK {
			return st
		}

		m.updateMarkowitz(pivot)
	}

	m.needsOrdering = false
	m.factored = true
	return StatusOK
}

// rowColElimination eliminates the pivot's row and column from the remaining
// submatrix, creating fill-ins as needed. The pivot's value is replaced by
// its reciprocal.
func (m *matrix) rowColElimination(pivot *element) Status {
	if math.Abs(pivot.val) == 0.0 {
		m.singularRow = pivot.row
		m.singularCol = pivot.col
		return StatusSingularMatrix
	}

	pivot.val = 1.0 / pivot.val

	for upper := pivot.nextInRow; upper != nil; upper = upper.nextInRow {
		upper.val *= pivot.val

		sub := upper.nextInCol
		above := &upper.nextInCol
		for lower := pivot.nextInCol; lower != nil; lower = lower.nextInCol {
			row := lower.row

			for sub != nil && sub.row < row {
				above = &sub.nextInCol
				sub = sub.nextInCol
			}

			if sub == nil || sub.row > row {
				sub = m.createFillin(row, upper.col, &lower.nextInRow, above)
			}

			sub.val -= upper.val * lower.val
			sub = sub.nextInCol
		}
	}

	return StatusOK
}
