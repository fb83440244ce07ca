package kernel

// solveVec solves A x = b given the factored matrix. rhs and x use the
// caller's 0-based external numbering; scale is the row scaling applied
// during factorization, nil when scaling is off.
func (m *matrix) solveVec(x, rhs []float64, scale []float64) Status {
	size := m.size
	interm := m.intermediate

	// scatter the right-hand side into internal ordering
	for i := size; i > 0; i-- {
		ext := m.intToExtRow[i] - 1
		v := rhs[ext]
		if scale != nil {
			v *= scale[ext]
		}
		interm[i] = v
	}

	// forward elimination, solves L c = b
	for i := int64(1); i <= size; i++ {
		temp := interm[i]
		if temp != 0.0 {
			pivot := m.diags[i]
			if pivot == nil {
				return StatusNotFactored
			}
			temp *= pivot.val
			interm[i] = temp

			for e := pivot.nextInCol; e != nil; e = e.nextInCol {
				interm[e.row] -= temp * e.val
			}
		}
	}

	// backward substitution, solves U x = c
	for i := size; i > 0; i-- {
		temp := interm[i]

		for e := m.diags[i].nextInRow; e != nil; e = e.nextInRow {
			temp -= e.val * interm[e.col]
		}
		interm[i] = temp
	}

	// unscramble into external ordering
	for i := size; i > 0; i-- {
		x[m.intToExtCol[i]-1] = interm[i]
	}

	return StatusOK
}

// solveTransposedVec solves A' x = b. With row scaling the factored matrix is
// R A, so the transposed system is solved as (R A)' y = b with x = R y.
func (m *matrix) solveTransposedVec(x, rhs []float64, scale []float64) Status {
	size := m.size
	interm := m.intermediate

	for i := size; i > 0; i-- {
		interm[i] = rhs[m.intToExtCol[i]-1]
	}

	// forward elimination along the rows (U' is unit lower triangular)
	for i := int64(1); i <= size; i++ {
		temp := interm[i]
		if temp != 0.0 {
			pivot := m.diags[i]
			if pivot == nil {
				return StatusNotFactored
			}

			for e := pivot.nextInRow; e != nil; e = e.nextInRow {
				interm[e.col] -= temp * e.val
			}
		}
	}

	// backward substitution along the columns (L')
	for i := size; i > 0; i-- {
		pivot := m.diags[i]
		temp := interm[i]

		for e := pivot.nextInCol; e != nil; e = e.nextInCol {
			temp -= e.val * interm[e.row]
		}

		interm[i] = temp * pivot.val
	}

	for i := size; i > 0; i-- {
		ext := m.intToExtRow[i] - 1
		if scale != nil {
			x[ext] = interm[i] * scale[ext]
		} else {
			x[ext] = interm[i]
		}
	}

	return StatusOK
}
