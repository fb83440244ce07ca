package kernel

import (
	"math"
)

// searchForPivot hunts for the best pivot for the given elimination step:
// singletons first, then the diagonal when requested, then the whole
// remaining submatrix.
func (m *matrix) searchForPivot(step int64, diagPivoting bool) *element {
	if m.singletons > 0 {
		if pivot := m.searchForSingleton(step); pivot != nil {
			m.pivotMethod = 's'
			return pivot
		}
	}

	if diagPivoting {
		if pivot := m.quicklySearchDiagonal(step); pivot != nil {
			m.pivotMethod = 'q'
			return pivot
		}

		if pivot := m.searchDiagonal(step); pivot != nil {
			m.pivotMethod = 'd'
			return pivot
		}
	}

	pivot := m.searchEntireMatrix(step)
	m.pivotMethod = 'e'

	return pivot
}

// findBiggestInColExclude returns the largest magnitude in the element's
// column below the given step, ignoring the element itself.
func (m *matrix) findBiggestInColExclude(e *element, step int64) float64 {
	current := m.firstInCol[e.col]

	for current != nil && current.row < step {
		current = current.nextInCol
	}

	if current == nil {
		return 0.0
	}

	var largest float64
	if current.row != e.row {
		largest = math.Abs(current.val)
	}

	for current = current.nextInCol; current != nil; current = current.nextInCol {
		magnitude := math.Abs(current.val)
		if magnitude > largest && current.row != e.row {
			largest = magnitude
		}
	}

	return largest
}

func findBiggestInCol(e *element) float64 {
	largest := 0.0

	for ; e != nil; e = e.nextInCol {
		magnitude := math.Abs(e.val)
		if magnitude > largest {
			largest = magnitude
		}
	}

	return largest
}

func (m *matrix) searchForSingleton(step int64) *element {
	m.markProd[m.size+1] = m.markProd[step]
	m.markProd[step-1] = 0

	singletons := m.singletons
	m.singletons--

	index := m.size + 1

	for singletons > 0 {
		for index >= step && m.markProd[index] != 0 {
			index--
		}

		i := index
		if i < step {
			break
		}
		if i > m.size {
			i = step
		}

		var chosenPivot *element
		if pivot := m.diags[i]; pivot != nil {
			pivotMag := math.Abs(pivot.val)
			if pivotMag > m.absThreshold &&
				pivotMag > m.relThreshold*m.findBiggestInColExclude(pivot, step) {
				return pivot
			}
		} else {
			if m.markCol[i] == 0 {
				pivot := m.firstInCol[i]
				for pivot != nil && pivot.row < step {
					pivot = pivot.nextInCol
				}
				if pivot != nil {
					chosenPivot = pivot
				}
			}
			if chosenPivot == nil && m.markRow[i] == 0 {
				pivot := m.firstInRow[i]
				for pivot != nil && pivot.col < step {
					pivot = pivot.nextInRow
				}
				if pivot != nil {
					chosenPivot = pivot
				}
			}

			if chosenPivot != nil {
				pivotMag := math.Abs(chosenPivot.val)
				if pivotMag > m.absThreshold &&
					pivotMag > m.relThreshold*m.findBiggestInColExclude(chosenPivot, step) {
					return chosenPivot
				}
			}
		}

		singletons--
		index--
	}

	m.singletons++
	return nil
}

// quicklySearchDiagonal scans diagonal candidates in decreasing index order,
// accepting immediately when a doubleton forms a stable 2x2 block.
func (m *matrix) quicklySearchDiagonal(step int64) *element {
	var chosenPivot *element

	minMarkProd := int64(math.MaxInt64)
	m.markProd[m.size+1] = m.markProd[step]
	m.markProd[step-1] = -1

	index := m.size + 2
	for {
		index--
		for m.markProd[index] >= minMarkProd {
			index--
		}

		i := index
		if i < step {
			break
		}
		if i > m.size {
			i = step
		}

		diag := m.diags[i]
		if diag == nil {
			continue
		}
		magnitude := math.Abs(diag.val)
		if magnitude <= m.absThreshold {
			continue
		}

		if m.markProd[i] == 1 {
			otherInRow := diag.nextInRow
			otherInCol := diag.nextInCol

			if otherInRow == nil && otherInCol == nil {
				otherInRow = m.firstInRow[i]
				for otherInRow != nil {
					if otherInRow.col >= step && otherInRow.col != i {
						break
					}
					otherInRow = otherInRow.nextInRow
				}

				otherInCol = m.firstInCol[i]
				for otherInCol != nil {
					if otherInCol.row >= step && otherInCol.row != i {
						break
					}
					otherInCol = otherInCol.nextInCol
				}
			}

			if otherInRow != nil && otherInCol != nil {
				if otherInRow.col == otherInCol.row {
					largestOffDiag := maxOf(math.Abs(otherInRow.val), math.Abs(otherInCol.val))
					if magnitude >= largestOffDiag {
						return diag
					}
				}
			}
		}

		minMarkProd = m.markProd[i]
		chosenPivot = diag
	}

	if chosenPivot != nil {
		largestInCol := m.findBiggestInColExclude(chosenPivot, step)

		if math.Abs(chosenPivot.val) <= m.relThreshold*largestInCol {
			chosenPivot = nil
		}
	}

	return chosenPivot
}

func (m *matrix) searchDiagonal(step int64) *element {
	var chosenPivot *element
	minMarkProd := int64(math.MaxInt64)
	numberOfTies := int64(0)
	var ratioOfAccepted float64

	m.markProd[m.size+1] = m.markProd[step]

	for i := m.size; i >= step; i-- {
		if m.markProd[i] > minMarkProd {
			continue
		}

		diag := m.diags[i]
		if diag == nil {
			continue
		}

		magnitude := math.Abs(diag.val)
		if magnitude <= m.absThreshold {
			continue
		}

		largestInCol := m.findBiggestInColExclude(diag, step)
		if magnitude <= m.relThreshold*largestInCol {
			continue
		}

		if m.markProd[i] < minMarkProd {
			chosenPivot = diag
			minMarkProd = m.markProd[i]
			ratioOfAccepted = largestInCol / magnitude
			numberOfTies = 0
		} else {
			numberOfTies++
			ratio := largestInCol / magnitude
			if ratio < ratioOfAccepted {
				chosenPivot = diag
				ratioOfAccepted = ratio
			}
			if numberOfTies >= minMarkProd*m.tiesMult {
				return chosenPivot
			}
		}
	}

	return chosenPivot
}

// searchEntireMatrix considers every remaining element. Falls back to the
// largest element when nothing satisfies the thresholds, so the caller can
// still detect a structurally singular submatrix by a nil result.
func (m *matrix) searchEntireMatrix(step int64) *element {
	var chosenPivot, largestElement *element
	minMarkProd := int64(math.MaxInt64)
	largestElementMag := 0.0
	numberOfTies := int64(0)
	var ratioOfAccepted float64

	for i := step; i <= m.size; i++ {
		current := m.firstInCol[i]

		for current != nil && current.row < step {
			current = current.nextInCol
		}

		largestInCol := findBiggestInCol(current)
		if largestInCol == 0.0 {
			continue
		}

		for ; current != nil; current = current.nextInCol {
			magnitude := math.Abs(current.val)
			if magnitude > largestElementMag {
				largestElementMag = magnitude
				largestElement = current
			}

			product := markowitzProduct(m.markRow[current.row], m.markCol[current.col])

			if product <= minMarkProd && magnitude > m.relThreshold*largestInCol && magnitude > m.absThreshold {
				if product < minMarkProd {
					chosenPivot = current
					minMarkProd = product
					ratioOfAccepted = largestInCol / magnitude
					numberOfTies = 0
				} else {
					numberOfTies++
					ratio := largestInCol / magnitude
					if ratio < ratioOfAccepted {
						chosenPivot = current
						ratioOfAccepted = ratio
					}
					if numberOfTies >= minMarkProd*m.tiesMult {
						return chosenPivot
					}
				}
			}
		}
	}

	if chosenPivot != nil {
		return chosenPivot
	}

	if largestElementMag == 0.0 {
		return nil
	}

	return largestElement
}
