package kernel

// exchangeRowsAndCols moves the chosen pivot to the diagonal position of the
// current step, keeping the Markowitz bookkeeping and both permutation maps
// consistent.
func (m *matrix) exchangeRowsAndCols(pivot *element, step int64) {
	row := pivot.row
	col := pivot.col

	m.pivotsOriginalRow = row
	m.pivotsOriginalCol = col

	if row == step && col == step {
		return
	}

	if row == col {
		m.rowExchange(step, row)
		m.colExchange(step, col)

		m.markProd[step], m.markProd[row] = m.markProd[row], m.markProd[step]
		m.diags[row], m.diags[step] = m.diags[step], m.diags[row]
	} else {
		oldProdStep := m.markProd[step]
		oldProdRow := m.markProd[row]
		oldProdCol := m.markProd[col]

		if row != step {
			m.rowExchange(step, row)
			m.markProd[row] = markowitzProduct(m.markRow[row], m.markCol[row])

			if (m.markProd[row] == 0) != (oldProdRow == 0) {
				if oldProdRow == 0 {
					m.singletons--
				} else {
					m.singletons++
				}
			}
		}

		if col != step {
			m.colExchange(step, col)
			m.markProd[col] = markowitzProduct(m.markCol[col], m.markRow[col])

			if (m.markProd[col] == 0) != (oldProdCol == 0) {
				if oldProdCol == 0 {
					m.singletons--
				} else {
					m.singletons++
				}
			}
			m.diags[col] = m.findDiag(col)
		}

		if row != step {
			m.diags[row] = m.findDiag(row)
		}
		m.diags[step] = m.findDiag(step)

		m.markProd[step] = m.markRow[step] * m.markCol[step]
		if (m.markProd[step] == 0) != (oldProdStep == 0) {
			if oldProdStep == 0 {
				m.singletons--
			} else {
				m.singletons++
			}
		}
	}
}

func (m *matrix) rowExchange(row1, row2 int64) {
	if row1 > row2 {
		row1, row2 = row2, row1
	}

	row1Ptr := m.firstInRow[row1]
	row2Ptr := m.firstInRow[row2]

	for row1Ptr != nil || row2Ptr != nil {
		var column int64
		var element1, element2 *element

		switch {
		case row1Ptr == nil:
			column = row2Ptr.col
			element2 = row2Ptr
			row2Ptr = row2Ptr.nextInRow
		case row2Ptr == nil:
			column = row1Ptr.col
			element1 = row1Ptr
			row1Ptr = row1Ptr.nextInRow
		case row1Ptr.col < row2Ptr.col:
			column = row1Ptr.col
			element1 = row1Ptr
			row1Ptr = row1Ptr.nextInRow
		case row1Ptr.col > row2Ptr.col:
			column = row2Ptr.col
			element2 = row2Ptr
			row2Ptr = row2Ptr.nextInRow
		default:
			column = row1Ptr.col
			element1 = row1Ptr
			element2 = row2Ptr
			row1Ptr = row1Ptr.nextInRow
			row2Ptr = row2Ptr.nextInRow
		}

		m.exchangeColElements(row1, element1, row2, element2, column)
	}

	m.markRow[row1], m.markRow[row2] = m.markRow[row2], m.markRow[row1]
	m.firstInRow[row1], m.firstInRow[row2] = m.firstInRow[row2], m.firstInRow[row1]
	m.intToExtRow[row1], m.intToExtRow[row2] = m.intToExtRow[row2], m.intToExtRow[row1]

	m.extToIntRow[m.intToExtRow[row1]] = row1
	m.extToIntRow[m.intToExtRow[row2]] = row2
}

func (m *matrix) colExchange(col1, col2 int64) {
	if col1 > col2 {
		col1, col2 = col2, col1
	}

	col1Ptr := m.firstInCol[col1]
	col2Ptr := m.firstInCol[col2]

	for col1Ptr != nil || col2Ptr != nil {
		var row int64
		var element1, element2 *element

		switch {
		case col1Ptr == nil:
			row = col2Ptr.row
			element2 = col2Ptr
			col2Ptr = col2Ptr.nextInCol
		case col2Ptr == nil:
			row = col1Ptr.row
			element1 = col1Ptr
			col1Ptr = col1Ptr.nextInCol
		case col1Ptr.row < col2Ptr.row:
			row = col1Ptr.row
			element1 = col1Ptr
			col1Ptr = col1Ptr.nextInCol
		case col1Ptr.row > col2Ptr.row:
			row = col2Ptr.row
			element2 = col2Ptr
			col2Ptr = col2Ptr.nextInCol
		default:
			row = col1Ptr.row
			element1 = col1Ptr
			element2 = col2Ptr
			col1Ptr = col1Ptr.nextInCol
			col2Ptr = col2Ptr.nextInCol
		}

		m.exchangeRowElements(col1, element1, col2, element2, row)
	}

	m.markCol[col1], m.markCol[col2] = m.markCol[col2], m.markCol[col1]
	m.firstInCol[col1], m.firstInCol[col2] = m.firstInCol[col2], m.firstInCol[col1]
	m.intToExtCol[col1], m.intToExtCol[col2] = m.intToExtCol[col2], m.intToExtCol[col1]

	m.extToIntCol[m.intToExtCol[col1]] = col1
	m.extToIntCol[m.intToExtCol[col2]] = col2
}

// exchangeColElements swaps the two elements of one column that sit in the
// exchanged rows, relinking the column list around them.
func (m *matrix) exchangeColElements(row1 int64, element1 *element, row2 int64, element2 *element, column int64) {
	var aboveRow1, aboveRow2 **element
	var belowRow1, belowRow2 *element

	aboveRow1 = &m.firstInCol[column]
	e := *aboveRow1
	for e.row < row1 {
		aboveRow1 = &e.nextInCol
		e = *aboveRow1
	}

	if element1 != nil {
		belowRow1 = element1.nextInCol
		if element2 == nil {
			if belowRow1 != nil && belowRow1.row < row2 {
				*aboveRow1 = belowRow1

				e = belowRow1
				for e != nil && e.row < row2 {
					aboveRow2 = &e.nextInCol
					e = *aboveRow2
				}

				*aboveRow2 = element1
				element1.nextInCol = e
			}
			element1.row = row2
		} else {
			if belowRow1.row == row2 {
				element1.nextInCol = element2.nextInCol
				element2.nextInCol = element1
				*aboveRow1 = element2
			} else {
				e = belowRow1
				for e.row < row2 {
					aboveRow2 = &e.nextInCol
					e = *aboveRow2
				}

				belowRow2 = element2.nextInCol

				*aboveRow1 = element2
				element2.nextInCol = belowRow1
				*aboveRow2 = element1
				element1.nextInCol = belowRow2
			}
			element1.row = row2
			element2.row = row1
		}
	} else {
		belowRow1 = e

		if belowRow1.row != row2 {
			for e.row < row2 {
				aboveRow2 = &e.nextInCol
				e = *aboveRow2
			}

			belowRow2 = element2.nextInCol

			*aboveRow2 = belowRow2
			*aboveRow1 = element2
			element2.nextInCol = belowRow1
		}
		element2.row = row1
	}
}

// exchangeRowElements is the row-list mirror of exchangeColElements.
func (m *matrix) exchangeRowElements(col1 int64, element1 *element, col2 int64, element2 *element, row int64) {
	leftOfCol1 := &m.firstInRow[row]
	e := *leftOfCol1
	for e.col < col1 {
		leftOfCol1 = &e.nextInRow
		e = *leftOfCol1
	}

	if element1 != nil {
		rightOfCol1 := element1.nextInRow
		if element2 == nil {
			if rightOfCol1 != nil && rightOfCol1.col < col2 {
				*leftOfCol1 = rightOfCol1

				e = rightOfCol1
				var leftOfCol2 **element
				for e != nil && e.col < col2 {
					leftOfCol2 = &e.nextInRow
					e = *leftOfCol2
				}

				*leftOfCol2 = element1
				element1.nextInRow = e
			}
			element1.col = col2
		} else {
			if rightOfCol1.col == col2 {
				element1.nextInRow = element2.nextInRow
				element2.nextInRow = element1
				*leftOfCol1 = element2
			} else {
				e = rightOfCol1
				var leftOfCol2 **element
				for e.col < col2 {
					leftOfCol2 = &e.nextInRow
					e = *leftOfCol2
				}

				rightOfCol2 := element2.nextInRow

				*leftOfCol1 = element2
				element2.nextInRow = rightOfCol1
				*leftOfCol2 = element1
				element1.nextInRow = rightOfCol2
			}
			element1.col = col2
			element2.col = col1
		}
	} else {
		rightOfCol1 := e

		if rightOfCol1.col != col2 {
			var leftOfCol2 **element
			for e.col < col2 {
				leftOfCol2 = &e.nextInRow
				e = *leftOfCol2
			}

			rightOfCol2 := element2.nextInRow

			*leftOfCol2 = rightOfCol2
			*leftOfCol1 = element2
			element2.nextInRow = rightOfCol1
		}
		element2.col = col1
	}
}
