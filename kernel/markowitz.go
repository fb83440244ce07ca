package kernel

const (
	largestShortInteger = 32767
	largestLongInteger  = 2147483647
)

// markowitzProduct multiplies two Markowitz counts, saturating instead of
// overflowing for very dense rows or columns.
func markowitzProduct(op1, op2 int64) int64 {
	if (op1 > largestShortInteger && op2 != 0) || (op2 > largestShortInteger && op1 != 0) {
		product := float64(op1) * float64(op2)
		if product >= float64(largestLongInteger) {
			return largestLongInteger
		}
		return int64(product)
	}
	return op1 * op2
}

// countMarkowitz generates the Markowitz count for every row and column not
// yet eliminated. A count of -1 marks an empty row or column.
func (m *matrix) countMarkowitz(step int64) {
	for i := step; i <= m.size; i++ {
		count := int64(-1)
		e := m.firstInRow[i]

		for e != nil && e.col < step {
			e = e.nextInRow
		}
		for e != nil {
			count++
			e = e.nextInRow
		}

		m.markRow[i] = count
	}

	for i := step; i <= m.size; i++ {
		count := int64(-1)
		e := m.firstInCol[i]

		for e != nil && e.row < step {
			e = e.nextInCol
		}
		for e != nil {
			count++
			e = e.nextInCol
		}

		m.markCol[i] = count
	}
}

func (m *matrix) markowitzProducts(step int64) {
	m.singletons = 0

	for i := step; i <= m.size; i++ {
		m.markProd[i] = markowitzProduct(m.markRow[i], m.markCol[i])

		if m.markProd[i] == 0 {
			m.singletons++
		}
	}
}

// updateMarkowitz adjusts the counts and products of the rows and columns
// touched by the pivot just eliminated.
func (m *matrix) updateMarkowitz(pivot *element) {
	for e := pivot.nextInCol; e != nil; e = e.nextInCol {
		row := e.row
		m.markRow[row]--
		m.markProd[row] = markowitzProduct(m.markCol[row], m.markRow[row])

		if m.markRow[row] == 0 {
			m.singletons++
		}
	}

	for e := pivot.nextInRow; e != nil; e = e.nextInRow {
		col := e.col
		m.markCol[col]--
		m.markProd[col] = markowitzProduct(m.markRow[col], m.markCol[col])

		if m.markCol[col] == 0 && m.markRow[col] != 0 {
			m.singletons++
		}
	}
}
