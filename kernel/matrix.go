package kernel

type element struct {
	val       float64
	row       int64
	col       int64
	nextInRow *element
	nextInCol *element
}

// matrix is the linked element representation the factorization works on.
// Rows and columns are 1-based internally; the permutation maps translate
// between internal positions and the caller's 0-based external numbering
// (external index i is stored as i+1).
type matrix struct {
	size int64

	diags      []*element // diagonal elements, reciprocal after elimination [1...size]
	firstInRow []*element // first element in each row [1...size]
	firstInCol []*element // first element in each column [1...size]

	intermediate []float64 // scratch vector for substitution [1...size]

	markRow  []int64 // Markowitz count of each row
	markCol  []int64 // Markowitz count of each column
	markProd []int64 // Markowitz products, sentinel slot at size+1

	intToExtRow []int64
	intToExtCol []int64
	extToIntRow []int64
	extToIntCol []int64

	relThreshold float64
	absThreshold float64
	tiesMult     int64

	needsOrdering bool
	rowsLinked    bool
	factored      bool

	singularRow int64
	singularCol int64

	elements   int
	fillins    int
	singletons int

	pivotMethod       byte // 's', 'q', 'd' or 'e'
	pivotsOriginalRow int64
	pivotsOriginalCol int64
}

func newMatrix(n int64) *matrix {
	vecSize := n + 2 // slot 0 unused, sentinel slot at n+1

	m := &matrix{
		size:          n,
		diags:         make([]*element, vecSize),
		firstInRow:    make([]*element, vecSize),
		firstInCol:    make([]*element, vecSize),
		intermediate:  make([]float64, vecSize),
		markRow:       make([]int64, vecSize),
		markCol:       make([]int64, vecSize),
		markProd:      make([]int64, vecSize),
		intToExtRow:   make([]int64, vecSize),
		intToExtCol:   make([]int64, vecSize),
		extToIntRow:   make([]int64, vecSize),
		extToIntCol:   make([]int64, vecSize),
		relThreshold:  defaultRelThreshold,
		tiesMult:      defaultTiesMultiplier,
		needsOrdering: true,
	}

	for i := int64(1); i <= n; i++ {
		m.intToExtRow[i] = i
		m.intToExtCol[i] = i
		m.extToIntRow[i] = i
		m.extToIntCol[i] = i
	}

	return m
}

func (m *matrix) configure(control *Control) {
	tol := control[CtrlPivotTolerance]
	if tol > 0.0 && tol <= 1.0 {
		m.relThreshold = tol
	}
	ties := int64(control[CtrlTiesMultiplier])
	if ties > 0 {
		m.tiesMult = ties
	}
}

// matrixFromColumns builds the linked representation from a compressed-column
// matrix. Rows within a column arrive sorted, so columns are appended in one
// pass. Row scaling is applied while loading when scale is non-nil.
func matrixFromColumns(n int64, colPtr, rowIdx []int32, values []float64, scale []float64) *matrix {
	m := newMatrix(n)

	for j := int64(0); j < n; j++ {
		tail := &m.firstInCol[j+1]
		for p := colPtr[j]; p < colPtr[j+1]; p++ {
			v := values[p]
			if scale != nil {
				v *= scale[rowIdx[p]]
			}
			e := &element{val: v, row: int64(rowIdx[p]) + 1, col: j + 1}
			*tail = e
			tail = &e.nextInCol
			if e.row == e.col {
				m.diags[e.row] = e
			}
			m.elements++
		}
	}

	m.linkRows()
	return m
}

// matrixFromPattern rebuilds the factor skeleton recorded by a symbolic
// analysis: same permutations, same fill pattern, all values zero. The
// returned lookup maps packed internal (row, col) keys to elements so the
// caller can load values without walking the column lists.
func matrixFromPattern(sym *Symbolic) (*matrix, map[int64]*element) {
	m := newMatrix(sym.n)
	lookup := make(map[int64]*element, len(sym.pattern)*2)

	copy(m.intToExtRow, sym.rowPerm)
	copy(m.intToExtCol, sym.colPerm)
	for i := int64(1); i <= m.size; i++ {
		m.extToIntRow[m.intToExtRow[i]] = i
		m.extToIntCol[m.intToExtCol[i]] = i
	}

	for c := int64(1); c <= m.size; c++ {
		tail := &m.firstInCol[c]
		for _, r := range sym.pattern[c] {
			e := &element{row: r, col: c}
			*tail = e
			tail = &e.nextInCol
			if r == c {
				m.diags[r] = e
			}
			lookup[r*(m.size+1)+c] = e
			m.elements++
		}
	}

	m.linkRows()
	m.needsOrdering = false
	return m, lookup
}

// loadValues writes fresh values into a skeleton built by matrixFromPattern.
// Entries outside the recorded pattern mean the caller changed the sparsity
// structure since the analysis.
func (m *matrix) loadValues(lookup map[int64]*element, colPtr, rowIdx []int32, values []float64, scale []float64) Status {
	for j := int64(0); j < m.size; j++ {
		c := m.extToIntCol[j+1]
		for p := colPtr[j]; p < colPtr[j+1]; p++ {
			r := m.extToIntRow[int64(rowIdx[p])+1]
			e := lookup[r*(m.size+1)+c]
			if e == nil {
				return StatusPatternChanged
			}
			v := values[p]
			if scale != nil {
				v *= scale[rowIdx[p]]
			}
			e.val = v
		}
	}
	return StatusOK
}

func (m *matrix) linkRows() {
	for i := m.size; i >= 1; i-- {
		m.firstInRow[i] = nil
	}

	for col := m.size; col >= 1; col-- {
		for e := m.firstInCol[col]; e != nil; e = e.nextInCol {
			e.col = col
			e.nextInRow = m.firstInRow[e.row]
			m.firstInRow[e.row] = e
		}
	}

	m.rowsLinked = true
}

// createFillin inserts a fill-in element during elimination. The insertion
// hints point into the row and column lists at or before the target slot.
func (m *matrix) createFillin(row, col int64, inRow, inCol **element) *element {
	current := *inCol
	prev := inCol
	for current != nil && current.row < row {
		prev = &current.nextInCol
		current = current.nextInCol
	}
	if current != nil && current.row == row {
		return current
	}

	e := &element{row: row, col: col}
	m.fillins++
	m.elements++

	m.markRow[row]++
	m.markCol[col]++
	m.markProd[row] = markowitzProduct(m.markRow[row], m.markCol[row])
	m.markProd[col] = markowitzProduct(m.markRow[col], m.markCol[col])

	if m.markRow[row] == 1 && m.markCol[row] != 0 {
		m.singletons--
	}
	if m.markRow[col] != 0 && m.markCol[col] == 1 {
		m.singletons--
	}

	e.nextInCol = current
	*prev = e

	current = *inRow
	prev = inRow
	for current != nil && current.col < col {
		prev = &current.nextInRow
		current = current.nextInRow
	}
	e.nextInRow = current
	*prev = e

	if row == col {
		m.diags[row] = e
	}

	return e
}

func (m *matrix) findDiag(index int64) *element {
	e := m.firstInCol[index]

	for e != nil && e.row < index {
		e = e.nextInCol
	}

	if e != nil && e.row == index {
		return e
	}

	return nil
}
