package main

import (
	"fmt"
	"log"

	"gonum.org/v1/gonum/mat"

	"splu"
)

// Solves a dense-ish 5x5 unsymmetric system and checks the residual
// against a gonum reference.
func main() {
	n := 5
	rows := []int32{
		0, 0, 0, 0, 0,
		1, 1, 1, 1, 1,
		2, 2, 2, 2,
		3, 3, 3, 3,
		4, 4, 4, 4, 4,
	}
	cols := []int32{
		0, 1, 2, 3, 4,
		0, 1, 2, 3, 4,
		1, 2, 3, 4,
		0, 1, 3, 4,
		0, 1, 2, 3, 4,
	}
	vals := []float64{
		4, -2, 2, 1, 5,
		2, 3, -1, 2, 3,
		1, 5, 7, 2,
		1, 2, 4, 1,
		3, 1, 4, 2, 2,
	}
	b := []float64{5, 0, 0, 0, 0}

	s := splu.NewSolver()
	defer s.Destroy()

	if err := s.Initialize(n, len(vals), splu.Options{}); err != nil {
		log.Fatal(err)
	}
	if err := s.Factorize(rows, cols, vals, true); err != nil {
		log.Fatal(err)
	}

	x := make([]float64, n)
	if err := s.Solve(x, b, true); err != nil {
		log.Fatal(err)
	}

	fmt.Println("Solution x:")
	for i := 0; i < n; i++ {
		fmt.Printf("x[%d] = %.4f\n", i, x[i])
	}

	// residual r = A x - b via a dense reference
	dense := mat.NewDense(n, n, nil)
	for k := range vals {
		dense.Set(int(rows[k]), int(cols[k]), dense.At(int(rows[k]), int(cols[k]))+vals[k])
	}
	var r mat.VecDense
	r.MulVec(dense, mat.NewVecDense(n, x))
	r.SubVec(&r, mat.NewVecDense(n, b))

	fmt.Printf("Residual |Ax-b| = %.3e\n", mat.Norm(&r, 2))
	fmt.Printf("Ordering used: %s\n", s.UsedOrdering())
}
