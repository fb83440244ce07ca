package main

import (
	"fmt"
	"log"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"splu"
)

// Transient simulation of a series RL circuit driven by a 1kHz sine source,
// formulated as a modified nodal system. The sparsity pattern is fixed, so
// the symbolic analysis from the first step is reused by every later
// factorization.
func main() {
	const (
		R     = 100.0
		G     = 1.0 / R
		L     = 1e-3
		Vpeak = 5.0
		freq  = 1000.0

		endTime  = 0.002
		timeStep = 1e-5
	)

	// unknowns: V(1), V(2), I(source), I(L)
	rows := []int32{0, 1, 0, 1, 0, 2, 1, 3, 3}
	cols := []int32{0, 1, 1, 0, 2, 0, 3, 1, 3}
	vals := []float64{G, G, -G, -G, 1, 1, 1, 1, -L / timeStep}

	s := splu.NewSolver()
	defer s.Destroy()

	if err := s.Initialize(4, len(vals), splu.Options{}); err != nil {
		log.Fatal(err)
	}

	b := make([]float64, 4)
	x := make([]float64, 4)
	iL := 0.0

	var vin2, vout plotter.XYs

	fmt.Println("Time (s) | Vin | V(2) | I_L")
	for t := 0.0; t <= endTime; t += timeStep {
		if err := s.Factorize(rows, cols, vals, false); err != nil {
			log.Fatalf("time %.6f: %v", t, err)
		}

		vin := Vpeak * math.Sin(2.0*math.Pi*freq*t)
		b[0] = 0.0
		b[1] = 0.0
		b[2] = vin
		b[3] = -(L / timeStep) * iL

		if err := s.Solve(x, b, false); err != nil {
			log.Fatalf("time %.6f: %v", t, err)
		}

		iL = x[3]
		fmt.Printf("%.5f | %8.4f | %8.4f | %8.5f\n", t, vin, x[1], iL)

		vin2 = append(vin2, plotter.XY{X: t * 1e3, Y: vin})
		vout = append(vout, plotter.XY{X: t * 1e3, Y: x[1]})
	}

	p := plot.New()
	p.Title.Text = "RL transient"
	p.X.Label.Text = "t (ms)"
	p.Y.Label.Text = "V"

	src, err := plotter.NewLine(vin2)
	if err != nil {
		log.Fatal(err)
	}
	out, err := plotter.NewLine(vout)
	if err != nil {
		log.Fatal(err)
	}
	out.LineStyle.Width = vg.Points(1.5)
	p.Add(src, out)
	p.Legend.Add("Vin", src)
	p.Legend.Add("V(2)", out)

	if err := p.Save(6*vg.Inch, 4*vg.Inch, "tran1.png"); err != nil {
		log.Fatal(err)
	}
	fmt.Println("wrote tran1.png")
}
