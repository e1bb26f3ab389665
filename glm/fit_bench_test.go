package glm

import (
	"math"
	"math/rand/v2"
	"testing"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"
)

// benchmarkData simulates Poisson counts over a seeded design matrix.
// The coefficients decay with the column index so the linear response
// stays bounded at any width.
func benchmarkData(rows, cols int) (*mat.Dense, *mat.Dense) {
	rng := rand.New(rand.NewPCG(42, 42))

	X := mat.NewDense(rows, cols, nil)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			X.Set(i, j, rng.Float64()*2-1)
		}
	}

	coef := make([]float64, cols)
	for j := range coef {
		coef[j] = 0.5 / float64(j+1)
	}

	y := mat.NewDense(rows, 1, nil)
	for i := 0; i < rows; i++ {
		eta := 0.2
		for j := 0; j < cols; j++ {
			eta += X.At(i, j) * coef[j]
		}
		y.Set(i, 0, distuv.Poisson{Lambda: math.Exp(eta), Src: rng}.Rand())
	}

	return X, y
}

func BenchmarkGLMFit(b *testing.B) {
	sizes := []struct {
		name string
		rows int
		cols int
	}{
		{"Small_100x10", 100, 10},
		{"Medium_1000x10", 1000, 10},
		{"Large_5000x20", 5000, 20},
		{"XLarge_20000x50", 20000, 50},
	}

	for _, size := range sizes {
		b.Run(size.name, func(b *testing.B) {
			X, y := benchmarkData(size.rows, size.cols)

			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				g := NewGLM(NewPoisson())
				if err := g.Fit(X, y); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkGLMPredict(b *testing.B) {
	X, y := benchmarkData(10000, 20)
	g := NewGLM(NewPoisson())
	if err := g.Fit(X, y); err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := g.Predict(X); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkFamilyCall(b *testing.B) {
	eta := make([]float64, 100000)
	floats.Span(eta, -2, 2)

	for _, family := range []*Model{NewPoisson(), NewBernoulli(), NewGammaSoftplus()} {
		b.Run(family.Name(), func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				if _, _, _, err := family.Call(eta); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
