package glm

import (
	"math"
	"math/rand/v2"
	"testing"

	"gonum.org/v1/gonum/stat/distuv"

	goglmerrors "github.com/YuminosukeSato/goglm/pkg/errors"
)

// TestCustomFamilyPoissonClosedForm checks the generic builder against
// the closed-form Poisson quantities. The mean and variance pass through
// the distribution, so only the numerical gradient carries error.
func TestCustomFamilyPoissonClosedForm(t *testing.T) {
	src := rand.NewPCG(1, 1)
	family := NewCustomFamily("PoissonRef", poissonDist(src), math.Exp)

	if family.Name() != "PoissonRef" {
		t.Errorf("Name() = %q, want PoissonRef", family.Name())
	}

	eta := []float64{-1, 0, 0.5, 1}
	mean, variance, gradMean, err := family.Call(eta)
	if err != nil {
		t.Fatalf("Call: %v", err)
	}

	want := make([]float64, len(eta))
	for i, e := range eta {
		want[i] = math.Exp(e)
	}
	assertAllClose(t, "mean", mean, want, 1e-12, 0)
	assertAllClose(t, "variance", variance, want, 1e-12, 0)
	assertAllClose(t, "gradMean", gradMean, want, derivRtol, derivAtol)
}

func TestCustomFamilyLogProbMatchesDistribution(t *testing.T) {
	family := NewCustomFamily("PoissonRef", poissonDist(nil), math.Exp)

	eta := []float64{0.5, 1.5}
	response := []float64{2, 4}
	got, err := family.LogProb(response, eta)
	if err != nil {
		t.Fatalf("LogProb: %v", err)
	}

	for i := range eta {
		want := distuv.Poisson{Lambda: math.Exp(eta[i])}.LogProb(response[i])
		if got[i] != want {
			t.Errorf("LogProb(%v; eta=%v) = %v, want %v", response[i], eta[i], got[i], want)
		}
	}
}

func TestCustomFamilyCanonicalFlag(t *testing.T) {
	plain := NewCustomFamily("PoissonRef", poissonDist(nil), math.Exp)
	if plain.IsCanonical() {
		t.Error("IsCanonical() = true before WithCanonical")
	}

	canonical := NewCustomFamily("PoissonRef", poissonDist(nil), math.Exp, WithCanonical(true))
	if !canonical.IsCanonical() {
		t.Error("IsCanonical() = false after WithCanonical(true)")
	}
}

// TestCustomFamilySampleDeterminism checks that two families wired to
// identically seeded sources draw identical observations.
func TestCustomFamilySampleDeterminism(t *testing.T) {
	eta := linearResponseGrid()

	a := NewCustomFamily("PoissonRef", poissonDist(rand.NewPCG(7, 7)), math.Exp)
	b := NewCustomFamily("PoissonRef", poissonDist(rand.NewPCG(7, 7)), math.Exp)

	obsA, err := a.Sample(eta)
	if err != nil {
		t.Fatalf("Sample: %v", err)
	}
	obsB, err := b.Sample(eta)
	if err != nil {
		t.Fatalf("Sample: %v", err)
	}

	for i := range obsA {
		if obsA[i] != obsB[i] {
			t.Errorf("sample %d differs between equally seeded sources: %v vs %v", i, obsA[i], obsB[i])
		}
		if obsA[i] < 0 || obsA[i] != math.Floor(obsA[i]) {
			t.Errorf("sample %d = %v, want a non-negative integer count", i, obsA[i])
		}
	}
}

func TestCustomFamilyValidation(t *testing.T) {
	family := NewCustomFamily("PoissonRef", poissonDist(nil), math.Exp)

	if _, _, _, err := family.Call(nil); err == nil {
		t.Error("Call(nil) did not return an error")
	}
	if _, err := family.Sample([]float64{}); err == nil {
		t.Error("Sample(empty) did not return an error")
	}

	_, err := family.LogProb([]float64{1}, []float64{0.5, 1})
	if err == nil {
		t.Fatal("LogProb with mismatched lengths did not return an error")
	}
	var dimErr *goglmerrors.DimensionError
	if !goglmerrors.As(err, &dimErr) {
		t.Errorf("error %v is not a DimensionError", err)
	}
}
