package preprocessing

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"

	goglmerrors "github.com/YuminosukeSato/goglm/pkg/errors"
)

func TestStandardScalerFitTransform(t *testing.T) {
	X := mat.NewDense(4, 2, []float64{
		0, 10,
		2, 20,
		4, 30,
		6, 40,
	})

	scaler := NewStandardScalerDefault()
	Xs, err := scaler.FitTransform(X)
	if err != nil {
		t.Fatalf("FitTransform: %v", err)
	}

	wantMean := []float64{3, 25}
	wantScale := []float64{math.Sqrt(5), math.Sqrt(125)}
	for j := 0; j < 2; j++ {
		if math.Abs(scaler.Mean[j]-wantMean[j]) > 1e-12 {
			t.Errorf("Mean[%d] = %v, want %v", j, scaler.Mean[j], wantMean[j])
		}
		if math.Abs(scaler.Scale[j]-wantScale[j]) > 1e-12 {
			t.Errorf("Scale[%d] = %v, want %v", j, scaler.Scale[j], wantScale[j])
		}
	}

	// Transformed columns have zero mean and unit population variance.
	r, c := Xs.Dims()
	for j := 0; j < c; j++ {
		var sum, sumSq float64
		for i := 0; i < r; i++ {
			v := Xs.At(i, j)
			sum += v
			sumSq += v * v
		}
		mean := sum / float64(r)
		variance := sumSq/float64(r) - mean*mean
		if math.Abs(mean) > 1e-12 {
			t.Errorf("column %d mean = %v, want 0", j, mean)
		}
		if math.Abs(variance-1) > 1e-12 {
			t.Errorf("column %d variance = %v, want 1", j, variance)
		}
	}

	back, err := scaler.InverseTransform(Xs)
	if err != nil {
		t.Fatalf("InverseTransform: %v", err)
	}
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			if math.Abs(back.At(i, j)-X.At(i, j)) > 1e-12 {
				t.Errorf("round trip at (%d,%d): %v, want %v", i, j, back.At(i, j), X.At(i, j))
			}
		}
	}
}

func TestStandardScalerConstantColumn(t *testing.T) {
	X := mat.NewDense(3, 1, []float64{5, 5, 5})

	scaler := NewStandardScalerDefault()
	Xs, err := scaler.FitTransform(X)
	if err != nil {
		t.Fatalf("FitTransform: %v", err)
	}

	if scaler.Scale[0] != 1 {
		t.Errorf("Scale[0] = %v for a constant column, want 1", scaler.Scale[0])
	}
	for i := 0; i < 3; i++ {
		if Xs.At(i, 0) != 0 {
			t.Errorf("transformed constant column has %v at row %d, want 0", Xs.At(i, 0), i)
		}
	}
}

func TestStandardScalerDisabled(t *testing.T) {
	X := mat.NewDense(3, 1, []float64{1, 2, 4})

	scaler := NewStandardScaler(false, false)
	Xs, err := scaler.FitTransform(X)
	if err != nil {
		t.Fatalf("FitTransform: %v", err)
	}

	for i := 0; i < 3; i++ {
		if Xs.At(i, 0) != X.At(i, 0) {
			t.Errorf("row %d changed with scaling disabled: %v != %v", i, Xs.At(i, 0), X.At(i, 0))
		}
	}
}

func TestStandardScalerNotFitted(t *testing.T) {
	scaler := NewStandardScalerDefault()

	var notFitted *goglmerrors.NotFittedError
	if _, err := scaler.Transform(mat.NewDense(1, 1, nil)); !goglmerrors.As(err, &notFitted) {
		t.Errorf("Transform before Fit returned %v, want NotFittedError", err)
	}
}

func TestStandardScalerDimensionMismatch(t *testing.T) {
	scaler := NewStandardScalerDefault()
	if err := scaler.Fit(mat.NewDense(2, 2, []float64{1, 2, 3, 4})); err != nil {
		t.Fatalf("Fit: %v", err)
	}

	var dimErr *goglmerrors.DimensionError
	if _, err := scaler.Transform(mat.NewDense(2, 3, nil)); !goglmerrors.As(err, &dimErr) {
		t.Errorf("Transform with extra features returned %v, want DimensionError", err)
	}
}

func TestMinMaxScalerFitTransform(t *testing.T) {
	X := mat.NewDense(3, 1, []float64{1, 3, 5})

	tests := []struct {
		name         string
		featureRange [2]float64
		want         []float64
	}{
		{"unit range", [2]float64{0, 1}, []float64{0, 0.5, 1}},
		{"symmetric range", [2]float64{-1, 1}, []float64{-1, 0, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scaler := NewMinMaxScaler(tt.featureRange)
			Xs, err := scaler.FitTransform(X)
			if err != nil {
				t.Fatalf("FitTransform: %v", err)
			}

			for i, want := range tt.want {
				if math.Abs(Xs.At(i, 0)-want) > 1e-12 {
					t.Errorf("row %d = %v, want %v", i, Xs.At(i, 0), want)
				}
			}

			back, err := scaler.InverseTransform(Xs)
			if err != nil {
				t.Fatalf("InverseTransform: %v", err)
			}
			for i := 0; i < 3; i++ {
				if math.Abs(back.At(i, 0)-X.At(i, 0)) > 1e-12 {
					t.Errorf("round trip at row %d: %v, want %v", i, back.At(i, 0), X.At(i, 0))
				}
			}
		})
	}
}

func TestMinMaxScalerConstantColumn(t *testing.T) {
	X := mat.NewDense(3, 1, []float64{7, 7, 7})

	scaler := NewMinMaxScalerDefault()
	Xs, err := scaler.FitTransform(X)
	if err != nil {
		t.Fatalf("FitTransform: %v", err)
	}

	for i := 0; i < 3; i++ {
		if Xs.At(i, 0) != 0 {
			t.Errorf("constant column row %d = %v, want 0", i, Xs.At(i, 0))
		}
	}

	back, err := scaler.InverseTransform(Xs)
	if err != nil {
		t.Fatalf("InverseTransform: %v", err)
	}
	for i := 0; i < 3; i++ {
		if back.At(i, 0) != 7 {
			t.Errorf("round trip row %d = %v, want 7", i, back.At(i, 0))
		}
	}
}

func TestMinMaxScalerBadRange(t *testing.T) {
	scaler := NewMinMaxScaler([2]float64{1, 1})

	var valErr *goglmerrors.ValueError
	if err := scaler.Fit(mat.NewDense(2, 1, []float64{1, 2})); !goglmerrors.As(err, &valErr) {
		t.Errorf("Fit with a degenerate range returned %v, want ValueError", err)
	}
}
