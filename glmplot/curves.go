// Package glmplot renders diagnostic plots of exponential family shape.
package glmplot

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/YuminosukeSato/goglm/glm"
	"github.com/YuminosukeSato/goglm/pkg/errors"
)

// Default grid used by SaveCurves. The even point count keeps zero off
// the grid, where the reciprocal link has a pole.
const (
	defaultEtaMin = -4
	defaultEtaMax = 4
	defaultPoints = 200
)

// CurvePlot renders the mean, variance and gradient-of-mean of a family
// over n evenly spaced linear response values in [etaMin, etaMax].
func CurvePlot(family glm.ExponentialFamily, etaMin, etaMax float64, n int) (*plot.Plot, error) {
	if n < 2 {
		return nil, errors.NewValueError("glmplot.CurvePlot", "need at least two grid points")
	}
	if etaMin >= etaMax {
		return nil, errors.NewValueError("glmplot.CurvePlot", "etaMin must be below etaMax")
	}

	eta := make([]float64, n)
	floats.Span(eta, etaMin, etaMax)

	mean, variance, gradMean, err := family.Call(eta)
	if err != nil {
		return nil, err
	}

	p := plot.New()
	p.Title.Text = family.Name()
	p.X.Label.Text = "Linear response"
	p.Legend.Top = true

	err = plotutil.AddLines(p,
		"mean", points(eta, mean),
		"variance", points(eta, variance),
		"dmean/deta", points(eta, gradMean),
	)
	if err != nil {
		return nil, errors.Wrap(err, "glmplot.CurvePlot")
	}
	return p, nil
}

// SaveCurves writes the curve plot of the family over the default grid
// to path. The image format follows the path extension, e.g. ".png" or
// ".pdf".
func SaveCurves(family glm.ExponentialFamily, path string) error {
	p, err := CurvePlot(family, defaultEtaMin, defaultEtaMax, defaultPoints)
	if err != nil {
		return err
	}
	if err := p.Save(6*vg.Inch, 4*vg.Inch, path); err != nil {
		return errors.Wrap(err, "glmplot.SaveCurves")
	}
	return nil
}

func points(x, y []float64) plotter.XYs {
	pts := make(plotter.XYs, len(x))
	for i := range x {
		pts[i].X = x[i]
		pts[i].Y = y[i]
	}
	return pts
}
