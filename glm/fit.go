package glm

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/goglm/core/model"
	"github.com/YuminosukeSato/goglm/core/parallel"
	"github.com/YuminosukeSato/goglm/metrics"
	"github.com/YuminosukeSato/goglm/pkg/errors"
	"github.com/YuminosukeSato/goglm/pkg/log"
)

const (
	defaultMaxIter = 30
	defaultTol     = 1e-8

	// Row counts below this threshold are processed sequentially.
	parallelThreshold = 1000
)

// GLM fits a generalized linear model for a given exponential family by
// iteratively reweighted least squares (Fisher scoring).
type GLM struct {
	*model.StateManager

	family ExponentialFamily

	maxIter      int
	tol          float64
	fitIntercept bool
	offset       []float64
	weights      []float64

	coef      []float64
	intercept float64
	result    *FitResult
}

var (
	_ model.Regressor       = (*GLM)(nil)
	_ model.ParameterGetter = (*GLM)(nil)
)

// Option configures a GLM before fitting.
type Option func(*GLM)

// WithMaxIter sets the maximum number of scoring iterations.
func WithMaxIter(n int) Option {
	return func(g *GLM) { g.maxIter = n }
}

// WithTol sets the relative deviance-change tolerance that ends the
// scoring iterations.
func WithTol(tol float64) Option {
	return func(g *GLM) { g.tol = tol }
}

// WithFitIntercept controls whether an intercept column is added to the
// design matrix. It defaults to true.
func WithFitIntercept(fit bool) Option {
	return func(g *GLM) { g.fitIntercept = fit }
}

// WithOffset adds a fixed per-observation term to the linear response
// during fitting.
func WithOffset(offset []float64) Option {
	return func(g *GLM) { g.offset = offset }
}

// WithWeights sets non-negative per-observation weights.
func WithWeights(weights []float64) Option {
	return func(g *GLM) { g.weights = weights }
}

// NewGLM creates an unfitted GLM for the given family.
func NewGLM(family ExponentialFamily, opts ...Option) *GLM {
	g := &GLM{
		StateManager: model.NewStateManager(),
		family:       family,
		maxIter:      defaultMaxIter,
		tol:          defaultTol,
		fitIntercept: true,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Family returns the family the model was constructed with.
func (g *GLM) Family() ExponentialFamily { return g.family }

// Fit estimates the model coefficients from the design matrix X and the
// response column vector y. Scoring starts from the responses pulled
// toward their center and mapped through the link (families without a
// catalogue link start from zero coefficients). If the iterations do not
// converge within the configured budget, a ConvergenceWarning is emitted
// through the warning handler and the last estimates are kept.
func (g *GLM) Fit(X, y mat.Matrix) error {
	r, c := X.Dims()
	ry, cy := y.Dims()

	if r == 0 || c == 0 {
		return errors.Wrap(errors.ErrEmptyData, "GLM.Fit")
	}
	if ry != r {
		return errors.NewDimensionError("GLM.Fit", r, ry, 0)
	}
	if cy != 1 {
		return errors.NewValueError("GLM.Fit", "y must be a column vector")
	}
	if g.offset != nil && len(g.offset) != r {
		return errors.NewDimensionError("GLM.Fit", r, len(g.offset), 0)
	}
	if g.weights != nil {
		if len(g.weights) != r {
			return errors.NewDimensionError("GLM.Fit", r, len(g.weights), 0)
		}
		for _, w := range g.weights {
			if w < 0 || math.IsNaN(w) {
				return errors.NewValidationError("weights", "must be non-negative", w)
			}
		}
	}

	logger := log.GetLoggerWithName("glm")
	logger.Debug("fitting model",
		log.FamilyKey, g.family.Name(),
		log.SamplesKey, r,
		log.FeaturesKey, c,
		log.ToleranceKey, g.tol,
	)

	nparam := c
	if g.fitIntercept {
		nparam++
	}

	// Design matrix, with a leading column of ones when fitting an
	// intercept.
	design := mat.NewDense(r, nparam, nil)
	parallel.ParallelizeWithThreshold(r, parallelThreshold, func(start, end int) {
		for i := start; i < end; i++ {
			j0 := 0
			if g.fitIntercept {
				design.Set(i, 0, 1)
				j0 = 1
			}
			for j := 0; j < c; j++ {
				design.Set(i, j0+j, X.At(i, j))
			}
		}
	})

	yv := make([]float64, r)
	for i := 0; i < r; i++ {
		yv[i] = y.At(i, 0)
	}

	// Families built from a link catalogue screen the responses against
	// the link's mean domain. Generically built reference families carry
	// no catalogue link and skip the screen.
	var link *Link
	if lk, ok := g.family.(interface{ Link() *Link }); ok {
		link = lk.Link()
		if err := link.CheckResponseDomain(yv); err != nil {
			return err
		}
	}

	beta := mat.NewVecDense(nparam, nil)
	eta := make([]float64, r)
	w := make([]float64, r)
	z := make([]float64, r)

	// Starting linear response from the damped response means. Zero
	// coefficients would put the reciprocal link on its pole, so scoring
	// starts from the data instead; families without a catalogue link
	// keep the zero coefficient start.
	if link != nil {
		start := make([]float64, r)
		link.StartingMean(yv, start)
		link.Link(start, eta)
	}

	var (
		etaVec    mat.VecDense
		dev       float64
		devPrev   float64
		converged bool
		iters     int
	)

	for iter := 0; iter < g.maxIter; iter++ {
		mean, variance, gradMean, err := g.family.Call(eta)
		if err != nil {
			return err
		}

		lp, err := g.family.LogProb(yv, eta)
		if err != nil {
			return err
		}
		dev = -2 * g.weightedSum(lp)
		if err := errors.CheckScalar("IRLS deviance", dev, iter); err != nil {
			return err
		}

		logger.Debug("scoring step",
			log.IterationsKey, iter,
			log.DevianceKey, dev,
		)

		if iter > 0 && math.Abs(dev-devPrev) < g.tol*(math.Abs(dev)+g.tol) {
			converged = true
			break
		}
		devPrev = dev

		for i := 0; i < r; i++ {
			w[i] = gradMean[i] * gradMean[i] / variance[i]
			if g.weights != nil {
				w[i] *= g.weights[i]
			}
			z[i] = eta[i] + (yv[i]-mean[i])/gradMean[i]
			if g.offset != nil {
				z[i] -= g.offset[i]
			}
		}
		if err := errors.CheckNumericalStability("IRLS working weights", w, iter); err != nil {
			return err
		}
		if err := errors.CheckNumericalStability("IRLS working response", z, iter); err != nil {
			return err
		}

		if err := g.solveWLS(design, w, z, beta); err != nil {
			return err
		}
		iters++

		// Linear response at the updated coefficients.
		etaVec.MulVec(design, beta)
		for i := 0; i < r; i++ {
			eta[i] = etaVec.AtVec(i)
			if g.offset != nil {
				eta[i] += g.offset[i]
			}
		}
	}

	// Deviance at the final coefficients. On the converged path the
	// coefficients did not move after the last evaluation, so this
	// matches the loop's value.
	lp, err := g.family.LogProb(yv, eta)
	if err != nil {
		return err
	}
	dev = -2 * g.weightedSum(lp)
	if err := errors.CheckScalar("IRLS deviance", dev, iters); err != nil {
		return err
	}

	if !converged {
		warning := errors.NewConvergenceWarning("IRLS", g.maxIter,
			"maximum iterations reached without convergence")
		errors.Warn(warning)
		logger.Warn("model did not converge",
			log.FamilyKey, g.family.Name(),
			log.IterationsKey, iters,
			log.DevianceKey, dev,
		)
	}

	g.setFitted(beta, c, r, dev, converged, iters)

	logger.Debug("fit finished",
		log.FamilyKey, g.family.Name(),
		log.IterationsKey, iters,
		log.DevianceKey, dev,
	)
	return nil
}

// weightedSum sums v elementwise under the observation weights.
func (g *GLM) weightedSum(v []float64) float64 {
	var s float64
	for i, x := range v {
		if g.weights != nil {
			s += g.weights[i] * x
		} else {
			s += x
		}
	}
	return s
}

// solveWLS solves the weighted least squares problem
// (X'WX) beta = X'Wz via a Cholesky factorization.
func (g *GLM) solveWLS(design *mat.Dense, w, z []float64, beta *mat.VecDense) error {
	_, nparam := design.Dims()

	xtwx := mat.NewSymDense(nparam, nil)
	xtwz := mat.NewVecDense(nparam, nil)

	for j1 := 0; j1 < nparam; j1++ {
		var u float64
		for i, zi := range z {
			u += design.At(i, j1) * w[i] * zi
		}
		xtwz.SetVec(j1, u)

		for j2 := j1; j2 < nparam; j2++ {
			var v float64
			for i := range z {
				v += design.At(i, j1) * w[i] * design.At(i, j2)
			}
			xtwx.SetSym(j1, j2, v)
		}
	}

	var chol mat.Cholesky
	if ok := chol.Factorize(xtwx); !ok {
		return errors.Wrap(errors.ErrSingularMatrix, "GLM.Fit: weighted normal equations are not positive definite")
	}
	return chol.SolveVecTo(beta, xtwz)
}

// setFitted stores the estimates and the fit statistics.
func (g *GLM) setFitted(beta *mat.VecDense, c, r int, dev float64, converged bool, iters int) {
	if g.fitIntercept {
		g.intercept = beta.AtVec(0)
		g.coef = make([]float64, c)
		for j := 0; j < c; j++ {
			g.coef[j] = beta.AtVec(j + 1)
		}
	} else {
		g.intercept = 0
		g.coef = make([]float64, c)
		for j := 0; j < c; j++ {
			g.coef[j] = beta.AtVec(j)
		}
	}

	logLik := -dev / 2
	nparam := len(g.coef)
	if g.fitIntercept {
		nparam++
	}

	g.result = &FitResult{
		Family:        g.family.Name(),
		Converged:     converged,
		Iterations:    iters,
		Deviance:      dev,
		LogLikelihood: logLik,
		AIC:           2*float64(nparam) - 2*logLik,
		NObs:          r,
		NParams:       nparam,
		Coef:          append([]float64(nil), g.coef...),
		Intercept:     g.intercept,
	}

	g.SetDimensions(r, c)
	g.SetFitted()
}

// Predict returns the predicted mean response for the rows of X as an
// n x 1 matrix. Training offsets do not carry over to prediction.
func (g *GLM) Predict(X mat.Matrix) (mat.Matrix, error) {
	eta, err := g.linearResponse(X, "Predict")
	if err != nil {
		return nil, err
	}

	mean, _, _, err := g.family.Call(eta)
	if err != nil {
		return nil, err
	}
	return mat.NewDense(len(mean), 1, mean), nil
}

// PredictLinear returns the linear response for the rows of X as an
// n x 1 matrix, without applying the inverse link.
func (g *GLM) PredictLinear(X mat.Matrix) (mat.Matrix, error) {
	eta, err := g.linearResponse(X, "PredictLinear")
	if err != nil {
		return nil, err
	}
	return mat.NewDense(len(eta), 1, eta), nil
}

func (g *GLM) linearResponse(X mat.Matrix, method string) ([]float64, error) {
	if err := g.RequireFitted("GLM", method); err != nil {
		return nil, err
	}

	r, c := X.Dims()
	if _, nFeatures := g.Dimensions(); c != nFeatures {
		return nil, errors.NewDimensionError("GLM."+method, nFeatures, c, 1)
	}

	eta := make([]float64, r)
	parallel.ParallelizeWithThreshold(r, parallelThreshold, func(start, end int) {
		for i := start; i < end; i++ {
			v := g.intercept
			for j := 0; j < c; j++ {
				v += X.At(i, j) * g.coef[j]
			}
			eta[i] = v
		}
	})
	return eta, nil
}

// Score returns the coefficient of determination R^2 of the mean
// predictions against y.
func (g *GLM) Score(X, y mat.Matrix) (float64, error) {
	if err := g.RequireFitted("GLM", "Score"); err != nil {
		return 0, err
	}

	pred, err := g.Predict(X)
	if err != nil {
		return 0, err
	}

	r, _ := y.Dims()
	yVec := mat.NewVecDense(r, nil)
	predVec := mat.NewVecDense(r, nil)
	for i := 0; i < r; i++ {
		yVec.SetVec(i, y.At(i, 0))
		predVec.SetVec(i, pred.At(i, 0))
	}
	return metrics.R2Score(yVec, predVec)
}

// Coefficients returns a copy of the fitted feature coefficients,
// excluding the intercept.
func (g *GLM) Coefficients() []float64 {
	return append([]float64(nil), g.coef...)
}

// Intercept returns the fitted intercept, or 0 when fitting without one.
func (g *GLM) Intercept() float64 { return g.intercept }

// Result returns the fit statistics, or nil before fitting.
func (g *GLM) Result() *FitResult { return g.result }

// GetParams returns the model's hyperparameters.
func (g *GLM) GetParams() map[string]interface{} {
	return map[string]interface{}{
		"family":        g.family.Name(),
		"max_iter":      g.maxIter,
		"tol":           g.tol,
		"fit_intercept": g.fitIntercept,
	}
}
