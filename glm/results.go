package glm

import (
	"fmt"
	"strings"
)

// FitResult holds the statistics of a completed fit.
type FitResult struct {
	// Family is the name of the family the model was fit under.
	Family string

	// Converged reports whether the scoring iterations reached the
	// deviance tolerance before the iteration budget ran out.
	Converged bool

	// Iterations is the number of coefficient updates performed.
	Iterations int

	// Deviance is -2 times the log-likelihood at the final coefficients.
	Deviance float64

	// LogLikelihood is the (weighted) sum of per-observation
	// log-probabilities at the final coefficients.
	LogLikelihood float64

	// AIC is the Akaike information criterion, 2k - 2*LogLikelihood.
	AIC float64

	// NObs is the number of observations used.
	NObs int

	// NParams is the number of estimated parameters, including the
	// intercept when one was fit.
	NParams int

	// Coef are the fitted feature coefficients, excluding the intercept.
	Coef []float64

	// Intercept is the fitted intercept, 0 when none was fit.
	Intercept float64
}

// Summary renders the fit statistics as a fixed-width text table.
func (r *FitResult) Summary() string {
	var b strings.Builder

	status := "not converged"
	if r.Converged {
		status = "converged"
	}

	b.WriteString("Generalized Linear Model Results\n")
	b.WriteString("================================\n")
	fmt.Fprintf(&b, "Family:          %s\n", r.Family)
	fmt.Fprintf(&b, "Observations:    %d\n", r.NObs)
	fmt.Fprintf(&b, "Parameters:      %d\n", r.NParams)
	fmt.Fprintf(&b, "Iterations:      %d (%s)\n", r.Iterations, status)
	fmt.Fprintf(&b, "Deviance:        %.6f\n", r.Deviance)
	fmt.Fprintf(&b, "Log-likelihood:  %.6f\n", r.LogLikelihood)
	fmt.Fprintf(&b, "AIC:             %.6f\n", r.AIC)
	b.WriteString("--------------------------------\n")
	fmt.Fprintf(&b, "%-12s %12s\n", "", "coefficient")
	fmt.Fprintf(&b, "%-12s %12.6f\n", "intercept", r.Intercept)
	for i, c := range r.Coef {
		fmt.Fprintf(&b, "%-12s %12.6f\n", fmt.Sprintf("x%d", i), c)
	}

	return b.String()
}

// Summary returns the text summary of the fit. It errors when the model
// has not been fitted.
func (g *GLM) Summary() (string, error) {
	if err := g.RequireFitted("GLM", "Summary"); err != nil {
		return "", err
	}
	return g.result.Summary(), nil
}
